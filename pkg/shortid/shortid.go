// Package shortid generates short URL identifiers from a cryptographically
// secure random source.
package shortid

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet is the character set used for generated identifiers.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the identifier length used when no explicit length is configured.
const DefaultLength = 8

// New generates a random identifier of the given length drawn from Alphabet.
// At the default length the space is 62^8, so independent generations
// collide with negligible probability.
func New(length int) (string, error) {
	const op = "shortid.New"

	id, err := gonanoid.Generate(Alphabet, length)
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate id: %w", op, err)
	}

	return id, nil
}
