// Package entity defines the entities and errors used in the application.
// It includes the URL struct, which represents a shortened URL along with
// its metadata, and the domain error definitions shared across layers.
package entity

import (
	"errors"
	"time"
)

var (
	// ErrURLNotFound is returned when a URL with the specified id or alias cannot be found.
	ErrURLNotFound = errors.New("url not found")
	// ErrURLExpired is returned when the URL exists but its expiry time has passed.
	ErrURLExpired = errors.New("url expired")
	// ErrURLInactive is returned when the URL exists but has been deactivated.
	ErrURLInactive = errors.New("url inactive")
	// ErrInvalidURL is returned when the original URL fails validation.
	ErrInvalidURL = errors.New("invalid url")
	// ErrInvalidAlias is returned when a custom alias contains forbidden characters.
	ErrInvalidAlias = errors.New("invalid alias")
	// ErrDuplicateAlias is returned when attempting to register an alias that is already taken.
	ErrDuplicateAlias = errors.New("alias already exists")
)

// URL represents a shortened URL.
type URL struct {
	ID           string     // ID is the canonical short identifier, generated or caller-supplied.
	OriginalURL  string     // OriginalURL is the full URL that the short id resolves to.
	ShortURL     string     // ShortURL is the fully-qualified redirect URL, fixed at creation.
	CustomAlias  string     // CustomAlias is set only when the id was supplied by the caller.
	ClickCount   int64      // ClickCount is the number of successful resolutions.
	CreatedAt    time.Time  // CreatedAt is the timestamp when the URL was created.
	ExpiresAt    *time.Time // ExpiresAt, when set and past, blocks resolution without deleting the record.
	IsActive     bool       // IsActive, when false, blocks resolution; reads still work.
	LastAccessed *time.Time // LastAccessed is set on every successful resolution.
}

// Expired reports whether the URL is past its expiry time at the given moment.
// A URL without an expiry time never expires.
func (u *URL) Expired(now time.Time) bool {
	return u.ExpiresAt != nil && now.After(*u.ExpiresAt)
}

// URLPatch describes a partial update of a URL. Nil fields are left unchanged.
// ID, CreatedAt and ClickCount are never modified through a patch.
type URLPatch struct {
	OriginalURL *string
	ExpiresAt   *time.Time
	IsActive    *bool
}
