// Package service implements the URL shortening business logic: input
// validation, id assignment, expiry and activation rules. It is the sole
// translator from storage sentinels to domain errors.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mberezin/url-shortener/internal/entity"
	"github.com/mberezin/url-shortener/pkg/shortid"
	"github.com/mberezin/url-shortener/pkg/urlutil"
)

// ErrMaxRetriesExceeded is returned when the maximum number of retries for generating a short id is exceeded.
var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating short id")

// URLStorage defines the interface for working with URLs at the business logic layer.
type URLStorage interface {
	// Create inserts a new record. The caller guarantees the id is free.
	Create(ctx context.Context, url *entity.URL) (*entity.URL, error)

	// Get retrieves a record by id or alias without side effects.
	// Returns entity.ErrURLNotFound when the record doesn't exist.
	Get(ctx context.Context, key string) (*entity.URL, error)

	// Update applies a partial patch to the record for the given id or alias.
	Update(ctx context.Context, key string, patch entity.URLPatch) (*entity.URL, error)

	// Delete removes the record and its alias index entry.
	Delete(ctx context.Context, key string) error

	// IncrementClicks bumps the click counter and stamps the access time,
	// returning the new count.
	IncrementClicks(ctx context.Context, key string) (int64, error)

	// List returns all stored records in insertion order.
	List(ctx context.Context) ([]*entity.URL, error)

	// AliasExists reports whether the alias is already registered.
	AliasExists(ctx context.Context, alias string) (bool, error)
}

// CreateURLParams carries the caller-supplied fields for a new short URL.
type CreateURLParams struct {
	OriginalURL string
	CustomAlias string
	ExpiresAt   *time.Time
}

// URLService provides methods to manage URL shortening operations on top of
// a URLStorage.
type URLService struct {
	storage       URLStorage
	baseURL       string
	shortIDLength int
}

// NewURLService creates a new URLService. baseURL is used to compose short
// URLs when no per-request host is available; shortIDLength controls the
// length of generated ids.
func NewURLService(storage URLStorage, baseURL string, shortIDLength int) *URLService {
	return &URLService{
		storage:       storage,
		baseURL:       strings.TrimRight(baseURL, "/"),
		shortIDLength: shortIDLength,
	}
}

// CreateShortURL validates the request, assigns an identifier (the custom
// alias when supplied, a generated one otherwise) and persists the record.
// host is the per-request host used to compose the short URL; when empty
// the configured base URL is used instead.
func (s *URLService) CreateShortURL(ctx context.Context, params CreateURLParams, host string) (*entity.URL, error) {
	const op = "service.URLService.CreateShortURL"
	const maxRetries = 5

	if !urlutil.Validate(params.OriginalURL) {
		return nil, fmt.Errorf("%s: %q: %w", op, params.OriginalURL, entity.ErrInvalidURL)
	}

	originalURL := urlutil.Sanitize(params.OriginalURL)

	var id string

	if params.CustomAlias != "" {
		if !urlutil.IsValidAlias(params.CustomAlias) {
			return nil, fmt.Errorf("%s: %q: %w", op, params.CustomAlias, entity.ErrInvalidAlias)
		}

		exists, err := s.storage.AliasExists(ctx, params.CustomAlias)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to check alias: %w", op, err)
		}
		if exists {
			return nil, fmt.Errorf("%s: %q: %w", op, params.CustomAlias, entity.ErrDuplicateAlias)
		}

		id = params.CustomAlias
	} else {
		for i := 0; ; i++ {
			if i == maxRetries {
				return nil, fmt.Errorf("%s: %w", op, ErrMaxRetriesExceeded)
			}

			generated, err := shortid.New(s.shortIDLength)
			if err != nil {
				return nil, fmt.Errorf("%s: failed to generate short id: %w", op, err)
			}

			if _, err := s.storage.Get(ctx, generated); err != nil {
				if errors.Is(err, entity.ErrURLNotFound) {
					id = generated
					break
				}

				return nil, fmt.Errorf("%s: failed to check short id: %w", op, err)
			}
		}
	}

	url := &entity.URL{
		ID:          id,
		OriginalURL: originalURL,
		ShortURL:    s.shortURLFor(host, id),
		CustomAlias: params.CustomAlias,
		CreatedAt:   time.Now().UTC(),
		ExpiresAt:   params.ExpiresAt,
		IsActive:    true,
	}

	created, err := s.storage.Create(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create url: %w", op, err)
	}

	return created, nil
}

func (s *URLService) shortURLFor(host, id string) string {
	if host == "" {
		return fmt.Sprintf("%s/%s", s.baseURL, id)
	}
	return fmt.Sprintf("http://%s/%s", host, id)
}

// Resolve returns the original URL for the given id or alias and counts the
// click. Expired and deactivated records are refused but kept inspectable
// through GetURLInfo, GetURLStats and ListURLs.
func (s *URLService) Resolve(ctx context.Context, key string) (string, error) {
	const op = "service.URLService.Resolve"

	url, err := s.storage.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("%s: failed to resolve short id: %w", op, err)
	}

	if url.Expired(time.Now().UTC()) {
		return "", fmt.Errorf("%s: %q: %w", op, key, entity.ErrURLExpired)
	}
	if !url.IsActive {
		return "", fmt.Errorf("%s: %q: %w", op, key, entity.ErrURLInactive)
	}

	if _, err := s.storage.IncrementClicks(ctx, key); err != nil {
		return "", fmt.Errorf("%s: failed to count click: %w", op, err)
	}

	return url.OriginalURL, nil
}

// GetURLInfo returns the record for the given id or alias without touching
// the click counter.
func (s *URLService) GetURLInfo(ctx context.Context, key string) (*entity.URL, error) {
	const op = "service.URLService.GetURLInfo"

	url, err := s.storage.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url info: %w", op, err)
	}

	return url, nil
}

// GetURLStats returns the record for the given id or alias, including its
// access statistics, without touching the click counter.
func (s *URLService) GetURLStats(ctx context.Context, key string) (*entity.URL, error) {
	const op = "service.URLService.GetURLStats"

	url, err := s.storage.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url stats: %w", op, err)
	}

	return url, nil
}

// ModifyURL applies a partial update. A supplied original URL is re-validated
// and sanitized before being stored; an all-nil patch is a no-op that returns
// the current record.
func (s *URLService) ModifyURL(ctx context.Context, key string, patch entity.URLPatch) (*entity.URL, error) {
	const op = "service.URLService.ModifyURL"

	if patch.OriginalURL != nil {
		if !urlutil.Validate(*patch.OriginalURL) {
			return nil, fmt.Errorf("%s: %q: %w", op, *patch.OriginalURL, entity.ErrInvalidURL)
		}

		sanitized := urlutil.Sanitize(*patch.OriginalURL)
		patch.OriginalURL = &sanitized
	}

	url, err := s.storage.Update(ctx, key, patch)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to modify url: %w", op, err)
	}

	return url, nil
}

// RemoveURL deletes the record for the given id or alias.
func (s *URLService) RemoveURL(ctx context.Context, key string) error {
	const op = "service.URLService.RemoveURL"

	if err := s.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("%s: failed to remove url: %w", op, err)
	}

	return nil
}

// ListURLs returns all stored records.
func (s *URLService) ListURLs(ctx context.Context) ([]*entity.URL, error) {
	const op = "service.URLService.ListURLs"

	urls, err := s.storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list urls: %w", op, err)
	}

	return urls, nil
}
