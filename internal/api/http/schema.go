package http

import (
	"time"

	"github.com/mberezin/url-shortener/internal/entity"
	"github.com/mberezin/url-shortener/pkg/response"
)

// createURLRequest represents the request payload for creating a short URL.
// The alias length limits are a schema concern; alias syntax is checked by
// the service.
type createURLRequest struct {
	OriginalURL string     `json:"original_url" validate:"required,url"`
	CustomAlias string     `json:"custom_alias,omitempty" validate:"omitempty,min=3,max=20"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// updateURLRequest represents the request payload for a partial URL update.
// Absent fields are left unchanged.
type updateURLRequest struct {
	OriginalURL *string    `json:"original_url,omitempty" validate:"omitempty,url"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

// toPatch converts an update request into an entity patch.
func (req updateURLRequest) toPatch() entity.URLPatch {
	return entity.URLPatch{
		OriginalURL: req.OriginalURL,
		ExpiresAt:   req.ExpiresAt,
		IsActive:    req.IsActive,
	}
}

// urlResponse represents the response payload for a short URL.
type urlResponse struct {
	ID          string     `json:"id"`
	OriginalURL string     `json:"original_url"`
	ShortURL    string     `json:"short_url"`
	CustomAlias string     `json:"custom_alias,omitempty"`
	ClickCount  int64      `json:"click_count"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	IsActive    bool       `json:"is_active"`
}

// toURLResponse converts an entity.URL into a response payload.
func toURLResponse(url *entity.URL) urlResponse {
	return urlResponse{
		ID:          url.ID,
		OriginalURL: url.OriginalURL,
		ShortURL:    url.ShortURL,
		CustomAlias: url.CustomAlias,
		ClickCount:  url.ClickCount,
		CreatedAt:   url.CreatedAt,
		ExpiresAt:   url.ExpiresAt,
		IsActive:    url.IsActive,
	}
}

// urlStatsResponse is the urlResponse extended with access statistics.
type urlStatsResponse struct {
	urlResponse
	LastAccessed *time.Time `json:"last_accessed"`
}

// toURLStatsResponse converts an entity.URL into a stats response payload.
func toURLStatsResponse(url *entity.URL) urlStatsResponse {
	return urlStatsResponse{
		urlResponse:  toURLResponse(url),
		LastAccessed: url.LastAccessed,
	}
}

// Predefined error envelopes for domain error outcomes.
var (
	urlExpiredResponse     = response.ErrorResponse("The short URL has expired.")
	urlInactiveResponse    = response.ErrorResponse("The short URL has been deactivated.")
	invalidURLResponse     = response.ErrorResponse("Invalid URL format.")
	invalidAliasResponse   = response.ErrorResponse("Invalid alias format.")
	duplicateAliasResponse = response.ErrorResponse("The alias is already taken.")
)
