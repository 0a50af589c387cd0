package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/mberezin/url-shortener/internal/entity"
	"github.com/mberezin/url-shortener/internal/service"
	"github.com/mberezin/url-shortener/pkg/response"
)

// handleRoot serves the welcome document.
func handleRoot(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{
		"message": "Welcome to the URL shortener",
		"version": "1.0.0",
		"health":  "/api/health",
	})
}

// handleHealth handles liveness probe requests.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{
		"status":  "healthy",
		"service": "url-shortener",
	})
}

// renderDomainError translates domain errors into status codes and error
// envelopes. Unknown errors are logged and reported generically.
func renderDomainError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, entity.ErrURLNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.ResourceNotFoundResponse)
	case errors.Is(err, entity.ErrURLExpired):
		render.Status(r, http.StatusGone)
		render.JSON(w, r, urlExpiredResponse)
	case errors.Is(err, entity.ErrURLInactive):
		render.Status(r, http.StatusGone)
		render.JSON(w, r, urlInactiveResponse)
	case errors.Is(err, entity.ErrInvalidURL):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidURLResponse)
	case errors.Is(err, entity.ErrInvalidAlias):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidAliasResponse)
	case errors.Is(err, entity.ErrDuplicateAlias):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, duplicateAliasResponse)
	default:
		httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ServerErrorResponse)
	}
}

// decodeAndValidate binds the JSON body into req and runs schema validation,
// rendering a 422 envelope on failure. It reports whether the handler may
// proceed.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, req any) bool {
	if err := render.DecodeJSON(r.Body, req); err != nil {
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.EmptyRequestBodyResponse)
			return false
		}

		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.BadRequestResponse)
		return false
	}

	if err := validate.Struct(req); err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationErrorResponse(err))
		return false
	}

	return true
}

// handleCreateShortURL handles POST requests to shorten a URL.
//
// The request must contain a valid absolute URL and may carry a custom alias
// and an expiry time. The short URL is composed from the requesting host.
func handleCreateShortURL(svc URLService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleCreateShortURL"
	const successMsg = "The URL has been shortened successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		var req createURLRequest

		if !decodeAndValidate(w, r, validate, &req) {
			return
		}

		params := service.CreateURLParams{
			OriginalURL: req.OriginalURL,
			CustomAlias: req.CustomAlias,
			ExpiresAt:   req.ExpiresAt,
		}

		url, err := svc.CreateShortURL(r.Context(), params, r.Host)
		if err != nil {
			renderDomainError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, toURLResponse(url)))
	}
}

// handleRedirect handles GET requests on a short id, redirecting to the
// original URL and counting the click.
func handleRedirect(svc URLService) http.HandlerFunc {
	const op = "api.http.handleRedirect"

	return func(w http.ResponseWriter, r *http.Request) {
		shortID := chi.URLParam(r, "shortID")

		originalURL, err := svc.Resolve(r.Context(), shortID)
		if err != nil {
			renderDomainError(w, r, op, err)
			return
		}

		http.Redirect(w, r, originalURL, http.StatusFound)
	}
}

// handleListURLs handles GET requests for the full list of short URLs.
func handleListURLs(svc URLService) http.HandlerFunc {
	const op = "api.http.handleListURLs"
	const successMsg = "The URLs retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		urls, err := svc.ListURLs(r.Context())
		if err != nil {
			renderDomainError(w, r, op, err)
			return
		}

		data := make([]urlResponse, 0, len(urls))
		for _, url := range urls {
			data = append(data, toURLResponse(url))
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, data))
	}
}

// handleGetURLInfo handles GET requests for a single short URL. It never
// increments the click counter.
func handleGetURLInfo(svc URLService) http.HandlerFunc {
	const op = "api.http.handleGetURLInfo"
	const successMsg = "The URL info retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		shortID := chi.URLParam(r, "shortID")

		url, err := svc.GetURLInfo(r.Context(), shortID)
		if err != nil {
			renderDomainError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, toURLResponse(url)))
	}
}

// handleGetURLStats handles GET requests for usage statistics of a short
// URL, including the last access time.
func handleGetURLStats(svc URLService) http.HandlerFunc {
	const op = "api.http.handleGetURLStats"
	const successMsg = "The URL statistics retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		shortID := chi.URLParam(r, "shortID")

		url, err := svc.GetURLStats(r.Context(), shortID)
		if err != nil {
			renderDomainError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, toURLStatsResponse(url)))
	}
}

// handleModifyURL handles PUT requests to partially update a short URL.
// A supplied original URL is re-validated by the service before it is applied.
func handleModifyURL(svc URLService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleModifyURL"
	const successMsg = "The URL was successfully modified."

	return func(w http.ResponseWriter, r *http.Request) {
		var req updateURLRequest

		if !decodeAndValidate(w, r, validate, &req) {
			return
		}

		shortID := chi.URLParam(r, "shortID")

		url, err := svc.ModifyURL(r.Context(), shortID, req.toPatch())
		if err != nil {
			renderDomainError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, toURLResponse(url)))
	}
}

// handleRemoveURL handles DELETE requests to remove a short URL.
func handleRemoveURL(svc URLService) http.HandlerFunc {
	const op = "api.http.handleRemoveURL"
	const successMsg = "The URL was successfully deleted."

	return func(w http.ResponseWriter, r *http.Request) {
		shortID := chi.URLParam(r, "shortID")

		if err := svc.RemoveURL(r.Context(), shortID); err != nil {
			renderDomainError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg))
	}
}
