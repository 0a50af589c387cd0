// Package http exposes the URL shortening service over HTTP+JSON.
package http

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	"github.com/mberezin/url-shortener/internal/entity"
	"github.com/mberezin/url-shortener/internal/service"
)

// URLService defines the interface for the core URL shortening business logic.
type URLService interface {
	// CreateShortURL creates a shortened version of the provided original URL.
	// host is the requesting host used to compose the short URL.
	CreateShortURL(ctx context.Context, params service.CreateURLParams, host string) (*entity.URL, error)

	// Resolve returns the original URL for a short id or alias and counts the click.
	Resolve(ctx context.Context, key string) (string, error)

	// GetURLInfo retrieves the URL record without counting a click.
	GetURLInfo(ctx context.Context, key string) (*entity.URL, error)

	// GetURLStats retrieves the URL record including access statistics.
	GetURLStats(ctx context.Context, key string) (*entity.URL, error)

	// ModifyURL applies a partial update to the URL record.
	ModifyURL(ctx context.Context, key string, patch entity.URLPatch) (*entity.URL, error)

	// RemoveURL deletes the URL record.
	RemoveURL(ctx context.Context, key string) error

	// ListURLs returns all URL records.
	ListURLs(ctx context.Context) ([]*entity.URL, error)
}

// getValidate initializes a new validator instance for validating incoming request payloads.
// It customizes tag name extraction from struct fields to match JSON tags.
func getValidate() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// NewRouter initializes and returns a new HTTP router with all routes and middleware configured.
func NewRouter(logger *httplog.Logger, urlSvc URLService) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"POST", "GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	validate := getValidate()

	r.Get("/", handleRoot)
	r.Post("/shorten", handleCreateShortURL(urlSvc, validate))
	r.Get("/{shortID}", handleRedirect(urlSvc))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handleHealth)

		r.Route("/urls", func(r chi.Router) {
			r.Get("/", handleListURLs(urlSvc))

			r.Route("/{shortID}", func(r chi.Router) {
				r.Get("/", handleGetURLInfo(urlSvc))
				r.Put("/", handleModifyURL(urlSvc, validate))
				r.Delete("/", handleRemoveURL(urlSvc))
				r.Get("/stats", handleGetURLStats(urlSvc))
			})
		})
	})

	return r
}
