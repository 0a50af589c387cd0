package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/httplog/v2"
	"github.com/mberezin/url-shortener/internal/service"
	"github.com/mberezin/url-shortener/internal/storage"
	"github.com/mberezin/url-shortener/pkg/response"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite exercises the full stack: router, service and the in-memory
// store, with no mocks.
type E2ETestSuite struct {
	suite.Suite
	server *httptest.Server
	e      *httpexpect.Expect
}

func (suite *E2ETestSuite) SetupTest() {
	logger := httplog.NewLogger("", httplog.Options{Writer: io.Discard})
	urlStorage := storage.NewMemory()
	urlSvc := service.NewURLService(urlStorage, "http://localhost:8080", 8)

	suite.server = httptest.NewServer(NewRouter(logger, urlSvc))
	suite.e = newExpect(suite.T(), suite.server.URL)
}

func (suite *E2ETestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *E2ETestSuite) TestShortenResolveUpdateDelete() {
	resp := suite.e.POST("/shorten").
		WithJSON(map[string]string{
			"original_url": "https://www.example.com",
		}).
		Expect().
		Status(http.StatusOK).
		JSON().Object()

	data := resp.Value("data").Object()
	data.HasValue("click_count", 0)
	data.HasValue("is_active", true)

	id := data.Value("id").String().Raw()
	suite.Len(id, 8)

	suite.e.GET("/" + id).
		Expect().
		Status(http.StatusFound).
		Header("Location").IsEqual("https://www.example.com")

	suite.e.GET("/api/urls/" + id + "/stats").
		Expect().
		Status(http.StatusOK).
		JSON().Object().
		Value("data").Object().
		HasValue("click_count", 1).
		NotHasValue("last_accessed", nil)

	suite.e.PUT("/api/urls/" + id).
		WithJSON(map[string]bool{
			"is_active": false,
		}).
		Expect().
		Status(http.StatusOK).
		JSON().Object().
		Value("data").Object().
		HasValue("is_active", false)

	suite.e.GET("/" + id).
		Expect().
		Status(http.StatusGone)

	suite.e.DELETE("/api/urls/" + id).
		Expect().
		Status(http.StatusOK).
		JSON().Object().
		HasValue("status", response.StatusSuccess)

	suite.e.GET("/api/urls/" + id).
		Expect().
		Status(http.StatusNotFound)
}

func (suite *E2ETestSuite) TestCustomAlias() {
	suite.e.POST("/shorten").
		WithJSON(map[string]string{
			"original_url": "https://www.google.com",
			"custom_alias": "google",
		}).
		Expect().
		Status(http.StatusOK).
		JSON().Object().
		Value("data").Object().
		HasValue("id", "google").
		HasValue("custom_alias", "google")

	// Alias and id resolve to the same record.
	suite.e.GET("/api/urls/google").
		Expect().
		Status(http.StatusOK).
		JSON().Object().
		Value("data").Object().
		HasValue("id", "google").
		HasValue("original_url", "https://www.google.com")

	// Second creation with the same alias fails and leaves the store unchanged.
	suite.e.POST("/shorten").
		WithJSON(map[string]string{
			"original_url": "https://www.example.com",
			"custom_alias": "google",
		}).
		Expect().
		Status(http.StatusConflict)

	suite.e.GET("/api/urls/google").
		Expect().
		Status(http.StatusOK).
		JSON().Object().
		Value("data").Object().
		HasValue("original_url", "https://www.google.com")

	suite.e.GET("/api/urls").
		Expect().
		Status(http.StatusOK).
		JSON().Object().
		Value("data").Array().
		Length().IsEqual(1)
}

func (suite *E2ETestSuite) TestExpiredURL() {
	expiresAt := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)

	resp := suite.e.POST("/shorten").
		WithJSON(map[string]string{
			"original_url": "https://www.example.com",
			"expires_at":   expiresAt,
		}).
		Expect().
		Status(http.StatusOK).
		JSON().Object()

	id := resp.Value("data").Object().Value("id").String().Raw()

	// Resolution is refused but the record stays inspectable.
	suite.e.GET("/" + id).
		Expect().
		Status(http.StatusGone)

	suite.e.GET("/api/urls/" + id).
		Expect().
		Status(http.StatusOK).
		JSON().Object().
		Value("data").Object().
		HasValue("click_count", 0)
}

func (suite *E2ETestSuite) TestMalformedBody() {
	suite.e.POST("/shorten").
		WithJSON(map[string]string{
			"original_url": "example.com",
		}).
		Expect().
		Status(http.StatusUnprocessableEntity)
}

func TestE2E(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
