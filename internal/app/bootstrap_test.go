package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"trello/internal/config"
	"trello/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestApplication(t *testing.T, opts ...func(*config.Config)) *Application {
	t.Helper()
	cfg := &config.Config{
		DBDriver:      config.DriverSQLite,
		DBPath:        ":memory:",
		Env:           "test",
		SessionMaxAge: time.Hour,
		AdminUsername: "admin",
		AdminPassword: "admin-password",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	application, err := Bootstrap(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { application.Close() })
	return application
}

func request(application *Application, method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	application.Router.Engine.ServeHTTP(w, req)
	return w
}

func TestBoardFlow(t *testing.T) {
	application := newTestApplication(t)

	w := request(application, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/boards/", w.Header().Get("Location"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))

	w = request(application, http.MethodPost, "/boards/", url.Values{"board_title": {"Launch plan"}})
	require.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.Equal(t, "/boards/Launch%20plan/", location)

	w = request(application, http.MethodGet, location, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Launch plan")

	w = request(application, http.MethodGet, "/boards/Nope/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminListingBehindSeededOperator(t *testing.T) {
	application := newTestApplication(t)

	w := request(application, http.MethodPost, "/boards/", url.Values{"board_title": {"Ops"}})
	require.Equal(t, http.StatusFound, w.Code)

	w = request(application, http.MethodGet, "/admin/boards/", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login/?next=%2Fadmin%2Fboards%2F", w.Header().Get("Location"))

	w = request(application, http.MethodPost, "/admin/login/", url.Values{
		"username": {"admin"},
		"password": {"admin-password"},
		"next":     {"/admin/boards/"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = request(application, http.MethodGet, "/admin/boards/", nil, cookies...)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ops")
}

func TestHealthEndpoint(t *testing.T) {
	application := newTestApplication(t)

	w := request(application, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var status utils.HealthStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, utils.StatusHealthy, status.Status)
	require.Len(t, status.Services, 1)
	assert.Equal(t, config.DriverSQLite, status.Services[0].Name)
}

func TestMetricsEndpoint(t *testing.T) {
	application := newTestApplication(t)

	request(application, http.MethodGet, "/boards/", nil)
	w := request(application, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "trello_boards_created_total")
	assert.Contains(t, body, `trello_http_requests_total{method="GET",route="/boards/",status="200"}`)
}

func TestUnknownRoute(t *testing.T) {
	application := newTestApplication(t)

	w := request(application, http.MethodGet, "/nowhere", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "does not exist")
}

func TestFormPostBehindProxy(t *testing.T) {
	post := func(application *Application) int {
		req := httptest.NewRequest(http.MethodPost, "/boards/", strings.NewReader(url.Values{"board_title": {"Proxied"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Host = "127.0.0.1:8080"
		req.Header.Set("Origin", "https://trello.example.com")
		w := httptest.NewRecorder()
		application.Router.Engine.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusForbidden, post(newTestApplication(t)))

	configured := newTestApplication(t, func(cfg *config.Config) {
		cfg.FrontendURLs = []string{"https://trello.example.com"}
	})
	assert.Equal(t, http.StatusFound, post(configured))
}
