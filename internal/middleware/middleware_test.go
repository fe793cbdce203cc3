package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-share/backend/internal/logging"
	"github.com/pageza/recipe-share/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func whoAmI(c *gin.Context) {
	id, ok := UserIDFromContext(c)
	if !ok {
		c.String(http.StatusOK, "anonymous")
		return
	}
	c.String(http.StatusOK, id.String())
}

func serve(r *gin.Engine, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	v := new(mockValidator)
	v.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: userID, Username: "alice"}, nil)
	v.On("ValidateToken", "bad").Return(nil, errors.New("invalid token"))

	r := gin.New()
	r.GET("/me", AuthMiddleware(v), whoAmI)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid token", "Bearer good", http.StatusOK, userID.String()},
		{"lowercase scheme", "bearer good", http.StatusOK, userID.String()},
		{"missing header", "", http.StatusUnauthorized, `"missing authorization header"`},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, `"invalid authorization header format"`},
		{"no token", "Bearer", http.StatusUnauthorized, `"invalid authorization header format"`},
		{"invalid token", "Bearer bad", http.StatusUnauthorized, `"invalid or expired token"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, http.MethodGet, "/me", tt.header)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	v := new(mockValidator)
	v.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: userID}, nil)
	v.On("ValidateToken", "null").Return(nil, errors.New("invalid token"))

	r := gin.New()
	r.GET("/recipes", OptionalAuthMiddleware(v), whoAmI)

	w := serve(r, http.MethodGet, "/recipes", "Bearer good")
	assert.Equal(t, userID.String(), w.Body.String())

	w = serve(r, http.MethodGet, "/recipes", "Bearer null")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	w = serve(r, http.MethodGet, "/recipes", "")
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestRecovery(t *testing.T) {
	var buf strings.Builder
	logging.Init(logging.Config{Level: "info", Format: "json", Output: &buf})
	t.Cleanup(func() { logging.Init(logging.Config{Level: "info", Format: "json"}) })

	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"internal server error"}`, w.Body.String())
	assert.Contains(t, buf.String(), "kaboom")
	assert.Contains(t, buf.String(), "req-42")
}

func TestRequestIDAndLogger(t *testing.T) {
	var buf strings.Builder
	logging.Init(logging.Config{Level: "info", Format: "json", Output: &buf})
	t.Cleanup(func() { logging.Init(logging.Config{Level: "info", Format: "json"}) })

	r := gin.New()
	r.Use(RequestID(), RequestLogger())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, logging.RequestIDFromContext(c.Request.Context()))
	})

	w := serve(r, http.MethodGet, "/ping", "")
	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())
	assert.Contains(t, buf.String(), `"path":"/ping"`)
	assert.Contains(t, buf.String(), `"status":200`)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "upstream-id", w.Header().Get(RequestIDHeader))
}

func TestMetrics(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/recipes/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", MetricsHandler())

	serve(r, http.MethodGet, "/recipes/"+uuid.NewString(), "")

	w := serve(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",route="/recipes/:id",status="204"}`)
	assert.Contains(t, w.Body.String(), "http_request_duration_seconds")
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/recipes", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/recipes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/recipes", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORSWithoutOrigins(t *testing.T) {
	r := gin.New()
	require.NotPanics(t, func() { r.Use(CORS(nil)) })
	r.GET("/recipes", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
