package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/infrastructure/auth"
	"github.com/shopfront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-0123456789abcdef0123",
		AccessTokenExpiration: time.Hour,
		Issuer:                "shopfront",
	})
}

func newAuthedRouter(service *auth.JWTService) *gin.Engine {
	r := gin.New()
	r.Use(JWTAuthMiddleware(service))
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, GetJWTUserID(c))
	})
	return r
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	service := newJWTService()
	r := newAuthedRouter(service)
	userID := uuid.New()

	token, _, err := service.GenerateAccessToken(userID, "alice")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	r := newAuthedRouter(newJWTService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
}

func TestJWTAuthRejectsMalformedHeader(t *testing.T) {
	r := newAuthedRouter(newJWTService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	r := newAuthedRouter(newJWTService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthSkipsConfiguredPaths(t *testing.T) {
	r := newAuthedRouter(newJWTService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthSkipPrefix(t *testing.T) {
	service := newJWTService()
	cfg := DefaultJWTConfig(service)
	cfg.SkipPathPrefixes = []string{"/public"}

	r := gin.New()
	r.Use(JWTAuthMiddlewareWithConfig(cfg))
	r.GET("/public/catalog", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public/catalog", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
