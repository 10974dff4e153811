package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/flexfour/internal/config"
	"github.com/iamasit07/flexfour/internal/domain"
	"github.com/iamasit07/flexfour/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prev := config.AppConfig
	config.AppConfig = &config.Config{
		JWTSecret:      "mw-secret",
		GameTokenTTL:   time.Hour,
		AllowedOrigins: []string{"http://localhost:5173"},
	}
	t.Cleanup(func() { config.AppConfig = prev })

	router := gin.New()
	router.Use(CORSMiddleware())
	router.GET("/games/:id", GameAuthMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(GameIDKey))
	})
	return router
}

func serve(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORSMiddleware(t *testing.T) {
	router := setup(t)

	w := serve(router, http.MethodOptions, "/games/x", map[string]string{"Origin": "http://localhost:5173"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(router, http.MethodGet, "/games/x", map[string]string{"Origin": "http://evil.example"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGameAuthMiddleware(t *testing.T) {
	router := setup(t)

	token, err := auth.GenerateGameToken("g1", domain.Player1)
	require.NoError(t, err)

	w := serve(router, http.MethodGet, "/games/g1", map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "g1", w.Body.String())

	w = serve(router, http.MethodGet, "/games/g2", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(router, http.MethodGet, "/games/g1", map[string]string{"Authorization": token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(router, http.MethodGet, "/games/g1", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer abc"))
	assert.Empty(t, bearerToken("Bearer "))
	assert.Empty(t, bearerToken("Basic abc"))
}
