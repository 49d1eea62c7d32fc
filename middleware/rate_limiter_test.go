package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tillpoint/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limitedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func pingFrom(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Real-IP", ip)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestRateLimit_UsesConfiguredBurst(t *testing.T) {
	prev := config.AppConfig.MaxRequestsPerMin
	config.AppConfig.MaxRequestsPerMin = 3
	defer func() { config.AppConfig.MaxRequestsPerMin = prev }()

	r := limitedRouter()
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, pingFrom(r, "10.1.0.1").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, pingFrom(r, "10.1.0.1").Code)
}

func TestRateLimit_IsPerClientIP(t *testing.T) {
	prev := config.AppConfig.MaxRequestsPerMin
	config.AppConfig.MaxRequestsPerMin = 1
	defer func() { config.AppConfig.MaxRequestsPerMin = prev }()

	r := limitedRouter()
	assert.Equal(t, http.StatusOK, pingFrom(r, "10.2.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, pingFrom(r, "10.2.0.1").Code)

	// A different client still has its own budget.
	assert.Equal(t, http.StatusOK, pingFrom(r, "10.2.0.2").Code)
}
