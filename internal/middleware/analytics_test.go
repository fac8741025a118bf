package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/univenta/retail_ledger_app/internal/middleware"
	"github.com/univenta/retail_ledger_app/internal/utils/analytics"
)

func TestEventTrackingMiddleware_DisabledClientPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	client := analytics.InitializeClient("", slog.Default())
	assert.False(t, client.IsInitialized())

	router := gin.New()
	router.Use(middleware.EventTrackingMiddleware(client))
	router.POST("/api/v1/expenses", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/expenses", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestEventTrackingMiddleware_NilClientPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.EventTrackingMiddleware(nil))
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
