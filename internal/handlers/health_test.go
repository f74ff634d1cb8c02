package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHealthTestRouter(handler *HealthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", handler.Health)
	router.GET("/api/info", handler.Info)
	return router
}

func TestHealth_AlwaysHealthy(t *testing.T) {
	handler := NewHealthHandler(nil, "test")
	router := setupHealthTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestInfo_ReturnsMetadata(t *testing.T) {
	handler := NewHealthHandler(nil, "test")
	router := setupHealthTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/info", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp InfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, APIVersion, resp.Version)
	assert.Equal(t, "test", resp.Environment)
	assert.NotEmpty(t, resp.Uptime)
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "0h 0m 5s", formatUptime(5*time.Second))
	assert.Equal(t, "1h 30m 0s", formatUptime(90*time.Minute))
	assert.Equal(t, "2d 1h 0m 0s", formatUptime(49*time.Hour))
}
