package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/fieldscope/api/internal/errors"
	"github.com/fieldscope/api/internal/middleware"
	"github.com/fieldscope/api/internal/weather"
)

// WeatherHandler handles temperature prefill requests.
type WeatherHandler struct {
	provider weather.Provider
}

// NewWeatherHandler creates a new WeatherHandler instance.
func NewWeatherHandler(provider weather.Provider) *WeatherHandler {
	return &WeatherHandler{
		provider: provider,
	}
}

// TemperatureRequest represents the query parameters for the temperature
// endpoint.
type TemperatureRequest struct {
	Lat float64 `form:"lat" binding:"required,min=-90,max=90"`
	Lng float64 `form:"lng" binding:"required,min=-180,max=180"`
}

// TemperatureResponse represents the temperature prefill response. The value
// is a string because it fills a free-text report field.
type TemperatureResponse struct {
	Temperature string `json:"temperature"`
}

// Temperature handles GET /api/weather/temperature.
// It returns the current temperature in degrees Celsius at the given point.
func (h *WeatherHandler) Temperature(c *gin.Context) {
	var req TemperatureRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	temp, err := h.provider.CurrentTemperature(c.Request.Context(), req.Lat, req.Lng)
	if err != nil {
		if log := middleware.GetLogger(c); log != nil {
			log.Error("Weather lookup failed", err, map[string]interface{}{
				"lat": req.Lat,
				"lng": req.Lng,
			})
		}
		apierrors.Upstream(c, "Failed to fetch current temperature", err)
		return
	}

	c.JSON(http.StatusOK, TemperatureResponse{
		Temperature: fmt.Sprintf("%.1f", temp),
	})
}
