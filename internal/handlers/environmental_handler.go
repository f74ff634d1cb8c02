package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/fieldscope/api/internal/errors"
	"github.com/fieldscope/api/internal/models"
	"github.com/fieldscope/api/internal/services"
	"github.com/fieldscope/api/internal/upload"
)

// EnvironmentalHandler handles environmental report HTTP requests.
type EnvironmentalHandler struct {
	service services.EnvironmentalService
	uploads *upload.Store
}

// NewEnvironmentalHandler creates a new EnvironmentalHandler instance.
func NewEnvironmentalHandler(service services.EnvironmentalService, uploads *upload.Store) *EnvironmentalHandler {
	return &EnvironmentalHandler{
		service: service,
		uploads: uploads,
	}
}

// EnvironmentalReportRequest represents the multipart form fields of an
// environmental report. HazardousMaterials arrives as a JSON-encoded string
// field and is parsed separately.
type EnvironmentalReportRequest struct {
	Location           string  `form:"location" binding:"required"`
	Temperature        string  `form:"temperature"`
	AirQualityIndex    float64 `form:"airQualityIndex" binding:"min=0"`
	WaterQuality       string  `form:"waterQuality" binding:"required,oneof=Clean Polluted Contaminated"`
	HazardousMaterials string  `form:"hazardousMaterials"`
}

// Create handles POST /api/environmental-report.
func (h *EnvironmentalHandler) Create(c *gin.Context) {
	req, hazards, ok := bindEnvironmentalRequest(c)
	if !ok {
		return
	}

	docPath, ok := saveRequiredDocument(c, h.uploads)
	if !ok {
		return
	}

	report, err := h.service.Create(c.Request.Context(), services.CreateEnvironmentalInput{
		Location:           req.Location,
		Document:           docPath,
		Temperature:        req.Temperature,
		AirQualityIndex:    req.AirQualityIndex,
		WaterQuality:       models.WaterQuality(req.WaterQuality),
		HazardousMaterials: hazards,
	})
	if err != nil {
		if errors.Is(err, services.ErrDocumentRequired) {
			apierrors.Validation(c, "Document file is required", nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to save environmental report", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Environmental report saved successfully",
		"report":  report,
	})
}

// List handles GET /api/environmental-reports.
func (h *EnvironmentalHandler) List(c *gin.Context) {
	reports, err := h.service.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		apierrors.InternalServerError(c, "Failed to fetch environmental reports", err)
		return
	}

	c.JSON(http.StatusOK, reports)
}

// Get handles GET /api/environmental-report/:id.
func (h *EnvironmentalHandler) Get(c *gin.Context) {
	id, ok := reportIDParam(c)
	if !ok {
		return
	}

	report, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			apierrors.NotFound(c, "Report not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to fetch environmental report", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Update handles PUT /api/environmental-report/:id.
func (h *EnvironmentalHandler) Update(c *gin.Context) {
	id, ok := reportIDParam(c)
	if !ok {
		return
	}

	req, hazards, ok := bindEnvironmentalRequest(c)
	if !ok {
		return
	}

	docPath, ok := saveOptionalDocument(c, h.uploads)
	if !ok {
		return
	}

	report, err := h.service.Update(c.Request.Context(), id, services.UpdateEnvironmentalInput{
		Location:           req.Location,
		Document:           docPath,
		Temperature:        req.Temperature,
		AirQualityIndex:    req.AirQualityIndex,
		WaterQuality:       models.WaterQuality(req.WaterQuality),
		HazardousMaterials: hazards,
	})
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			apierrors.NotFound(c, "Report not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to update environmental report", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report updated successfully",
		"report":  report,
	})
}

// Delete handles DELETE /api/environmental-report/:id.
func (h *EnvironmentalHandler) Delete(c *gin.Context) {
	id, ok := reportIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			apierrors.NotFound(c, "Report not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to delete environmental report", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}

// Export handles GET /api/environmental-reports/export.
func (h *EnvironmentalHandler) Export(c *gin.Context) {
	pdf, err := h.service.Export(c.Request.Context(), c.Query("q"))
	if err != nil {
		apierrors.InternalServerError(c, "Failed to export environmental reports", err)
		return
	}

	servePDF(c, "Filtered_Environmental_Reports.pdf", pdf)
}

// Insights handles GET /api/environmental-report/:id/insights.
func (h *EnvironmentalHandler) Insights(c *gin.Context) {
	id, ok := reportIDParam(c)
	if !ok {
		return
	}

	result, err := h.service.Insights(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			apierrors.NotFound(c, "Report not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to evaluate environmental report", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func bindEnvironmentalRequest(c *gin.Context) (EnvironmentalReportRequest, models.HazardousMaterials, bool) {
	var req EnvironmentalReportRequest
	var hazards models.HazardousMaterials

	if err := c.ShouldBind(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return req, hazards, false
		}
		apierrors.Validation(c, "Invalid form data", map[string]interface{}{
			"error": err.Error(),
		})
		return req, hazards, false
	}

	if !decodeNestedField(c, "hazardousMaterials", req.HazardousMaterials, &hazards) {
		return req, hazards, false
	}
	return req, hazards, true
}
