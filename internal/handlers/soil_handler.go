package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/fieldscope/api/internal/errors"
	"github.com/fieldscope/api/internal/middleware"
	"github.com/fieldscope/api/internal/models"
	"github.com/fieldscope/api/internal/services"
	"github.com/fieldscope/api/internal/upload"
)

// SoilHandler handles soil report HTTP requests.
type SoilHandler struct {
	service services.SoilService
	uploads *upload.Store
}

// NewSoilHandler creates a new SoilHandler instance.
func NewSoilHandler(service services.SoilService, uploads *upload.Store) *SoilHandler {
	return &SoilHandler{
		service: service,
		uploads: uploads,
	}
}

// SoilReportRequest represents the multipart form fields of a soil report.
// The document file travels alongside as the "document" part.
type SoilReportRequest struct {
	SoilType        string  `form:"soilType" binding:"required,oneof=Clay Silt Sand Loam"`
	MoistureContent float64 `form:"moistureContent" binding:"min=0,max=100"`
	PHLevel         float64 `form:"phLevel" binding:"min=0,max=14"`
	CompactionLevel float64 `form:"compactionLevel" binding:"min=0"`
}

// Create handles POST /api/soil-report.
func (h *SoilHandler) Create(c *gin.Context) {
	req, ok := bindSoilRequest(c)
	if !ok {
		return
	}

	docPath, ok := saveRequiredDocument(c, h.uploads)
	if !ok {
		return
	}

	report, err := h.service.Create(c.Request.Context(), services.CreateSoilInput{
		SoilType:        models.SoilType(req.SoilType),
		Document:        docPath,
		MoistureContent: req.MoistureContent,
		PHLevel:         req.PHLevel,
		CompactionLevel: req.CompactionLevel,
	})
	if err != nil {
		if errors.Is(err, services.ErrDocumentRequired) {
			apierrors.Validation(c, "Document file is required", nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to save soil report", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Soil report saved successfully",
		"report":  report,
	})
}

// List handles GET /api/soil-reports.
func (h *SoilHandler) List(c *gin.Context) {
	reports, err := h.service.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		apierrors.InternalServerError(c, "Failed to fetch soil reports", err)
		return
	}

	c.JSON(http.StatusOK, reports)
}

// Get handles GET /api/soil-report/:id.
func (h *SoilHandler) Get(c *gin.Context) {
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
		apierrors.InternalServerError(c, "Failed to fetch soil report", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Update handles PUT /api/soil-report/:id.
func (h *SoilHandler) Update(c *gin.Context) {
	id, ok := reportIDParam(c)
	if !ok {
		return
	}

	req, ok := bindSoilRequest(c)
	if !ok {
		return
	}

	docPath, ok := saveOptionalDocument(c, h.uploads)
	if !ok {
		return
	}

	report, err := h.service.Update(c.Request.Context(), id, services.UpdateSoilInput{
		SoilType:        models.SoilType(req.SoilType),
		Document:        docPath,
		MoistureContent: req.MoistureContent,
		PHLevel:         req.PHLevel,
		CompactionLevel: req.CompactionLevel,
	})
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			apierrors.NotFound(c, "Report not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to update soil report", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report updated successfully",
		"report":  report,
	})
}

// Delete handles DELETE /api/soil-report/:id.
func (h *SoilHandler) Delete(c *gin.Context) {
	id, ok := reportIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			apierrors.NotFound(c, "Report not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to delete soil report", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}

// Export handles GET /api/soil-reports/export.
func (h *SoilHandler) Export(c *gin.Context) {
	pdf, err := h.service.Export(c.Request.Context(), c.Query("q"))
	if err != nil {
		apierrors.InternalServerError(c, "Failed to export soil reports", err)
		return
	}

	servePDF(c, "Filtered_Soil_Reports.pdf", pdf)
}

// Insights handles GET /api/soil-report/:id/insights.
func (h *SoilHandler) Insights(c *gin.Context) {
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
		apierrors.InternalServerError(c, "Failed to evaluate soil report", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func bindSoilRequest(c *gin.Context) (SoilReportRequest, bool) {
	var req SoilReportRequest
	if err := c.ShouldBind(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return req, false
		}
		apierrors.Validation(c, "Invalid form data", map[string]interface{}{
			"error": err.Error(),
		})
		return req, false
	}

	log := middleware.GetLogger(c)
	if log != nil {
		log.Debug("Parsed soil report form", map[string]interface{}{
			"soil_type": req.SoilType,
		})
	}
	return req, true
}
