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

// SurveyorHandler handles surveyor report HTTP requests.
type SurveyorHandler struct {
	service services.SurveyorService
	uploads *upload.Store
}

// NewSurveyorHandler creates a new SurveyorHandler instance.
func NewSurveyorHandler(service services.SurveyorService, uploads *upload.Store) *SurveyorHandler {
	return &SurveyorHandler{
		service: service,
		uploads: uploads,
	}
}

// SurveyorReportRequest represents the multipart form fields of a surveyor
// report. BoundaryDetails arrives as a JSON-encoded string field and is
// parsed separately.
type SurveyorReportRequest struct {
	LandArea        float64 `form:"landArea" binding:"min=0"`
	Elevation       float64 `form:"elevation"`
	Topography      string  `form:"topography" binding:"required,oneof=Flat Hilly Sloped"`
	BoundaryDetails string  `form:"boundaryDetails"`
}

// Create handles POST /api/surveyor-report.
func (h *SurveyorHandler) Create(c *gin.Context) {
	req, boundaries, ok := bindSurveyorRequest(c)
	if !ok {
		return
	}

	docPath, ok := saveRequiredDocument(c, h.uploads)
	if !ok {
		return
	}

	report, err := h.service.Create(c.Request.Context(), services.CreateSurveyorInput{
		LandArea:        req.LandArea,
		Document:        docPath,
		Elevation:       req.Elevation,
		Topography:      models.Topography(req.Topography),
		BoundaryDetails: boundaries,
	})
	if err != nil {
		if errors.Is(err, services.ErrDocumentRequired) {
			apierrors.Validation(c, "Document file is required", nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to save surveyor report", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Surveyor report saved successfully",
		"report":  report,
	})
}

// List handles GET /api/surveyor-reports.
func (h *SurveyorHandler) List(c *gin.Context) {
	reports, err := h.service.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		apierrors.InternalServerError(c, "Failed to fetch surveyor reports", err)
		return
	}

	c.JSON(http.StatusOK, reports)
}

// Get handles GET /api/surveyor-report/:id.
func (h *SurveyorHandler) Get(c *gin.Context) {
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
		apierrors.InternalServerError(c, "Failed to fetch surveyor report", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Update handles PUT /api/surveyor-report/:id.
func (h *SurveyorHandler) Update(c *gin.Context) {
	id, ok := reportIDParam(c)
	if !ok {
		return
	}

	req, boundaries, ok := bindSurveyorRequest(c)
	if !ok {
		return
	}

	docPath, ok := saveOptionalDocument(c, h.uploads)
	if !ok {
		return
	}

	report, err := h.service.Update(c.Request.Context(), id, services.UpdateSurveyorInput{
		LandArea:        req.LandArea,
		Document:        docPath,
		Elevation:       req.Elevation,
		Topography:      models.Topography(req.Topography),
		BoundaryDetails: boundaries,
	})
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			apierrors.NotFound(c, "Report not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to update surveyor report", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report updated successfully",
		"report":  report,
	})
}

// Delete handles DELETE /api/surveyor-report/:id.
func (h *SurveyorHandler) Delete(c *gin.Context) {
	id, ok := reportIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			apierrors.NotFound(c, "Report not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to delete surveyor report", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}

// Export handles GET /api/surveyor-reports/export.
func (h *SurveyorHandler) Export(c *gin.Context) {
	pdf, err := h.service.Export(c.Request.Context(), c.Query("q"))
	if err != nil {
		apierrors.InternalServerError(c, "Failed to export surveyor reports", err)
		return
	}

	servePDF(c, "Filtered_Surveyor_Reports.pdf", pdf)
}

// Insights handles GET /api/surveyor-report/:id/insights.
func (h *SurveyorHandler) Insights(c *gin.Context) {
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
		apierrors.InternalServerError(c, "Failed to evaluate surveyor report", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func bindSurveyorRequest(c *gin.Context) (SurveyorReportRequest, models.BoundaryDetails, bool) {
	var req SurveyorReportRequest
	var boundaries models.BoundaryDetails

	if err := c.ShouldBind(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return req, boundaries, false
		}
		apierrors.Validation(c, "Invalid form data", map[string]interface{}{
			"error": err.Error(),
		})
		return req, boundaries, false
	}

	if !decodeNestedField(c, "boundaryDetails", req.BoundaryDetails, &boundaries) {
		return req, boundaries, false
	}
	return req, boundaries, true
}
