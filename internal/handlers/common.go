package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/fieldscope/api/internal/errors"
	"github.com/fieldscope/api/internal/models"
	"github.com/fieldscope/api/internal/upload"
)

// reportIDParam parses the :id path parameter. An id that cannot be a report
// id matches no report, so it is reported as not found rather than invalid.
func reportIDParam(c *gin.Context) (models.ReportID, bool) {
	id, err := models.ParseReportID(c.Param("id"))
	if err != nil {
		apierrors.NotFound(c, "Report not found")
		return "", false
	}
	return id, true
}

// saveRequiredDocument stores the "document" part of the multipart form and
// returns its public path. A missing file is a validation error.
func saveRequiredDocument(c *gin.Context, store *upload.Store) (string, bool) {
	file, err := c.FormFile("document")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			apierrors.Validation(c, "Document file is required", nil)
			return "", false
		}
		apierrors.Validation(c, "Invalid document upload", map[string]interface{}{
			"error": err.Error(),
		})
		return "", false
	}

	path, err := store.Save(file)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to store document", err)
		return "", false
	}
	return path, true
}

// saveOptionalDocument stores the "document" part if one was sent. A nil
// return path with ok=true means the client omitted the file and the stored
// document should be kept.
func saveOptionalDocument(c *gin.Context, store *upload.Store) (*string, bool) {
	file, err := c.FormFile("document")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		apierrors.Validation(c, "Invalid document upload", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, false
	}

	path, err := store.Save(file)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to store document", err)
		return nil, false
	}
	return &path, true
}

// decodeNestedField parses a JSON-encoded form field into dst. Unknown keys
// are rejected so typos surface as validation errors instead of silently
// dropping flags.
func decodeNestedField(c *gin.Context, field, value string, dst interface{}) bool {
	if value == "" {
		return true
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(value)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		apierrors.Validation(c, "Invalid JSON in form field", map[string]interface{}{
			"field": field,
			"error": err.Error(),
		})
		return false
	}
	return true
}

// servePDF sends rendered PDF bytes as a file download.
func servePDF(c *gin.Context, filename string, pdf []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
