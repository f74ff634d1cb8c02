package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fieldscope/api/internal/insight"
	"github.com/fieldscope/api/internal/logger"
	"github.com/fieldscope/api/internal/middleware"
	"github.com/fieldscope/api/internal/models"
	"github.com/fieldscope/api/internal/services"
	"github.com/fieldscope/api/internal/upload"
)

// MockEnvironmentalService is a mock implementation of EnvironmentalService
// for testing
type MockEnvironmentalService struct {
	mock.Mock
}

func (m *MockEnvironmentalService) Create(ctx context.Context, input services.CreateEnvironmentalInput) (*models.EnvironmentalReport, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EnvironmentalReport), args.Error(1)
}

func (m *MockEnvironmentalService) List(ctx context.Context, query string) ([]models.EnvironmentalReport, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EnvironmentalReport), args.Error(1)
}

func (m *MockEnvironmentalService) Get(ctx context.Context, id models.ReportID) (*models.EnvironmentalReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EnvironmentalReport), args.Error(1)
}

func (m *MockEnvironmentalService) Update(ctx context.Context, id models.ReportID, input services.UpdateEnvironmentalInput) (*models.EnvironmentalReport, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EnvironmentalReport), args.Error(1)
}

func (m *MockEnvironmentalService) Delete(ctx context.Context, id models.ReportID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEnvironmentalService) Export(ctx context.Context, query string) ([]byte, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockEnvironmentalService) Insights(ctx context.Context, id models.ReportID) (insight.Insight, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(insight.Insight), args.Error(1)
}

func setupEnvironmentalTestRouter(t *testing.T, service services.EnvironmentalService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := upload.NewStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	handler := NewEnvironmentalHandler(service, store)
	log := logger.New("test")

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))

	api := router.Group("/api")
	{
		api.POST("/environmental-report", handler.Create)
		api.GET("/environmental-reports", handler.List)
		api.GET("/environmental-reports/export", handler.Export)
		api.GET("/environmental-report/:id", handler.Get)
		api.PUT("/environmental-report/:id", handler.Update)
		api.DELETE("/environmental-report/:id", handler.Delete)
		api.GET("/environmental-report/:id/insights", handler.Insights)
	}

	return router
}

func environmentalForm(t *testing.T, fields map[string]string, withFile bool) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withFile {
		part, err := w.CreateFormFile("document", "site.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 test"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func validEnvironmentalFields() map[string]string {
	return map[string]string{
		"location":           "North Ridge",
		"temperature":        "21.5",
		"airQualityIndex":    "42",
		"waterQuality":       "Clean",
		"hazardousMaterials": `{"chemicals":true,"asbestos":false,"lead":true}`,
	}
}

func TestEnvironmentalCreate_ParsesHazardousMaterials(t *testing.T) {
	mockService := new(MockEnvironmentalService)
	router := setupEnvironmentalTestRouter(t, mockService)

	saved := &models.EnvironmentalReport{ID: models.NewReportID(), Location: "North Ridge"}
	mockService.On("Create", mock.Anything, mock.MatchedBy(func(in services.CreateEnvironmentalInput) bool {
		return in.HazardousMaterials.Chemicals &&
			!in.HazardousMaterials.Asbestos &&
			in.HazardousMaterials.Lead
	})).Return(saved, nil)

	body, contentType := environmentalForm(t, validEnvironmentalFields(), true)
	req := httptest.NewRequest(http.MethodPost, "/api/environmental-report", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Environmental report saved successfully")
	mockService.AssertExpectations(t)
}

func TestEnvironmentalCreate_MalformedHazardousMaterials(t *testing.T) {
	mockService := new(MockEnvironmentalService)
	router := setupEnvironmentalTestRouter(t, mockService)

	fields := validEnvironmentalFields()
	fields["hazardousMaterials"] = `{"chemicals":`
	body, contentType := environmentalForm(t, fields, true)
	req := httptest.NewRequest(http.MethodPost, "/api/environmental-report", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	mockService.AssertNotCalled(t, "Create")
}

func TestEnvironmentalCreate_UnknownHazardKey(t *testing.T) {
	mockService := new(MockEnvironmentalService)
	router := setupEnvironmentalTestRouter(t, mockService)

	fields := validEnvironmentalFields()
	fields["hazardousMaterials"] = `{"radiation":true}`
	body, contentType := environmentalForm(t, fields, true)
	req := httptest.NewRequest(http.MethodPost, "/api/environmental-report", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Create")
}

func TestEnvironmentalCreate_OmittedHazardsDefaultToFalse(t *testing.T) {
	mockService := new(MockEnvironmentalService)
	router := setupEnvironmentalTestRouter(t, mockService)

	saved := &models.EnvironmentalReport{ID: models.NewReportID()}
	mockService.On("Create", mock.Anything, mock.MatchedBy(func(in services.CreateEnvironmentalInput) bool {
		return in.HazardousMaterials == models.HazardousMaterials{}
	})).Return(saved, nil)

	fields := validEnvironmentalFields()
	delete(fields, "hazardousMaterials")
	body, contentType := environmentalForm(t, fields, true)
	req := httptest.NewRequest(http.MethodPost, "/api/environmental-report", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestEnvironmentalCreate_InvalidWaterQuality(t *testing.T) {
	mockService := new(MockEnvironmentalService)
	router := setupEnvironmentalTestRouter(t, mockService)

	fields := validEnvironmentalFields()
	fields["waterQuality"] = "Murky"
	body, contentType := environmentalForm(t, fields, true)
	req := httptest.NewRequest(http.MethodPost, "/api/environmental-report", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestEnvironmentalExport_Filename(t *testing.T) {
	mockService := new(MockEnvironmentalService)
	router := setupEnvironmentalTestRouter(t, mockService)

	mockService.On("Export", mock.Anything, "ridge").Return([]byte("%PDF-1.4 fake"), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/environmental-reports/export?q=ridge", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Filtered_Environmental_Reports.pdf")
}

func TestEnvironmentalInsights_Success(t *testing.T) {
	mockService := new(MockEnvironmentalService)
	router := setupEnvironmentalTestRouter(t, mockService)

	id := models.NewReportID()
	result := insight.Insight{
		Summary:     []string{"High temperature detected.", "Air quality is acceptable.", "Water quality is clean."},
		Suggestions: []string{"Ensure proper ventilation and cooling systems."},
	}
	mockService.On("Insights", mock.Anything, id).Return(result, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/environmental-report/"+id.String()+"/insights", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "High temperature detected.")
}
