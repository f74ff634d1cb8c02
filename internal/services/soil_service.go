package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldscope/api/internal/export"
	"github.com/fieldscope/api/internal/insight"
	"github.com/fieldscope/api/internal/logger"
	"github.com/fieldscope/api/internal/models"
	"github.com/fieldscope/api/internal/repository"
	"github.com/fieldscope/api/internal/search"
)

// Service-level errors shared by the report services.
var (
	ErrReportNotFound   = errors.New("report not found")
	ErrDocumentRequired = errors.New("document file is required")
)

// CreateSoilInput carries the fields needed to create a soil report.
// Document is the public path of an already stored upload.
type CreateSoilInput struct {
	SoilType        models.SoilType
	Document        string
	MoistureContent float64
	PHLevel         float64
	CompactionLevel float64
}

// UpdateSoilInput carries a full replacement of a soil report's fields.
// A nil Document keeps the currently stored file.
type UpdateSoilInput struct {
	SoilType        models.SoilType
	Document        *string
	MoistureContent float64
	PHLevel         float64
	CompactionLevel float64
}

// SoilService defines the interface for soil report business logic.
type SoilService interface {
	// Create stores a new soil report.
	// Returns ErrDocumentRequired if no document path is supplied.
	Create(ctx context.Context, input CreateSoilInput) (*models.SoilReport, error)

	// List returns soil reports matching the query, all of them when the
	// query is empty.
	List(ctx context.Context, query string) ([]models.SoilReport, error)

	// Get returns a single soil report.
	// Returns ErrReportNotFound if the report does not exist.
	Get(ctx context.Context, id models.ReportID) (*models.SoilReport, error)

	// Update replaces a report's fields, keeping the stored document when
	// input.Document is nil. Returns ErrReportNotFound if it does not exist.
	Update(ctx context.Context, id models.ReportID, input UpdateSoilInput) (*models.SoilReport, error)

	// Delete removes a report.
	// Returns ErrReportNotFound if the report does not exist.
	Delete(ctx context.Context, id models.ReportID) error

	// Export renders the reports matching the query as a PDF table.
	Export(ctx context.Context, query string) ([]byte, error)

	// Insights evaluates a stored report's readings.
	// Returns ErrReportNotFound if the report does not exist.
	Insights(ctx context.Context, id models.ReportID) (insight.SoilInsight, error)
}

type soilService struct {
	repo repository.SoilRepository
	log  *logger.Logger
}

// NewSoilService creates a new instance of SoilService.
func NewSoilService(repo repository.SoilRepository, log *logger.Logger) SoilService {
	return &soilService{
		repo: repo,
		log:  log,
	}
}

func (s *soilService) Create(ctx context.Context, input CreateSoilInput) (*models.SoilReport, error) {
	if input.Document == "" {
		return nil, ErrDocumentRequired
	}

	report := &models.SoilReport{
		SoilType:        input.SoilType,
		Document:        input.Document,
		MoistureContent: input.MoistureContent,
		PHLevel:         input.PHLevel,
		CompactionLevel: input.CompactionLevel,
	}

	if err := s.repo.Create(ctx, report); err != nil {
		s.log.Error("Failed to create soil report", err, nil)
		return nil, fmt.Errorf("failed to create soil report: %w", err)
	}

	s.log.Info("Soil report created", map[string]interface{}{
		"report_id": report.ID.String(),
		"soil_type": report.SoilType,
	})
	return report, nil
}

func (s *soilService) List(ctx context.Context, query string) ([]models.SoilReport, error) {
	reports, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list soil reports", err, nil)
		return nil, fmt.Errorf("failed to list soil reports: %w", err)
	}

	if query == "" {
		return reports, nil
	}
	return search.Soil(reports, query), nil
}

func (s *soilService) Get(ctx context.Context, id models.ReportID) (*models.SoilReport, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get soil report", err, map[string]interface{}{
			"report_id": id.String(),
		})
		return nil, fmt.Errorf("failed to get soil report: %w", err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}

func (s *soilService) Update(ctx context.Context, id models.ReportID, input UpdateSoilInput) (*models.SoilReport, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	report.SoilType = input.SoilType
	report.MoistureContent = input.MoistureContent
	report.PHLevel = input.PHLevel
	report.CompactionLevel = input.CompactionLevel
	if input.Document != nil {
		report.Document = *input.Document
	}

	updated, err := s.repo.Update(ctx, report)
	if err != nil {
		s.log.Error("Failed to update soil report", err, map[string]interface{}{
			"report_id": id.String(),
		})
		return nil, fmt.Errorf("failed to update soil report: %w", err)
	}
	if !updated {
		return nil, ErrReportNotFound
	}

	s.log.Info("Soil report updated", map[string]interface{}{
		"report_id": id.String(),
	})
	return report, nil
}

func (s *soilService) Delete(ctx context.Context, id models.ReportID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete soil report", err, map[string]interface{}{
			"report_id": id.String(),
		})
		return fmt.Errorf("failed to delete soil report: %w", err)
	}
	if !deleted {
		return ErrReportNotFound
	}

	s.log.Info("Soil report deleted", map[string]interface{}{
		"report_id": id.String(),
	})
	return nil
}

func (s *soilService) Export(ctx context.Context, query string) ([]byte, error) {
	reports, err := s.List(ctx, query)
	if err != nil {
		return nil, err
	}

	pdf, err := export.Render(export.SoilTable(reports))
	if err != nil {
		s.log.Error("Failed to render soil report PDF", err, nil)
		return nil, fmt.Errorf("failed to render soil report PDF: %w", err)
	}
	return pdf, nil
}

func (s *soilService) Insights(ctx context.Context, id models.ReportID) (insight.SoilInsight, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return insight.SoilInsight{}, err
	}
	return insight.Soil(*report), nil
}
