package services

import (
	"context"
	"fmt"

	"github.com/fieldscope/api/internal/export"
	"github.com/fieldscope/api/internal/insight"
	"github.com/fieldscope/api/internal/logger"
	"github.com/fieldscope/api/internal/models"
	"github.com/fieldscope/api/internal/repository"
	"github.com/fieldscope/api/internal/search"
)

// CreateSurveyorInput carries the fields needed to create a surveyor report.
type CreateSurveyorInput struct {
	LandArea        float64
	Document        string
	Elevation       float64
	Topography      models.Topography
	BoundaryDetails models.BoundaryDetails
}

// UpdateSurveyorInput carries a full replacement of a surveyor report's
// fields. A nil Document keeps the currently stored file.
type UpdateSurveyorInput struct {
	LandArea        float64
	Document        *string
	Elevation       float64
	Topography      models.Topography
	BoundaryDetails models.BoundaryDetails
}

// SurveyorService defines the interface for surveyor report business logic.
type SurveyorService interface {
	Create(ctx context.Context, input CreateSurveyorInput) (*models.SurveyorReport, error)
	List(ctx context.Context, query string) ([]models.SurveyorReport, error)
	Get(ctx context.Context, id models.ReportID) (*models.SurveyorReport, error)
	Update(ctx context.Context, id models.ReportID, input UpdateSurveyorInput) (*models.SurveyorReport, error)
	Delete(ctx context.Context, id models.ReportID) error
	Export(ctx context.Context, query string) ([]byte, error)
	Insights(ctx context.Context, id models.ReportID) (insight.Insight, error)
}

type surveyorService struct {
	repo repository.SurveyorRepository
	log  *logger.Logger
}

// NewSurveyorService creates a new instance of SurveyorService.
func NewSurveyorService(repo repository.SurveyorRepository, log *logger.Logger) SurveyorService {
	return &surveyorService{
		repo: repo,
		log:  log,
	}
}

func (s *surveyorService) Create(ctx context.Context, input CreateSurveyorInput) (*models.SurveyorReport, error) {
	if input.Document == "" {
		return nil, ErrDocumentRequired
	}

	report := &models.SurveyorReport{
		LandArea:        input.LandArea,
		Document:        input.Document,
		Elevation:       input.Elevation,
		Topography:      input.Topography,
		BoundaryDetails: input.BoundaryDetails,
	}

	if err := s.repo.Create(ctx, report); err != nil {
		s.log.Error("Failed to create surveyor report", err, nil)
		return nil, fmt.Errorf("failed to create surveyor report: %w", err)
	}

	s.log.Info("Surveyor report created", map[string]interface{}{
		"report_id": report.ID.String(),
		"land_area": report.LandArea,
	})
	return report, nil
}

func (s *surveyorService) List(ctx context.Context, query string) ([]models.SurveyorReport, error) {
	reports, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list surveyor reports", err, nil)
		return nil, fmt.Errorf("failed to list surveyor reports: %w", err)
	}

	if query == "" {
		return reports, nil
	}
	return search.Surveyor(reports, query), nil
}

func (s *surveyorService) Get(ctx context.Context, id models.ReportID) (*models.SurveyorReport, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get surveyor report", err, map[string]interface{}{
			"report_id": id.String(),
		})
		return nil, fmt.Errorf("failed to get surveyor report: %w", err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}

func (s *surveyorService) Update(ctx context.Context, id models.ReportID, input UpdateSurveyorInput) (*models.SurveyorReport, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	report.LandArea = input.LandArea
	report.Elevation = input.Elevation
	report.Topography = input.Topography
	report.BoundaryDetails = input.BoundaryDetails
	if input.Document != nil {
		report.Document = *input.Document
	}

	updated, err := s.repo.Update(ctx, report)
	if err != nil {
		s.log.Error("Failed to update surveyor report", err, map[string]interface{}{
			"report_id": id.String(),
		})
		return nil, fmt.Errorf("failed to update surveyor report: %w", err)
	}
	if !updated {
		return nil, ErrReportNotFound
	}

	s.log.Info("Surveyor report updated", map[string]interface{}{
		"report_id": id.String(),
	})
	return report, nil
}

func (s *surveyorService) Delete(ctx context.Context, id models.ReportID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete surveyor report", err, map[string]interface{}{
			"report_id": id.String(),
		})
		return fmt.Errorf("failed to delete surveyor report: %w", err)
	}
	if !deleted {
		return ErrReportNotFound
	}

	s.log.Info("Surveyor report deleted", map[string]interface{}{
		"report_id": id.String(),
	})
	return nil
}

func (s *surveyorService) Export(ctx context.Context, query string) ([]byte, error) {
	reports, err := s.List(ctx, query)
	if err != nil {
		return nil, err
	}

	pdf, err := export.Render(export.SurveyorTable(reports))
	if err != nil {
		s.log.Error("Failed to render surveyor report PDF", err, nil)
		return nil, fmt.Errorf("failed to render surveyor report PDF: %w", err)
	}
	return pdf, nil
}

func (s *surveyorService) Insights(ctx context.Context, id models.ReportID) (insight.Insight, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return insight.Insight{}, err
	}
	return insight.Surveyor(*report), nil
}
