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

// CreateEnvironmentalInput carries the fields needed to create an
// environmental report.
type CreateEnvironmentalInput struct {
	Location           string
	Document           string
	Temperature        string
	AirQualityIndex    float64
	WaterQuality       models.WaterQuality
	HazardousMaterials models.HazardousMaterials
}

// UpdateEnvironmentalInput carries a full replacement of an environmental
// report's fields. A nil Document keeps the currently stored file.
type UpdateEnvironmentalInput struct {
	Location           string
	Document           *string
	Temperature        string
	AirQualityIndex    float64
	WaterQuality       models.WaterQuality
	HazardousMaterials models.HazardousMaterials
}

// EnvironmentalService defines the interface for environmental report
// business logic.
type EnvironmentalService interface {
	Create(ctx context.Context, input CreateEnvironmentalInput) (*models.EnvironmentalReport, error)
	List(ctx context.Context, query string) ([]models.EnvironmentalReport, error)
	Get(ctx context.Context, id models.ReportID) (*models.EnvironmentalReport, error)
	Update(ctx context.Context, id models.ReportID, input UpdateEnvironmentalInput) (*models.EnvironmentalReport, error)
	Delete(ctx context.Context, id models.ReportID) error
	Export(ctx context.Context, query string) ([]byte, error)
	Insights(ctx context.Context, id models.ReportID) (insight.Insight, error)
}

type environmentalService struct {
	repo repository.EnvironmentalRepository
	log  *logger.Logger
}

// NewEnvironmentalService creates a new instance of EnvironmentalService.
func NewEnvironmentalService(repo repository.EnvironmentalRepository, log *logger.Logger) EnvironmentalService {
	return &environmentalService{
		repo: repo,
		log:  log,
	}
}

func (s *environmentalService) Create(ctx context.Context, input CreateEnvironmentalInput) (*models.EnvironmentalReport, error) {
	if input.Document == "" {
		return nil, ErrDocumentRequired
	}

	report := &models.EnvironmentalReport{
		Location:           input.Location,
		Document:           input.Document,
		Temperature:        input.Temperature,
		AirQualityIndex:    input.AirQualityIndex,
		WaterQuality:       input.WaterQuality,
		HazardousMaterials: input.HazardousMaterials,
	}

	if err := s.repo.Create(ctx, report); err != nil {
		s.log.Error("Failed to create environmental report", err, nil)
		return nil, fmt.Errorf("failed to create environmental report: %w", err)
	}

	s.log.Info("Environmental report created", map[string]interface{}{
		"report_id": report.ID.String(),
		"location":  report.Location,
	})
	return report, nil
}

func (s *environmentalService) List(ctx context.Context, query string) ([]models.EnvironmentalReport, error) {
	reports, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list environmental reports", err, nil)
		return nil, fmt.Errorf("failed to list environmental reports: %w", err)
	}

	if query == "" {
		return reports, nil
	}
	return search.Environmental(reports, query), nil
}

func (s *environmentalService) Get(ctx context.Context, id models.ReportID) (*models.EnvironmentalReport, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get environmental report", err, map[string]interface{}{
			"report_id": id.String(),
		})
		return nil, fmt.Errorf("failed to get environmental report: %w", err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}

func (s *environmentalService) Update(ctx context.Context, id models.ReportID, input UpdateEnvironmentalInput) (*models.EnvironmentalReport, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	report.Location = input.Location
	report.Temperature = input.Temperature
	report.AirQualityIndex = input.AirQualityIndex
	report.WaterQuality = input.WaterQuality
	report.HazardousMaterials = input.HazardousMaterials
	if input.Document != nil {
		report.Document = *input.Document
	}

	updated, err := s.repo.Update(ctx, report)
	if err != nil {
		s.log.Error("Failed to update environmental report", err, map[string]interface{}{
			"report_id": id.String(),
		})
		return nil, fmt.Errorf("failed to update environmental report: %w", err)
	}
	if !updated {
		return nil, ErrReportNotFound
	}

	s.log.Info("Environmental report updated", map[string]interface{}{
		"report_id": id.String(),
	})
	return report, nil
}

func (s *environmentalService) Delete(ctx context.Context, id models.ReportID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete environmental report", err, map[string]interface{}{
			"report_id": id.String(),
		})
		return fmt.Errorf("failed to delete environmental report: %w", err)
	}
	if !deleted {
		return ErrReportNotFound
	}

	s.log.Info("Environmental report deleted", map[string]interface{}{
		"report_id": id.String(),
	})
	return nil
}

func (s *environmentalService) Export(ctx context.Context, query string) ([]byte, error) {
	reports, err := s.List(ctx, query)
	if err != nil {
		return nil, err
	}

	pdf, err := export.Render(export.EnvironmentalTable(reports))
	if err != nil {
		s.log.Error("Failed to render environmental report PDF", err, nil)
		return nil, fmt.Errorf("failed to render environmental report PDF: %w", err)
	}
	return pdf, nil
}

func (s *environmentalService) Insights(ctx context.Context, id models.ReportID) (insight.Insight, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return insight.Insight{}, err
	}
	return insight.Environmental(*report), nil
}
