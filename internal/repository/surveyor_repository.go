package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fieldscope/api/internal/database"
	"github.com/fieldscope/api/internal/models"
)

// SurveyorRepository defines the interface for surveyor report data access
// operations.
type SurveyorRepository interface {
	// Create inserts a new surveyor report. The repository assigns the ID
	// and timestamps on the passed report.
	Create(ctx context.Context, report *models.SurveyorReport) error

	// List returns all surveyor reports ordered by creation time.
	// Returns an empty slice if none exist (not an error).
	List(ctx context.Context) ([]models.SurveyorReport, error)

	// GetByID returns the surveyor report with the given id.
	// Returns nil, nil if no report is found (not an error).
	GetByID(ctx context.Context, id models.ReportID) (*models.SurveyorReport, error)

	// Update rewrites all mutable fields of the report and refreshes
	// its updated_at timestamp. Returns false if the report does not exist.
	Update(ctx context.Context, report *models.SurveyorReport) (bool, error)

	// Delete removes the report. Returns false if the report does not exist.
	Delete(ctx context.Context, id models.ReportID) (bool, error)
}

type surveyorRepository struct {
	db *database.Database
}

// NewSurveyorRepository creates a new instance of SurveyorRepository.
func NewSurveyorRepository(db *database.Database) SurveyorRepository {
	return &surveyorRepository{
		db: db,
	}
}

func (r *surveyorRepository) Create(ctx context.Context, report *models.SurveyorReport) error {
	report.ID = models.NewReportID()
	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now

	boundaries, err := json.Marshal(report.BoundaryDetails)
	if err != nil {
		return fmt.Errorf("failed to encode boundary details: %w", err)
	}

	query := `
		INSERT INTO surveyor_reports (
			id, land_area, document, elevation, topography, boundary_details,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		report.ID.String(),
		report.LandArea,
		report.Document,
		report.Elevation,
		string(report.Topography),
		boundaries,
		report.CreatedAt,
		report.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert surveyor report: %w", err)
	}

	return nil
}

const surveyorColumns = `
	id, land_area, document, elevation, topography, boundary_details,
	created_at, updated_at
`

func (r *surveyorRepository) List(ctx context.Context) ([]models.SurveyorReport, error) {
	query := `SELECT ` + surveyorColumns + ` FROM surveyor_reports ORDER BY created_at`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query surveyor reports: %w", err)
	}
	defer rows.Close()

	var reports []models.SurveyorReport
	for rows.Next() {
		report, err := scanSurveyorReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating surveyor report rows: %w", err)
	}

	if reports == nil {
		reports = []models.SurveyorReport{}
	}
	return reports, nil
}

func (r *surveyorRepository) GetByID(ctx context.Context, id models.ReportID) (*models.SurveyorReport, error) {
	query := `SELECT ` + surveyorColumns + ` FROM surveyor_reports WHERE id = $1`

	report, err := scanSurveyorReport(r.db.Pool.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query surveyor report %s: %w", id, err)
	}

	return &report, nil
}

func (r *surveyorRepository) Update(ctx context.Context, report *models.SurveyorReport) (bool, error) {
	report.UpdatedAt = time.Now().UTC()

	boundaries, err := json.Marshal(report.BoundaryDetails)
	if err != nil {
		return false, fmt.Errorf("failed to encode boundary details: %w", err)
	}

	query := `
		UPDATE surveyor_reports
		SET land_area = $2,
			document = $3,
			elevation = $4,
			topography = $5,
			boundary_details = $6,
			updated_at = $7
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		report.ID.String(),
		report.LandArea,
		report.Document,
		report.Elevation,
		string(report.Topography),
		boundaries,
		report.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update surveyor report %s: %w", report.ID, err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *surveyorRepository) Delete(ctx context.Context, id models.ReportID) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM surveyor_reports WHERE id = $1`, id.String())
	if err != nil {
		return false, fmt.Errorf("failed to delete surveyor report %s: %w", id, err)
	}

	return tag.RowsAffected() > 0, nil
}

func scanSurveyorReport(row pgx.Row) (models.SurveyorReport, error) {
	var report models.SurveyorReport
	var id, topography string
	var boundariesJSON []byte

	err := row.Scan(
		&id,
		&report.LandArea,
		&report.Document,
		&report.Elevation,
		&topography,
		&boundariesJSON,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.SurveyorReport{}, err
		}
		return models.SurveyorReport{}, fmt.Errorf("failed to scan surveyor report row: %w", err)
	}

	if err := json.Unmarshal(boundariesJSON, &report.BoundaryDetails); err != nil {
		return models.SurveyorReport{}, fmt.Errorf("failed to parse boundary details for report %s: %w", id, err)
	}

	report.ID = models.ReportID(id)
	report.Topography = models.Topography(topography)
	return report, nil
}
