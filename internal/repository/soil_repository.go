package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fieldscope/api/internal/database"
	"github.com/fieldscope/api/internal/models"
)

// SoilRepository defines the interface for soil report data access operations.
type SoilRepository interface {
	// Create inserts a new soil report. The repository assigns the ID and
	// timestamps on the passed report.
	Create(ctx context.Context, report *models.SoilReport) error

	// List returns all soil reports ordered by creation time.
	// Returns an empty slice if none exist (not an error).
	List(ctx context.Context) ([]models.SoilReport, error)

	// GetByID returns the soil report with the given id.
	// Returns nil, nil if no report is found (not an error).
	GetByID(ctx context.Context, id models.ReportID) (*models.SoilReport, error)

	// Update rewrites all mutable fields of the report and refreshes
	// its updated_at timestamp. Returns false if the report does not exist.
	Update(ctx context.Context, report *models.SoilReport) (bool, error)

	// Delete removes the report. Returns false if the report does not exist.
	Delete(ctx context.Context, id models.ReportID) (bool, error)
}

// soilRepository is the concrete implementation of SoilRepository.
type soilRepository struct {
	db *database.Database
}

// NewSoilRepository creates a new instance of SoilRepository.
func NewSoilRepository(db *database.Database) SoilRepository {
	return &soilRepository{
		db: db,
	}
}

func (r *soilRepository) Create(ctx context.Context, report *models.SoilReport) error {
	report.ID = models.NewReportID()
	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now

	query := `
		INSERT INTO soil_reports (
			id, soil_type, document, moisture_content, ph_level, compaction_level,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		report.ID.String(),
		string(report.SoilType),
		report.Document,
		report.MoistureContent,
		report.PHLevel,
		report.CompactionLevel,
		report.CreatedAt,
		report.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert soil report: %w", err)
	}

	return nil
}

const soilColumns = `
	id, soil_type, document, moisture_content, ph_level, compaction_level,
	created_at, updated_at
`

func (r *soilRepository) List(ctx context.Context) ([]models.SoilReport, error) {
	query := `SELECT ` + soilColumns + ` FROM soil_reports ORDER BY created_at`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query soil reports: %w", err)
	}
	defer rows.Close()

	var reports []models.SoilReport
	for rows.Next() {
		report, err := scanSoilReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating soil report rows: %w", err)
	}

	if reports == nil {
		reports = []models.SoilReport{}
	}
	return reports, nil
}

func (r *soilRepository) GetByID(ctx context.Context, id models.ReportID) (*models.SoilReport, error) {
	query := `SELECT ` + soilColumns + ` FROM soil_reports WHERE id = $1`

	report, err := scanSoilReport(r.db.Pool.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query soil report %s: %w", id, err)
	}

	return &report, nil
}

func (r *soilRepository) Update(ctx context.Context, report *models.SoilReport) (bool, error) {
	report.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE soil_reports
		SET soil_type = $2,
			document = $3,
			moisture_content = $4,
			ph_level = $5,
			compaction_level = $6,
			updated_at = $7
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		report.ID.String(),
		string(report.SoilType),
		report.Document,
		report.MoistureContent,
		report.PHLevel,
		report.CompactionLevel,
		report.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update soil report %s: %w", report.ID, err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *soilRepository) Delete(ctx context.Context, id models.ReportID) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM soil_reports WHERE id = $1`, id.String())
	if err != nil {
		return false, fmt.Errorf("failed to delete soil report %s: %w", id, err)
	}

	return tag.RowsAffected() > 0, nil
}

// scanSoilReport reads one row laid out in soilColumns order.
func scanSoilReport(row pgx.Row) (models.SoilReport, error) {
	var report models.SoilReport
	var id, soilType string

	err := row.Scan(
		&id,
		&soilType,
		&report.Document,
		&report.MoistureContent,
		&report.PHLevel,
		&report.CompactionLevel,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.SoilReport{}, err
		}
		return models.SoilReport{}, fmt.Errorf("failed to scan soil report row: %w", err)
	}

	report.ID = models.ReportID(id)
	report.SoilType = models.SoilType(soilType)
	return report, nil
}
