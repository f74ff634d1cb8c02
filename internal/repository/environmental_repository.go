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

// EnvironmentalRepository defines the interface for environmental report data
// access operations.
type EnvironmentalRepository interface {
	// Create inserts a new environmental report. The repository assigns the
	// ID and timestamps on the passed report.
	Create(ctx context.Context, report *models.EnvironmentalReport) error

	// List returns all environmental reports ordered by creation time.
	// Returns an empty slice if none exist (not an error).
	List(ctx context.Context) ([]models.EnvironmentalReport, error)

	// GetByID returns the environmental report with the given id.
	// Returns nil, nil if no report is found (not an error).
	GetByID(ctx context.Context, id models.ReportID) (*models.EnvironmentalReport, error)

	// Update rewrites all mutable fields of the report and refreshes
	// its updated_at timestamp. Returns false if the report does not exist.
	Update(ctx context.Context, report *models.EnvironmentalReport) (bool, error)

	// Delete removes the report. Returns false if the report does not exist.
	Delete(ctx context.Context, id models.ReportID) (bool, error)
}

type environmentalRepository struct {
	db *database.Database
}

// NewEnvironmentalRepository creates a new instance of EnvironmentalRepository.
func NewEnvironmentalRepository(db *database.Database) EnvironmentalRepository {
	return &environmentalRepository{
		db: db,
	}
}

func (r *environmentalRepository) Create(ctx context.Context, report *models.EnvironmentalReport) error {
	report.ID = models.NewReportID()
	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now

	hazards, err := json.Marshal(report.HazardousMaterials)
	if err != nil {
		return fmt.Errorf("failed to encode hazardous materials: %w", err)
	}

	query := `
		INSERT INTO environmental_reports (
			id, location, document, temperature, air_quality_index, water_quality,
			hazardous_materials, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		report.ID.String(),
		report.Location,
		report.Document,
		report.Temperature,
		report.AirQualityIndex,
		string(report.WaterQuality),
		hazards,
		report.CreatedAt,
		report.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert environmental report: %w", err)
	}

	return nil
}

const environmentalColumns = `
	id, location, document, temperature, air_quality_index, water_quality,
	hazardous_materials, created_at, updated_at
`

func (r *environmentalRepository) List(ctx context.Context) ([]models.EnvironmentalReport, error) {
	query := `SELECT ` + environmentalColumns + ` FROM environmental_reports ORDER BY created_at`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query environmental reports: %w", err)
	}
	defer rows.Close()

	var reports []models.EnvironmentalReport
	for rows.Next() {
		report, err := scanEnvironmentalReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating environmental report rows: %w", err)
	}

	if reports == nil {
		reports = []models.EnvironmentalReport{}
	}
	return reports, nil
}

func (r *environmentalRepository) GetByID(ctx context.Context, id models.ReportID) (*models.EnvironmentalReport, error) {
	query := `SELECT ` + environmentalColumns + ` FROM environmental_reports WHERE id = $1`

	report, err := scanEnvironmentalReport(r.db.Pool.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query environmental report %s: %w", id, err)
	}

	return &report, nil
}

func (r *environmentalRepository) Update(ctx context.Context, report *models.EnvironmentalReport) (bool, error) {
	report.UpdatedAt = time.Now().UTC()

	hazards, err := json.Marshal(report.HazardousMaterials)
	if err != nil {
		return false, fmt.Errorf("failed to encode hazardous materials: %w", err)
	}

	query := `
		UPDATE environmental_reports
		SET location = $2,
			document = $3,
			temperature = $4,
			air_quality_index = $5,
			water_quality = $6,
			hazardous_materials = $7,
			updated_at = $8
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		report.ID.String(),
		report.Location,
		report.Document,
		report.Temperature,
		report.AirQualityIndex,
		string(report.WaterQuality),
		hazards,
		report.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update environmental report %s: %w", report.ID, err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *environmentalRepository) Delete(ctx context.Context, id models.ReportID) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM environmental_reports WHERE id = $1`, id.String())
	if err != nil {
		return false, fmt.Errorf("failed to delete environmental report %s: %w", id, err)
	}

	return tag.RowsAffected() > 0, nil
}

func scanEnvironmentalReport(row pgx.Row) (models.EnvironmentalReport, error) {
	var report models.EnvironmentalReport
	var id, waterQuality string
	var hazardsJSON []byte

	err := row.Scan(
		&id,
		&report.Location,
		&report.Document,
		&report.Temperature,
		&report.AirQualityIndex,
		&waterQuality,
		&hazardsJSON,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.EnvironmentalReport{}, err
		}
		return models.EnvironmentalReport{}, fmt.Errorf("failed to scan environmental report row: %w", err)
	}

	if err := json.Unmarshal(hazardsJSON, &report.HazardousMaterials); err != nil {
		return models.EnvironmentalReport{}, fmt.Errorf("failed to parse hazardous materials for report %s: %w", id, err)
	}

	report.ID = models.ReportID(id)
	report.WaterQuality = models.WaterQuality(waterQuality)
	return report, nil
}
