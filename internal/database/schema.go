package database

import (
	"context"
	"fmt"
)

// Table definitions for the three report collections. Nested sub-objects
// (hazardous materials, boundary details) are stored as JSONB.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS soil_reports (
		id               UUID PRIMARY KEY,
		soil_type        TEXT NOT NULL,
		document         TEXT NOT NULL,
		moisture_content DOUBLE PRECISION NOT NULL,
		ph_level         DOUBLE PRECISION NOT NULL,
		compaction_level DOUBLE PRECISION NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS environmental_reports (
		id                  UUID PRIMARY KEY,
		location            TEXT NOT NULL,
		document            TEXT NOT NULL,
		temperature         TEXT NOT NULL,
		air_quality_index   DOUBLE PRECISION NOT NULL,
		water_quality       TEXT NOT NULL,
		hazardous_materials JSONB NOT NULL,
		created_at          TIMESTAMPTZ NOT NULL,
		updated_at          TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS surveyor_reports (
		id               UUID PRIMARY KEY,
		land_area        DOUBLE PRECISION NOT NULL,
		document         TEXT NOT NULL,
		elevation        DOUBLE PRECISION NOT NULL,
		topography       TEXT NOT NULL,
		boundary_details JSONB NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema creates the report tables if they do not exist yet.
// Statements are idempotent so startup can run this unconditionally.
func (db *Database) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
