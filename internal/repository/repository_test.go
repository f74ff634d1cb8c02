package repository

import (
	"context"
	"os"
	"testing"

	"github.com/fieldscope/api/internal/config"
	"github.com/fieldscope/api/internal/database"
	"github.com/fieldscope/api/internal/models"
)

// getTestConfig returns database configuration for integration tests.
func getTestConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:     getEnvOrDefault("DB_HOST", "localhost"),
		Port:     getEnvOrDefault("DB_PORT", "5432"),
		Name:     getEnvOrDefault("DB_NAME", "fieldscope_test"),
		User:     getEnvOrDefault("DB_USER", "postgres"),
		Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
		PoolMin:  2,
		PoolMax:  5,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// setupTestDB connects to the test database and ensures the schema exists.
func setupTestDB(t *testing.T) *database.Database {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, getTestConfig())
	if err != nil {
		t.Fatalf("Failed to create database connection: %v", err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		t.Fatalf("Failed to ensure schema: %v", err)
	}

	return db
}

func TestSoilRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	repo := NewSoilRepository(db)

	report := &models.SoilReport{
		SoilType:        models.SoilClay,
		Document:        "/uploads/1700000000000.pdf",
		MoistureContent: 45,
		PHLevel:         6.5,
		CompactionLevel: 85,
	}

	if err := repo.Create(ctx, report); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if report.ID == "" {
		t.Fatal("Expected Create to assign an ID")
	}
	if report.CreatedAt.IsZero() || report.UpdatedAt.IsZero() {
		t.Error("Expected Create to assign timestamps")
	}
	defer func() {
		if _, err := repo.Delete(ctx, report.ID); err != nil {
			t.Errorf("cleanup delete failed: %v", err)
		}
	}()

	got, err := repo.GetByID(ctx, report.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got == nil {
		t.Fatal("Expected report to be found after Create")
	}
	if got.SoilType != models.SoilClay || got.PHLevel != 6.5 {
		t.Errorf("Round-tripped report does not match: %+v", got)
	}

	got.MoistureContent = 55
	updated, err := repo.Update(ctx, got)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated {
		t.Fatal("Expected Update to report an affected row")
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Error("Expected Update to advance updated_at")
	}

	reports, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	found := false
	for _, r := range reports {
		if r.ID == report.ID {
			found = true
			if r.MoistureContent != 55 {
				t.Errorf("Expected updated moisture content, got %f", r.MoistureContent)
			}
		}
	}
	if !found {
		t.Error("Expected created report to appear in List")
	}
}

func TestSoilRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewSoilRepository(db)
	got, err := repo.GetByID(context.Background(), models.NewReportID())
	if err != nil {
		t.Errorf("GetByID should not error for missing report, got: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing report, got %+v", got)
	}
}

func TestSoilRepository_Delete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewSoilRepository(db)
	deleted, err := repo.Delete(context.Background(), models.NewReportID())
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted {
		t.Error("Expected Delete of missing report to return false")
	}
}

func TestEnvironmentalRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	repo := NewEnvironmentalRepository(db)

	report := &models.EnvironmentalReport{
		Location:        "North Ridge",
		Document:        "/uploads/1700000000001.pdf",
		Temperature:     "21.5",
		AirQualityIndex: 42,
		WaterQuality:    models.WaterClean,
		HazardousMaterials: models.HazardousMaterials{
			Chemicals: true,
			Lead:      true,
		},
	}

	if err := repo.Create(ctx, report); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	defer func() {
		if _, err := repo.Delete(ctx, report.ID); err != nil {
			t.Errorf("cleanup delete failed: %v", err)
		}
	}()

	got, err := repo.GetByID(ctx, report.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got == nil {
		t.Fatal("Expected report to be found after Create")
	}
	if !got.HazardousMaterials.Chemicals || got.HazardousMaterials.Asbestos || !got.HazardousMaterials.Lead {
		t.Errorf("Hazardous materials did not round-trip: %+v", got.HazardousMaterials)
	}

	got.WaterQuality = models.WaterPolluted
	got.HazardousMaterials.Asbestos = true
	updated, err := repo.Update(ctx, got)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated {
		t.Fatal("Expected Update to report an affected row")
	}

	got, err = repo.GetByID(ctx, report.ID)
	if err != nil {
		t.Fatalf("GetByID after update returned error: %v", err)
	}
	if got.WaterQuality != models.WaterPolluted || !got.HazardousMaterials.Asbestos {
		t.Errorf("Update did not persist: %+v", got)
	}
}

func TestSurveyorRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	repo := NewSurveyorRepository(db)

	report := &models.SurveyorReport{
		LandArea:   1200.5,
		Document:   "/uploads/1700000000002.pdf",
		Elevation:  35,
		Topography: models.TopographyFlat,
		BoundaryDetails: models.BoundaryDetails{
			ClearlyMarked: true,
		},
	}

	if err := repo.Create(ctx, report); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	defer func() {
		if _, err := repo.Delete(ctx, report.ID); err != nil {
			t.Errorf("cleanup delete failed: %v", err)
		}
	}()

	got, err := repo.GetByID(ctx, report.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got == nil {
		t.Fatal("Expected report to be found after Create")
	}
	if got.LandArea != 1200.5 || !got.BoundaryDetails.ClearlyMarked || got.BoundaryDetails.Disputed {
		t.Errorf("Round-tripped report does not match: %+v", got)
	}

	deleted, err := repo.Delete(ctx, report.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !deleted {
		t.Error("Expected Delete to report an affected row")
	}

	got, err = repo.GetByID(ctx, report.ID)
	if err != nil {
		t.Fatalf("GetByID after delete returned error: %v", err)
	}
	if got != nil {
		t.Error("Expected report to be gone after Delete")
	}
}
