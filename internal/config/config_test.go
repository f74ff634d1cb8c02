package config

import (
	"os"
	"testing"
	"time"
)

func clearConfigEnvVars() {
	vars := []string{
		"PORT", "ENV",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_POOL_MIN", "DB_POOL_MAX",
		"CORS_ORIGINS",
		"UPLOAD_DIR", "UPLOAD_PUBLIC_PATH",
		"WEATHER_BASE_URL", "WEATHER_API_KEY", "WEATHER_TIMEOUT_SECONDS",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	clearConfigEnvVars()

	// Set only required env var (password has no default)
	os.Setenv("DB_PASSWORD", "testpass")
	defer os.Unsetenv("DB_PASSWORD")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "8002" {
		t.Errorf("Expected port 8002, got %s", cfg.Server.Port)
	}
	if cfg.Server.Env != "development" {
		t.Errorf("Expected env development, got %s", cfg.Server.Env)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Expected host localhost, got %s", cfg.Database.Host)
	}
	if cfg.Database.Name != "fieldscope" {
		t.Errorf("Expected db name fieldscope, got %s", cfg.Database.Name)
	}
	if cfg.Database.PoolMin != 2 {
		t.Errorf("Expected pool min 2, got %d", cfg.Database.PoolMin)
	}
	if cfg.Database.PoolMax != 10 {
		t.Errorf("Expected pool max 10, got %d", cfg.Database.PoolMax)
	}
	if len(cfg.CORS.Origins) != 1 {
		t.Errorf("Expected 1 CORS origin, got %d", len(cfg.CORS.Origins))
	}
	if cfg.Uploads.Dir != "./uploads" {
		t.Errorf("Expected upload dir ./uploads, got %s", cfg.Uploads.Dir)
	}
	if cfg.Uploads.PublicPath != "/uploads" {
		t.Errorf("Expected public path /uploads, got %s", cfg.Uploads.PublicPath)
	}
	if cfg.Weather.BaseURL != "https://api.openweathermap.org/data/2.5" {
		t.Errorf("Unexpected weather base URL: %s", cfg.Weather.BaseURL)
	}
	if cfg.Weather.APIKey != "" {
		t.Errorf("Expected empty weather API key, got %s", cfg.Weather.APIKey)
	}
	if cfg.Weather.Timeout != 5*time.Second {
		t.Errorf("Expected 5s weather timeout, got %s", cfg.Weather.Timeout)
	}
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	clearConfigEnvVars()

	os.Setenv("PORT", "9090")
	os.Setenv("ENV", "production")
	os.Setenv("DB_HOST", "db.internal")
	os.Setenv("DB_PORT", "5433")
	os.Setenv("DB_NAME", "reports")
	os.Setenv("DB_USER", "reports")
	os.Setenv("DB_PASSWORD", "secret")
	os.Setenv("DB_POOL_MIN", "5")
	os.Setenv("DB_POOL_MAX", "20")
	os.Setenv("CORS_ORIGINS", "https://app.example.com, https://staging.example.com")
	os.Setenv("UPLOAD_DIR", "/var/lib/fieldscope/uploads")
	os.Setenv("UPLOAD_PUBLIC_PATH", "/files")
	os.Setenv("WEATHER_BASE_URL", "https://weather.example.com/v1")
	os.Setenv("WEATHER_API_KEY", "abc123")
	os.Setenv("WEATHER_TIMEOUT_SECONDS", "3")
	defer clearConfigEnvVars()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Server.Env != "production" {
		t.Errorf("Expected env production, got %s", cfg.Server.Env)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Expected host db.internal, got %s", cfg.Database.Host)
	}
	if cfg.Database.PoolMin != 5 || cfg.Database.PoolMax != 20 {
		t.Errorf("Unexpected pool sizes: %d/%d", cfg.Database.PoolMin, cfg.Database.PoolMax)
	}
	if len(cfg.CORS.Origins) != 2 {
		t.Fatalf("Expected 2 CORS origins, got %d", len(cfg.CORS.Origins))
	}
	if cfg.CORS.Origins[1] != "https://staging.example.com" {
		t.Errorf("Expected trimmed origin, got %q", cfg.CORS.Origins[1])
	}
	if cfg.Uploads.Dir != "/var/lib/fieldscope/uploads" {
		t.Errorf("Unexpected upload dir: %s", cfg.Uploads.Dir)
	}
	if cfg.Weather.APIKey != "abc123" {
		t.Errorf("Unexpected weather API key: %s", cfg.Weather.APIKey)
	}
	if cfg.Weather.Timeout != 3*time.Second {
		t.Errorf("Expected 3s weather timeout, got %s", cfg.Weather.Timeout)
	}
}

func TestLoad_MissingPassword(t *testing.T) {
	clearConfigEnvVars()

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error when DB_PASSWORD is missing")
	}
}

func TestValidate_PoolBounds(t *testing.T) {
	clearConfigEnvVars()

	os.Setenv("DB_PASSWORD", "testpass")
	os.Setenv("DB_POOL_MIN", "10")
	os.Setenv("DB_POOL_MAX", "2")
	defer clearConfigEnvVars()

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error when DB_POOL_MIN > DB_POOL_MAX")
	}
}

func TestValidate_PublicPathPrefix(t *testing.T) {
	clearConfigEnvVars()

	os.Setenv("DB_PASSWORD", "testpass")
	os.Setenv("UPLOAD_PUBLIC_PATH", "uploads")
	defer clearConfigEnvVars()

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error when UPLOAD_PUBLIC_PATH lacks leading slash")
	}
}

func TestParseOrigins(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"single", "http://localhost:3000", 1},
		{"multiple with spaces", "a.com, b.com , c.com", 3},
		{"trailing comma", "a.com,", 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseOrigins(tc.input)
			if len(got) != tc.want {
				t.Errorf("parseOrigins(%q) returned %d origins, want %d", tc.input, len(got), tc.want)
			}
		})
	}
}
