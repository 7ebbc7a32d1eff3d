// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_PAGE_SIZE", "20")
	t.Setenv("JWT_EXPIRATION", "2h")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.MaxPageSize != 20 {
		t.Errorf("expected max page size 20, got %d", cfg.MaxPageSize)
	}
	if cfg.JWTExpiration != 2*time.Hour {
		t.Errorf("expected jwt expiration 2h, got %s", cfg.JWTExpiration)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.MaxPageSize != 50 {
		t.Errorf("expected default max page size 50, got %d", cfg.MaxPageSize)
	}
	if cfg.Env != "local" {
		t.Errorf("expected default env local, got %q", cfg.Env)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-jwt-secret", "s1", "-t", "postgres"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "file:test.db" {
		t.Errorf("expected database URL from CLI, got %q", cfg.DatabaseURL)
	}
	if cfg.JWTSecret != "s1" {
		t.Errorf("expected JWT secret from CLI, got %q", cfg.JWTSecret)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected database type from CLI, got %q", cfg.DatabaseType)
	}
}

func TestParseFlags_ConfigFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte("env: prod\nport: 7000\ndatabase_url: postgres://file\ndatabase_type: postgres\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"-config", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Env != "prod" || cfg.Port != 7000 || cfg.DatabaseURL != "postgres://file" {
		t.Errorf("unexpected config from file: %+v", cfg)
	}
	if cfg.JWTSecret != "from-env" {
		t.Errorf("env should fill fields missing from the file, got %q", cfg.JWTSecret)
	}
}

func TestParseFlags_MissingRequired(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"no database url", map[string]string{"JWT_SECRET": "s"}},
		{"no jwt secret", map[string]string{"DATABASE_URL": "file::memory:"}},
		{"bad database type", map[string]string{"DATABASE_URL": "x", "JWT_SECRET": "s", "DATABASE_TYPE": "mysql"}},
		{"zero page size", map[string]string{"DATABASE_URL": "x", "JWT_SECRET": "s", "MAX_PAGE_SIZE": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "")
			t.Setenv("JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags([]string{}); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
