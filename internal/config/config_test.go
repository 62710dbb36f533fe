package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var configEnv = []string{
	"STORAGE_BACKEND", "SQLITE_PATH", "SEED_FILE", "DATABASE_URL", "DB_HOST", "DB_PORT",
	"DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "PORT", "HOST",
	"DELETE_CONFIRMATION", "CONFIRM_SECRET", "CONFIRM_TTL", "SESSION_TTL",
	"SESSION_SWEEP_INTERVAL", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIRM_SECRET", "a-long-enough-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Storage.Backend != "sqlite" || cfg.Storage.SQLitePath != "data/elampillai.db" {
		t.Fatalf("storage = %+v", cfg.Storage)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Fatalf("addr = %q", cfg.Server.Addr())
	}
	if cfg.Confirm.Policy != "always" || cfg.Confirm.TTL != 2*time.Minute {
		t.Fatalf("confirm = %+v", cfg.Confirm)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Fatalf("session = %+v", cfg.Session)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Fatalf("origins = %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
}

func TestLoadGeneratesSecretWhenUnset(t *testing.T) {
	clearEnv(t)

	first, err := Load("")
	if err != nil {
		t.Fatalf("Load without CONFIRM_SECRET: %v", err)
	}
	if !first.Confirm.EphemeralSecret || len(first.Confirm.Secret) < 16 {
		t.Fatalf("confirm = %+v, want a generated secret", first.Confirm)
	}

	second, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if second.Confirm.Secret == first.Confirm.Secret {
		t.Fatalf("generated secrets should differ between loads")
	}

	t.Setenv("CONFIRM_SECRET", "a-long-enough-secret")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Confirm.EphemeralSecret || cfg.Confirm.Secret != "a-long-enough-secret" {
		t.Fatalf("confirm = %+v, want the configured secret", cfg.Confirm)
	}
}

func TestLoadPostgresFromParts(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "Postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "directory")
	t.Setenv("DELETE_CONFIRMATION", "never")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := "postgresql://shop:pw@db:5432/directory?sslmode=disable"
	if cfg.Database.URL != want {
		t.Fatalf("URL = %q, want %q", cfg.Database.URL, want)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "local.env")
	content := "STORAGE_BACKEND=memory\nDELETE_CONFIRMATION=never\nPORT=9090\nCORS_ALLOWED_ORIGINS=http://a.example, http://b.example\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != "memory" || cfg.Server.Port != 9090 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.CORS.AllowedOrigins[1] != "http://b.example" {
		t.Fatalf("origins = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantMsg string
	}{
		{
			name:    "unknown backend",
			env:     map[string]string{"STORAGE_BACKEND": "redis", "DELETE_CONFIRMATION": "never"},
			wantMsg: "STORAGE_BACKEND",
		},
		{
			name:    "postgres without url",
			env:     map[string]string{"STORAGE_BACKEND": "postgres", "DELETE_CONFIRMATION": "never"},
			wantMsg: "DATABASE_URL",
		},
		{
			name:    "short confirm secret",
			env:     map[string]string{"STORAGE_BACKEND": "memory", "CONFIRM_SECRET": "short"},
			wantMsg: "CONFIRM_SECRET",
		},
		{
			name:    "bad policy",
			env:     map[string]string{"STORAGE_BACKEND": "memory", "DELETE_CONFIRMATION": "maybe"},
			wantMsg: "DELETE_CONFIRMATION",
		},
		{
			name:    "bad log level",
			env:     map[string]string{"STORAGE_BACKEND": "memory", "DELETE_CONFIRMATION": "never", "LOG_LEVEL": "loud"},
			wantMsg: "LOG_LEVEL",
		},
		{
			name:    "bad port",
			env:     map[string]string{"PORT": "eighty"},
			wantMsg: "PORT",
		},
		{
			name:    "bad session ttl",
			env:     map[string]string{"SESSION_TTL": "forever"},
			wantMsg: "SESSION_TTL",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error %q should mention %q", err, tc.wantMsg)
			}
		})
	}
}
