// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import "testing"

// TestLoad_Defaults verifies that Load returns sensible development
// defaults when no environment variables are set. Setting each variable
// to "" makes envOrDefault fall through to the default.
func TestLoad_Defaults(t *testing.T) {
	envVars := []string{
		"APP_HOST", "APP_PORT", "APP_ENV", "APP_BASE_URL",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
		"S3_ENDPOINT", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET", "S3_PUBLIC_URL",
	}
	for _, key := range envVars {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Host != "0.0.0.0" || cfg.Port != "8080" {
		t.Errorf("server defaults = %s:%s", cfg.Host, cfg.Port)
	}
	if cfg.Env != "development" || !cfg.IsDev() {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.DBUser != "linkhub" || cfg.DBName != "linkhub" {
		t.Errorf("db defaults = %s/%s", cfg.DBUser, cfg.DBName)
	}
	if cfg.ValkeyHost != "localhost" || cfg.ValkeyPort != "6379" {
		t.Errorf("valkey defaults = %s:%s", cfg.ValkeyHost, cfg.ValkeyPort)
	}
}

func TestLoad_ProductionRequiresRealPassword(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("POSTGRES_PASSWORD", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for default password in production")
	}

	t.Setenv("POSTGRES_PASSWORD", "s3cret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with real password: %v", err)
	}
	if cfg.IsDev() {
		t.Error("IsDev() = true in production")
	}
}

func TestDSNAndAddr(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_USER", "app")
	t.Setenv("POSTGRES_PASSWORD", "pw")
	t.Setenv("POSTGRES_DB", "linkhub_test")
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	wantDSN := "postgres://app:pw@db.internal:5433/linkhub_test?sslmode=disable"
	if cfg.DSN() != wantDSN {
		t.Errorf("DSN() = %q, want %q", cfg.DSN(), wantDSN)
	}
	if cfg.Addr() != "127.0.0.1:9999" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}
