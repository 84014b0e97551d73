package config

import "testing"

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/agriportal")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != ":3000" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Fatalf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.AITimeout.Seconds() != 10 {
		t.Fatalf("AITimeout = %v", cfg.AITimeout)
	}
	if cfg.IsGeminiEnabled() {
		t.Fatalf("gemini should be disabled without an API key")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:5173" {
		t.Fatalf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadWildcardOriginEnablesAllowAll(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/agriportal")
	t.Setenv("CORS_ORIGINS", "*")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.GetCORSAllowAll() {
		t.Fatalf("wildcard origin should enable allow-all")
	}
}

func TestLoadRejectsAllowAllWithCredentials(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/agriportal")
	t.Setenv("CORS_ALLOW_ALL", "true")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for allow-all with credentials")
	}
}
