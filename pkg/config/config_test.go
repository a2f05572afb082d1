package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "dev")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8081" {
		t.Fatalf("expected :8081, got %q", cfg.HTTPAddr)
	}
	if cfg.DB.Port != "5432" || cfg.DB.Host != "localhost" {
		t.Fatalf("unexpected db defaults: %+v", cfg.DB)
	}
	if cfg.Auth.TTL != 12*time.Hour {
		t.Fatalf("expected 12h ttl, got %s", cfg.Auth.TTL)
	}
	if cfg.Auth.Secret == "" {
		t.Fatalf("expected dev secret fallback")
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("expected 2 default origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoad_PortFallbackAndNested(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("JWT_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("expected :9090, got %q", cfg.HTTPAddr)
	}
	if cfg.DB.Host != "db.internal" {
		t.Fatalf("expected DB_HOST to apply, got %q", cfg.DB.Host)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected LOG_LEVEL to apply, got %q", cfg.Log.Level)
	}
	if cfg.Auth.TTL != 30*time.Minute {
		t.Fatalf("expected 30m, got %s", cfg.Auth.TTL)
	}
}

func TestLoad_ProdRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without JWT_SECRET in prod")
	}
}
