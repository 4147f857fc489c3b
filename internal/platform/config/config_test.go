package config

import (
	"testing"
	"time"
)

func baseConfig() Config {
	return Config{
		Addr:               ":8080",
		DatabaseURL:        "postgres://localhost/juniorjoy",
		JWTSecret:          "secret",
		TokenTTL:           time.Hour,
		Environment:        "development",
		MaxBodyBytes:       1 << 20,
		RateLimitPerMinute: 120,
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected default addr %q", cfg.Addr)
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Fatalf("unexpected default ttl %v", cfg.TokenTTL)
	}
	if !cfg.RunMigrations || !cfg.RunSeed {
		t.Fatal("migrations and seed should default on")
	}
	if cfg.SeedDemoData {
		t.Fatal("demo data should default off")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := Load()
	if cfg.Addr != ":9090" {
		t.Fatalf("unexpected addr %q", cfg.Addr)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("unexpected ttl %v", cfg.TokenTTL)
	}
	if cfg.RunMigrations {
		t.Fatal("expected migrations disabled")
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := baseConfig()
	cfg.DatabaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database url")
	}
}

func TestValidateProductionRules(t *testing.T) {
	cfg := baseConfig()
	cfg.Environment = "production"
	cfg.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty jwt secret in production")
	}

	cfg = baseConfig()
	cfg.Environment = "production"
	cfg.SeedDemoData = true
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for demo data in production")
	}

	cfg = baseConfig()
	cfg.Environment = "production"
	cfg.RunSeed = true
	cfg.SeedAdminPassword = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty seed password in production")
	}
}

func TestValidateTokenTTL(t *testing.T) {
	cfg := baseConfig()
	cfg.TokenTTL = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}
