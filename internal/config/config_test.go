package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != "5000" {
		t.Errorf("expected default port 5000, got %s", cfg.Server.Port)
	}
	if cfg.Database.Name != "task_board" {
		t.Errorf("expected default db name task_board, got %s", cfg.Database.Name)
	}
	if cfg.Notify.Channel != "task-events" {
		t.Errorf("expected default notify channel task-events, got %s", cfg.Notify.Channel)
	}
	if cfg.Auth.AccessTokenTTL != time.Hour {
		t.Errorf("expected default access token TTL of 1h, got %v", cfg.Auth.AccessTokenTTL)
	}
	if !cfg.RateLimit.Enabled {
		t.Error("expected rate limiting enabled by default")
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		t.Error("expected default CORS allowlist")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	os.Setenv("PORT", "9999")
	os.Setenv("NOTIFY_CHANNEL", "board-events")
	os.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("NOTIFY_CHANNEL")
		os.Unsetenv("CORS_ALLOWED_ORIGINS")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != "9999" {
		t.Errorf("expected port 9999, got %s", cfg.Server.Port)
	}
	if cfg.Notify.Channel != "board-events" {
		t.Errorf("expected notify channel board-events, got %s", cfg.Notify.Channel)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("expected parsed origin list, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadConfigProductionGuards(t *testing.T) {
	os.Setenv("ENVIRONMENT", "production")
	defer os.Unsetenv("ENVIRONMENT")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected production config without secrets to fail")
	}

	os.Setenv("DB_PASSWORD", "hunter2")
	os.Setenv("JWT_SECRET", "real_secret")
	defer func() {
		os.Unsetenv("DB_PASSWORD")
		os.Unsetenv("JWT_SECRET")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected production config with secrets to load, got %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction to be true")
	}
}

func TestGetAddrs(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.GetServerAddr() != "localhost:5000" {
		t.Errorf("unexpected server addr %s", cfg.GetServerAddr())
	}
	if cfg.GetRedisAddr() != "localhost:6379" {
		t.Errorf("unexpected redis addr %s", cfg.GetRedisAddr())
	}
}
