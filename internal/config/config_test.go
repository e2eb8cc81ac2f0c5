package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want %q", cfg.Server.ListenAddr, ":8080")
	}
	if cfg.Auth.TokenMaxAge != 30*24*time.Hour {
		t.Errorf("TokenMaxAge = %v, want 30 days", cfg.Auth.TokenMaxAge)
	}
	if cfg.Auth.LogoutGrace != 2*time.Second {
		t.Errorf("LogoutGrace = %v, want 2s", cfg.Auth.LogoutGrace)
	}
	if cfg.Audit.RetentionDays != 90 {
		t.Errorf("RetentionDays = %d, want 90", cfg.Audit.RetentionDays)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("UPSTREAM_API_URL", "https://api.pawcare.example")
	t.Setenv("LOGOUT_GRACE_SECONDS", "5")
	t.Setenv("AUDIT_RETENTION_DAYS", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q", cfg.Server.ListenAddr)
	}
	if cfg.Upstream.BaseURL != "https://api.pawcare.example" {
		t.Errorf("BaseURL = %q", cfg.Upstream.BaseURL)
	}
	if cfg.Auth.LogoutGrace != 5*time.Second {
		t.Errorf("LogoutGrace = %v", cfg.Auth.LogoutGrace)
	}
	if cfg.Audit.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d", cfg.Audit.RetentionDays)
	}
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	t.Setenv("LOGOUT_GRACE_SECONDS", "soon")
	if _, err := Load(); err == nil {
		t.Error("Load() should reject a non-numeric LOGOUT_GRACE_SECONDS")
	}
}
