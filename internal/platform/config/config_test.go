package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{
		"SERVICE_NAME", "HTTP_PORT", "ADMIN_SLACK_IDS",
		"CLAIM_TTL", "WORKER_POLL_INTERVAL", "SERIAL_QUEUE_DEPTH",
		"ENABLE_CLAIM_EXPIRER", "ENABLE_SWAGGER",
	} {
		t.Setenv(name, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServiceName != "codecomp" {
		t.Fatalf("expected default service name, got %q", cfg.ServiceName)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port, got %q", cfg.HTTPPort)
	}
	if cfg.ClaimTTL != 5*time.Minute {
		t.Fatalf("expected 5m claim TTL, got %s", cfg.ClaimTTL)
	}
	if cfg.WorkerPollInterval != 30*time.Second {
		t.Fatalf("expected 30s poll interval, got %s", cfg.WorkerPollInterval)
	}
	if cfg.SerialQueueDepth != 64 {
		t.Fatalf("expected default queue depth, got %d", cfg.SerialQueueDepth)
	}
	if !cfg.EnableClaimExpirer || !cfg.EnableSwagger {
		t.Fatalf("expected expirer and swagger enabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVICE_NAME", "codecomp-staging")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ADMIN_SLACK_IDS", " U-1 , U-2 ,,")
	t.Setenv("CLAIM_TTL", "90s")
	t.Setenv("SERIAL_QUEUE_DEPTH", "16")
	t.Setenv("ENABLE_SWAGGER", "off")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServiceName != "codecomp-staging" || cfg.HTTPPort != "9090" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.AdminSlackIDs) != 2 || cfg.AdminSlackIDs[0] != "U-1" || cfg.AdminSlackIDs[1] != "U-2" {
		t.Fatalf("admin list parse mismatch: %v", cfg.AdminSlackIDs)
	}
	if cfg.ClaimTTL != 90*time.Second {
		t.Fatalf("expected 90s TTL, got %s", cfg.ClaimTTL)
	}
	if cfg.SerialQueueDepth != 16 {
		t.Fatalf("expected depth 16, got %d", cfg.SerialQueueDepth)
	}
	if cfg.EnableSwagger {
		t.Fatalf("expected swagger disabled")
	}
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("CLAIM_TTL", "soon")
	t.Setenv("SERIAL_QUEUE_DEPTH", "-4")
	t.Setenv("ENABLE_SWAGGER", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ClaimTTL != 5*time.Minute {
		t.Fatalf("malformed duration must fall back, got %s", cfg.ClaimTTL)
	}
	if cfg.SerialQueueDepth != 64 {
		t.Fatalf("non-positive depth must fall back, got %d", cfg.SerialQueueDepth)
	}
	if !cfg.EnableSwagger {
		t.Fatalf("unparsable bool must fall back to the default")
	}
}

func TestIsAdmin(t *testing.T) {
	cfg := Config{AdminSlackIDs: []string{"U-1", "U-2"}}
	if !cfg.IsAdmin("U-1") || !cfg.IsAdmin(" U-2 ") {
		t.Fatalf("expected configured admins to match")
	}
	if cfg.IsAdmin("U-3") || cfg.IsAdmin("") {
		t.Fatalf("expected non-admins rejected")
	}
}
