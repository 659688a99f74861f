package config

import (
	"testing"
	"time"

	"github.com/dunamismax/pixlens/internal/raster"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PIXLENS_THREADS", "")
	t.Setenv("POSTGRES_DSN", "")

	cfg := Load()
	if cfg.API.Addr != ":8080" {
		t.Fatalf("unexpected api addr %q", cfg.API.Addr)
	}
	if cfg.Worker.Threads != raster.ThreadsAuto {
		t.Fatalf("expected auto threads, got %s", cfg.Worker.Threads)
	}
	if cfg.Database.DSN != "" {
		t.Fatalf("expected in-memory store by default, got dsn %q", cfg.Database.DSN)
	}
	if cfg.RateLimit.Window != time.Minute {
		t.Fatalf("unexpected rate limit window %s", cfg.RateLimit.Window)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PIXLENS_THREADS", "6")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("WEBHOOK_MAX_ATTEMPTS", "5")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")

	cfg := Load()
	if cfg.Worker.Threads != 6 {
		t.Fatalf("expected 6 threads, got %s", cfg.Worker.Threads)
	}
	if cfg.RateLimit.Window != 30*time.Second {
		t.Fatalf("expected 30s window, got %s", cfg.RateLimit.Window)
	}
	if cfg.Webhook.MaxAttempts != 5 || !cfg.Telemetry.OTLPInsecure {
		t.Fatalf("unexpected webhook/telemetry config %+v %+v", cfg.Webhook, cfg.Telemetry)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("PIXLENS_THREADS", "zero")
	t.Setenv("RATE_LIMIT_WINDOW", "-5s")
	t.Setenv("REDIS_DB", "three")

	cfg := Load()
	if cfg.Worker.Threads != raster.ThreadsAuto {
		t.Fatalf("expected fallback to auto threads, got %s", cfg.Worker.Threads)
	}
	if cfg.RateLimit.Window != time.Minute {
		t.Fatalf("expected fallback window, got %s", cfg.RateLimit.Window)
	}
	if cfg.Queue.RedisDB != 0 {
		t.Fatalf("expected fallback redis db, got %d", cfg.Queue.RedisDB)
	}
}
