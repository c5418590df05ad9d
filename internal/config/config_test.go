package config_test

import (
	"testing"

	"github.com/formbureau/formdesk/internal/config"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("FORMDESK_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "")
	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error without database url")
	}
}

func TestLoadRequiresAuthMaterial(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/formdesk")
	t.Setenv("FORMDESK_JWT_SECRET", "")
	t.Setenv("FORMDESK_ALLOW_DEBUG_TOKEN", "")
	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error without jwt secret or debug token")
	}

	t.Setenv("FORMDESK_ALLOW_DEBUG_TOKEN", "true")
	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error with debug token allowed but unset")
	}

	t.Setenv("FORMDESK_DEBUG_TOKEN", "hunter2")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.AllowDebugToken || cfg.DebugToken != "hunter2" {
		t.Fatalf("debug token config mangled: %+v", cfg)
	}
}

func TestLoadDefaultsAndLists(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/formdesk")
	t.Setenv("FORMDESK_JWT_SECRET", "s3cret")
	t.Setenv("FORMDESK_KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("FORMDESK_RANDOM_SEED", "42")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8072" {
		t.Fatalf("default addr %q", cfg.Addr)
	}
	if cfg.KafkaTopic != "formdesk.audit" {
		t.Fatalf("default topic %q", cfg.KafkaTopic)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Fatalf("brokers %v", cfg.KafkaBrokers)
	}
	if cfg.RandomSeed != 42 {
		t.Fatalf("seed %d", cfg.RandomSeed)
	}
}
