package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr        string
	DatabaseURL string

	KafkaBrokers []string
	KafkaTopic   string

	ArtifactBucket string
	ArtifactPrefix string
	ArtifactDir    string

	JWTSecret       string
	AllowDebugToken bool
	DebugToken      string

	// RandomSeed fixes the robotomy coin flips for reproducible runs.
	// Zero means seed from the clock at startup.
	RandomSeed int64
}

const (
	defaultAddr        = ":8072"
	defaultKafkaTopic  = "formdesk.audit"
	defaultArtifactDir = "artifacts"
)

func Load() (Config, error) {
	cfg := Config{
		Addr:            getEnv("FORMDESK_ADDR", defaultAddr),
		DatabaseURL:     firstNonEmpty(os.Getenv("FORMDESK_DATABASE_URL"), os.Getenv("DATABASE_URL")),
		KafkaBrokers:    splitList(os.Getenv("FORMDESK_KAFKA_BROKERS")),
		KafkaTopic:      getEnv("FORMDESK_KAFKA_TOPIC", defaultKafkaTopic),
		ArtifactBucket:  os.Getenv("FORMDESK_ARTIFACT_BUCKET"),
		ArtifactPrefix:  os.Getenv("FORMDESK_ARTIFACT_PREFIX"),
		ArtifactDir:     getEnv("FORMDESK_ARTIFACT_DIR", defaultArtifactDir),
		JWTSecret:       os.Getenv("FORMDESK_JWT_SECRET"),
		AllowDebugToken: getBool("FORMDESK_ALLOW_DEBUG_TOKEN", false),
		DebugToken:      os.Getenv("FORMDESK_DEBUG_TOKEN"),
		RandomSeed:      getInt64("FORMDESK_RANDOM_SEED", 0),
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL or FORMDESK_DATABASE_URL required")
	}
	if cfg.JWTSecret == "" && !cfg.AllowDebugToken {
		return Config{}, fmt.Errorf("FORMDESK_JWT_SECRET required when FORMDESK_ALLOW_DEBUG_TOKEN unset")
	}
	if cfg.AllowDebugToken && cfg.DebugToken == "" {
		return Config{}, fmt.Errorf("FORMDESK_DEBUG_TOKEN required when FORMDESK_ALLOW_DEBUG_TOKEN set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
