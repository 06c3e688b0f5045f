package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort        = "8080"
	defaultDatabaseURL = "immotrust.db"
	defaultJWTSecret   = "change-me-jwt-secret"
	defaultJWTTTL      = "24h"
	defaultLogLevel    = "info"
	defaultMetrics     = "true"
	defaultSweepBatch  = "200"
	defaultRevokeStale = "false"
)

// AppConfig is built once at startup and passed down; nothing mutates it afterwards.
type AppConfig struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	LogLevel    string

	JWTSecret string
	JWTTTL    time.Duration

	// PlanLimitsOverride is raw JSON applied over the built-in plan table.
	PlanLimitsOverride string
	// TrustScoreConfigPath points to a YAML weights file. Empty means defaults.
	TrustScoreConfigPath string

	MetricsEnabled bool
	CORSOrigins    []string
	SweepBatchSize int

	// BadgeRevokeStale drops held badges whose criteria no longer hold on each evaluation.
	BadgeRevokeStale bool
}

// Load reads the environment, after an optional .env file.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &AppConfig{
		AppEnv:               strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", "dev"))),
		Port:                 strings.TrimSpace(getEnv("PORT", defaultPort)),
		DatabaseURL:          strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL)),
		LogLevel:             strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel))),
		JWTSecret:            strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
		PlanLimitsOverride:   strings.TrimSpace(os.Getenv("PLAN_LIMITS_OVERRIDE")),
		TrustScoreConfigPath: strings.TrimSpace(os.Getenv("TRUST_SCORE_CONFIG")),
		MetricsEnabled:       parseBoolEnv("METRICS_ENABLED", defaultMetrics),
		CORSOrigins:          splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		BadgeRevokeStale:     parseBoolEnv("BADGE_REVOKE_STALE", defaultRevokeStale),
	}

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.SweepBatchSize, err = parseIntEnv("SWEEP_BATCH_SIZE", defaultSweepBatch); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *AppConfig) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.SweepBatchSize <= 0 {
		return fmt.Errorf("SWEEP_BATCH_SIZE must be > 0")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if !strings.HasPrefix(cfg.DatabaseURL, "postgres") {
			return fmt.Errorf("in prod/release DATABASE_URL must be a postgres DSN")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
