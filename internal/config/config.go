package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Enabled reports whether the limit should be enforced.
func (r RateLimitConfig) Enabled() bool {
	return r.Requests > 0 && r.Interval > 0
}

// PoolConfig tunes the PostgreSQL connection pool. Zero values keep the pgx
// defaults.
type PoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Config aggregates process-wide configuration values.
type Config struct {
	DatabaseURL      string
	DatabasePool     PoolConfig
	MongoURI         string
	MongoDatabase    string
	ReviewCollection string
	JWTSecret        string
	TokenTTL         time.Duration
	Port             string
	RateLimitReviews RateLimitConfig

	AirtableAPIKey  string
	AirtableBaseID  string
	AirtableBaseURL string
	AirtableRate    RateLimitConfig

	SearchBaseURL string
	SiteConfig    string
	SiteEnv       string
	PublicDir     string
	SnapshotPath  string

	LogLevel  string
	LogFormat string
}

// Development reports whether pages should only be built for the default language.
func (c *Config) Development() bool {
	return strings.EqualFold(c.SiteEnv, "development")
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDatabase:    getEnv("MONGO_DATABASE", "cocolist"),
		ReviewCollection: getEnv("MONGO_REVIEWS_COLLECTION", "reviews"),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:         parseDuration(getEnv("JWT_TTL", "24h")),
		Port:             getEnv("PORT", "8080"),
		AirtableAPIKey:   os.Getenv("AIRTABLE_API_KEY"),
		AirtableBaseID:   os.Getenv("AIRTABLE_BASE_ID"),
		AirtableBaseURL:  getEnv("AIRTABLE_BASE_URL", "https://api.airtable.com/v0"),
		SearchBaseURL:    os.Getenv("SEARCH_BASE_URL"),
		SiteConfig:       getEnv("SITE_CONFIG", "configs/site.yaml"),
		SiteEnv:          getEnv("SITE_ENV", "production"),
		PublicDir:        getEnv("PUBLIC_DIR", "public"),
		SnapshotPath:     getEnv("SNAPSHOT_PATH", "data/snapshot.json"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
	}

	pool, err := loadPool()
	if err != nil {
		return nil, err
	}
	cfg.DatabasePool = pool

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_REVIEWS", "5/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REVIEWS value: %w", err)
	}
	cfg.RateLimitReviews = rl

	at, err := parseRateLimit(getEnv("AIRTABLE_RATE", "5/sec"))
	if err != nil {
		return nil, fmt.Errorf("invalid AIRTABLE_RATE value: %w", err)
	}
	cfg.AirtableRate = at

	return cfg, nil
}

func loadPool() (PoolConfig, error) {
	maxConns, err := getInt32("DB_MAX_CONNS", 10)
	if err != nil {
		return PoolConfig{}, err
	}
	minConns, err := getInt32("DB_MIN_CONNS", 0)
	if err != nil {
		return PoolConfig{}, err
	}
	if minConns > maxConns {
		return PoolConfig{}, fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", minConns, maxConns)
	}
	return PoolConfig{
		MaxConns:        maxConns,
		MinConns:        minConns,
		MaxConnLifetime: parseDurationOr(getEnv("DB_MAX_CONN_LIFETIME", "1h"), time.Hour),
		MaxConnIdleTime: parseDurationOr(getEnv("DB_MAX_CONN_IDLE_TIME", "15m"), 15*time.Minute),
	}, nil
}

func getInt32(key string, fallback int32) (int32, error) {
	val := getEnv(key, "")
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 32)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s value: %q", key, val)
	}
	return int32(n), nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string) time.Duration {
	return parseDurationOr(input, 24*time.Hour)
}

func parseDurationOr(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return fallback
	}
	return d
}
