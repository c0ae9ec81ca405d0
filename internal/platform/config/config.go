// Package config builds runtime configuration from environment variables so
// main stays lean. Every backing service is optional in development: an empty
// URL means "run without it" (in-memory stores, no cache, no event fan-out).
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full server configuration.
type Config struct {
	Server   Server
	Postgres Postgres
	Redis    Redis
	Kafka    Kafka
	Blob     Blob
	Auth     Auth
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Postgres holds the relational store connection settings.
type Postgres struct {
	// DSN is a lib/pq connection string. Empty means in-memory stores.
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// Redis holds the counter-projection cache settings.
type Redis struct {
	// URL in redis:// form. Empty disables the cache.
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// CountTTL bounds how stale a cached follower/following count may be.
	CountTTL time.Duration
}

// Kafka holds the activity event fan-out settings.
type Kafka struct {
	// Brokers is a comma-separated seed list. Empty disables publishing.
	Brokers []string
	Topic   string
}

// Blob holds the S3-compatible avatar storage settings.
type Blob struct {
	// Endpoint is the S3 endpoint URL. Empty disables avatar storage.
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	SignedURLTTL    time.Duration
}

// Auth holds token verification settings for the session middleware.
type Auth struct {
	JWTSigningKey string
}

// FromEnv builds a Config from environment variables with dev defaults.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            envOr("WANDERLIST_ADDR", ":8080"),
			RequestTimeout:  envDuration("WANDERLIST_REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: envDuration("WANDERLIST_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Postgres: Postgres{
			DSN:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			CountTTL:     envDuration("REDIS_COUNT_TTL", time.Minute),
		},
		Kafka: Kafka{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   envOr("KAFKA_ACTIVITY_TOPIC", "wanderlist.activity"),
		},
		Blob: Blob{
			Endpoint:        os.Getenv("BLOB_ENDPOINT"),
			Region:          envOr("BLOB_REGION", "auto"),
			AccessKeyID:     os.Getenv("BLOB_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("BLOB_SECRET_ACCESS_KEY"),
			Bucket:          envOr("BLOB_BUCKET", "avatars"),
			SignedURLTTL:    envDuration("BLOB_SIGNED_URL_TTL", time.Hour),
		},
		Auth: Auth{
			// Dev default, must be overridden in production.
			JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
