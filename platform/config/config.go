// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// JWTConfig provides JWT validation settings for the admin middleware.
type JWTConfig interface {
	GetJWTSecret() string
}

// RedisConfig provides settings for the lookup cache.
type RedisConfig interface {
	GetRedisAddr() string
	GetRedisPassword() string
	GetLookupCacheTTL() time.Duration
	IsLookupCacheEnabled() bool
}

// MetadataConfig provides settings for the metadata document source.
type MetadataConfig interface {
	GetMetadataSource() string // "embedded", "file" or "s3"
	GetMetadataPath() string
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMetadataBucket() string
	GetMetadataObject() string
}

// RateLimitConfig provides settings for per-IP rate limiting.
type RateLimitConfig interface {
	GetRateLimitPerSecond() float64
	GetRateLimitBurst() int
}

// PhoneConfig provides phone-domain defaults.
type PhoneConfig interface {
	GetDefaultRegion() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                string
	HTTPAddr           string
	CORSAllowAll       bool
	CORSOrigins        []string
	JWTSecret          string
	DefaultRegion      string
	RedisAddr          string
	RedisPassword      string
	LookupCacheTTL     time.Duration
	MetadataSource     string
	MetadataPath       string
	MinIOEndpoint      string
	MinIOAccessKey     string
	MinIOSecretKey     string
	MinIOUseSSL        bool
	MetadataBucket     string
	MetadataObject     string
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// JWTConfig implementation
func (c *Config) GetJWTSecret() string { return c.JWTSecret }

// RedisConfig implementation
func (c *Config) GetRedisAddr() string             { return c.RedisAddr }
func (c *Config) GetRedisPassword() string         { return c.RedisPassword }
func (c *Config) GetLookupCacheTTL() time.Duration { return c.LookupCacheTTL }
func (c *Config) IsLookupCacheEnabled() bool       { return c.RedisAddr != "" }

// MetadataConfig implementation
func (c *Config) GetMetadataSource() string { return c.MetadataSource }
func (c *Config) GetMetadataPath() string   { return c.MetadataPath }
func (c *Config) GetMinIOEndpoint() string  { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool      { return c.MinIOUseSSL }
func (c *Config) GetMetadataBucket() string { return c.MetadataBucket }
func (c *Config) GetMetadataObject() string { return c.MetadataObject }

// RateLimitConfig implementation
func (c *Config) GetRateLimitPerSecond() float64 { return c.RateLimitPerSecond }
func (c *Config) GetRateLimitBurst() int         { return c.RateLimitBurst }

// PhoneConfig implementation
func (c *Config) GetDefaultRegion() string { return c.DefaultRegion }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:       corsAllowAll,
		CORSOrigins:        corsOrigins,
		JWTSecret:          getEnv("JWT_SECRET", ""),
		DefaultRegion:      getEnv("DEFAULT_REGION", "US"),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		LookupCacheTTL:     mustDuration(getEnv("LOOKUP_CACHE_TTL", "1h")),
		MetadataSource:     strings.ToLower(getEnv("METADATA_SOURCE", "embedded")),
		MetadataPath:       getEnv("METADATA_PATH", ""),
		MinIOEndpoint:      getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:     getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:        strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MetadataBucket:     getEnv("METADATA_BUCKET", "phone-metadata"),
		MetadataObject:     getEnv("METADATA_OBJECT", "metadata.json"),
		RateLimitPerSecond: mustFloat(getEnv("RATE_LIMIT_PER_SECOND", "50")),
		RateLimitBurst:     mustInt(getEnv("RATE_LIMIT_BURST", "100")),
	}

	switch cfg.MetadataSource {
	case "embedded":
	case "file":
		if cfg.MetadataPath == "" {
			return nil, fmt.Errorf("METADATA_PATH is required when METADATA_SOURCE is file")
		}
	case "s3":
		if cfg.MinIOEndpoint == "" || cfg.MinIOAccessKey == "" || cfg.MinIOSecretKey == "" {
			return nil, fmt.Errorf("MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when METADATA_SOURCE is s3")
		}
	default:
		return nil, fmt.Errorf("unknown METADATA_SOURCE %q", cfg.MetadataSource)
	}
	if cfg.JWTSecret == "" && !strings.EqualFold(cfg.Env, "development") {
		return nil, fmt.Errorf("JWT_SECRET is required outside development")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
