package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the gateway.
type Config struct {
	App     AppConfig
	Backend BackendConfig
	Cache   CacheConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	Auth    AuthConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	// Preview serves fixtures instead of calling the backend. Read once at startup.
	Preview  bool
	TimeZone string
}

// BackendConfig describes the upstream Evaluaasi REST API.
type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int
	ServiceToken   string
	FanOutLimit    int
	Debug          bool
}

// CacheConfig sets staleness windows for the query cache.
type CacheConfig struct {
	ReferenceTTLSeconds   int
	OperationalTTLSeconds int
	CleanupSeconds        int
	UseRedis              bool
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines token verification parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	AllowedRoles          []string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	tz := getEnv("APP_TIMEZONE", "America/Mexico_City")
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "support-gateway"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			Preview:               getEnvAsBool("APP_PREVIEW", false),
			TimeZone:              tz,
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_BASE_URL", "http://127.0.0.1:5000/api"),
			TimeoutSeconds: getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 20),
			ServiceToken:   os.Getenv("BACKEND_SERVICE_TOKEN"),
			FanOutLimit:    getEnvAsInt("BACKEND_FANOUT_LIMIT", 8),
			Debug:          getEnvAsBool("BACKEND_DEBUG", false),
		},
		Cache: CacheConfig{
			ReferenceTTLSeconds:   getEnvAsInt("CACHE_REFERENCE_TTL_SECONDS", 300),
			OperationalTTLSeconds: getEnvAsInt("CACHE_OPERATIONAL_TTL_SECONDS", 120),
			CleanupSeconds:        getEnvAsInt("CACHE_CLEANUP_SECONDS", 600),
			UseRedis:              getEnvAsBool("CACHE_USE_REDIS", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			AllowedRoles:          getEnvAsList("AUTH_ALLOWED_ROLES", []string{"support", "admin"}),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Location resolves the calendar time zone, falling back to UTC.
func (a AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Timeout returns the per-request backend timeout.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// ReferenceTTL is the staleness window for slow-changing data (campuses, partners).
func (c CacheConfig) ReferenceTTL() time.Duration {
	return secondsOr(c.ReferenceTTLSeconds, 5*time.Minute)
}

// OperationalTTL is the staleness window for tickets, calendar and users.
func (c CacheConfig) OperationalTTL() time.Duration {
	return secondsOr(c.OperationalTTLSeconds, 2*time.Minute)
}

// CleanupInterval controls how often expired entries are purged.
func (c CacheConfig) CleanupInterval() time.Duration {
	return secondsOr(c.CleanupSeconds, 10*time.Minute)
}

func secondsOr(seconds int, fallback time.Duration) time.Duration {
	if seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
