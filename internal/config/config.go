package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// BackendRoute declares one entry of the gateway route table. Declaration
// order is significant: the dispatcher uses the first matching prefix, so
// more specific prefixes must be listed before their parents.
type BackendRoute struct {
	Prefix  string
	Backend string
}

type GatewayConfig struct {
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	ProxyTimeout       time.Duration
	HealthCheckTimeout time.Duration
	CORSOrigins        []string
	Routes             []BackendRoute
}

type AuthConfig struct {
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	RequestTimeout     time.Duration
	DatabaseURL        string
	DBMaxConns         int32
	DBMinConns         int32
	DBConnMaxLifetime  time.Duration
	DBConnMaxIdleTime  time.Duration
	DBHealthPeriod     time.Duration
	RedisURL           string
	JWTSecret          string
	JWTAlgorithm       string
	JWTExpireMinutes   int
	CORSOrigins        []string
}

func LoadGateway() (*GatewayConfig, error) {
	_ = godotenv.Load()

	cfg := &GatewayConfig{
		Port:               getEnv("GATEWAY_PORT", "8000"),
		ServerReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		ServerIdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		ProxyTimeout:       getDuration("PROXY_TIMEOUT", 30*time.Second),
		HealthCheckTimeout: getDuration("HEALTH_CHECK_TIMEOUT", 5*time.Second),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		Routes: []BackendRoute{
			{Prefix: "/api/v1/auth", Backend: getEnv("AUTH_SERVICE_URL", "http://auth-service:8001")},
			{Prefix: "/api/v1/files", Backend: getEnv("FILE_SERVICE_URL", "http://file-service:8002")},
			{Prefix: "/api/v1/webodm", Backend: getEnv("WEBODM_SERVICE_URL", "http://webodm-service:8003")},
			{Prefix: "/api/v1/gee", Backend: getEnv("GEE_SERVICE_URL", "http://gee-service:8004")},
			{Prefix: "/api/v1/processing", Backend: getEnv("PROCESSING_SERVICE_URL", "http://processing-service:8005")},
			{Prefix: "/api/v1/analysis", Backend: getEnv("ANALYSIS_SERVICE_URL", "http://analysis-service:8006")},
			{Prefix: "/api/v1/visualization", Backend: getEnv("VISUALIZATION_SERVICE_URL", "http://visualization-service:8007")},
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *GatewayConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("GATEWAY_PORT cannot be empty")
	}

	if c.ProxyTimeout <= 0 {
		return fmt.Errorf("PROXY_TIMEOUT must be positive")
	}

	if c.HealthCheckTimeout <= 0 {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be positive")
	}

	for _, route := range c.Routes {
		if !strings.HasPrefix(route.Prefix, "/") {
			return fmt.Errorf("route prefix %q must start with /", route.Prefix)
		}
		if strings.TrimSpace(route.Backend) == "" {
			return fmt.Errorf("route %q has an empty backend URL", route.Prefix)
		}
	}

	return nil
}

func LoadAuth() (*AuthConfig, error) {
	_ = godotenv.Load()

	cfg := &AuthConfig{
		Port:               getEnv("AUTH_PORT", "8001"),
		ServerReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:         int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:         int32(getInt("DB_MIN_CONNS", 2)),
		DBConnMaxLifetime:  getDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		DBConnMaxIdleTime:  getDuration("DB_CONN_MAX_IDLE_TIME", 15*time.Minute),
		DBHealthPeriod:     getDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:          strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTAlgorithm:       getEnv("JWT_ALGORITHM", "HS256"),
		JWTExpireMinutes:   getInt("JWT_EXPIRE_MINUTES", 1440),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *AuthConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("AUTH_PORT cannot be empty")
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.JWTExpireMinutes <= 0 {
		return fmt.Errorf("JWT_EXPIRE_MINUTES must be positive")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	return nil
}

// TokenTTL is the configured token lifetime.
func (c *AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpireMinutes) * time.Minute
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
