package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	CORS         CORSConfig
	RateLimit    RateLimitConfig
	Notification NotificationConfig
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	TxTimeout       time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port            int
	Env             string
	LogLevel        string
	ShutdownTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig limits unauthenticated auth endpoints per client IP
type RateLimitConfig struct {
	AuthRPS   float64
	AuthBurst int
}

type NotificationConfig struct {
	BatchSize       int
	FlushInterval   time.Duration
	WorkerCount     int
	QueueSize       int
	StreamBuffer    int
	Retention       time.Duration
	CleanupInterval time.Duration
}

// Load reads configuration from the environment. A .env file is used when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		slog.Debug("no .env file found, using environment only")
	}

	config := &Config{}
	var err error

	// Database configuration
	config.Database = DatabaseConfig{
		URL:      getEnv("DATABASE_URL", ""),
		Host:     getEnv("DB_HOST", "localhost"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "vacay"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
	if config.Database.Port, err = getEnvInt("DB_PORT", 5432); err != nil {
		return nil, err
	}
	maxConns, err := getEnvInt("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	minConns, err := getEnvInt("DB_MIN_CONNS", 2)
	if err != nil {
		return nil, err
	}
	config.Database.MaxConns = int32(maxConns)
	config.Database.MinConns = int32(minConns)
	if config.Database.MaxConnLifetime, err = getEnvDuration("DB_MAX_CONN_LIFETIME", time.Hour); err != nil {
		return nil, err
	}
	if config.Database.TxTimeout, err = getEnvDuration("DB_TX_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	// Application configuration
	config.App = AppConfig{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
	if config.App.Port, err = getEnvInt("APP_PORT", 8080); err != nil {
		return nil, err
	}
	if config.App.ShutdownTimeout, err = getEnvDuration("APP_SHUTDOWN_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// Rate limiting
	authRPS, err := strconv.ParseFloat(getEnv("RATE_LIMIT_AUTH_RPS", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_AUTH_RPS: %w", err)
	}
	config.RateLimit.AuthRPS = authRPS
	if config.RateLimit.AuthBurst, err = getEnvInt("RATE_LIMIT_AUTH_BURST", 5); err != nil {
		return nil, err
	}

	// Notification workers and cleanup
	n := &config.Notification
	if n.BatchSize, err = getEnvInt("NOTIFICATION_BATCH_SIZE", 100); err != nil {
		return nil, err
	}
	if n.FlushInterval, err = getEnvDuration("NOTIFICATION_FLUSH_INTERVAL", 5*time.Second); err != nil {
		return nil, err
	}
	if n.WorkerCount, err = getEnvInt("NOTIFICATION_WORKERS", 2); err != nil {
		return nil, err
	}
	if n.QueueSize, err = getEnvInt("NOTIFICATION_QUEUE_SIZE", 1000); err != nil {
		return nil, err
	}
	if n.StreamBuffer, err = getEnvInt("NOTIFICATION_STREAM_BUFFER", 16); err != nil {
		return nil, err
	}
	if n.Retention, err = getEnvDuration("NOTIFICATION_RETENTION", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if n.CleanupInterval, err = getEnvDuration("NOTIFICATION_CLEANUP_INTERVAL", 6*time.Hour); err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" && c.Database.Password == "" {
		return fmt.Errorf("DATABASE_URL or DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if len(c.JWT.Secret) < 32 && c.IsProduction() {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters in production")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Database.TxTimeout <= 0 {
		return fmt.Errorf("DB_TX_TIMEOUT must be positive")
	}
	if c.RateLimit.AuthRPS <= 0 || c.RateLimit.AuthBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_AUTH_RPS and RATE_LIMIT_AUTH_BURST must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
