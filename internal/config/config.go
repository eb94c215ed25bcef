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
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Redis     RedisConfig
	Workspace WorkspaceConfig
	CORS      CORSConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Name            string
	Version         string
	Port            int
	Env             string
	LogLevel        string
	ShutdownTimeout time.Duration
	RateLimit       float64 // requests per second per identity, 0 disables
	RateLimitBurst  int
}

// RedisConfig holds the optional list cache in front of PostgreSQL
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	ListTTL  time.Duration
}

// WorkspaceConfig tunes the per-user workspace caches and dashboard sizes
type WorkspaceConfig struct {
	CacheTTL         time.Duration
	LoadTimeout      time.Duration
	IdleEviction     time.Duration
	ActivityFeedSize int
	TopProjects      int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from the environment. A .env file is used when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	var err error

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "workspace"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	shutdownTimeout, err := getEnvDuration("APP_SHUTDOWN_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}

	rateLimit, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	rateBurst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "40"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	config.App = AppConfig{
		Name:            getEnv("APP_NAME", "workspace-backend"),
		Version:         getEnv("APP_VERSION", "v1.0.0"),
		Port:            appPort,
		Env:             getEnv("APP_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: shutdownTimeout,
		RateLimit:       rateLimit,
		RateLimitBurst:  rateBurst,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Redis configuration
	redisEnabled, err := strconv.ParseBool(getEnv("REDIS_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_ENABLED: %w", err)
	}
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	redisTTL, err := getEnvDuration("REDIS_LIST_TTL", "30s")
	if err != nil {
		return nil, err
	}

	config.Redis = RedisConfig{
		Enabled:  redisEnabled,
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
		ListTTL:  redisTTL,
	}

	// Workspace configuration
	cacheTTL, err := getEnvDuration("WORKSPACE_CACHE_TTL", "60s")
	if err != nil {
		return nil, err
	}
	loadTimeout, err := getEnvDuration("WORKSPACE_LOAD_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	idleEviction, err := getEnvDuration("WORKSPACE_IDLE_EVICTION", "30m")
	if err != nil {
		return nil, err
	}
	feedSize, err := strconv.Atoi(getEnv("DASHBOARD_ACTIVITY_FEED_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_ACTIVITY_FEED_SIZE: %w", err)
	}
	topProjects, err := strconv.Atoi(getEnv("DASHBOARD_TOP_PROJECTS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_TOP_PROJECTS: %w", err)
	}

	config.Workspace = WorkspaceConfig{
		CacheTTL:         cacheTTL,
		LoadTimeout:      loadTimeout,
		IdleEviction:     idleEviction,
		ActivityFeedSize: feedSize,
		TopProjects:      topProjects,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME is invalid: %w", err)
	}
	if c.Workspace.CacheTTL <= 0 || c.Workspace.LoadTimeout <= 0 || c.Workspace.IdleEviction <= 0 {
		return fmt.Errorf("workspace durations must be positive")
	}
	if c.Workspace.ActivityFeedSize <= 0 || c.Workspace.TopProjects <= 0 {
		return fmt.Errorf("DASHBOARD_ACTIVITY_FEED_SIZE and DASHBOARD_TOP_PROJECTS must be positive")
	}
	if c.App.RateLimit < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	if c.Redis.Enabled && c.Redis.ListTTL <= 0 {
		return fmt.Errorf("REDIS_LIST_TTL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL onto a slog level; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
