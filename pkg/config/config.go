package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dcahoon3/mbr-shapefile-generator/pkg/export"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/observability"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/storage"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Storage configuration
	Storage storage.Config

	// Export pipeline configuration
	Export ExportConfig

	// Plugin discovery configuration
	Plugins PluginsConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// ExportConfig holds export pipeline settings
type ExportConfig struct {
	OutputDir   string
	Concurrency int
	KeyPrefix   string

	// Geometry cache
	CacheSize int
	CacheTTL  time.Duration
}

// PluginsConfig holds plugin discovery settings
type PluginsConfig struct {
	// Dirs are the directories scanned for plugin subdirectories.
	Dirs []string
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	// Logging
	LogLevel observability.LogLevel

	// Metrics
	MetricsEnabled bool

	// OpenTelemetry
	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Storage:       loadStorageConfig(),
		Export:        loadExportConfig(),
		Plugins:       loadPluginsConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("MBRSHAPE_HOST", "0.0.0.0"),
		Port:            getEnv("MBRSHAPE_PORT", "8080"),
		ReadTimeout:     getEnvDuration("MBRSHAPE_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("MBRSHAPE_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:     getEnvDuration("MBRSHAPE_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("MBRSHAPE_SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// loadStorageConfig loads storage configuration from environment
func loadStorageConfig() storage.Config {
	cfg := storage.DefaultConfig()

	if storageType := getEnv("MBRSHAPE_STORAGE_TYPE", ""); storageType != "" {
		cfg.Type = storageType
	}

	// SQLite config
	if sqlitePath := getEnv("MBRSHAPE_SQLITE_PATH", ""); sqlitePath != "" {
		cfg.SQLitePath = sqlitePath
	}

	// PostgreSQL config
	if pgURL := getEnv("MBRSHAPE_POSTGRES_URL", ""); pgURL != "" {
		cfg.PostgresURL = pgURL
	}
	if maxConns := getEnvInt("MBRSHAPE_POSTGRES_MAX_CONNS", 0); maxConns > 0 {
		cfg.PostgresMaxConns = maxConns
	}
	if minConns := getEnvInt("MBRSHAPE_POSTGRES_MIN_CONNS", 0); minConns > 0 {
		cfg.PostgresMinConns = minConns
	}
	if timeout := getEnvDuration("MBRSHAPE_POSTGRES_TIMEOUT", 0); timeout > 0 {
		cfg.PostgresTimeout = timeout
	}

	// Redis config
	if redisURL := getEnv("MBRSHAPE_REDIS_URL", ""); redisURL != "" {
		cfg.RedisURL = redisURL
	}
	if redisPassword := getEnv("MBRSHAPE_REDIS_PASSWORD", ""); redisPassword != "" {
		cfg.RedisPassword = redisPassword
	}
	if redisDB := getEnvInt("MBRSHAPE_REDIS_DB", -1); redisDB >= 0 {
		cfg.RedisDB = redisDB
	}
	if redisMaxRetries := getEnvInt("MBRSHAPE_REDIS_MAX_RETRIES", 0); redisMaxRetries > 0 {
		cfg.RedisMaxRetries = redisMaxRetries
	}
	if redisPoolSize := getEnvInt("MBRSHAPE_REDIS_POOL_SIZE", 0); redisPoolSize > 0 {
		cfg.RedisPoolSize = redisPoolSize
	}

	// S3 config
	if s3Endpoint := getEnv("MBRSHAPE_S3_ENDPOINT", ""); s3Endpoint != "" {
		cfg.S3Endpoint = s3Endpoint
	}
	if s3Region := getEnv("MBRSHAPE_S3_REGION", ""); s3Region != "" {
		cfg.S3Region = s3Region
	}
	if s3Bucket := getEnv("MBRSHAPE_S3_BUCKET", ""); s3Bucket != "" {
		cfg.S3Bucket = s3Bucket
	}
	if s3AccessKey := getEnv("MBRSHAPE_S3_ACCESS_KEY", ""); s3AccessKey != "" {
		cfg.S3AccessKey = s3AccessKey
	}
	if s3SecretKey := getEnv("MBRSHAPE_S3_SECRET_KEY", ""); s3SecretKey != "" {
		cfg.S3SecretKey = s3SecretKey
	}
	if s3UsePathStyle := getEnv("MBRSHAPE_S3_USE_PATH_STYLE", ""); s3UsePathStyle != "" {
		cfg.S3UsePathStyle = strings.ToLower(s3UsePathStyle) == "true"
	}

	// Filesystem artifact config
	if artifactRoot := getEnv("MBRSHAPE_ARTIFACT_ROOT", ""); artifactRoot != "" {
		cfg.ArtifactRoot = artifactRoot
	}

	// Cache config
	if cacheEnabled := getEnv("MBRSHAPE_CACHE_ENABLED", ""); cacheEnabled != "" {
		cfg.CacheEnabled = strings.ToLower(cacheEnabled) == "true"
	}

	return cfg
}

// loadExportConfig loads export pipeline configuration from environment
func loadExportConfig() ExportConfig {
	defaults := export.DefaultConfig()
	return ExportConfig{
		OutputDir:   getEnv("MBRSHAPE_OUTPUT_DIR", defaults.OutputDir),
		Concurrency: getEnvInt("MBRSHAPE_EXPORT_CONCURRENCY", defaults.Concurrency),
		KeyPrefix:   getEnv("MBRSHAPE_EXPORT_KEY_PREFIX", defaults.KeyPrefix),
		CacheSize:   getEnvInt("MBRSHAPE_GEOMETRY_CACHE_SIZE", 64),
		CacheTTL:    getEnvDuration("MBRSHAPE_GEOMETRY_CACHE_TTL", 15*time.Minute),
	}
}

// loadPluginsConfig loads plugin discovery configuration from environment
func loadPluginsConfig() PluginsConfig {
	dirs := getEnv("MBRSHAPE_PLUGIN_DIRS", "")
	cfg := PluginsConfig{}
	for _, d := range strings.Split(dirs, string(os.PathListSeparator)) {
		if d = strings.TrimSpace(d); d != "" {
			cfg.Dirs = append(cfg.Dirs, d)
		}
	}
	return cfg
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:           parseLogLevel(getEnv("MBRSHAPE_LOG_LEVEL", "info")),
		MetricsEnabled:     getEnvBool("MBRSHAPE_METRICS_ENABLED", true),
		OTelEnabled:        getEnvBool("MBRSHAPE_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("MBRSHAPE_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("MBRSHAPE_OTEL_SERVICE_NAME", "mbr-shapefile-generator"),
		OTelServiceVersion: getEnv("MBRSHAPE_OTEL_SERVICE_VERSION", "1.0.2"),
		OTelInsecure:       getEnvBool("MBRSHAPE_OTEL_INSECURE", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	switch c.Storage.Type {
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required for sqlite storage")
		}
	case "postgres":
		if c.Storage.PostgresURL == "" {
			return fmt.Errorf("postgres URL is required for postgres storage")
		}
	default:
		return fmt.Errorf("invalid storage type: %s (must be sqlite or postgres)", c.Storage.Type)
	}

	if c.Export.Concurrency <= 0 {
		return fmt.Errorf("export concurrency must be positive, got %d", c.Export.Concurrency)
	}

	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// ExporterConfig converts the export section into an exporter config.
func (c *Config) ExporterConfig() export.Config {
	return export.Config{
		OutputDir:   c.Export.OutputDir,
		Concurrency: c.Export.Concurrency,
		KeyPrefix:   c.Export.KeyPrefix,
	}
}

// parseLogLevel parses a log level string
func parseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "info":
		return observability.InfoLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.InfoLevel
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
