package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Storage drivers.
const (
	StorageDriverS3    = "s3"
	StorageDriverLocal = "local"
)

// Authentication modes.
const (
	AuthModeHeader = "header"
	AuthModeJWT    = "jwt"
)

type Config struct {
	Env             string
	Port            int
	APIPrefix       string
	ShutdownTimeout time.Duration

	Database DatabaseConfig
	Storage  StorageConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
	Metrics  MetricsConfig
	Royalty  RoyaltyConfig
}

type DatabaseConfig struct {
	URL          string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// StorageConfig selects and configures the object store used for uploads.
type StorageConfig struct {
	Driver            string
	Bucket            string
	Endpoint          string
	Region            string
	AccessKeyID       string
	SecretAccessKey   string
	PublicBaseURL     string
	LocalDir          string
	CacheControl      string
	MaxFileSizeBytes  int64
	AllowedExtensions []string
}

// AuthConfig controls how the miner identity is resolved from requests.
type AuthConfig struct {
	Mode       string
	CookieName string
	HeaderName string
	JWTSecret  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

// RoyaltyConfig holds the royalty due date announced to miners.
type RoyaltyConfig struct {
	DueDate string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = strings.TrimRight(v.GetString("API_PREFIX"), "/")
	cfg.ShutdownTimeout = parseDuration(v.GetString("SHUTDOWN_TIMEOUT"), 10*time.Second)

	cfg.Database = DatabaseConfig{
		URL:          v.GetString("DATABASE_URL"),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	maxFileSize := v.GetInt64("STORAGE_MAX_FILE_SIZE")
	if maxFileSize <= 0 {
		maxFileSize = 10 * 1024 * 1024
	}
	cfg.Storage = StorageConfig{
		Driver:            strings.ToLower(v.GetString("STORAGE_DRIVER")),
		Bucket:            v.GetString("STORAGE_BUCKET"),
		Endpoint:          strings.TrimRight(v.GetString("STORAGE_ENDPOINT"), "/"),
		Region:            v.GetString("STORAGE_REGION"),
		AccessKeyID:       v.GetString("STORAGE_ACCESS_KEY_ID"),
		SecretAccessKey:   v.GetString("STORAGE_SECRET_ACCESS_KEY"),
		PublicBaseURL:     strings.TrimRight(v.GetString("STORAGE_PUBLIC_BASE_URL"), "/"),
		LocalDir:          v.GetString("STORAGE_LOCAL_DIR"),
		CacheControl:      v.GetString("STORAGE_CACHE_CONTROL"),
		MaxFileSizeBytes:  maxFileSize,
		AllowedExtensions: splitAndTrim(strings.ToLower(v.GetString("LICENSE_ALLOWED_EXTENSIONS"))),
	}

	cfg.Auth = AuthConfig{
		Mode:       strings.ToLower(v.GetString("AUTH_MODE")),
		CookieName: v.GetString("AUTH_COOKIE_NAME"),
		HeaderName: v.GetString("AUTH_HEADER_NAME"),
		JWTSecret:  v.GetString("JWT_SECRET"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	// TODO: read the due date from the royalty table once it carries one.
	cfg.Royalty = RoyaltyConfig{DueDate: v.GetString("ROYALTY_DUE_DATE")}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageDriverS3, StorageDriverLocal:
	default:
		return errors.New("STORAGE_DRIVER must be one of s3, local")
	}
	switch c.Auth.Mode {
	case AuthModeHeader:
	case AuthModeJWT:
		if c.Auth.JWTSecret == "" {
			return errors.New("JWT_SECRET is required when AUTH_MODE=jwt")
		}
	default:
		return errors.New("AUTH_MODE must be one of header, jwt")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5000)
	v.SetDefault("API_PREFIX", "")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("STORAGE_DRIVER", StorageDriverLocal)
	v.SetDefault("STORAGE_BUCKET", "documents")
	v.SetDefault("STORAGE_ENDPOINT", "")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_ACCESS_KEY_ID", "")
	v.SetDefault("STORAGE_SECRET_ACCESS_KEY", "")
	v.SetDefault("STORAGE_PUBLIC_BASE_URL", "http://localhost:5000/uploads")
	v.SetDefault("STORAGE_LOCAL_DIR", "./uploads")
	v.SetDefault("STORAGE_CACHE_CONTROL", "max-age=3600")
	v.SetDefault("STORAGE_MAX_FILE_SIZE", 10*1024*1024)
	v.SetDefault("LICENSE_ALLOWED_EXTENSIONS", "pdf,png,jpg,jpeg")

	v.SetDefault("AUTH_MODE", AuthModeHeader)
	v.SetDefault("AUTH_COOKIE_NAME", "userId")
	v.SetDefault("AUTH_HEADER_NAME", "X-User-ID")
	v.SetDefault("JWT_SECRET", "")

	v.SetDefault("ROYALTY_DUE_DATE", "2025-03-15")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ENABLE_METRICS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
