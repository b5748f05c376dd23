package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Domain limits and defaults shared across packages.
const (
	// MaxDetailsLength bounds the free-text body of a complaint.
	MaxDetailsLength = 2000

	// DefaultPageSize and DefaultSortBy drive the admin list endpoint
	// when the caller does not specify pagination or ordering.
	DefaultPageSize = 10
	DefaultSortBy   = "created_at"

	// TokenTTL is the lifetime of an issued login token.
	TokenTTL = 24 * time.Hour

	// ResetTokenTTL is how long a password-reset token stays valid in Redis.
	ResetTokenTTL = time.Hour
)

// AllowedAttachmentTypes lists the media types accepted for complaint uploads.
var AllowedAttachmentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig holds the Redis connection settings used for pub/sub and reset tokens.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MinIOConfig holds object storage settings for complaint attachments.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// SMTPConfig holds outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Config is the application configuration, populated from environment variables.
// A .env file can be loaded beforehand with godotenv; real environment variables
// take precedence either way.
type Config struct {
	Port        string
	JWTSecret   string
	AdminSecret string
	FrontendURL string
	Database    DatabaseConfig
	Redis       RedisConfig
	MinIO       MinIOConfig
	SMTP        SMTPConfig
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "5000"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		AdminSecret: getEnv("ADMIN_SECRET", ""),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "complaintsdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "complaint-uploads"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@college-portal.local"),
		},
	}
}

// DSN builds the Postgres connection string for GORM.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
