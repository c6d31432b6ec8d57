package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv                string
	LogLevel              slog.Level
	APIPort               string
	MaxUploadSize         int64
	PostgreSQLHost        string
	PostgreSQLPort        int64
	PostgreSQLUser        string
	PostgreSQLPassword    string
	PostgreSQLDatabase    string
	JWTSecret             string
	AccessTokenExpiration int64
	S3Endpoint            string
	S3Region              string
	S3AccessKey           string
	S3SecretKey           string
	S3Bucket              string
	S3PublicBaseURL       string
}

func LoadConfig() *Config {
	return &Config{
		AppEnv:                getEnv("APP_ENV", "development"),                      // Default development
		LogLevel:              getLogLevel(),                                         // Default INFO
		APIPort:               getEnv("API_PORT", "8080"),                            // Default 8080
		MaxUploadSize:         getEnvAsInt64("MAX_UPLOAD_SIZE", 5*1024*1024),         // Default 5 MB
		PostgreSQLHost:        getEnv("POSTGRESQL_HOST", "db"),                       // Default db
		PostgreSQLPort:        getEnvAsInt64("POSTGRESQL_PORT", 5432),                // Default 5432
		PostgreSQLUser:        getEnv("POSTGRESQL_USER", "medidir_user"),             // Default user
		PostgreSQLPassword:    getEnv("POSTGRESQL_PASSWORD", "medidir_password"),     // Default password
		PostgreSQLDatabase:    getEnv("POSTGRESQL_DATABASE", "medidir_db"),           // Default database name
		JWTSecret:             getEnv("JWT_SECRET", "medidir_secret"),                // Default secret key
		AccessTokenExpiration: getEnvAsInt64("ACCESS_TOKEN_EXPIRATION", 86400),       // Default 24 hours
		S3Endpoint:            getEnv("S3_ENDPOINT", "http://minio:9000"),            // Default MinIO endpoint
		S3Region:              getEnv("S3_REGION", "us-east-1"),                      // Default region
		S3AccessKey:           getEnv("S3_ACCESS_KEY", "minioadmin"),                 // Default MinIO root user
		S3SecretKey:           getEnv("S3_SECRET_KEY", "minioadmin"),                 // Default MinIO root password
		S3Bucket:              getEnv("S3_BUCKET", "public"),                         // Default public bucket
		S3PublicBaseURL:       getEnv("S3_PUBLIC_BASE_URL", "http://localhost:9000"), // Default public URL base
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
