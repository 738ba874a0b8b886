package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret string

	OpenAIAPIKey string
	OpenAIModel  string

	// ImageHostProvider selects the hosting backend: "freeimage" or "minio".
	ImageHostProvider string
	FreeImageAPIKey   string
	MinioEndpoint     string
	MinioAccessKey    string
	MinioSecretKey    string
	MinioBucket       string
	MinioRegion       string
	MinioUseSSL       bool

	// AdapterTimeout bounds each outbound adapter call (upload, analysis).
	AdapterTimeout time.Duration

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/image_insight?charset=utf8mb4&parseTime=True&loc=Local"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		ImageHostProvider: getEnv("IMAGE_HOST_PROVIDER", "freeimage"),
		FreeImageAPIKey:   os.Getenv("FREEIMAGE_API_KEY"),
		MinioEndpoint:     getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:    os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:    os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:       getEnv("MINIO_BUCKET", "image-insight"),
		MinioRegion:       getEnv("MINIO_REGION", "us-east-1"),
		MinioUseSSL:       getEnvBool("MINIO_USE_SSL", false),

		AdapterTimeout: time.Duration(getEnvInt("ADAPTER_TIMEOUT_SECONDS", 30)) * time.Second,

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
