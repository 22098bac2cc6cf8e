package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AI providers selectable through AI_PROVIDER.
const (
	ProviderOpenRouter = "openrouter"
	ProviderLorem      = "lorem"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	JWTExpiry time.Duration

	// AI generation
	AIProvider         string
	OpenRouterAPIKey   string
	OpenRouterAPIURL   string
	OpenRouterModel    string
	OpenRouterTimeout  time.Duration
	PublicSiteURL      string
	AppTitle           string
	AIGenerationLimit  int
	AIGenerationWindow time.Duration

	// Recipe export, disabled when S3BucketName is empty
	S3BucketName string
	AWSRegion    string
}

// LoadConfig creates a new Config instance with values from the environment, a .env file
// or Docker secrets, in that order of precedence.
func LoadConfig() (*Config, error) {
	loadDotEnv()

	env := GetEnvironment()
	cfg := &Config{Environment: env}

	switch env {
	case CI, Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv reads .env (or ENV_FILE) if present. Variables already set in the process
// environment are never overridden.
func loadDotEnv() {
	path := getEnv("ENV_FILE", ".env")
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("Warning: failed to load %s: %v", path, err)
	}
}

// loadDevConfig loads configuration for local development, tests and CI. Every value has
// a default so the server starts against a local docker-compose stack.
func loadDevConfig(cfg *Config) {
	loadCommon(cfg)
	cfg.DBUser = lookup("DB_USER", "db_user", "postgres")
	cfg.DBPassword = lookup("DB_PASSWORD", "db_password", "postgres")
	cfg.RedisPassword = lookup("REDIS_PASSWORD", "redis_password", "")
	cfg.JWTSecret = lookup("JWT_SECRET", "jwt_secret", "dev-secret-change-me")
	cfg.OpenRouterAPIKey = lookup("OPENROUTER_API_KEY", "openrouter_api_key", "")
}

// loadProdConfig loads configuration for production. Credentials have no defaults.
func loadProdConfig(cfg *Config) {
	loadCommon(cfg)
	cfg.DBUser = lookup("DB_USER", "db_user", "")
	cfg.DBPassword = lookup("DB_PASSWORD", "db_password", "")
	cfg.RedisPassword = lookup("REDIS_PASSWORD", "redis_password", "")
	cfg.JWTSecret = lookup("JWT_SECRET", "jwt_secret", "")
	cfg.OpenRouterAPIKey = lookup("OPENROUTER_API_KEY", "openrouter_api_key", "")
}

func loadCommon(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.CORSOrigins = getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"})

	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBName = getEnv("DB_NAME", "healthymeal")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")

	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisDB = getEnvInt("REDIS_DB", 0)
	cfg.RedisURL = getEnv("REDIS_URL", "")

	cfg.JWTExpiry = getEnvDuration("JWT_EXPIRY", 24*time.Hour)

	cfg.AIProvider = strings.ToLower(getEnv("AI_PROVIDER", ProviderOpenRouter))
	cfg.OpenRouterAPIURL = getEnv("OPENROUTER_API_URL", "https://openrouter.ai/api/v1/chat/completions")
	cfg.OpenRouterModel = getEnv("OPENROUTER_MODEL", "openai/gpt-4o")
	cfg.OpenRouterTimeout = getEnvDuration("OPENROUTER_TIMEOUT", 60*time.Second)
	cfg.PublicSiteURL = getEnv("PUBLIC_SITE_URL", "http://localhost:3000")
	cfg.AppTitle = getEnv("APP_TITLE", "HealthyMeal")
	cfg.AIGenerationLimit = getEnvInt("AI_GENERATION_LIMIT", 10)
	cfg.AIGenerationWindow = getEnvDuration("AI_GENERATION_WINDOW", time.Hour)

	cfg.S3BucketName = getEnv("S3_BUCKET_NAME", "")
	cfg.AWSRegion = getEnv("AWS_REGION", "us-east-1")
}

// DSN returns the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// ExportEnabled reports whether recipe export to S3 is configured.
func (c *Config) ExportEnabled() bool {
	return c.S3BucketName != ""
}

// lookup returns the environment variable envKey, falling back to the Docker secret
// secretName and then to def.
func lookup(envKey, secretName, def string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if v := readSecret(secretName); v != "" {
		return v
	}
	return def
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
