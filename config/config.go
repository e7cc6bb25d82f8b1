package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers understood by the database package.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	defaultLLMURL   = "https://api.deepseek.com/v1/chat/completions"
	defaultLLMModel = "deepseek-chat"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string
	LogLevel    string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisURL string
	// GenerateRateLimit caps generation calls per user per hour; 0 disables it.
	GenerateRateLimit int

	// JWT configuration
	JWTSecret string

	LLM LLMConfig

	// Avatar storage
	S3Bucket  string
	AWSRegion string
	// AvatarURLTTL > 0 serves avatars through presigned URLs.
	AvatarURLTTL time.Duration

	ImageCheckTimeout time.Duration
}

// LLMConfig configures the chat completion backend.
type LLMConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

// DSN returns the lib/pq connection string for the postgres driver.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	env := GetEnvironment()
	cfg := &Config{Env: env}

	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
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

// loadDotEnv reads .env (or the file named by ENV_FILE) when present.
// Variables already set in the process environment win.
func loadDotEnv() error {
	file := os.Getenv("ENV_FILE")
	if file == "" {
		file = ".env"
	}
	if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", file, err)
	}
	return nil
}

// loadCIConfig reads everything from environment variables.
func loadCIConfig(cfg *Config) error {
	loadCommon(cfg, envFirst)

	cfg.DBPassword = firstNonEmpty(os.Getenv("TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	if cfg.DBDriver == DriverPostgres && cfg.DBPassword == "" {
		return fmt.Errorf("TEST_DB_PASSWORD environment variable is required in CI environment")
	}
	cfg.JWTSecret = firstNonEmpty(os.Getenv("TEST_JWT_SECRET"), os.Getenv("JWT_SECRET"))
	return nil
}

// loadDevConfig prefers environment variables and falls back to Docker
// secrets, then to local defaults.
func loadDevConfig(cfg *Config) {
	loadCommon(cfg, envFirst)
	cfg.DBPassword = envFirst("DB_PASSWORD", "db_password", "postgres")
	cfg.JWTSecret = envFirst("JWT_SECRET", "jwt_secret", "")
}

// loadProdConfig prefers Docker secrets over environment variables.
func loadProdConfig(cfg *Config) {
	loadCommon(cfg, secretFirst)
	cfg.DBPassword = secretFirst("DB_PASSWORD", "db_password", "")
	cfg.JWTSecret = secretFirst("JWT_SECRET", "jwt_secret", "")
}

type lookupFunc func(envKey, secret, fallback string) string

func loadCommon(cfg *Config, get lookupFunc) {
	cfg.ServerPort = get("SERVER_PORT", "server_port", "8080")
	cfg.ServerHost = get("SERVER_HOST", "server_host", "0.0.0.0")
	cfg.CORSOrigins = splitList(get("CORS_ORIGINS", "cors_origins", "*"))
	cfg.LogLevel = get("LOG_LEVEL", "log_level", "info")

	cfg.DBDriver = strings.ToLower(get("DB_DRIVER", "db_driver", DriverPostgres))
	cfg.DBHost = get("DB_HOST", "db_host", "localhost")
	cfg.DBPort = get("DB_PORT", "db_port", "5432")
	cfg.DBUser = get("DB_USER", "db_user", "postgres")
	cfg.DBName = get("DB_NAME", "db_name", "recipegen")
	cfg.DBSSLMode = get("DB_SSL_MODE", "db_ssl_mode", "disable")
	cfg.SQLitePath = get("SQLITE_PATH", "sqlite_path", "recipegen.db")

	cfg.RedisURL = get("REDIS_URL", "redis_url", "redis://localhost:6379/0")
	cfg.GenerateRateLimit = intSetting(get("GENERATE_RATE_LIMIT", "generate_rate_limit", ""), 20)

	cfg.LLM = LLMConfig{
		APIKey:  readLLMKey(get),
		APIURL:  get("LLM_API_URL", "llm_api_url", defaultLLMURL),
		Model:   get("LLM_MODEL", "llm_model", defaultLLMModel),
		Timeout: durationSetting(get("LLM_TIMEOUT", "llm_timeout", ""), 60*time.Second),
	}

	cfg.S3Bucket = get("S3_BUCKET_NAME", "s3_bucket_name", "recipegen-avatars")
	cfg.AWSRegion = get("AWS_REGION", "aws_region", "us-east-1")
	cfg.AvatarURLTTL = durationSetting(get("AVATAR_URL_TTL", "avatar_url_ttl", ""), 0)
	cfg.ImageCheckTimeout = durationSetting(get("IMAGE_CHECK_TIMEOUT", "image_check_timeout", ""), 5*time.Second)
}

// readLLMKey accepts the key directly, from a file named by LLM_API_KEY_FILE,
// or from the older DEEPSEEK_API_KEY variables.
func readLLMKey(get lookupFunc) string {
	if key := get("LLM_API_KEY", "llm_api_key", ""); key != "" {
		return key
	}
	if key := os.Getenv("DEEPSEEK_API_KEY"); key != "" {
		return key
	}
	for _, fileVar := range []string{"LLM_API_KEY_FILE", "DEEPSEEK_API_KEY_FILE"} {
		if path := os.Getenv(fileVar); path != "" {
			if data, err := os.ReadFile(path); err == nil {
				return strings.TrimSpace(string(data))
			}
		}
	}
	return ""
}

func envFirst(envKey, secret, fallback string) string {
	return firstNonEmpty(os.Getenv(envKey), readSecret(secret), fallback)
}

func secretFirst(envKey, secret, fallback string) string {
	return firstNonEmpty(readSecret(secret), os.Getenv(envKey), fallback)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// durationSetting accepts Go durations ("90s") or a bare number of seconds.
func intSetting(s string, fallback int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n >= 0 {
		return n
	}
	return fallback
}

func durationSetting(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
