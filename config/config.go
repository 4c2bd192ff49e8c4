package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment `mapstructure:"-"`

	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Database  DatabaseConfig  `mapstructure:"database"`
	AI        AIConfig        `mapstructure:"ai"`
	Images    ImagesConfig    `mapstructure:"images"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`

	JWTSecret string `mapstructure:"jwt_secret"`
	LogLevel  string `mapstructure:"log_level"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StorageConfig selects the key-value backend: memory, redis or sql.
type StorageConfig struct {
	Driver    string        `mapstructure:"driver"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	DraftTTL  time.Duration `mapstructure:"draft_ttl"`
}

type RedisConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DatabaseConfig is used by the sql storage driver. Driver is sqlite or
// postgres; Path only applies to sqlite.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// BackendConfig points at one generation provider. An empty APIKey makes the
// backend answer with mock recipes.
type BackendConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type AIConfig struct {
	DefaultBackend string        `mapstructure:"default_backend"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Groq           BackendConfig `mapstructure:"groq"`
	Gemini         BackendConfig `mapstructure:"gemini"`
	OpenAI         BackendConfig `mapstructure:"openai"`
	VisionModel    string        `mapstructure:"vision_model"`

	// RequireCredentials reports a backend without an API key as a
	// configuration error instead of answering with mock recipes.
	RequireCredentials bool `mapstructure:"require_credentials"`
}

// ImagesConfig controls image generation and where generated images are
// copied. Uploads are skipped when Bucket is empty.
type ImagesConfig struct {
	Model      string        `mapstructure:"model"`
	Size       string        `mapstructure:"size"`
	Bucket     string        `mapstructure:"bucket"`
	Region     string        `mapstructure:"region"`
	PresignTTL time.Duration `mapstructure:"presign_ttl"`
}

type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

// Addr is the listen address of the HTTP server.
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// LoadConfig reads .env (when present), environment variables and secret
// files, applies defaults and validates the result.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Env = GetEnvironment()

	cfg.JWTSecret = resolveSecret(cfg.JWTSecret, "JWT_SECRET", "jwt_secret")
	cfg.Redis.Password = resolveSecret(cfg.Redis.Password, "REDIS_PASSWORD", "redis_password")
	cfg.Database.Password = resolveSecret(cfg.Database.Password, "DB_PASSWORD", "db_password")
	cfg.AI.Groq.APIKey = resolveSecret(cfg.AI.Groq.APIKey, "GROQ_API_KEY", "groq_api_key")
	cfg.AI.Gemini.APIKey = resolveSecret(cfg.AI.Gemini.APIKey, "GEMINI_API_KEY", "gemini_api_key")
	cfg.AI.OpenAI.APIKey = resolveSecret(cfg.AI.OpenAI.APIKey, "OPENAI_API_KEY", "openai_api_key")

	if cfg.JWTSecret == "" && (cfg.Env == Development || cfg.Env == Test) {
		cfg.JWTSecret = "dev-only-secret"
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envBindings maps config keys to the variable names used in deployment
// manifests.
var envBindings = map[string]string{
	"jwt_secret":             "JWT_SECRET",
	"log_level":              "LOG_LEVEL",
	"redis.url":              "REDIS_URL",
	"redis.password":         "REDIS_PASSWORD",
	"database.driver":        "DB_DRIVER",
	"database.path":          "DB_PATH",
	"database.host":          "DB_HOST",
	"database.port":          "DB_PORT",
	"database.user":          "DB_USER",
	"database.password":      "DB_PASSWORD",
	"database.name":          "DB_NAME",
	"database.ssl_mode":      "DB_SSL_MODE",
	"ai.default_backend":     "AI_BACKEND",
	"ai.groq.api_key":        "GROQ_API_KEY",
	"ai.gemini.api_key":      "GEMINI_API_KEY",
	"ai.openai.api_key":      "OPENAI_API_KEY",
	"images.bucket":          "S3_BUCKET_NAME",
	"images.region":          "AWS_REGION",
	"cors.origins":           "CORS_ORIGINS",
	"rate_limit.limit":       "RATE_LIMIT_REQUESTS",
	"rate_limit.window":      "RATE_LIMIT_WINDOW",
	"storage.driver":         "STORAGE_DRIVER",
	"server.port":            "SERVER_PORT",
	"server.host":            "SERVER_HOST",
	"ai.timeout":             "AI_TIMEOUT",
	"images.presign_ttl":     "S3_PRESIGN_TTL",
	"storage.draft_ttl":      "DRAFT_TTL",
	"rate_limit.enabled":     "RATE_LIMIT_ENABLED",
	"storage.key_prefix":     "STORAGE_KEY_PREFIX",
	"ai.vision_model":        "VISION_MODEL",
	"ai.require_credentials": "AI_REQUIRE_CREDENTIALS",
	"server.read_timeout":    "SERVER_READ_TIMEOUT",
	"server.write_timeout":   "SERVER_WRITE_TIMEOUT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 90*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.key_prefix", "recipeshare:")
	v.SetDefault("storage.draft_ttl", 24*time.Hour)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "recipeshare.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "recipeshare")
	v.SetDefault("database.ssl_mode", "disable")

	v.SetDefault("ai.default_backend", "groq")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.groq.api_key", "")
	v.SetDefault("ai.groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("ai.groq.model", "llama3-70b-8192")
	v.SetDefault("ai.gemini.api_key", "")
	v.SetDefault("ai.gemini.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("ai.gemini.model", "gemini-pro")
	v.SetDefault("ai.openai.api_key", "")
	v.SetDefault("ai.openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.openai.model", "gpt-4o-mini")
	v.SetDefault("ai.vision_model", "gpt-4o-mini")
	v.SetDefault("ai.require_credentials", false)

	v.SetDefault("images.model", "dall-e-3")
	v.SetDefault("images.size", "1024x1024")
	v.SetDefault("images.bucket", "")
	v.SetDefault("images.region", "us-east-1")
	v.SetDefault("images.presign_ttl", 0)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.limit", 20)
	v.SetDefault("rate_limit.window", time.Hour)

	v.SetDefault("cors.origins", []string{"http://localhost:5173"})

	v.SetDefault("jwt_secret", "")
	v.SetDefault("log_level", "info")
}

// resolveSecret returns value when set, then the file named by <env>_FILE,
// then the Docker secret called name.
func resolveSecret(value, env, name string) string {
	if value != "" {
		return value
	}
	if path := os.Getenv(env + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return readSecret(name)
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

// MaskKey keeps the first and last four characters of a credential for logs.
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
