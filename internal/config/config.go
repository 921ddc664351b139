package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// AI provider
	AIProvider    string `yaml:"ai_provider"`
	OpenAIAPIKey  string `yaml:"-"`
	OpenAIBaseURL string `yaml:"openai_base_url"`
	OpenAIModel   string `yaml:"openai_model"`
	GeminiAPIKey  string `yaml:"-"`
	GeminiModel   string `yaml:"gemini_model"`
	BedrockModel  string `yaml:"bedrock_model"`
	MaxTokens     int    `yaml:"max_tokens"`

	// Email
	EmailProvider   string `yaml:"email_provider"`
	SendGridAPIKey  string `yaml:"-"`
	SendGridBaseURL string `yaml:"sendgrid_base_url"`
	EmailFromEmail  string `yaml:"email_from_email"`
	EmailFromName   string `yaml:"email_from_name"`
	FeedbackSubject string `yaml:"feedback_subject"`
	OTPSubject      string `yaml:"otp_subject"`

	// AWS (SES, Bedrock)
	AWSRegion    string `yaml:"aws_region"`
	AWSAccessKey string `yaml:"-"`
	AWSSecretKey string `yaml:"-"`

	// Supabase
	SupabaseURL           string `yaml:"supabase_url"`
	SupabaseServiceKey    string `yaml:"-"`
	SupabaseStorageBucket string `yaml:"supabase_storage_bucket"`

	// Persistence
	StoreDriver string `yaml:"store_driver"`
	DatabaseURL string `yaml:"-"`
	SQLitePath  string `yaml:"sqlite_path"`
	RedisURL    string `yaml:"-"`

	// Auth
	SessionSecret  string        `yaml:"-"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
	OTPTTL         time.Duration `yaml:"otp_ttl"`
	OTPMaxAttempts int           `yaml:"otp_max_attempts"`
	OTPMaxSends    int           `yaml:"otp_max_sends"`

	// Server
	Port           string   `yaml:"port"`
	Environment    string   `yaml:"environment"`
	BaseURL        string   `yaml:"base_url"`
	LogLevel       string   `yaml:"log_level"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`
}

// Load reads .env (if present), then CONFIG_FILE (if set), then the
// environment. Environment variables win over the file.
func Load() (*Config, error) {
	cfg, err := LoadUnvalidated()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadUnvalidated is Load without the server startup checks. The CLI uses
// it because it needs neither a session secret nor a store.
func LoadUnvalidated() (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		AIProvider:    "openai",
		OpenAIBaseURL: "https://api.openai.com/v1",
		OpenAIModel:   "gpt-4o",
		GeminiModel:   "gemini-2.5-flash",
		BedrockModel:  "anthropic.claude-3-5-sonnet-20240620-v1:0",
		MaxTokens:     4096,

		EmailProvider:   "sendgrid",
		SendGridBaseURL: "https://api.sendgrid.com/v3",
		EmailFromEmail:  "assistant@psalia.ai",
		EmailFromName:   "Psalia Creative Evaluator",
		FeedbackSubject: "Creative Feedback Report: {{ filename }}",
		OTPSubject:      "Your Verification Code",

		AWSRegion: "us-east-1",

		SupabaseStorageBucket: "creative-exports",

		StoreDriver: "sqlite",
		SQLitePath:  "creative-evaluator.db",

		SessionTTL:     12 * time.Hour,
		OTPTTL:         10 * time.Minute,
		OTPMaxAttempts: 5,
		OTPMaxSends:    5,

		Port:           "8080",
		Environment:    "development",
		BaseURL:        "http://localhost:8080",
		LogLevel:       "info",
		AllowedOrigins: []string{"*"},
		MaxUploadBytes: 10 << 20,
	}
}

// LoadFile overlays non-secret settings from a YAML file.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.AIProvider = getEnv("AI_PROVIDER", c.AIProvider)
	c.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", c.OpenAIBaseURL)
	c.OpenAIModel = getEnv("OPENAI_MODEL", c.OpenAIModel)
	c.GeminiAPIKey = getEnv("GEMINI_API_KEY", c.GeminiAPIKey)
	c.GeminiModel = getEnv("GEMINI_MODEL", c.GeminiModel)
	c.BedrockModel = getEnv("BEDROCK_MODEL_ID", c.BedrockModel)
	c.MaxTokens = getEnvInt("AI_MAX_TOKENS", c.MaxTokens)

	c.EmailProvider = getEnv("EMAIL_PROVIDER", c.EmailProvider)
	c.SendGridAPIKey = getEnv("SENDGRID_API_KEY", c.SendGridAPIKey)
	c.SendGridBaseURL = getEnv("SENDGRID_BASE_URL", c.SendGridBaseURL)
	c.EmailFromEmail = getEnv("EMAIL_FROM_EMAIL", c.EmailFromEmail)
	c.EmailFromName = getEnv("EMAIL_FROM_NAME", c.EmailFromName)

	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.AWSAccessKey = getEnv("AWS_ACCESS_KEY_ID", c.AWSAccessKey)
	c.AWSSecretKey = getEnv("AWS_SECRET_ACCESS_KEY", c.AWSSecretKey)

	c.SupabaseURL = getEnv("SUPABASE_URL", c.SupabaseURL)
	c.SupabaseServiceKey = getEnv("SUPABASE_SERVICE_KEY", c.SupabaseServiceKey)
	c.SupabaseStorageBucket = getEnv("SUPABASE_STORAGE_BUCKET", c.SupabaseStorageBucket)

	c.StoreDriver = getEnv("STORE_DRIVER", c.StoreDriver)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.SQLitePath = getEnv("SQLITE_PATH", c.SQLitePath)
	c.RedisURL = getEnv("REDIS_URL", c.RedisURL)

	c.SessionSecret = getEnv("SESSION_SECRET", c.SessionSecret)
	c.SessionTTL = getEnvDuration("SESSION_TTL", c.SessionTTL)
	c.OTPTTL = getEnvDuration("OTP_TTL", c.OTPTTL)
	c.OTPMaxAttempts = getEnvInt("OTP_MAX_ATTEMPTS", c.OTPMaxAttempts)
	c.OTPMaxSends = getEnvInt("OTP_MAX_SENDS", c.OTPMaxSends)

	c.Port = getEnv("PORT", c.Port)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.BaseURL = getEnv("BASE_URL", c.BaseURL)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	c.MaxUploadBytes = int64(getEnvInt("MAX_UPLOAD_BYTES", int(c.MaxUploadBytes)))
}

// Validate checks only what the server cannot start without. Provider
// credentials are checked per request so a missing key surfaces as a
// configuration error on the endpoint that needs it.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	switch c.StoreDriver {
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case "supabase":
		if c.SupabaseURL == "" || c.SupabaseServiceKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_KEY are required for the supabase store")
		}
	case "sqlite":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.AIProvider {
	case "openai", "gemini", "bedrock":
	default:
		return fmt.Errorf("unknown AI_PROVIDER %q", c.AIProvider)
	}
	switch c.EmailProvider {
	case "sendgrid", "ses":
	default:
		return fmt.Errorf("unknown EMAIL_PROVIDER %q", c.EmailProvider)
	}
	if c.OTPTTL <= 0 {
		return fmt.Errorf("OTP_TTL must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
