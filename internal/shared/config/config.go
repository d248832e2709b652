package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration. It is built once at startup and never mutated.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	LLMProvider    string
	LLMAPIKey      string
	LLMModel       string
	LLMBaseURL     string
	LLMTemperature float64
	LLMMaxTokens   int
	LLMTimeout     time.Duration

	UploadDir     string
	OutputDir     string
	MaxUploadSize int64

	LogLevel   string
	AppName    string
	AppVersion string
}

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Port:            "8000",
		Env:             "dev",
		CORSAllowOrigin: []string{"*"},
		LLMProvider:     ProviderGemini,
		LLMTemperature:  0.7,
		LLMMaxTokens:    4096,
		LLMTimeout:      120 * time.Second,
		UploadDir:       "uploads",
		OutputDir:       "outputs",
		MaxUploadSize:   10 * 1024 * 1024,
		LogLevel:        "info",
		AppName:         "Job Application Optimizer",
		AppVersion:      "1.0.0",
	}
}

// Load reads .env files, the optional CONFIG_FILE yaml, then environment overrides.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.LLMProvider = NormalizeProvider(cfg.LLMProvider)
	cfg.Env = normalizeEnv(cfg.Env)
	if cfg.LLMModel == "" {
		cfg.LLMModel = DefaultModel(cfg.LLMProvider)
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = providerKey(cfg.LLMProvider)
	}
	if cfg.Env == "production" && cfg.LLMAPIKey == "" {
		return Config{}, fmt.Errorf("LLM_API_KEY is required in production")
	}
	return cfg, nil
}

// IsDevLike reports whether placeholder fallbacks are allowed.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func applyEnv(cfg *Config) error {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Env = getEnv("ENV", cfg.Env)
	if raw := os.Getenv("CORS_ALLOW_ORIGINS"); raw != "" {
		cfg.CORSAllowOrigin = splitAndTrim(raw)
	}
	cfg.LLMProvider = getEnv("LLM_PROVIDER", cfg.LLMProvider)
	cfg.LLMAPIKey = getEnv("LLM_API_KEY", cfg.LLMAPIKey)
	cfg.LLMModel = getEnv("LLM_MODEL", cfg.LLMModel)
	cfg.LLMBaseURL = getEnv("LLM_BASE_URL", cfg.LLMBaseURL)
	cfg.UploadDir = getEnv("UPLOAD_DIR", cfg.UploadDir)
	cfg.OutputDir = getEnv("OUTPUT_DIR", cfg.OutputDir)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.AppName = getEnv("APP_NAME", cfg.AppName)
	cfg.AppVersion = getEnv("APP_VERSION", cfg.AppVersion)

	if raw := os.Getenv("LLM_TEMPERATURE"); raw != "" {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("LLM_TEMPERATURE: %w", err)
		}
		cfg.LLMTemperature = v
	}
	if raw := os.Getenv("LLM_MAX_TOKENS"); raw != "" {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("LLM_MAX_TOKENS: %w", err)
		}
		cfg.LLMMaxTokens = v
	}
	if raw := os.Getenv("LLM_TIMEOUT_SECONDS"); raw != "" {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("LLM_TIMEOUT_SECONDS: %w", err)
		}
		cfg.LLMTimeout = time.Duration(v) * time.Second
	}
	if raw := os.Getenv("MAX_UPLOAD_SIZE"); raw != "" {
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_SIZE: %w", err)
		}
		cfg.MaxUploadSize = v
	}
	return nil
}

// NormalizeProvider maps aliases onto the supported provider names.
func NormalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "anthropic", "claude":
		return ProviderAnthropic
	case "openai":
		return ProviderOpenAI
	default:
		return ProviderGemini
	}
}

// DefaultModel returns the model used when LLM_MODEL is unset.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return "claude-3-7-sonnet-latest"
	case ProviderOpenAI:
		return "gpt-4o-mini"
	default:
		return "gemini-flash-latest"
	}
}

func providerKey(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	case ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
