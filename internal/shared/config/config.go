package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"

	"wellbeing-backend/internal/wellbeing"
)

// Config holds application configuration.
type Config struct {
	Port               string
	Env                string
	CORSAllowOrigin    []string
	LogLevel           string
	UseMock            bool
	AIProvider         string
	OpenAIAPIKey       string
	GroqAPIKey         string
	OpenAIModel        string
	GroqModel          string
	OpenAIBaseURL      string
	GroqBaseURL        string
	PromptVersion      string
	LLMTemperature     float32
	LLMMaxTokens       int
	LLMTimeoutSeconds  int
	DatabaseURL        string
	RateLimitPerMinute float64
	RateLimitBurst     int
}

var defaults = map[string]any{
	"port":                  "8080",
	"env":                   "dev",
	"cors_allow_origins":    "http://localhost:5173",
	"log_level":             "info",
	"use_mock":              false,
	"ai_provider":           string(wellbeing.ProviderGroq),
	"openai_model":          "gpt-3.5-turbo",
	"groq_model":            "llama-3.3-70b-versatile",
	"openai_base_url":       "https://api.openai.com/v1",
	"groq_base_url":         "https://api.groq.com/openai/v1",
	"prompt_version":        "v1",
	"llm_temperature":       0.7,
	"llm_max_tokens":        500,
	"llm_timeout_seconds":   60,
	"rate_limit_per_minute": 20.0,
	"rate_limit_burst":      5,
}

// Keys that also accept the variable names used by the original browser build.
var aliases = map[string][]string{
	"use_mock":       {"USE_MOCK", "VITE_USE_MOCK"},
	"ai_provider":    {"AI_PROVIDER", "VITE_AI_PROVIDER"},
	"openai_api_key": {"OPENAI_API_KEY", "VITE_OPENAI_API_KEY"},
	"groq_api_key":   {"GROQ_API_KEY", "VITE_GROQ_API_KEY"},
}

// Load reads configuration from defaults, an optional YAML file, optional
// dotenv files and the environment, in increasing precedence.
func Load() Config {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	readConfigFile(v)
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(v, ".env", "cmd/.env")

	for key, envs := range aliases {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
	v.AutomaticEnv()

	cfg := fromViper(v)
	if cfg.Env == "production" && cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL not set in production; provider audit log kept in memory")
	}
	return cfg
}

func fromViper(v *viper.Viper) Config {
	return Config{
		Port:               v.GetString("port"),
		Env:                normalizeEnv(v.GetString("env")),
		CORSAllowOrigin:    splitAndTrim(v.GetString("cors_allow_origins")),
		LogLevel:           strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		UseMock:            v.GetBool("use_mock"),
		AIProvider:         strings.ToLower(strings.TrimSpace(v.GetString("ai_provider"))),
		OpenAIAPIKey:       strings.TrimSpace(v.GetString("openai_api_key")),
		GroqAPIKey:         strings.TrimSpace(v.GetString("groq_api_key")),
		OpenAIModel:        v.GetString("openai_model"),
		GroqModel:          v.GetString("groq_model"),
		OpenAIBaseURL:      v.GetString("openai_base_url"),
		GroqBaseURL:        v.GetString("groq_base_url"),
		PromptVersion:      v.GetString("prompt_version"),
		LLMTemperature:     float32(v.GetFloat64("llm_temperature")),
		LLMMaxTokens:       v.GetInt("llm_max_tokens"),
		LLMTimeoutSeconds:  v.GetInt("llm_timeout_seconds"),
		DatabaseURL:        strings.TrimSpace(v.GetString("database_url")),
		RateLimitPerMinute: v.GetFloat64("rate_limit_per_minute"),
		RateLimitBurst:     v.GetInt("rate_limit_burst"),
	}
}

// ProviderConfig derives the dispatcher input. Keys are reduced to presence flags.
func (c Config) ProviderConfig() wellbeing.ProviderConfig {
	return wellbeing.ProviderConfig{
		ForceMock:    c.UseMock,
		Preferred:    wellbeing.ParseProvider(c.AIProvider),
		HasOpenAIKey: c.OpenAIAPIKey != "",
		HasGroqKey:   c.GroqAPIKey != "",
	}
}

func readConfigFile(v *viper.Viper) {
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			log.Printf("config: read %s: %v", path, err)
		}
		return
	}
	v.SetConfigName("wellbeing")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("config: read wellbeing.yaml: %v", err)
		}
	}
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
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
