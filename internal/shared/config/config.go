package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration. It is read once at startup and
// injected; nothing in the core reads the environment directly.
type Config struct {
	Port             string
	CORSAllowOrigins []string
	DataDir          string

	OpenRouterAPIKey string
	OpenRouterAPIURL string
	OpenRouterModel  string
	LLMTimeout       time.Duration
	LLMRetries       int
	LLMBaseDelay     time.Duration

	TogetherAPIURL string
	TogetherAPIKey string

	Debug bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of a local env file for dev convenience.
	_ = godotenv.Load()

	return Config{
		Port:             getEnv("PORT", "8080"),
		CORSAllowOrigins: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DataDir:          getEnv("DATA_DIR", "./data"),

		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterAPIURL: getEnv("OPENROUTER_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
		OpenRouterModel:  getEnv("OPENROUTER_MODEL", "mistralai/mistral-7b-instruct"),
		LLMTimeout:       getDurationMS("LLM_TIMEOUT_MS", 15000),
		LLMRetries:       getInt("LLM_RETRIES", 2),
		LLMBaseDelay:     getDurationMS("LLM_BASE_DELAY_MS", 500),

		TogetherAPIURL: os.Getenv("TOGETHER_API_URL"),
		TogetherAPIKey: os.Getenv("TOGETHER_API_KEY"),

		Debug: getBool("DEBUG", false),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func getDurationMS(key string, defMS int) time.Duration {
	return time.Duration(getInt(key, defMS)) * time.Millisecond
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return parsed
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
