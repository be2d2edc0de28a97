package config

import (
	"os"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Env      string
	LogLevel string

	// OpsPort serves /healthz and /metrics.
	OpsPort string

	TelegramToken string

	// CatalogPath points at the parsed showroom catalog (vehicles, intents,
	// response templates, thresholds).
	CatalogPath string
	// ArtifactsDir holds the pre-trained intent model, the two vectorizers
	// and the retrieval corpus. All four files must be present.
	ArtifactsDir string

	SessionBackend string // "memory" or "redis"
	SessionTTL     time.Duration
	RedisAddr      string
	RedisPassword  string

	StartMessage string
	HelpMessage  string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		OpsPort: getEnv("OPS_PORT", "8081"),

		TelegramToken: getEnv("TELEGRAM_TOKEN", ""),

		CatalogPath:  getEnv("CATALOG_PATH", "configs/catalog.json"),
		ArtifactsDir: getEnv("ARTIFACTS_DIR", "artifacts"),

		SessionBackend: strings.ToLower(strings.TrimSpace(getEnv("SESSION_BACKEND", "memory"))),
		SessionTTL:     getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		RedisAddr:      getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),

		StartMessage: getEnv("START_MESSAGE",
			"Привет! Я помогу подобрать автомобиль: модели, цены, тест-драйв. Напишите, что вас интересует."),
		HelpMessage: getEnv("HELP_MESSAGE",
			"Я отвечаю на вопросы о наших автомобилях: цена, наличие, характеристики, тест-драйв. "+
				"Команда /stats покажет статистику диалога."),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
