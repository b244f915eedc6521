package config

import (
	"fmt"
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию игрового сервера.
type Config struct {
	// Настройки сервера
	Port           string   `envconfig:"SERVER_PORT" default:"4000"`
	LogLevel       string   `envconfig:"LOG_LEVEL" default:"info"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`

	// Настройки Redis
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	SaveStoreKey  string `envconfig:"SAVE_STORE_KEY" default:"got_saves_v2"`

	// Настройки AI (текстовая генерация)
	AIClientType string        `envconfig:"AI_CLIENT_TYPE" default:"openai"`
	AIBaseURL    string        `envconfig:"AI_BASE_URL" default:"https://openrouter.ai/api/v1"`
	AIAPIKey     string        `envconfig:"AI_API_KEY" default:""`
	AIModel      string        `envconfig:"AI_MODEL" default:"deepseek/deepseek-chat"`
	AITimeout    time.Duration `envconfig:"AI_TIMEOUT" default:"120s"`

	// Настройки генерации изображений (Gemini)
	GeminiAPIKey     string `envconfig:"GEMINI_API_KEY" default:""`
	GeminiImageModel string `envconfig:"GEMINI_IMAGE_MODEL" default:"gemini-2.0-flash-exp"`

	// Правила игры
	MaxTurns      int `envconfig:"MAX_TURNS" default:"15"`
	Act1End       int `envconfig:"ACT_1_END" default:"5"`
	Act2End       int `envconfig:"ACT_2_END" default:"10"`
	SaveMilestone int `envconfig:"SAVE_MILESTONE" default:"5"`
}

// LoadConfig загружает конфигурацию из переменных окружения.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	log.Printf("Конфигурация игрового сервера загружена:")
	log.Printf("  Port: %s", cfg.Port)
	log.Printf("  LogLevel: %s", cfg.LogLevel)
	log.Printf("  Redis Addr: %s (db %d, key %s)", cfg.RedisAddr, cfg.RedisDB, cfg.SaveStoreKey)
	log.Printf("  AI: %s / %s (base %s, timeout %v)", cfg.AIClientType, cfg.AIModel, cfg.AIBaseURL, cfg.AITimeout)
	log.Printf("  Image Model: %s", cfg.GeminiImageModel)
	log.Printf("  Turns: max %d, acts %d/%d, milestone %d", cfg.MaxTurns, cfg.Act1End, cfg.Act2End, cfg.SaveMilestone)

	return &cfg, nil
}
