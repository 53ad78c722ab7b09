// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string `env:"PORT" envDefault:"8080"`
	ClientOrigin   string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	SessionSecret  string `env:"SESSION_SECRET" envDefault:"dev_secret_change_me"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`
	DatabaseURL    string `env:"DATABASE_URL"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`

	Report   Report   `envPrefix:"REPORT_"`
	Telegram Telegram `envPrefix:"TELEGRAM_"`
}

type Report struct {
	Timezone string `env:"TIMEZONE" envDefault:"Asia/Bangkok"`
}

type Telegram struct {
	BotToken string `env:"BOT_TOKEN"`
	ChatID   string `env:"CHAT_ID"`
}

// Configured reports whether both Telegram credentials are present.
func (t Telegram) Configured() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// Load reads an optional .env file, then parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
