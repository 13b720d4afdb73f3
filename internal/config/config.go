package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds server configuration loaded from the environment
type Config struct {
	Host        string `env:"HOST" envDefault:""`
	Port        int    `env:"PORT" envDefault:"8080"`
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`

	// Question generation
	GeneratorURL    string `env:"GENERATOR_URL"`
	GeneratorAPIKey string `env:"GENERATOR_API_KEY"`
	GeneratorModel  string `env:"GENERATOR_MODEL"`

	// Messaging provider credentials
	MessagesURL string `env:"MESSAGES_URL"`
	APIKey      string `env:"API_KEY"`
	APISecret   string `env:"API_SECRET"`
	FromNumber  string `env:"FROM_NUMBER"`

	// Voice credentials
	ApplicationID string `env:"APPLICATION_ID"`
	VoiceSecret   string `env:"VOICE_SECRET"`
}

// Parse loads configuration from environment variables
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
