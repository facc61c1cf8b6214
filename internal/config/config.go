package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the bot-level settings. Node settings are parsed
// separately through lavalink.NodeConfigFromEnvironment.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required"`
	Prefix       string `env:"COMMAND_PREFIX" envDefault:"!"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads the .env file if present and parses the environment.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; the environment may be set directly
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
