package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Load reads configuration from the environment. A .env file is honored
// when present, real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
