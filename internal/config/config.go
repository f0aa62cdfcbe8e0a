// Package config reads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port      string `env:"MEDBOARD_PORT"       envDefault:"8080"`
	DBPath    string `env:"MEDBOARD_DB_PATH"    envDefault:"data/medboard.db"`
	StaticDir string `env:"MEDBOARD_STATIC_DIR" envDefault:"web/static"`
	LogLevel  string `env:"MEDBOARD_LOG_LEVEL"  envDefault:"info"`

	GeminiAPIKey     string        `env:"GEMINI_API_KEY"`
	GeminiModel      string        `env:"MEDBOARD_GEMINI_MODEL"      envDefault:"gemini-2.5-flash"`
	AssistantRPS     float64       `env:"MEDBOARD_ASSISTANT_RPS"     envDefault:"1"`
	AssistantBurst   int           `env:"MEDBOARD_ASSISTANT_BURST"   envDefault:"3"`
	AssistantTimeout time.Duration `env:"MEDBOARD_ASSISTANT_TIMEOUT" envDefault:"45s"`

	FallbackLimit  int           `env:"MEDBOARD_FALLBACK_LIMIT"  envDefault:"30"`
	FallbackWindow time.Duration `env:"MEDBOARD_FALLBACK_WINDOW" envDefault:"10m"`

	ServerURL     string        `env:"MEDBOARD_SERVER_URL"     envDefault:"http://127.0.0.1:8080"`
	ClientTimeout time.Duration `env:"MEDBOARD_CLIENT_TIMEOUT" envDefault:"60s"`
}

// Load reads an optional .env file, then the process environment. Variables
// already set in the environment win over the file.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return Parse()
}

func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Port) == "" {
		return errors.New("MEDBOARD_PORT must not be empty")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return errors.New("MEDBOARD_DB_PATH must not be empty")
	}
	if cfg.AssistantRPS < 0 {
		return fmt.Errorf("MEDBOARD_ASSISTANT_RPS must be non-negative, got %v", cfg.AssistantRPS)
	}
	if cfg.AssistantBurst < 1 {
		return fmt.Errorf("MEDBOARD_ASSISTANT_BURST must be at least 1, got %d", cfg.AssistantBurst)
	}
	if cfg.AssistantTimeout <= 0 {
		return fmt.Errorf("MEDBOARD_ASSISTANT_TIMEOUT must be positive, got %s", cfg.AssistantTimeout)
	}
	if cfg.FallbackLimit < 0 {
		return fmt.Errorf("MEDBOARD_FALLBACK_LIMIT must be non-negative, got %d", cfg.FallbackLimit)
	}
	if cfg.FallbackLimit > 0 && cfg.FallbackWindow <= 0 {
		return fmt.Errorf("MEDBOARD_FALLBACK_WINDOW must be positive, got %s", cfg.FallbackWindow)
	}
	if cfg.ClientTimeout <= 0 {
		return fmt.Errorf("MEDBOARD_CLIENT_TIMEOUT must be positive, got %s", cfg.ClientTimeout)
	}
	return nil
}

func (cfg Config) AssistantConfigured() bool {
	return strings.TrimSpace(cfg.GeminiAPIKey) != ""
}
