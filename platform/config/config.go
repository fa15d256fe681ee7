// Package config reads service settings from the environment. A .env file in
// the working directory is loaded first when present.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	HTTPAddr       string   `env:"HTTP_ADDR" envDefault:":4101"`
	SocketAddr     string   `env:"SOCKET_ADDR" envDefault:":8000"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBAddr     string `env:"DB_ADDR" envDefault:"localhost:5432"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"monopoly"`
	RedisURL   string `env:"REDIS_URL" envDefault:"localhost:6379"`
	JWTSecret  string `env:"JWT_SECRET,notEmpty"`

	// TurnTimeout of zero disables the turn deadline.
	TurnTimeout  time.Duration `env:"TURN_TIMEOUT" envDefault:"2m"`
	AskTimeout   time.Duration `env:"ASK_TIMEOUT" envDefault:"3s"`
	StartingCash int           `env:"STARTING_CASH" envDefault:"1500"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.StartingCash < 0 {
		return Config{}, fmt.Errorf("parse env: STARTING_CASH must not be negative, got %d", cfg.StartingCash)
	}
	if cfg.AskTimeout <= 0 {
		return Config{}, fmt.Errorf("parse env: ASK_TIMEOUT must be positive, got %s", cfg.AskTimeout)
	}
	return cfg, nil
}
