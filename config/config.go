package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime knob the server reads from the environment.
type Config struct {
	Addr       string        `env:"ADDR" envDefault:":8080"`
	SQLitePath string        `env:"SQLITE_PATH" envDefault:"app.db"`
	RedisAddr  string        `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	JWTSecret  string        `env:"JWT_SECRET" envDefault:"supersecret"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	CacheTTL   time.Duration `env:"CACHE_TTL" envDefault:"30s"`
	UploadDir  string        `env:"UPLOAD_DIR" envDefault:"public/images"`
	DailyQuota int           `env:"DAILY_QUOTA" envDefault:"2000"`
}

// Load parses configuration from environment variables, applying defaults
// for anything unset.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
