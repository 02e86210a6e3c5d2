package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Netflix/go-env"
)

type Config struct {
	NovuAPIKey     string `env:"NOVU_API_KEY,required=true"`
	NovuAPIURL     string `env:"NOVU_API_URL,default=https://api.novu.co/v1"`
	HTTPTimeoutSec int    `env:"NOVU_HTTP_TIMEOUT_SEC,default=10"`
	APIPort        int    `env:"API_PORT,default=8080"`
	LogLevel       string `env:"LOG_LEVEL,default=info"`
}

func Load() (*Config, error) {
	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if strings.TrimSpace(cfg.NovuAPIKey) == "" {
		return nil, fmt.Errorf("failed to load config: NOVU_API_KEY is empty")
	}
	if cfg.HTTPTimeoutSec < 0 {
		return nil, fmt.Errorf("failed to load config: NOVU_HTTP_TIMEOUT_SEC must be >= 0")
	}
	return &cfg, nil
}

// HTTPTimeout is the per-request bound for outbound Novu calls; zero disables it.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSec) * time.Second
}
