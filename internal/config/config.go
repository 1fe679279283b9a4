// Package config содержит логику чтения конфигурации витрины аукциона.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/mmeshcher/auction-storefront/internal/model"
)

// Config содержит параметры конфигурации витрины аукциона.
type Config struct {
	RunAddress  string `env:"RUN_ADDRESS"`
	APIURL      string `env:"API_URL"`
	CDNURL      string `env:"CDN_URL"`
	LogLevel    string `env:"LOG_LEVEL"`
	HistorySize int    `env:"HISTORY_SIZE"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Значения из окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envAPIURL := cfg.APIURL
	envCDNURL := cfg.CDNURL
	envLogLevel := cfg.LogLevel
	envHistorySize := cfg.HistorySize

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.APIURL, "u", "", "auction API base URL")
	flag.StringVar(&cfg.CDNURL, "c", "", "CDN base URL for lot images")
	flag.StringVar(&cfg.LogLevel, "l", "info", "log level")
	flag.IntVar(&cfg.HistorySize, "s", model.DefaultHistorySize, "bid history size for lots without server history")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envAPIURL != "" {
		cfg.APIURL = envAPIURL
	}
	if envCDNURL != "" {
		cfg.CDNURL = envCDNURL
	}
	if envLogLevel != "" {
		cfg.LogLevel = envLogLevel
	}
	if envHistorySize != 0 {
		cfg.HistorySize = envHistorySize
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.HistorySize < 0 {
		return nil, fmt.Errorf("history size must not be negative: %d", cfg.HistorySize)
	}

	return cfg, nil
}
