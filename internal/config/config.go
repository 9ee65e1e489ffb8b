package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Asset identifies one tracked instrument.
type Asset struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
	Days   int    `yaml:"days"`
}

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Assets struct {
		Cryptos []Asset `yaml:"cryptos"`
		Stocks  []Asset `yaml:"stocks"`
	} `yaml:"assets"`
	Schedule struct {
		AnalysisCron string `yaml:"analysis_cron"`
		PruneCron    string `yaml:"prune_cron"`
	} `yaml:"schedule"`
	Alerts struct {
		RetentionHours int `yaml:"retention_hours"`
	} `yaml:"alerts"`
	Prediction struct {
		Days     int `yaml:"days"`
		Lookback int `yaml:"lookback"`
	} `yaml:"prediction"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("ANALYSIS_CRON"); v != "" {
		cfg.Schedule.AnalysisCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("ALERT_RETENTION_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil {
			cfg.Alerts.RetentionHours = hours
		}
	}

	// Defaults
	if len(cfg.Assets.Cryptos) == 0 && len(cfg.Assets.Stocks) == 0 {
		cfg.Assets.Cryptos = []Asset{
			{Name: "Bitcoin", Symbol: "bitcoin", Days: 365},
			{Name: "Ethereum", Symbol: "ethereum", Days: 365},
			{Name: "Cardano", Symbol: "cardano", Days: 365},
			{Name: "Solana", Symbol: "solana", Days: 365},
			{Name: "Ripple", Symbol: "ripple", Days: 365},
		}
		cfg.Assets.Stocks = []Asset{
			{Name: "Apple", Symbol: "AAPL", Days: 365},
			{Name: "Microsoft", Symbol: "MSFT", Days: 365},
			{Name: "Google", Symbol: "GOOGL", Days: 365},
			{Name: "Tesla", Symbol: "TSLA", Days: 365},
			{Name: "Amazon", Symbol: "AMZN", Days: 365},
		}
	}
	for i := range cfg.Assets.Cryptos {
		if cfg.Assets.Cryptos[i].Days == 0 {
			cfg.Assets.Cryptos[i].Days = 365
		}
	}
	for i := range cfg.Assets.Stocks {
		if cfg.Assets.Stocks[i].Days == 0 {
			cfg.Assets.Stocks[i].Days = 365
		}
	}
	if cfg.Schedule.AnalysisCron == "" {
		cfg.Schedule.AnalysisCron = "0 0 * * * *" // hourly
	}
	if cfg.Schedule.PruneCron == "" {
		cfg.Schedule.PruneCron = "0 30 0 * * *" // daily, after midnight
	}
	if cfg.Alerts.RetentionHours == 0 {
		cfg.Alerts.RetentionHours = 24
	}
	if cfg.Prediction.Days == 0 {
		cfg.Prediction.Days = 30
	}
	if cfg.Prediction.Lookback == 0 {
		cfg.Prediction.Lookback = 60
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/marketpulse.db"
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Assets.Cryptos) == 0 && len(c.Assets.Stocks) == 0 {
		return fmt.Errorf("at least one asset is required")
	}
	for _, a := range append(append([]Asset{}, c.Assets.Cryptos...), c.Assets.Stocks...) {
		if a.Symbol == "" {
			return fmt.Errorf("asset %q: symbol is required", a.Name)
		}
		if a.Days < 0 {
			return fmt.Errorf("asset %q: days must not be negative", a.Name)
		}
	}
	if c.Alerts.RetentionHours < 0 {
		return fmt.Errorf("alerts.retention_hours must not be negative")
	}
	if c.Prediction.Days < 0 || c.Prediction.Lookback < 0 {
		return fmt.Errorf("prediction settings must not be negative")
	}
	// Telegram is optional: without credentials the report goes to the log.
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when bot_token is set")
	}
	return nil
}
