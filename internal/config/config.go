package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. The core pipeline takes no
// global configuration; everything here feeds the adapters around it.
type Config struct {
	Server struct {
		Addr string `yaml:"addr" envconfig:"LISTEN_ADDR"`
	} `yaml:"server"`
	WhatsApp struct {
		Token         string `yaml:"token" envconfig:"WA_TOKEN"`
		PhoneNumberID string `yaml:"phone_number_id" envconfig:"WA_PHONE_NUMBER_ID"`
		VerifyToken   string `yaml:"verify_token" envconfig:"WA_VERIFY_TOKEN"`
		APIBase       string `yaml:"api_base" envconfig:"WA_API_BASE"`
	} `yaml:"whatsapp"`
	Market struct {
		BaseURL     string `yaml:"base_url" envconfig:"MARKET_BASE_URL"`
		APIKey      string `yaml:"api_key" envconfig:"MARKET_API_KEY"`
		DefaultDays int    `yaml:"default_days" envconfig:"DEFAULT_DAYS"`
		MaxSymbols  int    `yaml:"max_symbols" envconfig:"MAX_SYMBOLS"`
	} `yaml:"market"`
	Digest struct {
		Cron      string   `yaml:"cron" envconfig:"DIGEST_CRON"`
		Watchlist []string `yaml:"watchlist" envconfig:"DIGEST_WATCHLIST"`
		To        string   `yaml:"to" envconfig:"DIGEST_TO"`
	} `yaml:"digest"`
	Proxy string `yaml:"proxy" envconfig:"HTTPS_PROXY"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides via envconfig. A .env file is honored when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

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
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Market.DefaultDays == 0 {
		cfg.Market.DefaultDays = 90
	}
	if cfg.Market.MaxSymbols == 0 {
		cfg.Market.MaxSymbols = 5
	}
	return cfg, nil
}

// WhatsAppEnabled reports whether the Cloud API sender can be constructed.
func (c *Config) WhatsAppEnabled() bool {
	return c.WhatsApp.Token != "" && c.WhatsApp.PhoneNumberID != ""
}

// Validate checks field ranges and cross-field requirements.
func (c *Config) Validate() error {
	if c.Market.DefaultDays < 60 || c.Market.DefaultDays > 1000 {
		return fmt.Errorf("market.default_days must be within [60,1000], got %d", c.Market.DefaultDays)
	}
	if c.Market.MaxSymbols < 1 || c.Market.MaxSymbols > 5 {
		return fmt.Errorf("market.max_symbols must be within [1,5], got %d", c.Market.MaxSymbols)
	}
	if (c.WhatsApp.Token == "") != (c.WhatsApp.PhoneNumberID == "") {
		return fmt.Errorf("whatsapp.token and whatsapp.phone_number_id must be set together")
	}
	if c.Digest.Cron != "" {
		if len(c.Digest.Watchlist) == 0 {
			return fmt.Errorf("digest.watchlist is required when digest.cron is set")
		}
		if c.Digest.To == "" {
			return fmt.Errorf("digest.to is required when digest.cron is set")
		}
		if !c.WhatsAppEnabled() {
			return fmt.Errorf("whatsapp credentials are required when digest.cron is set")
		}
	}
	return nil
}
