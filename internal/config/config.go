package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"PriceBoard/internal/model"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
	Server      struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	Upstream struct {
		YahooHosts     []string      `yaml:"yahoo_hosts"`
		FrankfurterURL string        `yaml:"frankfurter_url"`
		Timeout        time.Duration `yaml:"timeout"`
	} `yaml:"upstream"`
	Cache struct {
		TTL time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		RunOnStart  bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Viewer struct {
		ServerURL   string        `yaml:"server_url"`
		Resource    string        `yaml:"resource"`
		Period      string        `yaml:"period"`
		Timeout     time.Duration `yaml:"timeout"`
		ChartHeight int           `yaml:"chart_height"`
		ChartWidth  int           `yaml:"chart_width"`
	} `yaml:"viewer"`
	Proxy string `yaml:"proxy"`
}

// Load reads .env (if present), then the YAML file (if present), then
// applies environment variable overrides and defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

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

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.Server.ListenAddr = v
	}
	if v := os.Getenv("YAHOO_HOSTS"); v != "" {
		c.Upstream.YahooHosts = strings.Split(v, ",")
	}
	if v := os.Getenv("FRANKFURTER_URL"); v != "" {
		c.Upstream.FrankfurterURL = v
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL: %w", err)
		}
		c.Cache.TTL = d
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		c.Schedule.RefreshCron = v
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RUN_ON_START: %w", err)
		}
		c.Schedule.RunOnStart = on
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("PRICEBOARD_URL"); v != "" {
		c.Viewer.ServerURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "production"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":5000"
	}
	if c.Upstream.FrankfurterURL == "" {
		c.Upstream.FrankfurterURL = "https://api.frankfurter.dev"
	}
	if c.Upstream.Timeout == 0 {
		c.Upstream.Timeout = 15 * time.Second
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = time.Hour
	}
	if c.Schedule.RefreshCron == "" {
		c.Schedule.RefreshCron = "0 0 * * * *"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/priceboard.db"
	}
	if c.Viewer.ServerURL == "" {
		c.Viewer.ServerURL = "http://localhost:5000"
	}
	if c.Viewer.Resource == "" {
		c.Viewer.Resource = "oil"
	}
	if c.Viewer.Period == "" {
		c.Viewer.Period = string(model.DefaultPeriod)
	}
	if c.Viewer.Timeout == 0 {
		c.Viewer.Timeout = 30 * time.Second
	}
	if c.Viewer.ChartHeight == 0 {
		c.Viewer.ChartHeight = 12
	}
	if c.Viewer.ChartWidth == 0 {
		c.Viewer.ChartWidth = 72
	}
}

// Validate checks values that defaults cannot fix.
func (c *Config) Validate() error {
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	if c.Upstream.Timeout < 0 {
		return fmt.Errorf("upstream.timeout must not be negative")
	}
	if c.Viewer.ChartHeight < 0 || c.Viewer.ChartWidth < 0 {
		return fmt.Errorf("viewer chart size must not be negative")
	}
	if _, err := model.ParsePeriod(c.Viewer.Period); err != nil {
		return fmt.Errorf("viewer.period: %w", err)
	}
	return nil
}
