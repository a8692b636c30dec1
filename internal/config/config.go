// Package config loads and validates scraper configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures every knob the scraper reads, loadable from a config
// file, PAPERS_* environment variables, or CLI flags bound by cmd.
type Config struct {
	Development bool               `mapstructure:"development"`
	Scrape      ScrapeConfig       `mapstructure:"scrape"`
	Conferences []ConferenceConfig `mapstructure:"conferences"`
	Output      OutputConfig       `mapstructure:"output"`
	Server      ServerConfig       `mapstructure:"server"`
	DB          DBConfig           `mapstructure:"db"`
}

// ScrapeConfig governs the fetch engine.
type ScrapeConfig struct {
	Parallel           int    `mapstructure:"parallel"`
	Retries            int    `mapstructure:"retries"`
	TimeoutSeconds     int    `mapstructure:"timeout_seconds"`
	UserAgent          string `mapstructure:"user_agent"`
	ProgressIntervalMs int    `mapstructure:"progress_interval_ms"`
}

// Timeout returns the per-request timeout.
func (s ScrapeConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// ProgressInterval returns the progress sampling interval.
func (s ScrapeConfig) ProgressInterval() time.Duration {
	return time.Duration(s.ProgressIntervalMs) * time.Millisecond
}

// ConferenceConfig describes one venue to scrape.
type ConferenceConfig struct {
	Name      string `mapstructure:"name"`
	Host      string `mapstructure:"host"`
	FirstYear int    `mapstructure:"first_year"`
}

// OutputConfig sets the CSV destination.
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig controls the optional status server; an empty address
// disables it.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// DBConfig controls the optional Postgres row sink; an empty DSN disables
// it.
type DBConfig struct {
	DSN   string `mapstructure:"dsn"`
	Table string `mapstructure:"table"`
}

// Load builds a Config from an optional file plus the environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PAPERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("development", true)
	v.SetDefault("scrape.parallel", 500)
	v.SetDefault("scrape.retries", 3)
	v.SetDefault("scrape.timeout_seconds", 30)
	v.SetDefault("scrape.user_agent", "icml-nips-iclr-dataset/1.0")
	v.SetDefault("scrape.progress_interval_ms", 2000)
	v.SetDefault("output.path", "papers.csv")
	v.SetDefault("db.table", "papers")
	v.SetDefault("conferences", []map[string]any{
		{"name": "ICML", "host": "icml.cc", "first_year": 2017},
		{"name": "NeurIPS", "host": "neurips.cc", "first_year": 2006},
		{"name": "ICLR", "host": "iclr.cc", "first_year": 2018},
	})
}

// Validate rejects configurations that would misbehave at runtime.
func (c Config) Validate() error {
	if c.Scrape.Parallel <= 0 {
		return fmt.Errorf("scrape.parallel must be > 0")
	}
	if c.Scrape.Retries <= 0 {
		return fmt.Errorf("scrape.retries must be > 0")
	}
	if c.Scrape.TimeoutSeconds <= 0 {
		return fmt.Errorf("scrape.timeout_seconds must be > 0")
	}
	if c.Scrape.UserAgent == "" {
		return fmt.Errorf("scrape.user_agent must be set")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path must be set")
	}
	if len(c.Conferences) == 0 {
		return fmt.Errorf("at least one conference must be configured")
	}
	for _, conf := range c.Conferences {
		if conf.Name == "" || conf.Host == "" {
			return fmt.Errorf("conference entries need both name and host")
		}
		if conf.FirstYear <= 0 {
			return fmt.Errorf("conference %s needs a positive first_year", conf.Name)
		}
	}
	return nil
}
