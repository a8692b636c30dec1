package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 500, cfg.Scrape.Parallel)
	require.Equal(t, 3, cfg.Scrape.Retries)
	require.Equal(t, "papers.csv", cfg.Output.Path)
	require.Len(t, cfg.Conferences, 3)
	require.Equal(t, "NeurIPS", cfg.Conferences[1].Name)
	require.Equal(t, 2006, cfg.Conferences[1].FirstYear)
	require.Empty(t, cfg.Server.Addr)
	require.Empty(t, cfg.DB.DSN)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.yaml")
	content := `
scrape:
  parallel: 64
  user_agent: test-bot/1.0
output:
  path: out.csv
server:
  addr: 127.0.0.1:9999
conferences:
  - name: ICML
    host: icml.cc
    first_year: 2017
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 64, cfg.Scrape.Parallel)
	require.Equal(t, "test-bot/1.0", cfg.Scrape.UserAgent)
	require.Equal(t, "out.csv", cfg.Output.Path)
	require.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	require.Len(t, cfg.Conferences, 1)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	base := func() Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		msg    string
	}{
		{"zero parallel", func(c *Config) { c.Scrape.Parallel = 0 }, "scrape.parallel"},
		{"zero retries", func(c *Config) { c.Scrape.Retries = 0 }, "scrape.retries"},
		{"empty user agent", func(c *Config) { c.Scrape.UserAgent = "" }, "user_agent"},
		{"empty output", func(c *Config) { c.Output.Path = "" }, "output.path"},
		{"no conferences", func(c *Config) { c.Conferences = nil }, "conference"},
		{"conference missing host", func(c *Config) { c.Conferences[0].Host = "" }, "name and host"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.ErrorContains(t, err, tt.msg)
		})
	}
}
