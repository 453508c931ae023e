package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anrid/popu-ranking/pkg/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "./popu-pref.csv", cfg.Input)
	assert.Equal(t, stats.Years{Earlier: 2010, Later: 2015}, cfg.Years)
	assert.Equal(t, ",", cfg.Delimiter)
	assert.Equal(t, stats.FormatList, cfg.Format)
	assert.Equal(t, stats.DefaultLabel, cfg.Label)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv(InputEnv, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "popu-ranking.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	t.Setenv(InputEnv, "")

	path := filepath.Join(t.TempDir(), "popu-ranking.yaml")
	data := `
input: data/popu.tsv
years:
  earlier: 2000
  later: 2020
delimiter: "\t"
encoding: shift_jis
format: table
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/popu.tsv", cfg.Input)
	assert.Equal(t, stats.Years{Earlier: 2000, Later: 2020}, cfg.Years)
	assert.Equal(t, "\t", cfg.Delimiter)
	assert.Equal(t, "shift_jis", cfg.Encoding)
	assert.Equal(t, stats.FormatTable, cfg.Format)
	assert.Equal(t, stats.DefaultLabel, cfg.Label)
	assert.Equal(t, stats.Options{Delimiter: "\t", Encoding: "shift_jis"}, cfg.Options())
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popu-ranking.yaml")
	require.NoError(t, os.WriteFile(path, []byte("years: [oops"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv(InputEnv, "/data/other.csv")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data/other.csv", cfg.Input)
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv(InputEnv, "")

	path := filepath.Join(t.TempDir(), "conf", "popu-ranking.yaml")
	cfg := DefaultConfig()
	cfg.Years.Later = 2020
	cfg.Label = "ratio"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"empty input", func(c *Config) { c.Input = "" }},
		{"same years", func(c *Config) { c.Years.Later = c.Years.Earlier }},
		{"empty delimiter", func(c *Config) { c.Delimiter = "" }},
		{"unknown encoding", func(c *Config) { c.Encoding = "utf-16" }},
		{"unknown format", func(c *Config) { c.Format = "html" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
