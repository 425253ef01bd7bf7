package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.InDelta(t, 0.05, cfg.Significance.Alpha, 1e-12)
	assert.True(t, cfg.Significance.Bonferroni)
	assert.InDelta(t, 30, cfg.Significance.MinBase, 1e-12)
	assert.True(t, cfg.Weighting.Enabled)
	assert.Equal(t, 4, cfg.Engine.MaxConcurrency)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults with weight column are valid",
			mutate: func(c *Config) { c.Weighting.Column = "WEIGHT" },
		},
		{
			name:   "unweighted needs no column",
			mutate: func(c *Config) { c.Weighting.Enabled = false },
		},
		{
			name:    "alpha of zero rejected",
			mutate:  func(c *Config) { c.Weighting.Enabled = false; c.Significance.Alpha = 0 },
			wantErr: true,
		},
		{
			name:    "alpha of one rejected",
			mutate:  func(c *Config) { c.Weighting.Enabled = false; c.Significance.Alpha = 1 },
			wantErr: true,
		},
		{
			name:    "negative min base rejected",
			mutate:  func(c *Config) { c.Weighting.Enabled = false; c.Significance.MinBase = -1 },
			wantErr: true,
		},
		{
			name:    "weighting enabled without column rejected",
			mutate:  func(c *Config) { c.Weighting.Column = "" },
			wantErr: true,
		},
		{
			name:    "zero concurrency rejected",
			mutate:  func(c *Config) { c.Weighting.Enabled = false; c.Engine.MaxConcurrency = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_YAMLAndEnvLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crosstab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
significance:
  alpha: 0.1
  bonferroni: false
weighting:
  enabled: true
  column: WEIGHT
`), 0o644))

	t.Setenv("CROSSTAB_SIGNIFICANCE_MIN_BASE", "50")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.InDelta(t, 0.1, cfg.Significance.Alpha, 1e-12)
	assert.False(t, cfg.Significance.Bonferroni)
	assert.InDelta(t, 50, cfg.Significance.MinBase, 1e-12, "environment overrides the file")
	assert.Equal(t, "WEIGHT", cfg.Weighting.Column)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Setenv("CROSSTAB_WEIGHTING_ENABLED", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Weighting.Enabled)
	assert.InDelta(t, 0.05, cfg.Significance.Alpha, 1e-12)
}
