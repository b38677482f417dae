package main

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.0003, cfg.StepLength)
	assert.Equal(t, 0.0002, cfg.ArriveRadius)
	assert.Equal(t, 10, cfg.HeadingStep)
	assert.Equal(t, 150, cfg.MaxTourSteps)
	assert.Equal(t, runtime.NumCPU(), cfg.workers())
}

func TestLoadConfigPartial(t *testing.T) {
	path := writeConfig(t, "tuning.json", `{"stepLength": 0.0005, "workers": 3}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0005, cfg.StepLength)
	assert.Equal(t, 3, cfg.workers())
	assert.Equal(t, 0.0002, cfg.ArriveRadius, "omitted fields keep their defaults")
	assert.Equal(t, DefaultConfig().Confinement, cfg.Confinement)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "tuning.yaml", `{}`))
	assert.ErrorContains(t, err, ".json")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "broken.json", `{"stepLength": `))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "radius.json", `{"arriveRadius": 0.001}`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero step", func(c *Config) { c.StepLength = 0 }},
		{"radius equals step", func(c *Config) { c.ArriveRadius = c.StepLength }},
		{"heading step does not divide 360", func(c *Config) { c.HeadingStep = 7 }},
		{"deflection too wide", func(c *Config) { c.MaxDeflection = 190 }},
		{"deflection below one increment", func(c *Config) { c.MaxDeflection = 5 }},
		{"no leg steps", func(c *Config) { c.MaxLegSteps = 0 }},
		{"empty confinement", func(c *Config) { c.Confinement.MaxLng = c.Confinement.MinLng }},
		{"negative cache", func(c *Config) { c.CacheSize = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfinementContains(t *testing.T) {
	c := DefaultConfig().Confinement
	assert.True(t, c.Contains(Point{X: -3.188, Y: 55.944}))
	assert.True(t, c.Contains(Point{X: c.MinLng, Y: c.MaxLat}), "the boundary is inside")
	assert.False(t, c.Contains(Point{X: -3.195, Y: 55.944}))
	assert.False(t, c.Contains(Point{X: -3.188, Y: 55.947}))
}
