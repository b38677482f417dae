package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/paulmach/orb"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Confinement is the rectangle that every step endpoint must stay inside.
type Confinement struct {
	MinLng float64 `json:"minLng"`
	MinLat float64 `json:"minLat"`
	MaxLng float64 `json:"maxLng"`
	MaxLat float64 `json:"maxLat"`
}

// Bound returns the rectangle as an orb.Bound.
func (c Confinement) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{c.MinLng, c.MinLat},
		Max: orb.Point{c.MaxLng, c.MaxLat},
	}
}

// Contains reports whether p is inside the rectangle. Points on the
// boundary are inside.
func (c Confinement) Contains(p Point) bool {
	return c.Bound().Contains(p.orb())
}

// Config holds every tunable the planner uses. It is passed explicitly to
// each component.
type Config struct {
	StepLength    float64     `json:"stepLength"`    // degrees per move
	ArriveRadius  float64     `json:"arriveRadius"`  // degrees; must be < StepLength
	HeadingStep   int         `json:"headingStep"`   // degrees between legal headings
	MaxDeflection int         `json:"maxDeflection"` // degrees searched each way around a blocked heading
	MaxLegSteps   int         `json:"maxLegSteps"`
	MaxTourSteps  int         `json:"maxTourSteps"` // tours above this are not acceptable
	Confinement   Confinement `json:"confinement"`
	Workers       int         `json:"workers"`   // cost matrix parallelism; 0 = NumCPU
	CacheSize     int         `json:"cacheSize"` // legs kept in the LRU; 0 disables
}

// Drone confinement area around George Square, Edinburgh
var defaultConfinement = Confinement{
	MinLng: -3.192473,
	MinLat: 55.942617,
	MaxLng: -3.184319,
	MaxLat: 55.946233,
}

func DefaultConfig() Config {
	return Config{
		StepLength:    0.0003,
		ArriveRadius:  0.0002,
		HeadingStep:   10,
		MaxDeflection: 180,
		MaxLegSteps:   1000,
		MaxTourSteps:  150,
		Confinement:   defaultConfinement,
		CacheSize:     4096,
	}
}

// workers returns the effective cost matrix parallelism.
func (c Config) workers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// Validate checks the invariants the planner relies on.
func (c Config) Validate() error {
	switch {
	case c.StepLength <= 0:
		return fmt.Errorf("%w: stepLength must be positive, got %g", ErrInvalidConfig, c.StepLength)
	case c.ArriveRadius <= 0 || c.ArriveRadius >= c.StepLength:
		return fmt.Errorf("%w: arriveRadius must be in (0, stepLength), got %g", ErrInvalidConfig, c.ArriveRadius)
	case c.HeadingStep <= 0 || 360%c.HeadingStep != 0:
		return fmt.Errorf("%w: headingStep must divide 360, got %d", ErrInvalidConfig, c.HeadingStep)
	case c.MaxDeflection < c.HeadingStep || c.MaxDeflection > 180:
		return fmt.Errorf("%w: maxDeflection must be in [headingStep, 180], got %d", ErrInvalidConfig, c.MaxDeflection)
	case c.MaxLegSteps <= 0:
		return fmt.Errorf("%w: maxLegSteps must be positive, got %d", ErrInvalidConfig, c.MaxLegSteps)
	case c.Confinement.MinLng >= c.Confinement.MaxLng || c.Confinement.MinLat >= c.Confinement.MaxLat:
		return fmt.Errorf("%w: confinement is empty: %+v", ErrInvalidConfig, c.Confinement)
	case c.CacheSize < 0:
		return fmt.Errorf("%w: cacheSize must not be negative, got %d", ErrInvalidConfig, c.CacheSize)
	}
	return nil
}

// LoadConfig loads a Config from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadConfig(path string) (Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Config{}, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return Config{}, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
