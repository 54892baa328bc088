// Package config provides configuration loading and access for the flow
// field toolchain.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/meadow/flow"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all generation parameters.
type Config struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Flow       FlowConfig       `yaml:"flow"`
	Clustering ClusteringConfig `yaml:"clustering"`
	Obstacles  []ObstacleConfig `yaml:"obstacles"`
	Sampling   SamplingConfig   `yaml:"sampling"`
	Seed       int64            `yaml:"seed"`
}

// CanvasConfig holds the generation bounds.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FlowConfig holds flow field parameters.
type FlowConfig struct {
	NoiseScale   float64 `yaml:"noise_scale"`   // Spatial frequency before noise sampling
	FlowStrength float64 `yaml:"flow_strength"` // Velocity magnitude scale
	Octaves      int     `yaml:"octaves"`       // FBM octaves (detail level)
	Persistence  float64 `yaml:"persistence"`   // Amplitude multiplier per octave
	TimeScale    float64 `yaml:"time_scale"`    // Frequency multiplier on the time axis
}

// ClusteringConfig holds point generation parameters.
type ClusteringConfig struct {
	BaseDensity               float64 `yaml:"base_density"`                // Target points per unit area
	ObstacleDensityMultiplier float64 `yaml:"obstacle_density_multiplier"` // Peak boost at an obstacle edge
	MinDistance               float64 `yaml:"min_distance"`                // Minimum separation between points
	ClusterFalloff            float64 `yaml:"cluster_falloff"`             // Boost decay shape
	EdgeOffset                float64 `yaml:"edge_offset"`                 // Full-boost band width past the edge
}

// ObstacleConfig describes one circular obstacle. Strength and
// InfluenceRadius fall back to the obstacle defaults when omitted.
type ObstacleConfig struct {
	X               float64 `yaml:"x"`
	Y               float64 `yaml:"y"`
	Radius          float64 `yaml:"radius"`
	Strength        float64 `yaml:"strength"`
	InfluenceRadius float64 `yaml:"influence_radius"`
}

// SamplingConfig holds grid sampling and export parameters.
type SamplingConfig struct {
	GridStep   float64 `yaml:"grid_step"`   // Spacing between flow samples
	Frames     int     `yaml:"frames"`      // Number of time steps to sample
	TimeStep   float64 `yaml:"time_step"`   // Time advance per frame
	PointCount int     `yaml:"point_count"` // Points to generate
	GridPoints bool    `yaml:"grid_points"` // Use the deterministic grid generator
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used. Unknown
// fields in the user file are errors rather than being silently dropped.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Decode into the same struct - only fields present in the file
		// are overwritten.
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for construction-time errors.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas bounds must be positive, got %vx%v", c.Canvas.Width, c.Canvas.Height)
	}
	for i, o := range c.Obstacles {
		if o.Radius <= 0 {
			return fmt.Errorf("obstacle %d: radius must be positive, got %v", i, o.Radius)
		}
	}
	if c.Sampling.GridStep <= 0 {
		return fmt.Errorf("sampling grid_step must be positive, got %v", c.Sampling.GridStep)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// FieldConfig converts the flow section to the library type.
func (c *Config) FieldConfig() flow.FieldConfig {
	return flow.FieldConfig{
		NoiseScale:   c.Flow.NoiseScale,
		FlowStrength: c.Flow.FlowStrength,
		Octaves:      c.Flow.Octaves,
		Persistence:  c.Flow.Persistence,
		TimeScale:    c.Flow.TimeScale,
	}
}

// ClusterConfig converts the clustering section to the library type.
func (c *Config) ClusterConfig() flow.ClusteringConfig {
	return flow.ClusteringConfig{
		BaseDensity:               c.Clustering.BaseDensity,
		ObstacleDensityMultiplier: c.Clustering.ObstacleDensityMultiplier,
		MinDistance:               c.Clustering.MinDistance,
		ClusterFalloff:            c.Clustering.ClusterFalloff,
		EdgeOffset:                c.Clustering.EdgeOffset,
	}
}

// BuildObstacles converts the obstacle records to library obstacles,
// filling defaults for omitted strength and influence radius.
func (c *Config) BuildObstacles() ([]flow.Obstacle, error) {
	obstacles := make([]flow.Obstacle, 0, len(c.Obstacles))
	for i, rec := range c.Obstacles {
		o, err := flow.NewObstacle(rec.X, rec.Y, rec.Radius)
		if err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, err)
		}
		if rec.Strength != 0 {
			o = o.WithStrength(rec.Strength)
		}
		if rec.InfluenceRadius != 0 {
			o = o.WithInfluenceRadius(rec.InfluenceRadius)
		}
		obstacles = append(obstacles, o)
	}
	return obstacles, nil
}
