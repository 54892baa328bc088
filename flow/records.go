package flow

import (
	"fmt"
	"math"

	"github.com/pthm-cable/meadow/noise"
)

// Convenience constructors building fields and point sets from key-value
// records. Records are validated: missing optional fields take the
// documented defaults, while unknown or malformed fields return an error
// instead of being silently ignored.

// ObstacleFromRecord builds an obstacle from a record with required keys
// x, y, radius and optional keys strength, influence_radius.
func ObstacleFromRecord(rec map[string]float64) (Obstacle, error) {
	for key := range rec {
		switch key {
		case "x", "y", "radius", "strength", "influence_radius":
		default:
			return Obstacle{}, fmt.Errorf("unknown obstacle field %q", key)
		}
	}

	for _, key := range []string{"x", "y", "radius"} {
		v, ok := rec[key]
		if !ok {
			return Obstacle{}, fmt.Errorf("obstacle record missing required field %q", key)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Obstacle{}, fmt.Errorf("obstacle field %q is not finite", key)
		}
	}

	o, err := NewObstacle(rec["x"], rec["y"], rec["radius"])
	if err != nil {
		return Obstacle{}, err
	}
	if s, ok := rec["strength"]; ok {
		o = o.WithStrength(s)
	}
	if r, ok := rec["influence_radius"]; ok {
		o = o.WithInfluenceRadius(r)
	}
	return o, nil
}

// FieldConfigFromRecord applies a partial override record to the default
// field configuration. Recognized keys are noise_scale, flow_strength,
// octaves, persistence, and time_scale; anything else is an error.
func FieldConfigFromRecord(rec map[string]float64) (FieldConfig, error) {
	cfg := DefaultFieldConfig()
	for key, v := range rec {
		switch key {
		case "noise_scale":
			cfg.NoiseScale = v
		case "flow_strength":
			cfg.FlowStrength = v
		case "octaves":
			cfg.Octaves = int(v)
		case "persistence":
			cfg.Persistence = v
		case "time_scale":
			cfg.TimeScale = v
		default:
			return FieldConfig{}, fmt.Errorf("unknown flow config field %q", key)
		}
	}
	return cfg, nil
}

// ClusteringConfigFromRecord applies a partial override record to the
// default clustering configuration.
func ClusteringConfigFromRecord(rec map[string]float64) (ClusteringConfig, error) {
	cfg := DefaultClusteringConfig()
	for key, v := range rec {
		switch key {
		case "base_density":
			cfg.BaseDensity = v
		case "obstacle_density_multiplier":
			cfg.ObstacleDensityMultiplier = v
		case "min_distance":
			cfg.MinDistance = v
		case "cluster_falloff":
			cfg.ClusterFalloff = v
		case "edge_offset":
			cfg.EdgeOffset = v
		default:
			return ClusteringConfig{}, fmt.Errorf("unknown clustering config field %q", key)
		}
	}
	return cfg, nil
}

// NewFieldWithObstacles builds a flow field from obstacle records and an
// optional config override record (nil keeps every default). The canvas
// bounds are validated for consistency with the clustering constructors
// even though the field itself is unbounded. Seed 0 selects a
// non-reproducible noise engine.
func NewFieldWithObstacles(width, height float64, obstacles []map[string]float64, flowConfig map[string]float64, seed int64) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas bounds must be positive, got %vx%v", width, height)
	}

	cfg, err := FieldConfigFromRecord(flowConfig)
	if err != nil {
		return nil, err
	}

	var engine *noise.Engine
	if seed != 0 {
		engine = noise.New(seed)
	}

	field := NewField(cfg, engine)
	for i, rec := range obstacles {
		o, err := ObstacleFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, err)
		}
		field.AddObstacle(o)
	}
	return field, nil
}

// ClusteredPoints builds a PointClusterer from obstacle records and runs
// probabilistic generation for count points.
func ClusteredPoints(width, height float64, count int, obstacles []map[string]float64, seed int64) ([]Point, error) {
	clusterer, err := NewPointClusterer(width, height, DefaultClusteringConfig(), seed)
	if err != nil {
		return nil, err
	}
	for i, rec := range obstacles {
		o, err := ObstacleFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, err)
		}
		clusterer.AddObstacle(o)
	}
	return clusterer.GeneratePoints(count), nil
}
