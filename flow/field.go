// Package flow computes time-varying flow vector fields from coherent
// noise and spatial point distributions whose density responds to circular
// obstacles. It produces numbers only; rendering, export, and animation
// loops are external collaborators.
package flow

import (
	"math"

	"github.com/pthm-cable/meadow/noise"
)

// FieldConfig holds flow field generation parameters.
type FieldConfig struct {
	NoiseScale   float64 // spatial frequency multiplier before noise sampling
	FlowStrength float64 // velocity magnitude scale
	Octaves      int     // fbm octaves
	Persistence  float64 // fbm amplitude decay per octave
	TimeScale    float64 // frequency multiplier on the time dimension
}

// DefaultFieldConfig returns the standard field parameters.
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		NoiseScale:   0.003,
		FlowStrength: 2.0,
		Octaves:      3,
		Persistence:  0.5,
		TimeScale:    0.01,
	}
}

// Multiplier applied to FlowStrength for the outward push inside an
// obstacle. Above 1 so the push dominates the base flow.
const insidePushFactor = 2.0

// Field is a continuous flow vector field derived from fbm noise and
// perturbed by obstacles. Queries are stateless: every call recomputes from
// the config, the engine, and the current obstacle list. Obstacle mutation
// is not safe concurrently with queries on the same Field.
type Field struct {
	cfg       FieldConfig
	engine    *noise.Engine
	obstacles []Obstacle
}

// NewField creates a flow field over the given noise engine. A nil engine
// gets a non-reproducible one.
func NewField(cfg FieldConfig, engine *noise.Engine) *Field {
	if engine == nil {
		engine = noise.NewRandom()
	}
	return &Field{cfg: cfg, engine: engine}
}

// Config returns the field configuration.
func (f *Field) Config() FieldConfig {
	return f.cfg
}

// Obstacles returns the current obstacle list in insertion order.
func (f *Field) Obstacles() []Obstacle {
	return f.obstacles
}

// AddObstacle appends an obstacle. Order does not affect results;
// contributions are summed.
func (f *Field) AddObstacle(o Obstacle) {
	f.obstacles = append(f.obstacles, o)
}

// ClearObstacles removes all obstacles.
func (f *Field) ClearObstacles() {
	f.obstacles = nil
}

// BaseFlow returns the unperturbed flow vector at (x, y) and time t. The
// noise value is stretched across two full turns before wrapping, so the
// resulting vector has magnitude equal to FlowStrength.
func (f *Field) BaseFlow(x, y, t float64) (vx, vy float64) {
	n := f.engine.FBM3(
		x*f.cfg.NoiseScale,
		y*f.cfg.NoiseScale,
		t*f.cfg.TimeScale,
		noise.Params{
			Octaves:     f.cfg.Octaves,
			Persistence: f.cfg.Persistence,
			Lacunarity:  2.0,
		},
	)

	angle := n * 4 * math.Pi
	return math.Cos(angle) * f.cfg.FlowStrength, math.Sin(angle) * f.cfg.FlowStrength
}

// Flow returns the flow vector at (x, y) and time t with obstacle
// deflection applied. Points at or beyond every influence radius get the
// base flow unchanged. Inside an obstacle the dominant term is an outward
// push scaled by the obstacle strength; across the influence ring the push
// decays smoothly to zero. Overlapping obstacle contributions are summed
// before being added to the base flow.
func (f *Field) Flow(x, y, t float64) (vx, vy float64) {
	vx, vy = f.BaseFlow(x, y, t)

	for _, o := range f.obstacles {
		dx := x - o.X
		dy := y - o.Y
		d := math.Hypot(dx, dy)

		if d >= o.InfluenceRadius {
			continue
		}
		if d == 0 {
			// Outward direction undefined at the exact center.
			continue
		}

		push := o.Strength * f.cfg.FlowStrength * insidePushFactor
		if d >= o.Radius {
			// Smoothstep falloff across the influence ring: full push at
			// the edge, zero at the influence radius.
			s := (d - o.Radius) / (o.InfluenceRadius - o.Radius)
			push *= 1 - smoothstep(s)
		}

		vx += dx / d * push
		vy += dy / d * push
	}

	return vx, vy
}

// FlowAngle returns the flow direction at (x, y) and time t, in (-pi, pi].
func (f *Field) FlowAngle(x, y, t float64) float64 {
	vx, vy := f.Flow(x, y, t)
	return math.Atan2(vy, vx)
}

func smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
