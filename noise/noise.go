// Package noise provides a seeded coherent-noise engine with fractional
// Brownian motion accumulation in one, two, and three dimensions.
//
// Every Engine owns its generator; two engines created with the same seed
// produce bit-identical output across calls and process restarts. Callers
// that need independent reproducible sequences construct independent
// engines instead of sharing one.
package noise

import (
	"time"

	"github.com/ojrac/opensimplex-go"
)

// Params controls fbm accumulation. Frequency grows by Lacunarity per
// octave while amplitude shrinks by Persistence per octave.
type Params struct {
	Octaves     int
	Persistence float64
	Lacunarity  float64
}

// DefaultParams returns the standard fbm parameters.
func DefaultParams() Params {
	return Params{
		Octaves:     3,
		Persistence: 0.5,
		Lacunarity:  2.0,
	}
}

// Engine generates coherent noise values from a fixed seed.
type Engine struct {
	noise opensimplex.Noise
}

// New creates an engine seeded for reproducible output.
func New(seed int64) *Engine {
	return &Engine{noise: opensimplex.New(seed)}
}

// NewRandom creates an engine with a non-reproducible time-based seed.
func NewRandom() *Engine {
	return New(time.Now().UnixNano())
}

// Eval2 returns the raw single-octave noise value at (x, y), in [-1, 1].
func (e *Engine) Eval2(x, y float64) float64 {
	return e.noise.Eval2(x, y)
}

// Eval3 returns the raw single-octave noise value at (x, y, z), in [-1, 1].
func (e *Engine) Eval3(x, y, z float64) float64 {
	return e.noise.Eval3(x, y, z)
}

// FBM1 returns fbm noise along a single axis, in [-1, 1]. It is the
// two-dimensional field evaluated at y = 0.
func (e *Engine) FBM1(x float64, p Params) float64 {
	return e.FBM2(x, 0, p)
}

// FBM2 returns fbm noise at (x, y), in [-1, 1].
func (e *Engine) FBM2(x, y float64, p Params) float64 {
	octaves := p.Octaves
	if octaves < 1 {
		octaves = 1
	}

	var total, maxValue float64
	frequency := 1.0
	amplitude := 1.0
	for i := 0; i < octaves; i++ {
		total += e.noise.Eval2(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= p.Persistence
		frequency *= p.Lacunarity
	}

	// Dividing by the amplitude sum keeps the result in [-1, 1] for any
	// octave count.
	return total / maxValue
}

// FBM3 returns fbm noise at (x, y, z), in [-1, 1]. The third axis is
// typically a time or depth dimension for animated fields.
func (e *Engine) FBM3(x, y, z float64, p Params) float64 {
	octaves := p.Octaves
	if octaves < 1 {
		octaves = 1
	}

	var total, maxValue float64
	frequency := 1.0
	amplitude := 1.0
	for i := 0; i < octaves; i++ {
		total += e.noise.Eval3(x*frequency, y*frequency, z*frequency) * amplitude
		maxValue += amplitude
		amplitude *= p.Persistence
		frequency *= p.Lacunarity
	}

	return total / maxValue
}
