// Package sample bulk-samples flow fields and density fields onto regular
// grids for export. Rows are filled in parallel; sampling only reads the
// field, so the obstacle list must not be mutated while a grid is built.
package sample

import (
	"math"

	"github.com/dgravesa/go-parallel/parallel"

	"github.com/pthm-cable/meadow/flow"
)

// FlowSample is one flow field measurement.
type FlowSample struct {
	Frame int     `csv:"frame"`
	Time  float64 `csv:"time"`
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
	VX    float64 `csv:"vx"`
	VY    float64 `csv:"vy"`
	Angle float64 `csv:"angle"`
}

// PointSample is one generated point with its local density.
type PointSample struct {
	X       float64 `csv:"x"`
	Y       float64 `csv:"y"`
	Density float64 `csv:"density"`
}

// FlowGrid samples the field on a step-spaced grid covering
// [0,width] x [0,height] at time t, tagged with the given frame index.
// Samples are ordered row-major regardless of worker scheduling.
func FlowGrid(f *flow.Field, width, height, step float64, frame int, t float64) []FlowSample {
	cols := gridCount(width, step)
	rows := gridCount(height, step)

	samples := make([]FlowSample, rows*cols)
	parallel.For(rows, func(row, _ int) {
		y := float64(row) * step
		for col := 0; col < cols; col++ {
			x := float64(col) * step
			vx, vy := f.Flow(x, y, t)
			samples[row*cols+col] = FlowSample{
				Frame: frame,
				Time:  t,
				X:     x,
				Y:     y,
				VX:    vx,
				VY:    vy,
				Angle: math.Atan2(vy, vx),
			}
		}
	})
	return samples
}

// DensityGrid samples the clusterer's density field on a step-spaced grid.
func DensityGrid(c *flow.PointClusterer, step float64) []float64 {
	cols := gridCount(c.Width(), step)
	rows := gridCount(c.Height(), step)

	values := make([]float64, rows*cols)
	parallel.For(rows, func(row, _ int) {
		y := float64(row) * step
		for col := 0; col < cols; col++ {
			values[row*cols+col] = c.DensityAt(float64(col)*step, y)
		}
	})
	return values
}

// Points annotates generated points with their local density.
func Points(c *flow.PointClusterer, points []flow.Point) []PointSample {
	samples := make([]PointSample, len(points))
	for i, p := range points {
		samples[i] = PointSample{X: p.X, Y: p.Y, Density: c.DensityAt(p.X, p.Y)}
	}
	return samples
}

// gridCount returns the number of step-spaced samples covering [0, extent].
func gridCount(extent, step float64) int {
	n := int(extent/step) + 1
	if n < 1 {
		n = 1
	}
	return n
}
