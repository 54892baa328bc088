package sample

import (
	"math"
	"testing"

	"github.com/pthm-cable/meadow/flow"
	"github.com/pthm-cable/meadow/noise"
)

func TestFlowGridDimensionsAndOrder(t *testing.T) {
	f := flow.NewField(flow.DefaultFieldConfig(), noise.New(42))

	samples := FlowGrid(f, 100, 50, 25, 0, 0)

	// 5 columns (0..100) x 3 rows (0..50).
	if len(samples) != 15 {
		t.Fatalf("len(samples) = %d, want 15", len(samples))
	}
	if samples[0].X != 0 || samples[0].Y != 0 {
		t.Errorf("first sample at (%v, %v), want origin", samples[0].X, samples[0].Y)
	}
	// Row-major: sample 5 starts the second row.
	if samples[5].X != 0 || samples[5].Y != 25 {
		t.Errorf("sample 5 at (%v, %v), want (0, 25)", samples[5].X, samples[5].Y)
	}
	if last := samples[len(samples)-1]; last.X != 100 || last.Y != 50 {
		t.Errorf("last sample at (%v, %v), want (100, 50)", last.X, last.Y)
	}
}

func TestFlowGridMatchesDirectQueries(t *testing.T) {
	f := flow.NewField(flow.DefaultFieldConfig(), noise.New(42))
	o, err := flow.NewObstacle(50, 50, 20)
	if err != nil {
		t.Fatalf("NewObstacle: %v", err)
	}
	f.AddObstacle(o)

	samples := FlowGrid(f, 100, 100, 10, 3, 1.5)

	for _, s := range samples {
		vx, vy := f.Flow(s.X, s.Y, 1.5)
		if s.VX != vx || s.VY != vy {
			t.Fatalf("sample at (%v, %v) = (%v, %v), direct query = (%v, %v)",
				s.X, s.Y, s.VX, s.VY, vx, vy)
		}
		if s.Frame != 3 || s.Time != 1.5 {
			t.Fatalf("sample tagged frame=%d time=%v, want frame=3 time=1.5", s.Frame, s.Time)
		}
	}
}

func TestDensityGridBaseline(t *testing.T) {
	c, err := flow.NewPointClusterer(100, 100, flow.DefaultClusteringConfig(), 42)
	if err != nil {
		t.Fatalf("NewPointClusterer: %v", err)
	}

	for i, v := range DensityGrid(c, 20) {
		if v != 1.0 {
			t.Errorf("density sample %d = %v, want 1.0 without obstacles", i, v)
		}
	}
}

func TestPointsAnnotatesDensity(t *testing.T) {
	c, err := flow.NewPointClusterer(1000, 1000, flow.DefaultClusteringConfig(), 42)
	if err != nil {
		t.Fatalf("NewPointClusterer: %v", err)
	}
	o, err := flow.NewObstacle(500, 500, 50)
	if err != nil {
		t.Fatalf("NewObstacle: %v", err)
	}
	c.AddObstacle(o)

	points := c.GeneratePoints(50)
	samples := Points(c, points)

	if len(samples) != len(points) {
		t.Fatalf("len(samples) = %d, want %d", len(samples), len(points))
	}
	for i, s := range samples {
		if s.X != points[i].X || s.Y != points[i].Y {
			t.Errorf("sample %d at (%v, %v), want (%v, %v)", i, s.X, s.Y, points[i].X, points[i].Y)
		}
		if want := c.DensityAt(s.X, s.Y); math.Abs(s.Density-want) > 1e-12 {
			t.Errorf("sample %d density = %v, want %v", i, s.Density, want)
		}
	}
}
