package noise

import (
	"math"
	"testing"
)

func TestSeededEngineIsDeterministic(t *testing.T) {
	p := DefaultParams()

	first := New(42).FBM2(0.5, 0.5, p)
	second := New(42).FBM2(0.5, 0.5, p)

	if first != second {
		t.Errorf("same seed produced %v and %v", first, second)
	}
}

func TestDifferentSeedsProduceDifferentValues(t *testing.T) {
	p := DefaultParams()

	a := New(42).FBM2(0.5, 0.5, p)
	b := New(123).FBM2(0.5, 0.5, p)

	if a == b {
		t.Errorf("seeds 42 and 123 both produced %v", a)
	}
}

func TestRepeatedQueriesMatch(t *testing.T) {
	e := New(42)
	p := DefaultParams()

	first := e.FBM2(0.5, 0.5, p)
	second := e.FBM2(0.5, 0.5, p)

	if first != second {
		t.Errorf("repeated query produced %v then %v", first, second)
	}
}

func TestFBMOutputRange(t *testing.T) {
	e := New(7)
	coords := []struct{ x, y, z float64 }{
		{0, 0, 0},
		{0.5, 0.5, 0.5},
		{-3.7, 12.1, 0.3},
		{100.25, -250.5, 42},
		{1e4, 1e4, 1e3},
	}

	for octaves := 1; octaves <= 10; octaves++ {
		p := Params{Octaves: octaves, Persistence: 0.5, Lacunarity: 2.0}
		for _, c := range coords {
			for _, v := range []float64{
				e.FBM1(c.x, p),
				e.FBM2(c.x, c.y, p),
				e.FBM3(c.x, c.y, c.z, p),
			} {
				if v < -1 || v > 1 {
					t.Fatalf("octaves=%d at (%v,%v,%v): value %v outside [-1,1]",
						octaves, c.x, c.y, c.z, v)
				}
			}
		}
	}
}

func TestFBM1CollapsesToFBM2AtYZero(t *testing.T) {
	e := New(42)

	tests := []struct {
		name string
		x    float64
		p    Params
	}{
		{"defaults", 0.5, DefaultParams()},
		{"single octave", 1.25, Params{Octaves: 1, Persistence: 0.5, Lacunarity: 2.0}},
		{"many octaves", -7.5, Params{Octaves: 6, Persistence: 0.7, Lacunarity: 2.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, want := e.FBM1(tt.x, tt.p), e.FBM2(tt.x, 0, tt.p); got != want {
				t.Errorf("FBM1(%v) = %v, FBM2(%v, 0) = %v", tt.x, got, tt.x, want)
			}
		})
	}
}

func TestNoiseIsCoherent(t *testing.T) {
	e := New(42)
	p := DefaultParams()

	a := e.FBM2(0.5, 0.5, p)
	b := e.FBM2(0.501, 0.5, p)

	if diff := math.Abs(a - b); diff >= 0.1 {
		t.Errorf("0.001 perturbation changed value by %v, want < 0.1", diff)
	}

	// Single-octave coherence along each axis.
	single := Params{Octaves: 1, Persistence: 0.5, Lacunarity: 2.0}
	base := e.FBM3(0.5, 0.5, 0.5, single)
	for i, v := range []float64{
		e.FBM3(0.501, 0.5, 0.5, single),
		e.FBM3(0.5, 0.501, 0.5, single),
		e.FBM3(0.5, 0.5, 0.501, single),
	} {
		if diff := math.Abs(base - v); diff >= 0.1 {
			t.Errorf("axis %d: 0.001 perturbation changed value by %v, want < 0.1", i, diff)
		}
	}
}

func TestNewRandomProducesUsableEngine(t *testing.T) {
	e := NewRandom()
	p := DefaultParams()

	v := e.FBM2(0.5, 0.5, p)
	if v < -1 || v > 1 {
		t.Errorf("value %v outside [-1,1]", v)
	}
}
