package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	s := Summarize("density", values)

	if s.Label != "density" {
		t.Errorf("label = %q, want \"density\"", s.Label)
	}
	if s.Count != 10 {
		t.Errorf("count = %d, want 10", s.Count)
	}
	if math.Abs(s.Mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", s.Mean)
	}
	if s.Min != 0.1 || s.Max != 1.0 {
		t.Errorf("min/max = %v/%v, want 0.1/1.0", s.Min, s.Max)
	}
	if s.P50 < 0.4 || s.P50 > 0.7 {
		t.Errorf("p50 = %v, want near 0.55", s.P50)
	}
	if s.P10 > s.P50 || s.P50 > s.P90 {
		t.Errorf("percentiles not ordered: p10=%v p50=%v p90=%v", s.P10, s.P50, s.P90)
	}
	if s.Std <= 0 {
		t.Errorf("std = %v, want > 0", s.Std)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize("empty", nil)

	if s.Count != 0 {
		t.Errorf("count = %d, want 0", s.Count)
	}
	if s.Mean != 0 || s.Std != 0 || s.Min != 0 || s.Max != 0 {
		t.Error("empty input should produce a zero summary")
	}
}

func TestSummarizeSingleValue(t *testing.T) {
	s := Summarize("single", []float64{5.0})

	if s.Mean != 5.0 || s.Min != 5.0 || s.Max != 5.0 || s.P50 != 5.0 {
		t.Errorf("single-value summary = %+v, want all 5.0", s)
	}
	if s.Std != 0 {
		t.Errorf("std = %v, want 0 for a single value", s.Std)
	}
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Summarize("order", values)

	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input mutated: %v", values)
	}
}
