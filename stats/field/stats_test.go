package field

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-heaviside/internal/testutil"
)

const tolerance = 1e-10

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCalculate_Constant(t *testing.T) {
	s := Calculate(testutil.DC(0.25, 1000))

	if s.Length != 1000 {
		t.Errorf("Length: got %d, want 1000", s.Length)
	}
	if !almostEqual(s.Mean, 0.25, tolerance) {
		t.Errorf("Mean: got %g, want 0.25", s.Mean)
	}
	if s.Variance != 0 {
		t.Errorf("Variance: got %g, want 0", s.Variance)
	}
	if !almostEqual(s.RMS, 0.25, tolerance) {
		t.Errorf("RMS: got %g, want 0.25", s.RMS)
	}
	if s.Max != 0.25 || s.MaxPos != 0 {
		t.Errorf("Max: got %g@%d, want 0.25@0", s.Max, s.MaxPos)
	}
}

func TestCalculate_BinaryMask(t *testing.T) {
	// Half ones: mean 0.5, variance 0.25.
	mask := []float64{1, 0, 1, 0, 1, 0, 1, 0}
	s := Calculate(mask)
	if !almostEqual(s.Mean, 0.5, tolerance) {
		t.Errorf("Mean: got %g, want 0.5", s.Mean)
	}
	if !almostEqual(s.Variance, 0.25, tolerance) {
		t.Errorf("Variance: got %g, want 0.25", s.Variance)
	}
	if !almostEqual(s.StdDev, 0.5, tolerance) {
		t.Errorf("StdDev: got %g, want 0.5", s.StdDev)
	}
	if s.Max != 1 || s.MaxPos != 0 {
		t.Errorf("Max: got %g@%d, want 1@0", s.Max, s.MaxPos)
	}
	if !almostEqual(s.Energy, 4, tolerance) {
		t.Errorf("Energy: got %g, want 4", s.Energy)
	}
}

func TestCalculate_Empty(t *testing.T) {
	s := Calculate([]float64{})
	if s.Length != 0 || s.Mean != 0 || s.Variance != 0 {
		t.Errorf("empty stats not zero: %+v", s)
	}
}

func TestCalculate_Float32(t *testing.T) {
	s := Calculate([]float32{1, 2, 3, 4})
	if !almostEqual(s.Mean, 2.5, tolerance) {
		t.Errorf("Mean: got %g, want 2.5", s.Mean)
	}
	if !almostEqual(s.Variance, 1.25, tolerance) {
		t.Errorf("Variance: got %g, want 1.25", s.Variance)
	}
}

func TestVarianceMatchesCalculate(t *testing.T) {
	values := testutil.NoisePlanes(4, 1, 4096)[0]
	want := Calculate(values).Variance
	got := Variance(values)
	if !almostEqual(got, want, 1e-12) {
		t.Errorf("Variance: got %g, want %g", got, want)
	}
	// Uniform [0,1): variance 1/12.
	if !almostEqual(got, 1.0/12, 5e-3) {
		t.Errorf("Variance: got %g, want ~%g", got, 1.0/12)
	}
}

func TestVarianceNonNegative(t *testing.T) {
	values := testutil.DC(0.1, 777)
	if v := Variance(values); v < 0 {
		t.Errorf("Variance: got %g, want >= 0", v)
	}
	if v := Variance([]float64{}); v != 0 {
		t.Errorf("Variance(empty): got %g, want 0", v)
	}
}

func TestMeanAndRMS(t *testing.T) {
	values := []float64{3, -4}
	if m := Mean(values); !almostEqual(m, -0.5, tolerance) {
		t.Errorf("Mean: got %g, want -0.5", m)
	}
	if r := RMS(values); !almostEqual(r, math.Sqrt(12.5), tolerance) {
		t.Errorf("RMS: got %g, want %g", r, math.Sqrt(12.5))
	}
	if Mean([]float64{}) != 0 || RMS([]float64{}) != 0 {
		t.Error("empty Mean/RMS not zero")
	}
}
