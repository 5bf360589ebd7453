package profile

import (
	"math"
	"testing"
)

func TestNewHistogram(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	hist := NewHistogram(values, 5)
	if hist == nil {
		t.Fatal("expected a histogram")
	}

	if len(hist.Counts) != 5 {
		t.Fatalf("bins = %d, want 5", len(hist.Counts))
	}
	if len(hist.Edges) != 6 {
		t.Fatalf("edges = %d, want 6", len(hist.Edges))
	}
	if hist.Edges[0] != 0 || hist.Edges[5] != 10 {
		t.Errorf("edge range = [%v, %v], want [0, 10]", hist.Edges[0], hist.Edges[5])
	}

	total := 0
	for _, c := range hist.Counts {
		total += c
	}
	if total != len(values) {
		t.Errorf("counts sum to %d, want %d (every value binned exactly once)", total, len(values))
	}
	// The maximum lands in the last bin, not out of range.
	if hist.Counts[4] == 0 {
		t.Error("last bin should hold the maximum value")
	}
}

func TestNewHistogram_ConstantColumn(t *testing.T) {
	hist := NewHistogram([]float64{7, 7, 7, 7}, 30)
	if hist == nil {
		t.Fatal("expected a histogram")
	}
	if len(hist.Counts) != 1 || hist.Counts[0] != 4 {
		t.Errorf("constant column should yield one bin holding all 4 values, got %v", hist.Counts)
	}
}

func TestNewHistogram_Empty(t *testing.T) {
	if hist := NewHistogram(nil, 30); hist != nil {
		t.Errorf("empty input should yield nil, got %v", hist)
	}
}

func TestHistogramMaxCount(t *testing.T) {
	hist := &Histogram{Counts: []int{3, 9, 1}}
	if got := hist.MaxCount(); got != 9 {
		t.Errorf("MaxCount = %d, want 9", got)
	}
}

func TestCalculateSkewness(t *testing.T) {
	symmetric := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	if got := calculateSkewness(symmetric, 5, stdDevOf(symmetric, 5)); math.Abs(got) > 1e-9 {
		t.Errorf("skewness of symmetric data = %v, want ~0", got)
	}

	rightTailed := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 100}
	mean := meanOf(rightTailed)
	if got := calculateSkewness(rightTailed, mean, stdDevOf(rightTailed, mean)); got <= 0 {
		t.Errorf("skewness of right-tailed data = %v, want > 0", got)
	}
}

func TestCalculateSkewness_Degenerate(t *testing.T) {
	if got := calculateSkewness([]float64{1, 2}, 1.5, 0.5); got != 0 {
		t.Errorf("skewness with n<3 = %v, want 0", got)
	}
	if got := calculateSkewness([]float64{5, 5, 5, 5}, 5, 0); got != 0 {
		t.Errorf("skewness with zero variance = %v, want 0", got)
	}
}

func TestCalculateKurtosis_HeavyTails(t *testing.T) {
	heavy := []float64{-50, 1, 1, 1, 1, 1, 1, 1, 1, 50}
	mean := meanOf(heavy)
	light := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	lightMean := meanOf(light)

	heavyK := calculateKurtosis(heavy, mean, stdDevOf(heavy, mean))
	lightK := calculateKurtosis(light, lightMean, stdDevOf(light, lightMean))
	if heavyK <= lightK {
		t.Errorf("heavy-tailed kurtosis %v should exceed uniform kurtosis %v", heavyK, lightK)
	}
}

func TestTestNormality(t *testing.T) {
	// Skewness 0 and kurtosis 3 is the normal reference point.
	isNormal, p := testNormality(0, 3, 100)
	if !isNormal {
		t.Errorf("reference values should pass, p = %v", p)
	}

	isNormal, p = testNormality(5, 12, 100)
	if isNormal {
		t.Errorf("extreme values should fail, p = %v", p)
	}

	if isNormal, _ := testNormality(0, 3, 2); isNormal {
		t.Error("tiny samples should not be called normal")
	}
}

func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdDevOf(values []float64, mean float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += (v - mean) * (v - mean)
	}
	return math.Sqrt(sum / float64(len(values)))
}
