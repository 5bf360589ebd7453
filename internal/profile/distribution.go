package profile

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// calculateSkewness computes sample skewness using the adjusted
// Fisher-Pearson coefficient.
func calculateSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubed := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumCubed += deviation * deviation * deviation
	}

	skewness := sumCubed / n
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skewness * correction
}

// calculateKurtosis computes sample kurtosis (normal distribution = 3).
func calculateKurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumFourth := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumFourth += deviation * deviation * deviation * deviation
	}

	kurtosis := sumFourth / n
	excess := kurtosis - 3
	if n > 3 {
		correction := (n - 1) / ((n - 2) * (n - 3))
		excess = excess*correction + 6/(n+1)
	}
	return excess + 3
}

// testNormality approximates a normality test from skewness and kurtosis.
// The combined statistic is referred to a chi-squared distribution with two
// degrees of freedom.
func testNormality(skewness, kurtosis float64, sampleSize int) (isNormal bool, pValue float64) {
	if sampleSize < 3 {
		return false, 1.0
	}

	testStat := math.Abs(skewness) + math.Abs(kurtosis-3)/2
	chiDist := distuv.ChiSquared{K: 2}
	pValue = 1 - chiDist.CDF(testStat*testStat)
	return pValue > 0.05, pValue
}

// Histogram is a uniform-bin distribution of a numeric column. Edges has
// one more entry than Counts; the last bin is closed on the right.
type Histogram struct {
	Edges  []float64
	Counts []int
}

// NewHistogram bins values into the given number of uniform bins. Returns
// nil for empty input; a constant column yields one bin holding everything.
func NewHistogram(values []float64, bins int) *Histogram {
	if len(values) == 0 || bins <= 0 {
		return nil
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return &Histogram{Edges: []float64{min, max}, Counts: []int{len(values)}}
	}

	width := (max - min) / float64(bins)
	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	edges[bins] = max

	counts := make([]int, bins)
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	return &Histogram{Edges: edges, Counts: counts}
}

// MaxCount returns the largest bin count, used for chart scaling.
func (h *Histogram) MaxCount() int {
	max := 0
	for _, c := range h.Counts {
		if c > max {
			max = c
		}
	}
	return max
}
