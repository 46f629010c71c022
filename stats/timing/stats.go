// Package timing summarizes repeated duration measurements, such as the
// per-call seconds collected by the benchmark harness.
package timing

import "math"

// Stats holds summary statistics of a sample of durations in seconds.
type Stats struct {
	Count    int
	Total    float64
	Mean     float64
	Min      float64
	MinPos   int
	Max      float64
	MaxPos   int
	Variance float64 // population variance
	StdDev   float64
	Skewness float64
}

// Calculate computes all statistics in a single pass using Welford's online
// algorithm. An empty sample yields the zero Stats.
func Calculate(samples []float64) Stats {
	s := NewStreamingStats()
	s.Update(samples)

	return s.Result()
}

// Total returns the sum of the samples using Kahan summation.
func Total(samples []float64) float64 {
	var sum, c float64
	for _, x := range samples {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum
}

// StreamingStats accumulates statistics one block at a time. Feeding the
// same samples in any block split gives the same result as [Calculate].
type StreamingStats struct {
	n      int
	mean   float64
	m2     float64
	m3     float64
	sum    float64
	comp   float64
	maxVal float64
	maxPos int
	minVal float64
	minPos int
}

// NewStreamingStats creates an empty accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds a block of samples.
func (s *StreamingStats) Update(samples []float64) {
	for _, x := range samples {
		s.n++
		ni := float64(s.n)

		delta := x - s.mean
		deltaN := delta / ni
		term1 := delta * deltaN * float64(s.n-1)

		// M3 must be updated before M2.
		s.m3 += term1*deltaN*(ni-2) - 3*deltaN*s.m2
		s.m2 += term1
		s.mean += deltaN

		y := x - s.comp
		t := s.sum + y
		s.comp = (t - s.sum) - y
		s.sum = t

		if s.n == 1 || x > s.maxVal {
			s.maxVal = x
			s.maxPos = s.n - 1
		}
		if s.n == 1 || x < s.minVal {
			s.minVal = x
			s.minPos = s.n - 1
		}
	}
}

// Count returns the number of samples seen so far.
func (s *StreamingStats) Count() int {
	return s.n
}

// Result computes the statistics of everything added so far.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return Stats{}
	}

	nf := float64(s.n)
	variance := s.m2 / nf

	var skewness float64
	if variance > 0 {
		skewness = (s.m3 / nf) / (variance * math.Sqrt(variance))
	}

	return Stats{
		Count:    s.n,
		Total:    s.sum,
		Mean:     s.mean,
		Min:      s.minVal,
		MinPos:   s.minPos,
		Max:      s.maxVal,
		MaxPos:   s.maxPos,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Skewness: skewness,
	}
}

// Reset clears all accumulated data.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
