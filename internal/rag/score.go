package rag

import "math"

// NormalizeScore maps a cosine similarity in [-1, 1] linearly onto [0, 100].
// Out-of-range and NaN inputs are clamped.
func NormalizeScore(similarity float32) float64 {
	s := float64(similarity)
	if math.IsNaN(s) {
		return 0
	}
	score := (s + 1) * 50
	return math.Max(0, math.Min(100, score))
}
