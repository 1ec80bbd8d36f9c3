package ml

import "math"

// Epsilon keeps the derived ratios finite when a denominator reading is zero.
const Epsilon = 1e-5

func CalculateRatio(numerator, denominator float64) float64 {
	return numerator / (denominator + Epsilon)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// handleZeroScale mirrors how fitted scalers treat constant features:
// a zero (or non-finite) scale becomes 1 so the feature passes through.
func handleZeroScale(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			out[i] = 1
			continue
		}
		out[i] = v
	}
	return out
}
