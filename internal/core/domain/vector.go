package domain

import "math"

// CosineSimilarity returns the cosine of the angle between two vectors:
// the dot product over the product of their norms. Returns 0 when either
// vector has zero magnitude, so degenerate inputs rank last instead of
// producing NaN.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// SimilarityPercent converts a cosine similarity to a percentage rounded
// to two decimal places, the form reported in query results.
func SimilarityPercent(cos float64) float64 {
	return math.Round(cos*100*100) / 100
}
