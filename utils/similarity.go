package utils

import "math"

// CosineSimilarity returns the cosine of the angle between two embedding
// vectors, in [-1, 1]. Mismatched lengths or a zero vector yield 0, which
// ranks such pairs as unrelated rather than erroring out of a search.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
