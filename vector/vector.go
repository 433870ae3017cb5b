// Package vector holds the small amount of vector math the matching core
// needs: L2 normalization and cosine similarity, both with an explicit
// zero-vector contract. A zero vector means "no signal" (empty source text or
// a failed embedding) and must never turn into NaN downstream.
package vector

import "math"

// Zero returns a zero vector of the given dimension.
func Zero(dim int) []float32 {
	return make([]float32, dim)
}

// IsZero reports whether every component of v is exactly zero.
func IsZero(v []float32) bool {
	for _, val := range v {
		if val != 0 {
			return false
		}
	}
	return true
}

// Normalize normalizes a vector to unit length.
// Returns a new vector. If the input is a zero vector, returns a zero vector.
func Normalize(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var magnitude float32
	for _, val := range v {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	// Can't normalize zero vector
	if magnitude == 0 {
		return make([]float32, len(v))
	}

	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}

// Cosine returns the cosine similarity of a and b in [-1, 1].
// If either vector has zero magnitude the similarity is exactly 0.
func Cosine(a, b []float32) float32 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := float64(dot) / (math.Sqrt(float64(normA)) * math.Sqrt(float64(normB)))
	// Guard against float drift pushing the result out of [-1, 1].
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}
	return float32(sim)
}
