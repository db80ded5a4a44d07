// Package vector holds the arithmetic on embedding vectors.
package vector

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/resumatch/internal/domain"
)

// Normalize scales v to unit L2 length in place and returns it.
// A zero vector is returned unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for i, f := range v {
		v[i] = float32(float64(f) / norm)
	}
	return v
}

// Dot returns the dot product of a and b, which equals cosine similarity for unit vectors.
func Dot(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("dot %d vs %d: %w", len(a), len(b), domain.ErrVectorLengthMismatch)
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum, nil
}
