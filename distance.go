package dbscan

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// DistanceMetric measures the distance between two points of equal
// dimensionality. Implementations must be symmetric and return 0 for
// identical points so that every point is its own neighbor.
type DistanceMetric interface {
	Distance(a, b []float64) float64
}

// DistanceFunc adapts a plain function into a DistanceMetric.
type DistanceFunc func(a, b []float64) float64

func (f DistanceFunc) Distance(a, b []float64) float64 { return f(a, b) }

// EuclideanMetric computes the Euclidean (L2) distance.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 { return floats.Distance(a, b, 2) }

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 { return floats.Distance(a, b, 1) }

// ChebyshevMetric computes the Chebyshev (L-infinity) distance.
type ChebyshevMetric struct{}

func (ChebyshevMetric) Distance(a, b []float64) float64 { return floats.Distance(a, b, math.Inf(1)) }

// MinkowskiMetric computes the Minkowski distance parameterized by P.
// P must be >= 1. Panics if P < 1.
type MinkowskiMetric struct {
	P float64
}

func (m MinkowskiMetric) Distance(a, b []float64) float64 {
	if m.P < 1 {
		panic("MinkowskiMetric: P must be >= 1")
	}
	return floats.Distance(a, b, m.P)
}

// CosineMetric computes the cosine distance: 1 - cosine_similarity.
// Identical vectors are at distance 0. A zero vector against a non-zero one
// is at distance 1.
type CosineMetric struct{}

func (CosineMetric) Distance(a, b []float64) float64 {
	if floats.Equal(a, b) {
		return 0
	}
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 1
	}
	d := 1 - floats.Dot(a, b)/(normA*normB)
	// Rounding can push identical directions slightly below zero.
	return math.Max(d, 0)
}

// ParseMetric resolves a metric by name: "euclidean", "manhattan",
// "chebyshev", "cosine" or "minkowski" (which uses p).
func ParseMetric(name string, p float64) (DistanceMetric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "euclidean", "l2":
		return EuclideanMetric{}, nil
	case "manhattan", "cityblock", "l1":
		return ManhattanMetric{}, nil
	case "chebyshev", "linf":
		return ChebyshevMetric{}, nil
	case "cosine":
		return CosineMetric{}, nil
	case "minkowski":
		if p < 1 {
			return nil, invalidParameterf("minkowski P must be >= 1, got %g", p)
		}
		return MinkowskiMetric{P: p}, nil
	default:
		return nil, invalidParameterf("unknown metric %q", name)
	}
}

// metricP returns the Minkowski exponent for metrics that decompose along
// coordinate axes.
func metricP(m DistanceMetric) (float64, bool) {
	switch v := m.(type) {
	case EuclideanMetric:
		return 2, true
	case ManhattanMetric:
		return 1, true
	case ChebyshevMetric:
		return math.Inf(1), true
	case MinkowskiMetric:
		return v.P, true
	default:
		return 0, false
	}
}
