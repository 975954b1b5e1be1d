package dbscan

import (
	"runtime"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Algorithm selects the region query strategy. Every strategy yields the
// same clustering; they differ only in speed.
type Algorithm string

const (
	AlgorithmAuto   Algorithm = "auto"
	AlgorithmBrute  Algorithm = "brute"
	AlgorithmKDTree Algorithm = "kdtree"
)

// Config controls DBSCAN clustering behavior.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Eps is the neighborhood radius. Two points are neighbors when their
	// distance is <= Eps. Must be > 0. Default: 0.5.
	Eps float64

	// MinPts is the number of points, the point itself included, that an
	// eps-neighborhood must hold for its center to be a core point.
	// Must be >= 1. Default: 5.
	MinPts int

	// Metric is the distance function used to measure point similarity.
	// Built-in: EuclideanMetric, ManhattanMetric, ChebyshevMetric,
	// MinkowskiMetric, CosineMetric. Use DistanceFunc to wrap a custom
	// function. Default: EuclideanMetric.
	Metric DistanceMetric

	// Algorithm selects the region query strategy.
	// "auto" uses the KD-tree for axis-decomposable metrics on
	// low-dimensional data and the all-pairs scan otherwise.
	// Default: "auto".
	Algorithm Algorithm

	// LeafSize controls the maximum number of points in a KD-tree leaf node.
	// Only used with the KD-tree. Default: 40.
	LeafSize int

	// Workers controls the number of goroutines that precompute every
	// neighborhood before the scan. 1 runs region queries lazily during the
	// scan. 0 means use runtime.NumCPU(). Default: 0 (auto).
	Workers int

	// Logger receives debug-level summaries of each run. Default: no-op.
	Logger *zap.Logger
}

// Result contains the output of DBSCAN clustering.
type Result struct {
	// Labels assigns each point to a cluster (IDs 1, 2, ... in order of
	// discovery) or Noise (-1).
	Labels []int

	// CoreSamples reports, per point, whether its eps-neighborhood holds at
	// least MinPts points.
	CoreSamples []bool

	// NumClusters is the number of clusters found; cluster IDs are exactly
	// 1..NumClusters.
	NumClusters int

	// Algorithm is the region query strategy that was used.
	Algorithm Algorithm
}

// Members returns the point indices of each cluster in ascending order.
// Members()[k-1] holds the points of cluster k.
func (r *Result) Members() [][]int {
	members := make([][]int, r.NumClusters)
	for i, l := range r.Labels {
		if l != Noise {
			members[l-1] = append(members[l-1], i)
		}
	}
	return members
}

// Label returns the tagged label of point i: NoiseLabel or a ClusterLabel.
func (r *Result) Label(i int) Label {
	if r.Labels[i] == Noise {
		return NoiseLabel
	}
	return ClusterLabel(r.Labels[i])
}

// NoiseCount returns the number of points labeled Noise.
func (r *Result) NoiseCount() int {
	count := 0
	for _, l := range r.Labels {
		if l == Noise {
			count++
		}
	}
	return count
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Eps:       0.5,
		MinPts:    5,
		Metric:    EuclideanMetric{},
		Algorithm: AlgorithmAuto,
		LeafSize:  40,
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if !(cfg.Eps > 0) {
		return invalidParameterf("Eps must be > 0, got %g", cfg.Eps)
	}
	if cfg.MinPts < 1 {
		return invalidParameterf("MinPts must be >= 1, got %d", cfg.MinPts)
	}
	if m, ok := cfg.Metric.(MinkowskiMetric); ok && m.P < 1 {
		return invalidParameterf("MinkowskiMetric P must be >= 1, got %g", m.P)
	}
	switch cfg.Algorithm {
	case AlgorithmAuto, AlgorithmBrute, AlgorithmKDTree:
		// valid
	default:
		return invalidParameterf("invalid Algorithm %q", cfg.Algorithm)
	}
	if cfg.LeafSize < 1 {
		return invalidParameterf("LeafSize must be >= 1, got %d", cfg.LeafSize)
	}
	if cfg.Workers < 0 {
		return invalidParameterf("Workers must be >= 0 (0 means runtime.NumCPU()), got %d", cfg.Workers)
	}
	return nil
}

// applyDefaults fills in zero-valued optional config fields with their
// defaults. Eps and MinPts have no zero-value default and are validated as given.
func applyDefaults(cfg *Config) {
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = AlgorithmAuto
	}
	if cfg.LeafSize == 0 {
		cfg.LeafSize = 40
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// emptyResult returns a Result for zero data points with non-nil slices.
func emptyResult(algo Algorithm) *Result {
	return &Result{
		Labels:      []int{},
		CoreSamples: []bool{},
		Algorithm:   algo,
	}
}

// Run clusters points with the default strategy and returns one label per
// point: a cluster ID (1, 2, ...) or Noise.
func Run(points [][]float64, eps float64, minPts int) ([]int, error) {
	cfg := DefaultConfig()
	cfg.Eps = eps
	cfg.MinPts = minPts
	result, err := Cluster(points, cfg)
	if err != nil {
		return nil, err
	}
	return result.Labels, nil
}

// Cluster performs DBSCAN clustering on the given data.
// Each element is a point (float64 slice); all points must have the same
// dimensionality. Returns an error if the config is invalid or the
// dimensions differ; no clustering work is done in either case.
// The input is never modified.
func Cluster(data [][]float64, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	dims, err := checkPoints(data)
	if err != nil {
		return nil, err
	}

	n := len(data)
	algo, err := selectAlgorithm(cfg, n, dims)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return emptyResult(algo), nil
	}

	flatData := make([]float64, n*dims)
	for i, row := range data {
		copy(flatData[i*dims:], row)
	}

	var finder neighborFinder
	switch algo {
	case AlgorithmKDTree:
		tree := NewKDTree(flatData, n, dims, cfg.Metric, cfg.LeafSize)
		finder = &treeFinder{tree: tree, eps: cfg.Eps}
	default:
		finder = &bruteFinder{data: flatData, n: n, dims: dims, metric: cfg.Metric, eps: cfg.Eps}
	}

	return clusterWith(finder, n, cfg, algo), nil
}

// ClusterPrecomputed performs DBSCAN on a precomputed distance matrix.
// distMatrix is a flat []float64 of length n*n in row-major order, where
// distMatrix[i*n+j] is the distance between points i and j. The matrix must
// be symmetric with a zero diagonal. The Config.Metric and Config.Algorithm
// fields are ignored since distances are already computed.
func ClusterPrecomputed(distMatrix []float64, n int, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	if n < 0 || len(distMatrix) != n*n {
		return nil, errors.Wrapf(ErrDimensionMismatch, "dbscan: distMatrix length %d does not match n*n = %d (n=%d)", len(distMatrix), n*n, n)
	}
	for i := 0; i < n; i++ {
		if d := distMatrix[i*n+i]; d != 0 {
			return nil, invalidParameterf("distMatrix diagonal must be 0, got %g at (%d, %d)", d, i, i)
		}
	}

	if n == 0 {
		return emptyResult(AlgorithmBrute), nil
	}

	finder := &matrixFinder{dist: distMatrix, n: n, eps: cfg.Eps}
	return clusterWith(finder, n, cfg, AlgorithmBrute), nil
}

// clusterWith runs the scan over n points using finder for region queries.
func clusterWith(finder neighborFinder, n int, cfg Config, algo Algorithm) *Result {
	if cfg.Workers > 1 {
		finder = &cachedFinder{lists: computeNeighborhoodsParallel(finder, n, cfg.Workers)}
	}

	s := newScanner(finder, n, cfg.MinPts)
	s.scan()

	result := s.result()
	result.Algorithm = algo

	cfg.Logger.Debug("dbscan: clustering complete",
		zap.String("algorithm", string(algo)),
		zap.Int("points", n),
		zap.Int("workers", cfg.Workers),
		zap.Int("clusters", result.NumClusters),
		zap.Int("noise", result.NoiseCount()),
	)
	return result
}
