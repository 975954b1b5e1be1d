package dbscan

// maxKDTreeDims is the dimensionality above which "auto" stops using the
// KD-tree; box bounds prune poorly in high dimensions.
const maxKDTreeDims = 16

// selectAlgorithm resolves AlgorithmAuto into a concrete region query
// strategy based on the metric, the data size and its dimensionality, and
// validates that a user-forced choice is compatible with the metric.
// Zero-dimensional points have no axis to split on and always use brute.
func selectAlgorithm(cfg Config, n, dims int) (Algorithm, error) {
	switch cfg.Algorithm {
	case AlgorithmAuto:
		if KDTreeValidMetric(cfg.Metric) && dims >= 1 && dims <= maxKDTreeDims && n > cfg.LeafSize {
			return AlgorithmKDTree, nil
		}
		return AlgorithmBrute, nil
	case AlgorithmKDTree:
		if !KDTreeValidMetric(cfg.Metric) {
			return "", invalidParameterf("metric %T is not supported by the KD-tree algorithm", cfg.Metric)
		}
		if n > 0 && dims == 0 {
			return AlgorithmBrute, nil
		}
	}
	return cfg.Algorithm, nil
}
