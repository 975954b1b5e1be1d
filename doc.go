// Package dbscan implements Density-Based Spatial Clustering of Applications
// with Noise (DBSCAN).
//
// DBSCAN groups points that lie in dense regions and marks points in sparse
// regions as noise. A point whose eps-neighborhood (itself included) holds at
// least MinPts points is a core point; clusters grow from core points through
// every point density-reachable from them. The number of clusters is not
// needed in advance and clusters may take any shape.
//
// Basic usage:
//
//	cfg := dbscan.DefaultConfig()
//	cfg.Eps = 2
//	cfg.MinPts = 2
//	result, err := dbscan.Cluster(data, cfg)
//	// result.Labels[i] is the cluster ID for point i (1, 2, ...) or -1 for noise
//	// result.CoreSamples[i] reports whether point i is a core point
//
// For precomputed distance matrices:
//
//	result, err := dbscan.ClusterPrecomputed(distMatrix, n, cfg)
//
// # Region queries
//
// The reference region query is a naive all-pairs scan. With Algorithm set
// to "auto", Cluster answers region queries from a KD-tree when the metric
// decomposes along coordinate axes and the data is low-dimensional. With
// Workers > 1 every neighborhood is computed up front in parallel. Neither
// changes the clustering: neighbor sets are always returned in ascending
// index order, and the scan that assigns cluster IDs is sequential.
//
//	cfg.Algorithm = dbscan.AlgorithmBrute   // all-pairs scan
//	cfg.Algorithm = dbscan.AlgorithmKDTree  // KD-tree radius queries
package dbscan
