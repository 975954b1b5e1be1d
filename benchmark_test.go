package dbscan

import (
	"math/rand"
	"testing"
)

func generateBenchData(n, dims int) [][]float64 {
	rng := rand.New(rand.NewSource(42))
	data := make([][]float64, n)
	for i := range data {
		data[i] = make([]float64, dims)
		for j := range data[i] {
			data[i][j] = rng.Float64() * 100
		}
	}
	return data
}

func benchCluster(b *testing.B, n int, algo Algorithm, workers int) {
	b.Helper()
	data := generateBenchData(n, 2)
	cfg := DefaultConfig()
	cfg.Eps = 3
	cfg.MinPts = 5
	cfg.Algorithm = algo
	cfg.Workers = workers
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Cluster(data, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkClusterBrute_1000(b *testing.B)  { benchCluster(b, 1000, AlgorithmBrute, 1) }
func BenchmarkClusterBrute_5000(b *testing.B)  { benchCluster(b, 5000, AlgorithmBrute, 1) }
func BenchmarkClusterKDTree_1000(b *testing.B) { benchCluster(b, 1000, AlgorithmKDTree, 1) }
func BenchmarkClusterKDTree_5000(b *testing.B) { benchCluster(b, 5000, AlgorithmKDTree, 1) }
func BenchmarkClusterKDTree_20000(b *testing.B) {
	benchCluster(b, 20000, AlgorithmKDTree, 1)
}

func BenchmarkClusterParallelBrute_5000(b *testing.B)   { benchCluster(b, 5000, AlgorithmBrute, 0) }
func BenchmarkClusterParallelKDTree_20000(b *testing.B) { benchCluster(b, 20000, AlgorithmKDTree, 0) }

func BenchmarkKDTreeQueryRadius_5000(b *testing.B) {
	flat, n, dims := flatten(generateBenchData(5000, 2))
	tree := NewKDTree(flat, n, dims, EuclideanMetric{}, 40)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.QueryRadius(tree.point(i%n), 3)
	}
}
