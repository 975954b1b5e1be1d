package dbscan

// neighborFinder answers region queries: the ascending indices of every
// point within eps of point i, i itself included.
type neighborFinder interface {
	neighbors(i int) []int
}

// bruteFinder scans every point. This is the reference region query.
type bruteFinder struct {
	data   []float64
	n      int
	dims   int
	metric DistanceMetric
	eps    float64
}

func (f *bruteFinder) neighbors(i int) []int {
	p := f.data[i*f.dims : (i+1)*f.dims]
	var result []int
	for j := 0; j < f.n; j++ {
		if j == i || f.metric.Distance(p, f.data[j*f.dims:(j+1)*f.dims]) <= f.eps {
			result = append(result, j)
		}
	}
	return result
}

// treeFinder answers region queries from a KD-tree.
type treeFinder struct {
	tree *KDTree
	eps  float64
}

func (f *treeFinder) neighbors(i int) []int {
	return f.tree.QueryRadius(f.tree.point(i), f.eps)
}

// matrixFinder reads a precomputed row-major n×n distance matrix.
type matrixFinder struct {
	dist []float64
	n    int
	eps  float64
}

func (f *matrixFinder) neighbors(i int) []int {
	row := f.dist[i*f.n : (i+1)*f.n]
	var result []int
	for j, d := range row {
		if j == i || d <= f.eps {
			result = append(result, j)
		}
	}
	return result
}

// cachedFinder serves neighborhoods computed ahead of the scan.
type cachedFinder struct {
	lists [][]int
}

func (f *cachedFinder) neighbors(i int) []int { return f.lists[i] }
