package dbscan

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// pruneSlack widens the pruning radius so that rounding in the box bound
// can never discard a point the exact distance check would accept.
const pruneSlack = 1e-9

// KDTree is a KD-tree spatial index answering fixed-radius neighbor
// queries. Points are stored in a flat row-major array and reordered
// internally via an index permutation array.
//
// The tree is stored as a complete binary tree in array form:
//   - node i has children at 2*i+1 and 2*i+2
//   - node bounds are stored as min/max per dimension per node
type KDTree struct {
	data     []float64 // flat row-major point data (n * dims)
	n        int
	dims     int
	leafSize int
	metric   DistanceMetric
	p        float64   // Minkowski exponent of metric
	idxArray []int     // permutation: tree-order position → original index
	nodes    []kdNode  // one entry per tree node
	boundMin []float64 // boundMin[node*dims + j] = min of feature j in node
	boundMax []float64 // boundMax[node*dims + j] = max of feature j in node
}

type kdNode struct {
	start, end int
	leaf       bool
	used       bool
}

// KDTreeValidMetric reports whether the metric supports KD-tree pruning.
// KD-trees require metrics that decompose along coordinate axes:
// Euclidean, Manhattan, Chebyshev, Minkowski.
func KDTreeValidMetric(m DistanceMetric) bool {
	_, ok := metricP(m)
	return ok
}

// NewKDTree builds a KD-tree from flat row-major data with n points of
// dimensionality dims. leafSize controls the max points per leaf node.
// The metric must satisfy KDTreeValidMetric. The tree keeps a reference to
// data, which must not change while the tree is in use.
func NewKDTree(data []float64, n, dims int, metric DistanceMetric, leafSize int) *KDTree {
	if leafSize < 1 {
		leafSize = 1
	}
	p, _ := metricP(metric)

	idxArray := make([]int, n)
	for i := range idxArray {
		idxArray[i] = i
	}

	maxNodes := kdMaxNodes(n, leafSize)
	t := &KDTree{
		data:     data,
		n:        n,
		dims:     dims,
		leafSize: leafSize,
		metric:   metric,
		p:        p,
		idxArray: idxArray,
		nodes:    make([]kdNode, maxNodes),
		boundMin: make([]float64, maxNodes*dims),
		boundMax: make([]float64, maxNodes*dims),
	}
	if n > 0 {
		t.buildNode(0, 0, n)
	}
	return t
}

// kdMaxNodes returns an upper bound on the number of nodes needed for a
// binary tree with n points and the given leaf size.
func kdMaxNodes(n, leafSize int) int {
	if n == 0 {
		return 1
	}
	// Depth of tree: ceil(log2(ceil(n/leafSize))).
	leaves := (n + leafSize - 1) / leafSize
	depth := 0
	for v := 1; v < leaves; v *= 2 {
		depth++
	}
	return (1 << (depth + 1)) - 1
}

// buildNode recursively builds the tree for points in idxArray[start:end].
func (t *KDTree) buildNode(nodeID, start, end int) {
	for nodeID >= len(t.nodes) {
		t.nodes = append(t.nodes, kdNode{})
		t.boundMin = append(t.boundMin, make([]float64, t.dims)...)
		t.boundMax = append(t.boundMax, make([]float64, t.dims)...)
	}

	t.computeNodeBounds(nodeID, start, end)

	count := end - start
	if count <= t.leafSize {
		t.nodes[nodeID] = kdNode{start: start, end: end, leaf: true, used: true}
		return
	}

	// Split along the dimension with the greatest spread.
	base := nodeID * t.dims
	splitDim := 0
	maxSpread := -1.0
	for d := 0; d < t.dims; d++ {
		if spread := t.boundMax[base+d] - t.boundMin[base+d]; spread > maxSpread {
			maxSpread = spread
			splitDim = d
		}
	}

	t.sortByDimension(start, end, splitDim)
	mid := start + count/2

	t.nodes[nodeID] = kdNode{start: start, end: end, used: true}
	t.buildNode(2*nodeID+1, start, mid)
	t.buildNode(2*nodeID+2, mid, end)
}

// computeNodeBounds computes min/max per dimension for points idxArray[start:end].
func (t *KDTree) computeNodeBounds(nodeID, start, end int) {
	base := nodeID * t.dims
	for d := 0; d < t.dims; d++ {
		t.boundMin[base+d] = math.Inf(1)
		t.boundMax[base+d] = math.Inf(-1)
	}
	for i := start; i < end; i++ {
		row := t.point(t.idxArray[i])
		for d, v := range row {
			t.boundMin[base+d] = math.Min(t.boundMin[base+d], v)
			t.boundMax[base+d] = math.Max(t.boundMax[base+d], v)
		}
	}
}

// sortByDimension sorts idxArray[start:end] by the given dimension. Ties
// keep index order so the tree layout is deterministic.
func (t *KDTree) sortByDimension(start, end, dim int) {
	sub := t.idxArray[start:end]
	dims := t.dims
	data := t.data
	sort.SliceStable(sub, func(i, j int) bool {
		return data[sub[i]*dims+dim] < data[sub[j]*dims+dim]
	})
}

func (t *KDTree) point(i int) []float64 {
	return t.data[i*t.dims : (i+1)*t.dims]
}

// QueryRadius returns the indices of all points within distance r of query
// (inclusive), in ascending index order.
func (t *KDTree) QueryRadius(query []float64, r float64) []int {
	if t.n == 0 {
		return nil
	}
	var result []int
	gap := make([]float64, t.dims)
	t.radiusSearch(0, query, r, r+pruneSlack*math.Max(1, math.Abs(r)), gap, &result)
	sort.Ints(result)
	return result
}

func (t *KDTree) radiusSearch(nodeID int, query []float64, r, bound float64, gap []float64, result *[]int) {
	if nodeID >= len(t.nodes) || !t.nodes[nodeID].used {
		return
	}
	if t.minDistPoint(nodeID, query, gap) > bound {
		return
	}

	node := t.nodes[nodeID]
	if node.leaf {
		for i := node.start; i < node.end; i++ {
			ptIdx := t.idxArray[i]
			if t.metric.Distance(query, t.point(ptIdx)) <= r {
				*result = append(*result, ptIdx)
			}
		}
		return
	}

	t.radiusSearch(2*nodeID+1, query, r, bound, gap, result)
	t.radiusSearch(2*nodeID+2, query, r, bound, gap, result)
}

// minDistPoint returns a lower bound on the distance between point and any
// point inside the node's bounding box: the metric's norm of the per-dimension
// gap between point and the box. gap is scratch space of length dims.
func (t *KDTree) minDistPoint(nodeID int, point, gap []float64) float64 {
	base := nodeID * t.dims
	for j, v := range point {
		lo := t.boundMin[base+j]
		hi := t.boundMax[base+j]
		switch {
		case v < lo:
			gap[j] = lo - v
		case v > hi:
			gap[j] = v - hi
		default:
			gap[j] = 0
		}
	}
	return floats.Norm(gap, t.p)
}
