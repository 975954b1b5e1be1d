package dbscan

import "strconv"

// Noise is the integer label reported for points that belong to no cluster.
const Noise = -1

type labelKind uint8

const (
	kindUnclassified labelKind = iota
	kindNoise
	kindCluster
)

// Label is the state of a single point during clustering: unclassified,
// noise, or a member of a cluster. The zero value is unclassified.
type Label struct {
	kind    labelKind
	cluster int
}

var (
	// unclassified is the state of every point before it is visited.
	unclassified = Label{}
	// NoiseLabel marks a point with no cluster membership.
	NoiseLabel = Label{kind: kindNoise}
)

// ClusterLabel returns the label for membership in cluster id (id >= 1).
func ClusterLabel(id int) Label {
	return Label{kind: kindCluster, cluster: id}
}

func (l Label) IsUnclassified() bool { return l.kind == kindUnclassified }
func (l Label) IsNoise() bool        { return l.kind == kindNoise }

// Cluster returns the cluster id and true if l is a cluster membership.
func (l Label) Cluster() (int, bool) {
	if l.kind != kindCluster {
		return 0, false
	}
	return l.cluster, true
}

// Int returns the integer form used in Result.Labels: the cluster id for
// members and Noise otherwise. It panics for an unclassified label, which
// never survives a completed scan.
func (l Label) Int() int {
	switch l.kind {
	case kindCluster:
		return l.cluster
	case kindNoise:
		return Noise
	default:
		panic("dbscan: unclassified label has no integer form")
	}
}

func (l Label) String() string {
	switch l.kind {
	case kindCluster:
		return "cluster " + strconv.Itoa(l.cluster)
	case kindNoise:
		return "noise"
	default:
		return "unclassified"
	}
}
