package dbscan

// scanner owns the labeling for one clustering run.
type scanner struct {
	finder neighborFinder
	minPts int
	labels []Label
	core   []bool
	lastID int
	queue  []int
}

func newScanner(finder neighborFinder, n, minPts int) *scanner {
	return &scanner{
		finder: finder,
		minPts: minPts,
		labels: make([]Label, n),
		core:   make([]bool, n),
	}
}

// scan visits points in ascending index order. An unvisited point with too
// few neighbors becomes noise (it may be absorbed by a later cluster); any
// other unvisited point is a core point and seeds the next cluster.
func (s *scanner) scan() {
	for i := range s.labels {
		if !s.labels[i].IsUnclassified() {
			continue
		}
		neighbors := s.finder.neighbors(i)
		if len(neighbors) < s.minPts {
			s.labels[i] = NoiseLabel
			continue
		}
		s.lastID++
		s.core[i] = true
		s.labels[i] = ClusterLabel(s.lastID)
		s.expand(i, neighbors)
	}
}

// expand grows the cluster seeded at seed breadth-first. The worklist is
// consumed by a head index and only ever appended to.
func (s *scanner) expand(seed int, neighbors []int) {
	id := s.labels[seed]
	s.queue = s.queue[:0]
	s.enqueue(neighbors)

	for head := 0; head < len(s.queue); head++ {
		j := s.queue[head]
		switch {
		case s.labels[j].IsNoise():
			// Border point: joins the cluster but does not extend it.
			s.labels[j] = id
		case s.labels[j].IsUnclassified():
			s.labels[j] = id
			next := s.finder.neighbors(j)
			if len(next) >= s.minPts {
				s.core[j] = true
				s.enqueue(next)
			}
		}
		// Members of this or an earlier cluster keep their label.
	}
}

// enqueue appends the points that can still change label. Skipping cluster
// members here instead of on dequeue keeps the queue within n entries per
// core point without changing which points are reached.
func (s *scanner) enqueue(points []int) {
	for _, j := range points {
		if _, member := s.labels[j].Cluster(); !member {
			s.queue = append(s.queue, j)
		}
	}
}

func (s *scanner) result() *Result {
	labels := make([]int, len(s.labels))
	for i, l := range s.labels {
		labels[i] = l.Int()
	}
	return &Result{
		Labels:      labels,
		CoreSamples: s.core,
		NumClusters: s.lastID,
	}
}
