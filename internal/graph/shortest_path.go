package graph

import (
	"delivery-dispatch-service/internal/domain"
	"fmt"
	"math"
)

const noPredecessor = -1

// PathTree is the scratch state of one Dijkstra run: tentative distances and
// predecessors keyed by location index. It belongs to that run only.
// Predecessors are back-references for path reconstruction, nothing more.
type PathTree struct {
	g           *Graph
	source      int
	tentative   []float64
	predecessor []int
}

// ShortestPathFrom runs Dijkstra's algorithm from source over every location.
//
// Selection is a linear scan of the unvisited list in registration order, so
// ties go to the first location encountered. Each strict improvement is also
// written into the distance table for both (source, adj) and (adj, source).
// Running it once per location converges the table into all-pairs shortest
// distances.
func (g *Graph) ShortestPathFrom(source string) (*PathTree, error) {
	src, err := g.indexOf(source)
	if err != nil {
		return nil, fmt.Errorf("shortest path: %w", err)
	}

	n := len(g.locations)
	tree := &PathTree{
		g:           g,
		source:      src,
		tentative:   make([]float64, n),
		predecessor: make([]int, n),
	}
	unvisited := make([]int, 0, n)
	for i := range n {
		tree.tentative[i] = math.Inf(1)
		tree.predecessor[i] = noPredecessor
		unvisited = append(unvisited, i)
	}
	tree.tentative[src] = 0

	for len(unvisited) > 0 {
		smallest := 0
		for i := 1; i < len(unvisited); i++ {
			if tree.tentative[unvisited[i]] < tree.tentative[unvisited[smallest]] {
				smallest = i
			}
		}
		current := unvisited[smallest]
		unvisited = append(unvisited[:smallest], unvisited[smallest+1:]...)

		for _, adj := range g.adjacency[current] {
			candidate := tree.tentative[current] + g.distance[pair{current, adj}]
			if candidate < tree.tentative[adj] {
				tree.tentative[adj] = candidate
				tree.predecessor[adj] = current
				g.distance[pair{src, adj}] = candidate
				g.distance[pair{adj, src}] = candidate
			}
		}
	}

	return tree, nil
}

// PrecomputeAllPairs runs ShortestPathFrom from every location in
// registration order.
func (g *Graph) PrecomputeAllPairs() error {
	for _, loc := range g.locations {
		if _, err := g.ShortestPathFrom(loc.Address); err != nil {
			return fmt.Errorf("precompute all pairs: %w", err)
		}
	}
	return nil
}

// DistanceTo returns the shortest distance from the tree's source.
// Unreachable locations report +Inf.
func (t *PathTree) DistanceTo(address string) (float64, bool) {
	i, ok := t.g.index[address]
	if !ok {
		return 0, false
	}
	return t.tentative[i], true
}

// PathTo rebuilds the location sequence from the source to address.
// It returns nil when address is unknown or unreachable.
func (t *PathTree) PathTo(address string) []domain.Location {
	i, ok := t.g.index[address]
	if !ok || math.IsInf(t.tentative[i], 1) {
		return nil
	}

	var rev []int
	for cur := i; cur != noPredecessor; cur = t.predecessor[cur] {
		rev = append(rev, cur)
	}
	path := make([]domain.Location, 0, len(rev))
	for k := len(rev) - 1; k >= 0; k-- {
		path = append(path, t.g.locations[rev[k]])
	}
	return path
}

// Build loads locations in order, adds an edge for every entry below the
// diagonal of the lower-triangular matrix, then precomputes all pairs.
func Build(locations []domain.Location, matrix [][]float64) (*Graph, error) {
	if len(matrix) < len(locations) {
		return nil, fmt.Errorf("build graph: %d matrix rows for %d locations", len(matrix), len(locations))
	}

	g := New()
	for _, loc := range locations {
		if err := g.AddLocation(loc); err != nil {
			return nil, fmt.Errorf("build graph: %w", err)
		}
	}

	for row := range locations {
		if len(matrix[row]) < row {
			return nil, fmt.Errorf("build graph: row %d has %d columns, want at least %d", row, len(matrix[row]), row)
		}
		for col := 0; col < row; col++ {
			if err := g.AddEdge(locations[row].Address, locations[col].Address, matrix[row][col]); err != nil {
				return nil, fmt.Errorf("build graph: row %d col %d: %w", row, col, err)
			}
		}
	}

	if err := g.PrecomputeAllPairs(); err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	return g, nil
}
