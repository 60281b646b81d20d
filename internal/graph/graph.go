// Package graph holds the weighted location graph and its distance table.
//
// The distance table starts out holding direct edge weights and doubles as
// the shortest-path cache: every Dijkstra run writes improved source
// distances back into it, so after PrecomputeAllPairs it answers true
// shortest distances between any two locations.
package graph

import (
	"delivery-dispatch-service/internal/domain"
	"fmt"
)

type pair struct{ a, b int }

// Graph is built once during a single load phase and is read-only afterwards.
// It is not safe for concurrent mutation.
type Graph struct {
	locations []domain.Location
	index     map[string]int
	adjacency [][]int
	distance  map[pair]float64
}

func New() *Graph {
	return &Graph{
		index:    make(map[string]int),
		distance: make(map[pair]float64),
	}
}

// AddLocation registers a location with an empty neighbor list.
// The first location added is the hub.
func (g *Graph) AddLocation(loc domain.Location) error {
	if _, ok := g.index[loc.Address]; ok {
		return fmt.Errorf("add location %q: %w", loc.Address, domain.ErrDuplicateLocation)
	}
	g.index[loc.Address] = len(g.locations)
	g.locations = append(g.locations, loc)
	g.adjacency = append(g.adjacency, nil)
	return nil
}

// AddEdge records an undirected edge. Adding the same pair twice is a caller
// error and leaves duplicate neighbor entries.
func (g *Graph) AddEdge(a, b string, miles float64) error {
	if miles < 0 {
		return fmt.Errorf("add edge %q <-> %q: %v: %w", a, b, miles, domain.ErrNegativeDistance)
	}
	ia, err := g.indexOf(a)
	if err != nil {
		return fmt.Errorf("add edge: %w", err)
	}
	ib, err := g.indexOf(b)
	if err != nil {
		return fmt.Errorf("add edge: %w", err)
	}

	g.distance[pair{ia, ib}] = miles
	g.adjacency[ia] = append(g.adjacency[ia], ib)
	g.distance[pair{ib, ia}] = miles
	g.adjacency[ib] = append(g.adjacency[ib], ia)
	return nil
}

// LookupByAddress scans the registered locations in order.
func (g *Graph) LookupByAddress(address string) (domain.Location, bool) {
	for _, loc := range g.locations {
		if loc.Address == address {
			return loc, true
		}
	}
	return domain.Location{}, false
}

// Distance returns the current table entry between two addresses.
// A location is always zero from itself.
func (g *Graph) Distance(a, b string) (float64, bool) {
	ia, ok := g.index[a]
	if !ok {
		return 0, false
	}
	ib, ok := g.index[b]
	if !ok {
		return 0, false
	}
	if ia == ib {
		return 0, true
	}
	d, ok := g.distance[pair{ia, ib}]
	return d, ok
}

// Hub is the first registered location.
func (g *Graph) Hub() (domain.Location, bool) {
	if len(g.locations) == 0 {
		return domain.Location{}, false
	}
	return g.locations[0], true
}

// Locations returns the registered locations in registration order.
func (g *Graph) Locations() []domain.Location {
	out := make([]domain.Location, len(g.locations))
	copy(out, g.locations)
	return out
}

// Neighbors returns the direct neighbors of address in edge insertion order.
func (g *Graph) Neighbors(address string) []domain.Location {
	i, ok := g.index[address]
	if !ok {
		return nil
	}
	out := make([]domain.Location, 0, len(g.adjacency[i]))
	for _, j := range g.adjacency[i] {
		out = append(out, g.locations[j])
	}
	return out
}

func (g *Graph) Len() int { return len(g.locations) }

func (g *Graph) indexOf(address string) (int, error) {
	i, ok := g.index[address]
	if !ok {
		return 0, fmt.Errorf("location %q: %w", address, domain.ErrNotFound)
	}
	return i, nil
}
