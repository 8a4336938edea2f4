package salesman

import (
	"fmt"
	"strings"
	"sync"
)

// Edge is a directed hop between two consecutive cities of a closed road.
type Edge struct {
	From City
	To   City
}

// Road is a candidate tour: an ordered sequence of cities without repeats.
// A Road is never modified after construction; every operation returns a
// new Road. Derived values are computed on first use and then cached.
//
// Two roads are Equal only when their sequences match position by
// position, so the same cycle started elsewhere or walked backwards is a
// different Road.
type Road struct {
	path []City

	lengthOnce sync.Once
	length     float64

	nodesOnce sync.Once
	nodes     map[City]struct{}

	edgesOnce sync.Once
	edges     []Edge
	edgeSet   map[Edge]struct{}
}

// NewRoad wraps path. The caller guarantees path holds no duplicates; it is
// not checked here.
func NewRoad(path []City) *Road {
	return &Road{path: path}
}

// RandomRoad builds a uniformly random complete road. The first city is
// always cities[0]; every following city is drawn from the ones not yet
// placed.
func RandomRoad(cities Catalog, rng Rand) *Road {
	if len(cities) == 0 {
		return NewRoad(nil)
	}
	avail := make([]City, len(cities)-1)
	copy(avail, cities[1:])
	path := make([]City, 0, len(cities))
	path = append(path, cities[0])
	for len(avail) > 0 {
		i := rng.Intn(len(avail))
		path = append(path, avail[i])
		avail = append(avail[:i], avail[i+1:]...)
	}
	return NewRoad(path)
}

// RoadFromList rebuilds a road from its exported [x, y] pairs.
func RoadFromList(list [][]int) (*Road, error) {
	path, err := citiesFromList("road", list)
	if err != nil {
		return nil, err
	}
	return NewRoad(path), nil
}

// ExportPath is the flat form of the road, the inverse of RoadFromList.
func (r *Road) ExportPath() [][]int {
	return Catalog(r.path).Export()
}

func (r *Road) Len() int {
	return len(r.path)
}

// Path returns a copy of the ordered cities.
func (r *Road) Path() []City {
	out := make([]City, len(r.path))
	copy(out, r.path)
	return out
}

func (r *Road) City(i int) City {
	return r.path[i]
}

// XPath is the closed path: the cities followed by the first city again.
func (r *Road) XPath() []City {
	if len(r.path) == 0 {
		return nil
	}
	out := make([]City, len(r.path)+1)
	copy(out, r.path)
	out[len(r.path)] = r.path[0]
	return out
}

func (r *Road) Length() float64 {
	r.lengthOnce.Do(func() {
		n := len(r.path)
		var total float64
		for i := 0; i < n; i++ {
			total += Distance(r.path[i], r.path[(i+1)%n])
		}
		r.length = total
	})
	return r.length
}

func (r *Road) nodeSet() map[City]struct{} {
	r.nodesOnce.Do(func() {
		r.nodes = make(map[City]struct{}, len(r.path))
		for _, c := range r.path {
			r.nodes[c] = struct{}{}
		}
	})
	return r.nodes
}

func (r *Road) Contains(c City) bool {
	_, ok := r.nodeSet()[c]
	return ok
}

// NodeCount is the number of distinct cities on the road.
func (r *Road) NodeCount() int {
	return len(r.nodeSet())
}

func (r *Road) computeEdges() {
	r.edgesOnce.Do(func() {
		xpath := r.XPath()
		if len(xpath) < 2 {
			r.edgeSet = map[Edge]struct{}{}
			return
		}
		r.edges = make([]Edge, 0, len(xpath)-1)
		r.edgeSet = make(map[Edge]struct{}, len(xpath)-1)
		for i := 0; i+1 < len(xpath); i++ {
			e := Edge{From: xpath[i], To: xpath[i+1]}
			r.edges = append(r.edges, e)
			r.edgeSet[e] = struct{}{}
		}
	})
}

// Edges lists the hops of the closed road in travel order.
func (r *Road) Edges() []Edge {
	r.computeEdges()
	out := make([]Edge, len(r.edges))
	copy(out, r.edges)
	return out
}

func (r *Road) HasEdge(e Edge) bool {
	r.computeEdges()
	_, ok := r.edgeSet[e]
	return ok
}

func (r *Road) ShorterThan(other *Road) bool {
	return r.Length() < other.Length()
}

func (r *Road) ShorterThanLength(length float64) bool {
	return r.Length() < length
}

func (r *Road) Equal(other *Road) bool {
	if r == other {
		return true
	}
	if other == nil || len(r.path) != len(other.path) {
		return false
	}
	for i := range r.path {
		if r.path[i] != other.path[i] {
			return false
		}
	}
	return true
}

// pathLess orders roads by their city sequences, comparing position by
// position.
func (r *Road) pathLess(other *Road) bool {
	for i := 0; i < len(r.path) && i < len(other.path); i++ {
		if r.path[i] != other.path[i] {
			return r.path[i].less(other.path[i])
		}
	}
	return len(r.path) < len(other.path)
}

// First returns a new road made of the first nb cities.
func (r *Road) First(nb int) *Road {
	if nb < 0 {
		nb = 0
	}
	if nb > len(r.path) {
		nb = len(r.path)
	}
	path := make([]City, nb)
	copy(path, r.path[:nb])
	return NewRoad(path)
}

func (r *Road) FirstHalf() *Road {
	return r.First(len(r.path) / 2)
}

// AppendOneRandom returns a new road with one city not yet visited appended.
// It reports false when every catalog city is already on the road.
func (r *Road) AppendOneRandom(cities Catalog, rng Rand) (*Road, bool) {
	var avail []City
	for _, c := range cities {
		if !r.Contains(c) {
			avail = append(avail, c)
		}
	}
	if len(avail) == 0 {
		return nil, false
	}
	path := make([]City, len(r.path), len(r.path)+1)
	copy(path, r.path)
	return NewRoad(append(path, avail[rng.Intn(len(avail))])), true
}

// AppendRoad appends, in other's order, every city of other that is not
// already on r.
func (r *Road) AppendRoad(other *Road) *Road {
	seen := make(map[City]struct{}, len(r.path)+len(other.path))
	path := make([]City, len(r.path), len(r.path)+len(other.path))
	copy(path, r.path)
	for _, c := range r.path {
		seen[c] = struct{}{}
	}
	for _, c := range other.path {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		path = append(path, c)
	}
	return NewRoad(path)
}

// MixRoads is the crossover operator: the first half of a followed by the
// rest of the cities in b's order.
func MixRoads(a, b *Road) *Road {
	return a.FirstHalf().AppendRoad(b)
}

// ShortRepr is the one-line console form: length, a few leading cities and
// the last one.
func (r *Road) ShortRepr() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%.1f :", r.Length())
	n := len(r.path)
	if n <= 5 {
		for _, c := range r.path {
			fmt.Fprintf(&sb, " %v", c)
		}
		return sb.String()
	}
	fmt.Fprintf(&sb, " %v %v %v...%v", r.path[1], r.path[2], r.path[3], r.path[n-1])
	return sb.String()
}

func (r *Road) String() string {
	return fmt.Sprintf("Road%v", r.path)
}
