package salesman

import (
	"log"
	"sort"
)

// Pool is a generation of candidate roads. Pool functions never modify
// their argument; they return a new slice.
type Pool []*Road

// SeedPool builds size random complete roads, sorted shortest first.
func SeedPool(cities Catalog, size int, rng Rand) Pool {
	pool := make(Pool, size)
	for i := range pool {
		pool[i] = RandomRoad(cities, rng)
	}
	if DEBUG {
		for _, r := range pool {
			log.Printf("seeded road length %.3f", r.Length())
		}
	}
	return SortPool(pool)
}

// SortPool orders roads by length. Roads of equal length are ordered by
// their city sequence so that equal roads always end up next to each
// other; identical roads keep their input order.
func SortPool(pool Pool) Pool {
	out := make(Pool, len(pool))
	copy(out, pool)
	sort.SliceStable(out, func(i, j int) bool {
		li, lj := out[i].Length(), out[j].Length()
		if li != lj {
			return li < lj
		}
		return out[i].pathLess(out[j])
	})
	return out
}

// Uniq drops entries equal to their predecessor. Only meaningful on a
// sorted pool, where equal roads sit next to each other.
func Uniq(pool Pool) Pool {
	if len(pool) == 0 {
		return Pool{}
	}
	out := make(Pool, 0, len(pool))
	out = append(out, pool[0])
	for _, r := range pool[1:] {
		if !r.Equal(out[len(out)-1]) {
			out = append(out, r)
		}
	}
	return out
}

// Truncate keeps the first n roads.
func Truncate(pool Pool, n int) Pool {
	if n < 0 {
		n = 0
	}
	if n > len(pool) {
		n = len(pool)
	}
	out := make(Pool, n)
	copy(out, pool[:n])
	return out
}

// TopHalfAverage is the mean length of the first half of a sorted pool.
// Pools with fewer than two roads report 0.
func TopHalfAverage(pool Pool) float64 {
	top := len(pool) / 2
	if top == 0 {
		return 0
	}
	var total float64
	for _, r := range pool[:top] {
		total += r.Length()
	}
	return total / float64(top)
}

// Best is the first road of a sorted pool, nil when the pool is empty.
func Best(pool Pool) *Road {
	if len(pool) == 0 {
		return nil
	}
	return pool[0]
}

// Lengths lists road lengths in pool order.
func (p Pool) Lengths() []float64 {
	out := make([]float64, len(p))
	for i, r := range p {
		out[i] = r.Length()
	}
	return out
}
