package salesman

import (
	"fmt"
	"math"

	"github.com/puzpuzpuz/xsync/v4"
)

// City is a point of the catalog. Cities are compared by value and used
// directly as map keys.
type City struct {
	X int
	Y int
}

func (c City) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func (c City) Distance(other City) float64 {
	return Distance(c, other)
}

func (c City) less(other City) bool {
	return c.X < other.X || (c.X == other.X && c.Y < other.Y)
}

type cityPair struct {
	a, b City
}

// distances memoizes Distance for the life of the process. The catalog is
// fixed during a run so entries never go stale. Concurrent breeders may
// race to insert the same key; they store the same value.
var distances = xsync.NewMap[cityPair, float64]()

// Distance is the Euclidean distance between two cities.
func Distance(a, b City) float64 {
	if a == b {
		return 0
	}
	if b.less(a) {
		a, b = b, a
	}
	key := cityPair{a, b}
	if d, ok := distances.Load(key); ok {
		return d
	}
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	d := math.Sqrt(dx*dx + dy*dy)
	distances.Store(key, d)
	return d
}
