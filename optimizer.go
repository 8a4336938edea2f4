package salesman

// OptimizeABCD runs the greedy four-city window pass over the closed road.
// For every window A B C D it swaps B and C when A C B D is strictly
// shorter, then starts over from the first window. It stops after a full
// scan without a swap. The first city never moves and the input road is
// left untouched. Roads of fewer than four cities come back unchanged.
func OptimizeABCD(road *Road) *Road {
	path := road.Path()
	n := len(path)
	if n < 4 {
		return NewRoad(path)
	}
	for {
		swapped := false
		for i := 0; i+2 < n; i++ {
			a, b, c, d := path[i], path[i+1], path[i+2], path[(i+3)%n]
			if windowIsOptimal(a, b, c, d) {
				continue
			}
			path[i+1], path[i+2] = c, b
			swapped = true
			break
		}
		if !swapped {
			return NewRoad(path)
		}
	}
}

func windowIsOptimal(a, b, c, d City) bool {
	return Distance(a, b)+Distance(b, c)+Distance(c, d) <=
		Distance(a, c)+Distance(c, b)+Distance(b, d)
}

// OptimizePool refines every road of pool. The result is not re-sorted.
func OptimizePool(pool Pool) Pool {
	out := make(Pool, len(pool))
	for i, r := range pool {
		out[i] = OptimizeABCD(r)
	}
	return out
}
