package salesman

// Selector draws breeding parents uniformly, with replacement.
type Selector struct {
	MaxDraws int
}

func NewSelector(maxDraws int) *Selector {
	if maxDraws < 1 {
		maxDraws = 1
	}
	return &Selector{MaxDraws: maxDraws}
}

// Pair draws two parents from pool, drawing again while both picks are the
// same road. After MaxDraws pairs it gives up and returns the last pair
// with distinct set to false. pool must not be empty.
func (s *Selector) Pair(pool Pool, rng Rand) (a, b *Road, distinct bool) {
	for draw := 1; ; draw++ {
		a = pool[rng.Intn(len(pool))]
		b = pool[rng.Intn(len(pool))]
		if !a.Equal(b) {
			return a, b, true
		}
		if draw >= s.MaxDraws {
			return a, b, false
		}
	}
}
