package salesman

// Culler builds the breeding base of a generation: the best KeepBest roads
// of the previous pool plus AddRandom freshly generated immigrants.
type Culler struct {
	Cities    Catalog
	KeepBest  int
	AddRandom int
}

func NewCuller(cities Catalog, keepBest, addRandom int) *Culler {
	return &Culler{
		Cities:    cities,
		KeepBest:  keepBest,
		AddRandom: addRandom,
	}
}

// Cull assumes pool is sorted shortest first.
func (c *Culler) Cull(pool Pool, rng Rand) Pool {
	base := Truncate(pool, c.KeepBest)
	for i := 0; i < c.AddRandom; i++ {
		base = append(base, RandomRoad(c.Cities, rng))
	}
	return base
}
