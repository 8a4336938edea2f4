package salesman

import (
	test "testing"
)

func TestOptimizeABCDUncrossesSquare(t *test.T) {
	crossed := NewRoad([]City{{0, 0}, {1, 1}, {1, 0}, {0, 1}})
	fixed := OptimizeABCD(crossed)
	if fixed.Length() != 4 {
		t.Errorf("Expected the square to be uncrossed to length 4, got %v (%v)", fixed.Length(), fixed)
	}
	if crossed.Length() == 4 {
		t.Errorf("Input road was modified")
	}
	if fixed.City(0) != crossed.City(0) {
		t.Errorf("First city moved from %v to %v", crossed.City(0), fixed.City(0))
	}
}

func TestOptimizeABCDNeverLonger(t *test.T) {
	cities := makeCatalog(t, 40, 17)
	rng := NewRand(17)
	for i := 0; i < 30; i++ {
		r := RandomRoad(cities, rng)
		o := OptimizeABCD(r)
		if o.Length() > r.Length() {
			t.Fatalf("Refined road is longer: %v > %v", o.Length(), r.Length())
		}
		if o.NodeCount() != len(cities) || o.Len() != len(cities) {
			t.Fatalf("Refined road lost or repeated cities")
		}
	}
}

func TestOptimizeABCDIdempotent(t *test.T) {
	cities := makeCatalog(t, 25, 3)
	rng := NewRand(3)
	for i := 0; i < 10; i++ {
		once := OptimizeABCD(RandomRoad(cities, rng))
		twice := OptimizeABCD(once)
		if !once.Equal(twice) {
			t.Fatalf("Second pass changed the road:\n%v\n%v", once, twice)
		}
	}
}

func TestOptimizeABCDShortRoads(t *test.T) {
	for _, path := range [][]City{nil, {{0, 0}}, {{0, 0}, {3, 3}}, {{0, 0}, {5, 0}, {0, 5}}} {
		r := NewRoad(path)
		o := OptimizeABCD(r)
		if !o.Equal(r) {
			t.Errorf("Expected road of %d cities to be left alone, got %v", len(path), o)
		}
	}
}

func TestOptimizePool(t *test.T) {
	pool := Pool{
		NewRoad([]City{{0, 0}, {1, 1}, {1, 0}, {0, 1}}),
		NewRoad(unitSquare),
	}
	out := OptimizePool(pool)
	if len(out) != 2 {
		t.Fatalf("Expected 2 roads, got %d", len(out))
	}
	for _, r := range out {
		if r.Length() != 4 {
			t.Errorf("Expected length 4, got %v", r.Length())
		}
	}
	if pool[0].Length() == 4 {
		t.Errorf("Input pool was modified")
	}
}
