package salesman

import (
	test "testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreedProducesCompleteChildren(t *test.T) {
	cities := makeCatalog(t, 30, 99)
	base := SeedPool(cities, 8, NewRand(99))

	r := NewReproducer(NewSelector(MaxParentDraws), 1, false)
	children, degraded := r.Breed(base, 40, NewRand(100))
	require.Len(t, children, 40)
	assert.Zero(t, degraded)
	for _, c := range children {
		assert.Equal(t, len(cities), c.Len())
		assert.Equal(t, len(cities), c.NodeCount())
	}
}

func TestBreedParallelDeterministic(t *test.T) {
	cities := makeCatalog(t, 30, 42)
	base := SeedPool(cities, 12, NewRand(42))
	r := NewReproducer(NewSelector(MaxParentDraws), 4, false)

	first, _ := r.Breed(base, 37, NewRand(7))
	second, _ := r.Breed(base, 37, NewRand(7))
	require.Len(t, first, 37)
	require.Len(t, second, 37)
	for i := range first {
		require.NotNil(t, first[i], "child %d missing", i)
		assert.True(t, first[i].Equal(second[i]), "child %d differs between runs", i)
		assert.Equal(t, len(cities), first[i].NodeCount())
	}
}

func TestBreedCountsDegradedPairs(t *test.T) {
	base := Pool{NewRoad(unitSquare)}
	r := NewReproducer(NewSelector(3), 1, false)
	children, degraded := r.Breed(base, 5, NewRand(1))
	assert.Len(t, children, 5)
	assert.Equal(t, uint(5), degraded)
}

func TestBreedRefine(t *test.T) {
	cities := makeCatalog(t, 20, 3)
	base := SeedPool(cities, 6, NewRand(3))
	r := NewReproducer(NewSelector(MaxParentDraws), 2, true)
	children, _ := r.Breed(base, 10, NewRand(3))
	for _, c := range children {
		assert.True(t, c.Equal(OptimizeABCD(c)), "refined child is not at a fixed point")
	}
}

func TestBreedNothing(t *test.T) {
	r := NewReproducer(NewSelector(MaxParentDraws), 1, false)
	children, degraded := r.Breed(nil, 10, NewRand(1))
	assert.Empty(t, children)
	assert.Zero(t, degraded)
}
