package salesman

import (
	test "testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engineParams(poolSize, keepBest, addRandom int) *Parameters {
	p := DefaultParameters()
	p.PoolSize = poolSize
	p.PoolKeepBest = keepBest
	p.PoolAddRandom = addRandom
	return p
}

func TestNewGenerationEngineRejectsBadSetup(t *test.T) {
	_, err := NewGenerationEngine(nil, engineParams(10, 2, 2), NewRand(1))
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = NewGenerationEngine(unitSquare, engineParams(10, 0, 0), NewRand(1))
	assert.ErrorIs(t, err, ErrEmptyBreedingPool)

	_, err = NewGenerationEngine(unitSquare, engineParams(0, 2, 2), NewRand(1))
	assert.Error(t, err)
}

func TestStepFillsPool(t *test.T) {
	cities := makeCatalog(t, 20, 31)
	ge, err := NewGenerationEngine(cities, engineParams(20, 10, 10), NewRand(31))
	require.NoError(t, err)

	pool := ge.Seed()
	for round := 0; round < 5; round++ {
		next, report := ge.Step(pool)
		require.True(t, report.Converged, "round %d did not converge after %d attempts", round, report.Attempts)
		require.Len(t, next, 20)
		assert.LessOrEqual(t, report.Attempts, MaxConvergeAttempts)
		assert.Equal(t, next[0].Length(), report.BestLength)
		for i := 1; i < len(next); i++ {
			assert.LessOrEqual(t, next[i-1].Length(), next[i].Length())
			assert.False(t, next[i-1].Equal(next[i]))
		}
		for _, r := range next {
			assert.Equal(t, len(cities), r.NodeCount())
		}
		pool = next
	}
}

func TestStepUndersizedWhenOrdersRunOut(t *test.T) {
	// With the first city fixed, three cities only allow two orders.
	cities := Catalog{{0, 0}, {4, 0}, {0, 3}}
	ge, err := NewGenerationEngine(cities, engineParams(10, 3, 3), NewRand(5))
	require.NoError(t, err)

	next, report := ge.Step(ge.Seed())
	assert.False(t, report.Converged)
	assert.Equal(t, MaxConvergeAttempts, report.Attempts)
	assert.LessOrEqual(t, len(next), 2)
	assert.NotEmpty(t, next)
	assert.Equal(t, len(next), report.PoolSize)
}

func TestStepNeverExceedsPoolSize(t *test.T) {
	cities := makeCatalog(t, 8, 77)
	for _, size := range []int{1, 3, 17} {
		ge, err := NewGenerationEngine(cities, engineParams(size, 2, 5), NewRand(int64(size)))
		require.NoError(t, err)
		next, _ := ge.Step(ge.Seed())
		assert.LessOrEqual(t, len(next), size)
		assert.NotEmpty(t, next)
	}
}

func TestStepDeterministicForSeed(t *test.T) {
	cities := makeCatalog(t, 15, 9)
	run := func() Pool {
		p := engineParams(12, 4, 4)
		p.Workers = 3
		ge, err := NewGenerationEngine(cities, p, NewRand(123))
		require.NoError(t, err)
		pool := ge.Seed()
		for i := 0; i < 3; i++ {
			pool, _ = ge.Step(pool)
		}
		return pool
	}
	a, b := run(), run()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.True(t, a[i].Equal(b[i]))
	}
}
