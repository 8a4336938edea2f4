package salesman

import (
	"bytes"
	"strings"
	test "testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpent(t *test.T) {
	assert.Equal(t, "4.250s", Spent(4250*time.Millisecond))
	assert.Equal(t, "0.000s", Spent(0))
	assert.Equal(t, "2m3.500s", Spent(2*time.Minute+3500*time.Millisecond))
}

func TestFillFromPool(t *test.T) {
	cities := makeCatalog(t, 10, 8)
	pool := SeedPool(cities, 6, NewRand(8))

	var report GenerationReport
	report.fillFromPool(pool)
	assert.Equal(t, 6, report.PoolSize)
	assert.Equal(t, pool[0].Length(), report.BestLength)
	assert.Equal(t, TopHalfAverage(pool), report.TopHalfAverage)
	assert.Equal(t, PathEditDistance(pool[0], pool[1]), report.Diversity)
	assert.Len(t, report.Top, 3)

	var empty GenerationReport
	empty.fillFromPool(nil)
	assert.Zero(t, empty.PoolSize)
	assert.Zero(t, empty.BestLength)
	assert.Empty(t, empty.Top)
}

func TestConsoleReporter(t *test.T) {
	square := NewRoad(unitSquare)
	report := &GenerationReport{
		Round:          4,
		PoolSize:       2,
		Attempts:       5,
		Converged:      false,
		TopHalfAverage: 1234.5,
		Top:            Pool{square},
		Winner:         square,
		Improved:       true,
		Duration:       250 * time.Millisecond,
		Elapsed:        2 * time.Second,
	}

	var out bytes.Buffer
	require.NoError(t, NewConsoleReporter(&out).ReportRound(report))
	text := out.String()
	assert.True(t, strings.HasPrefix(text, Line()))
	assert.Contains(t, text, "round 4\n")
	assert.Contains(t, text, "best of pool of 2:\n")
	assert.Contains(t, text, "     4.0 : (0,0) (1,0) (1,1) (0,1)\n")
	assert.Contains(t, text, "average value top half: 1,234.5\n")
	assert.Contains(t, text, "pool did not fill after 5 attempts\n")
	assert.Contains(t, text, "TOP: 4.0 :")
	assert.Contains(t, text, "0.250s cumul: 2.000s av: 0.500s\n")

	out.Reset()
	report.Improved = false
	report.Converged = true
	require.NoError(t, NewConsoleReporter(&out).ReportRound(report))
	assert.Contains(t, out.String(), "top: 4.0 :")
	assert.NotContains(t, out.String(), "did not fill")
}
