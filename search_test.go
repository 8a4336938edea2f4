package salesman

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	test "testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	road   *Road
	reads  int
	writes int
	err    error
}

func (m *memoryStore) ReadHighScore() (*Road, error) {
	m.reads++
	return m.road, m.err
}

func (m *memoryStore) WriteHighScore(road *Road) error {
	m.writes++
	m.road = road
	return nil
}

type recordingReporter struct {
	reports []*GenerationReport
}

func (r *recordingReporter) ReportRound(report *GenerationReport) error {
	r.reports = append(r.reports, report)
	return errors.New("reporters may fail without stopping the search")
}

func squareParams(rounds int) *Parameters {
	p := engineParams(4, 2, 2)
	p.NbCities = len(unitSquare)
	p.NbRounds = rounds
	return p
}

func TestSearchConvergesOnUnitSquare(t *test.T) {
	store := &memoryStore{}
	rec := &recordingReporter{}
	s, err := NewSearch(unitSquare, squareParams(30), store, NewRand(2024), rec)
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 30, result.Rounds)
	require.Len(t, result.History, 30)
	for i := 1; i < len(result.History); i++ {
		assert.LessOrEqual(t, result.History[i], result.History[i-1], "best known length went up at round %d", i+1)
	}
	assert.InDelta(t, 4.0, result.HighScore, 1e-9)
	assert.InDelta(t, 4.0, result.History[len(result.History)-1], 1e-9)

	assert.Equal(t, 1, store.reads)
	assert.Equal(t, 1, store.writes, "high score is written once, after the last round")
	assert.True(t, store.road.Equal(result.Winner))
	assert.Len(t, rec.reports, 30)
	assert.Equal(t, 30, rec.reports[29].Round)
}

func TestSearchKeepsBetterStoredRoad(t *test.T) {
	stored := NewRoad([]City{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	store := &memoryStore{road: stored}
	s, err := NewSearch(unitSquare, squareParams(3), store, NewRand(1))
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Same(t, stored, result.Winner, "nothing is strictly shorter than the optimum")
	for _, h := range result.History {
		assert.Equal(t, 4.0, h)
	}
}

func TestSearchIgnoresRoadOfOtherCatalog(t *test.T) {
	store := &memoryStore{road: NewRoad([]City{{0, 0}, {9, 9}})}
	s, err := NewSearch(unitSquare, squareParams(1), store, NewRand(1))
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(unitSquare), result.Winner.Len())
	assert.False(t, math.IsInf(result.HighScore, 1))
}

func TestSearchReadError(t *test.T) {
	store := &memoryStore{err: errors.New("disk on fire")}
	s, err := NewSearch(unitSquare, squareParams(1), store, NewRand(1))
	require.NoError(t, err)
	_, err = s.Run(context.Background())
	assert.Error(t, err)
	assert.Zero(t, store.writes)
}

func TestSearchCancelledStillStores(t *test.T) {
	store := &memoryStore{}
	s, err := NewSearch(unitSquare, squareParams(50), store, NewRand(1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, result.Rounds)
	assert.Equal(t, 1, store.writes)
	assert.NotNil(t, result.Winner, "the seed pool's best is stored")
}

func TestSearchWithFileCheckpoint(t *test.T) {
	path := filepath.Join(t.TempDir(), HighScoreFile)
	cp := NewFileCheckpoint(path)
	cities := makeCatalog(t, 12, 5)
	p := engineParams(30, 10, 5)
	p.NbRounds = 10

	s, err := NewSearch(cities, p, cp, NewRand(5))
	require.NoError(t, err)
	first, err := s.Run(context.Background())
	require.NoError(t, err)

	stored, err := cp.ReadHighScore()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Equal(first.Winner))

	s, err = NewSearch(cities, p, cp, NewRand(6))
	require.NoError(t, err)
	second, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.LessOrEqual(t, second.HighScore, first.HighScore, "a later run starts from the stored record")
}
