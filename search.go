package salesman

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"
)

// Search drives a run: seed a pool, evolve it for NbRounds generations
// while tracking the best road seen, then store that road once.
type Search struct {
	Cities    Catalog
	Params    *Parameters
	Engine    *GenerationEngine
	Store     HighScoreStore
	Reporters []Reporter
}

type SearchResult struct {
	Winner    *Road
	HighScore float64
	Rounds    int
	// History holds the best known length after each round.
	History []float64
	Pool    Pool
}

func NewSearch(cities Catalog, params *Parameters, store HighScoreStore, rng Rand, reporters ...Reporter) (*Search, error) {
	engine, err := NewGenerationEngine(cities, params, rng)
	if err != nil {
		return nil, err
	}
	return &Search{
		Cities:    cities,
		Params:    params,
		Engine:    engine,
		Store:     store,
		Reporters: reporters,
	}, nil
}

// Run executes the search. ctx is only consulted between generations; a
// cancelled run stops early but still stores the best road found so far.
func (s *Search) Run(ctx context.Context) (*SearchResult, error) {
	t0 := time.Now()
	pool := s.Engine.Seed()
	log.Printf("generated %d random paths in %s", len(pool), Spent(time.Since(t0)))

	winner, err := s.loadHighScore()
	if err != nil {
		return nil, err
	}
	highScore := math.Inf(1)
	if winner != nil {
		highScore = winner.Length()
	}

	result := &SearchResult{History: make([]float64, 0, s.Params.NbRounds)}
	for round := 1; round <= s.Params.NbRounds; round++ {
		if err := ctx.Err(); err != nil {
			log.Printf("Stopping before round %d: %v", round, err)
			break
		}
		var report *GenerationReport
		pool, report = s.Engine.Step(pool)
		report.Round = round

		if best := Best(pool); best != nil && best.ShorterThanLength(highScore) {
			winner = best
			highScore = best.Length()
			report.Improved = true
		}
		report.Winner = winner
		report.HighScore = highScore
		report.Elapsed = time.Since(t0)

		result.Rounds = round
		result.History = append(result.History, highScore)
		s.report(report)
	}

	if winner == nil {
		winner = Best(pool)
	}
	result.Winner = winner
	result.Pool = pool
	if winner != nil {
		result.HighScore = winner.Length()
		if err := s.Store.WriteHighScore(winner); err != nil {
			return result, fmt.Errorf("failed to store high score: %w", err)
		}
	}
	return result, nil
}

// loadHighScore returns the stored best road, ignoring one that does not
// visit exactly the cities of this catalog.
func (s *Search) loadHighScore() (*Road, error) {
	road, err := s.Store.ReadHighScore()
	if err != nil {
		return nil, fmt.Errorf("failed to read high score: %w", err)
	}
	if road == nil {
		return nil, nil
	}
	if road.Len() != len(s.Cities) {
		log.Printf("Ignoring high score of %d cities for a catalog of %d", road.Len(), len(s.Cities))
		return nil, nil
	}
	for _, c := range s.Cities {
		if !road.Contains(c) {
			log.Printf("Ignoring high score: city %v is not on it", c)
			return nil, nil
		}
	}
	return road, nil
}

func (s *Search) report(report *GenerationReport) {
	for _, r := range s.Reporters {
		if err := r.ReportRound(report); err != nil {
			log.Printf("Reporter %T failed on round %d: %v", r, report.Round, err)
		}
	}
}
