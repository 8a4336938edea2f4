package salesman

import (
	"log"
	"time"
)

// GenerationEngine turns one sorted pool into the next.
type GenerationEngine struct {
	Cities              Catalog
	PoolSize            int
	MaxConvergeAttempts int
	Culler              *Culler
	Reproducer          *Reproducer

	rng Rand
}

func NewGenerationEngine(cities Catalog, params *Parameters, rng Rand) (*GenerationEngine, error) {
	if len(cities) == 0 {
		return nil, ErrEmptyCatalog
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.PoolKeepBest+params.PoolAddRandom == 0 {
		return nil, ErrEmptyBreedingPool
	}
	return &GenerationEngine{
		Cities:              cities,
		PoolSize:            params.PoolSize,
		MaxConvergeAttempts: params.MaxConvergeAttempts,
		Culler:              NewCuller(cities, params.PoolKeepBest, params.PoolAddRandom),
		Reproducer: NewReproducer(
			NewSelector(params.MaxParentDraws),
			params.Workers,
			params.RefineChildren),
		rng: rng,
	}, nil
}

// Seed returns the initial pool of the run.
func (ge *GenerationEngine) Seed() Pool {
	return SeedPool(ge.Cities, ge.PoolSize, ge.rng)
}

// Step runs one generation on a pool sorted shortest first: keep the elite,
// add immigrants, then breed and deduplicate until PoolSize distinct
// children exist or MaxConvergeAttempts passes are spent. An undersized
// pool after the last pass is returned as is and flagged in the report.
func (ge *GenerationEngine) Step(pool Pool) (Pool, *GenerationReport) {
	start := time.Now()
	report := &GenerationReport{}

	base := ge.Culler.Cull(pool, ge.rng)
	if len(base) == 0 {
		log.Printf("Nothing to breed from: %v", ErrEmptyBreedingPool)
	}

	next := Pool{}
	for len(base) > 0 && report.Attempts < ge.MaxConvergeAttempts && len(next) < ge.PoolSize {
		children, degraded := ge.Reproducer.Breed(base, ge.PoolSize-len(next), ge.rng)
		report.DegradedPairs += degraded
		next = Uniq(SortPool(append(next, children...)))
		report.Attempts++
	}
	report.Converged = len(next) == ge.PoolSize

	report.fillFromPool(next)
	report.Duration = time.Since(start)
	return next, report
}
