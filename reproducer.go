package salesman

import (
	"log"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Reproducer breeds children from a generation's base pool with MixRoads.
type Reproducer struct {
	Selector *Selector
	// Workers is the number of goroutines sharing one Breed call. Values
	// below 2 breed on the calling goroutine with the caller's Rand.
	Workers int
	// Refine runs OptimizeABCD on every child.
	Refine bool
}

func NewReproducer(selector *Selector, workers int, refine bool) *Reproducer {
	return &Reproducer{
		Selector: selector,
		Workers:  workers,
		Refine:   refine,
	}
}

// Breed produces count children from base. It returns the children and the
// number of parent pairs that could not be made distinct.
func (r *Reproducer) Breed(base Pool, count int, rng Rand) (Pool, uint) {
	if count <= 0 || len(base) == 0 {
		return Pool{}, 0
	}
	children := make(Pool, count)

	workers := r.Workers
	if workers > count {
		workers = count
	}
	if workers < 2 {
		degraded := r.breedChunk(base, children, rng)
		return children, degraded
	}

	// Each worker owns a contiguous slice of children and its own stream, so
	// the output only depends on the seed and the worker count.
	chunkSize := count / workers
	var degraded atomic.Uint64
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if i == workers-1 {
			end = count
		}
		chunk := children[start:end]
		stream := deriveRand(rng, uint64(i))
		g.Go(func() error {
			degraded.Add(uint64(r.breedChunk(base, chunk, stream)))
			return nil
		})
	}
	_ = g.Wait()

	return children, uint(degraded.Load())
}

func (r *Reproducer) breedChunk(base Pool, out Pool, rng Rand) uint {
	var degraded uint
	for i := range out {
		a, b, distinct := r.Selector.Pair(base, rng)
		if !distinct {
			degraded++
			if DEBUG {
				log.Printf("No distinct parents after %d draws, breeding %s with itself", r.Selector.MaxDraws, a.ShortRepr())
			}
		}
		child := MixRoads(a, b)
		if r.Refine {
			child = OptimizeABCD(child)
		}
		out[i] = child
	}
	return degraded
}
