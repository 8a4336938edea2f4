package salesman

import (
	"math/rand"
	"time"
)

// Rand is the random source consumed by tour generation, immigration and
// parent selection. *rand.Rand satisfies it. A Rand is not shared between
// goroutines; parallel breeders each get their own stream from deriveRand.
type Rand interface {
	Intn(n int) int
	Int63() int64
}

// NewRand returns a seeded source. If seed is 0, the current time is used
// (non-deterministic). A non-zero seed gives reproducible runs.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// deriveRand creates an independent stream from base. base.Int63 is consumed
// once per call so repeated derivations with the same stream id differ.
func deriveRand(base Rand, stream uint64) *rand.Rand {
	x := uint64(base.Int63()) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return rand.New(rand.NewSource(int64(x)))
}

const (
	DEBUG = false

	// MaxParentDraws bounds how many parent pairs are drawn while looking
	// for two distinct parents before settling for the last pair.
	MaxParentDraws = 10
	// MaxConvergeAttempts bounds the breed/dedup passes of one generation.
	MaxConvergeAttempts = 5

	CitiesFile    = "cities.yml"
	HighScoreFile = "high_score.yml"
	ParamsFile    = "params.toml"
	HistoryFile   = "history.db"

	// NoScoreLength is written to an erased high score file.
	NoScoreLength = 1e100
)
