package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"nickandperla.net/salesman"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var dataPath = flag.String("data", salesman.DefaultDataPath, "Directory holding params.toml, cities.yml and the high score")
var rounds = flag.Int("rounds", -1, "Override nb_rounds for this run")
var seed = flag.Int64("seed", -1, "Override the random seed (0 = time based)")
var workers = flag.Int("workers", -1, "Override the number of breeding goroutines")
var refine = flag.Bool("refine", false, "Run the four-city window pass on every child")
var history = flag.Bool("history", false, "Keep the high score and round history in the SQLite history database instead of high_score.yml")
var metricsAddr = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. ':9100'")
var set = flag.String("set", "", "Comma separated key=value parameters to store before running")

func main() {
	flag.Parse()

	params, err := salesman.LoadParameters(*dataPath)
	if err != nil {
		log.Fatalf("Unable to load parameters: %v", err)
	}
	if *set != "" {
		for _, kv := range strings.Split(*set, ",") {
			key, value, ok := strings.Cut(kv, "=")
			if !ok {
				log.Fatalf("Bad -set entry %q, expected key=value", kv)
			}
			if err := params.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
				log.Fatalf("Unable to set parameter: %v", err)
			}
		}
	}

	// Command line overrides apply to this run only.
	run := params.Clone()
	if *rounds >= 0 {
		run.NbRounds = *rounds
	}
	if *seed >= 0 {
		run.Seed = *seed
	}
	if *workers >= 0 {
		run.Workers = *workers
	}
	if *refine {
		run.RefineChildren = true
	}
	if err := run.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	rng := salesman.NewRand(run.Seed)
	cities, generated, err := salesman.LoadOrGenerateCatalog(run, rng)
	if err != nil {
		log.Fatalf("Unable to load cities: %v", err)
	}

	reporters := []salesman.Reporter{salesman.NewConsoleReporter(os.Stdout)}
	var store salesman.HighScoreStore = salesman.NewFileCheckpoint(run.Join(salesman.HighScoreFile))

	if *history {
		persist, err := salesman.NewPersistence(salesman.HistoryConfig(run))
		if err != nil {
			log.Fatalf("Failed to create or initialize Persistence: %v", err)
		}
		defer persist.Shutdown()
		if generated {
			if err := persist.EraseHighScore(); err != nil {
				log.Fatalf("Failed to erase high score: %v", err)
			}
		}
		if _, err := persist.StartRun(run); err != nil {
			log.Fatalf("Failed to record run: %v", err)
		}
		store = persist
		reporters = append(reporters, persist)
	}

	if *metricsAddr != "" {
		reporters = append(reporters, salesman.NewPrometheusReporter(nil, ""))
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Metrics server stopped: %v", err)
			}
		}()
	}

	search, err := salesman.NewSearch(cities, run, store, rng, reporters...)
	if err != nil {
		log.Fatalf("Unable to set up search: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := search.Run(ctx)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}
	if result.Winner != nil {
		log.Printf("Best road after %d rounds: %s", result.Rounds, result.Winner.ShortRepr())
	}
}
