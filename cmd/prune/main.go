package main

import (
	"flag"
	"fmt"
	"log"

	"nickandperla.net/salesman"
)

var dataPath = flag.String("data", salesman.DefaultDataPath, "Directory holding params.toml and the history database")
var keep = flag.Int("keep", 10, "Number of most recent runs to keep")
var dryRun = flag.Bool("dry-run", false, "Preview what would be deleted without actually deleting")

func main() {
	flag.Parse()

	params, err := salesman.LoadParameters(*dataPath)
	if err != nil {
		log.Fatalf("Unable to load parameters: %v", err)
	}

	persist, err := salesman.NewPersistence(salesman.HistoryConfig(params))
	if err != nil {
		log.Fatalf("Failed to create or initialize Persistence: %v", err)
	}
	defer persist.Shutdown()

	if *dryRun {
		log.Printf("DRY RUN: previewing prune keeping %d runs", *keep)
	} else {
		log.Printf("Pruning history, keeping the latest %d runs", *keep)
	}

	result, err := persist.Prune(*keep, *dryRun)
	if err != nil {
		log.Fatalf("Prune failed: %v", err)
	}

	fmt.Printf("History prune %s:\n", map[bool]string{true: "(dry run)", false: "complete"}[*dryRun])
	fmt.Printf("  Total runs:      %d\n", result.TotalRuns)
	fmt.Printf("  Runs kept:       %d\n", result.KeptRuns)
	fmt.Printf("  Runs deleted:    %d\n", result.DeletedRuns)
	fmt.Printf("  Rounds deleted:  %d\n", result.DeletedRounds)
}
