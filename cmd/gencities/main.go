package main

import (
	"flag"
	"log"
	"strconv"

	"nickandperla.net/salesman"
)

/*
	Load parameters (TOML)

	Apply overrides, then:
		Generate a new catalog of distinct cities
		Save it to cities.yml
		Erase the high score of the previous catalog

	The history database, if any, keeps its runs but loses its high scores.
*/

var dataPath = flag.String("data", salesman.DefaultDataPath, "Directory holding params.toml and cities.yml")
var nbCities = flag.Int("n", 0, "Number of cities, stored as nb_cities (0 keeps the current value)")
var sizeX = flag.Int("x", 0, "Exclusive upper bound of X, stored as size_x (0 keeps the current value)")
var sizeY = flag.Int("y", 0, "Exclusive upper bound of Y, stored as size_y (0 keeps the current value)")
var seed = flag.Int64("seed", 0, "Random seed for generation (0 = time based)")

func main() {
	flag.Parse()

	params, err := salesman.LoadParameters(*dataPath)
	if err != nil {
		log.Fatalf("Unable to load parameters: %v", err)
	}

	changed := false
	for key, value := range map[string]int{"nb_cities": *nbCities, "size_x": *sizeX, "size_y": *sizeY} {
		if value == 0 {
			continue
		}
		if err := params.Set(key, strconv.Itoa(value)); err != nil {
			log.Fatalf("Unable to set %s: %v", key, err)
		}
		changed = true
	}
	if changed {
		log.Printf("Parameters saved to %s", params.Join(salesman.ParamsFile))
	}

	cities, err := salesman.RegenerateCatalog(params, salesman.NewRand(*seed))
	if err != nil {
		log.Fatalf("Unable to generate cities: %v", err)
	}

	persist, err := salesman.NewPersistence(salesman.HistoryConfig(params))
	if err != nil {
		log.Fatalf("Failed to create or initialize Persistence: %v", err)
	}
	defer persist.Shutdown()
	if err := persist.EraseHighScore(); err != nil {
		log.Fatalf("Failed to erase stored high scores: %v", err)
	}

	log.Printf("Generated %d cities in %dx%d", len(cities), params.SizeX, params.SizeY)
}
