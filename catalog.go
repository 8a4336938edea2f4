package salesman

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Catalog is the fixed, ordered set of cities a run visits. It is shared
// read-only by every component of the run.
type Catalog []City

type catalogDocument struct {
	Cities [][]int `yaml:"cities"`
}

// GenerateCatalog draws n distinct cities with 0 <= X < sizeX and
// 0 <= Y < sizeY, rejecting coordinates already taken.
func GenerateCatalog(n, sizeX, sizeY int, rng Rand) (Catalog, error) {
	if n <= 0 {
		return nil, ErrEmptyCatalog
	}
	if sizeX <= 0 || sizeY <= 0 || int64(n) > int64(sizeX)*int64(sizeY) {
		return nil, fmt.Errorf("%w: %d cities in %dx%d", ErrCoordinateSpaceExhausted, n, sizeX, sizeY)
	}
	cities := make(Catalog, 0, n)
	taken := make(map[City]struct{}, n)
	for len(cities) < n {
		c := City{X: rng.Intn(sizeX), Y: rng.Intn(sizeY)}
		if _, ok := taken[c]; ok {
			continue
		}
		taken[c] = struct{}{}
		cities = append(cities, c)
	}
	return cities, nil
}

// LoadCatalog reads a cities file written by Save.
func LoadCatalog(path string) (Catalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc catalogDocument
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, &DataFormatError{Source: path, Index: -1, Reason: "not a cities document", Err: err}
	}
	cities, err := citiesFromList(path, doc.Cities)
	if err != nil {
		return nil, err
	}
	if len(cities) == 0 {
		return nil, ErrEmptyCatalog
	}
	return cities, nil
}

func (c Catalog) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	content, err := yaml.Marshal(&catalogDocument{Cities: c.Export()})
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}

func (c Catalog) Export() [][]int {
	out := make([][]int, len(c))
	for i, city := range c {
		out[i] = []int{city.X, city.Y}
	}
	return out
}

// LoadOrGenerateCatalog returns the catalog stored under the data path,
// generating and saving a new one when none exists. A new catalog makes any
// stored high score meaningless, so the high score file is erased too.
func LoadOrGenerateCatalog(p *Parameters, rng Rand) (Catalog, bool, error) {
	path := p.Join(CitiesFile)
	cities, err := LoadCatalog(path)
	if err == nil {
		return cities, false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, fmt.Errorf("failed to load catalog: %w", err)
	}
	cities, err = RegenerateCatalog(p, rng)
	if err != nil {
		return nil, false, err
	}
	return cities, true, nil
}

// RegenerateCatalog unconditionally replaces the stored catalog.
func RegenerateCatalog(p *Parameters, rng Rand) (Catalog, error) {
	log.Printf("Generating %d cities.", p.NbCities)
	cities, err := GenerateCatalog(p.NbCities, p.SizeX, p.SizeY, rng)
	if err != nil {
		return nil, err
	}
	path := p.Join(CitiesFile)
	log.Printf("Saving to %s", path)
	if err := cities.Save(path); err != nil {
		return nil, fmt.Errorf("failed to save catalog: %w", err)
	}
	if err := NewFileCheckpoint(p.Join(HighScoreFile)).Erase(); err != nil {
		return nil, fmt.Errorf("failed to erase high score: %w", err)
	}
	return cities, nil
}

// citiesFromList converts flat [x, y] pairs, rejecting bad shapes, negative
// coordinates and repeated cities.
func citiesFromList(source string, list [][]int) ([]City, error) {
	cities := make([]City, len(list))
	seen := make(map[City]struct{}, len(list))
	for i, xy := range list {
		if len(xy) != 2 {
			return nil, &DataFormatError{Source: source, Index: i, Reason: fmt.Sprintf("expected [x, y], got %d values", len(xy))}
		}
		if xy[0] < 0 || xy[1] < 0 {
			return nil, &DataFormatError{Source: source, Index: i, Reason: "negative coordinate"}
		}
		c := City{X: xy[0], Y: xy[1]}
		if _, dup := seen[c]; dup {
			return nil, &DataFormatError{Source: source, Index: i, Reason: fmt.Sprintf("duplicate city %v", c)}
		}
		seen[c] = struct{}{}
		cities[i] = c
	}
	return cities, nil
}
