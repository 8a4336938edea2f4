package salesman

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HighScoreStore keeps the best road found across runs.
type HighScoreStore interface {
	// ReadHighScore returns nil, nil when there is no usable record.
	ReadHighScore() (*Road, error)
	WriteHighScore(road *Road) error
}

type highScoreDocument struct {
	Length float64 `yaml:"length"`
	Path   [][]int `yaml:"path"`
}

// FileCheckpoint stores the high score as a YAML document
// {length: float, path: [[x, y], ...] | null}.
type FileCheckpoint struct {
	Path string
}

var _ HighScoreStore = (*FileCheckpoint)(nil)

func NewFileCheckpoint(path string) *FileCheckpoint {
	return &FileCheckpoint{Path: path}
}

// ReadHighScore treats a missing, unreadable or malformed file as no
// record at all.
func (fc *FileCheckpoint) ReadHighScore() (*Road, error) {
	content, err := os.ReadFile(fc.Path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Ignoring unreadable high score %s: %v", fc.Path, err)
		}
		return nil, nil
	}
	var doc highScoreDocument
	if err := yaml.Unmarshal(content, &doc); err != nil {
		log.Printf("Ignoring corrupt high score %s: %v", fc.Path, err)
		return nil, nil
	}
	if len(doc.Path) == 0 {
		return nil, nil
	}
	road, err := RoadFromList(doc.Path)
	if err != nil {
		log.Printf("Ignoring corrupt high score %s: %v", fc.Path, err)
		return nil, nil
	}
	return road, nil
}

func (fc *FileCheckpoint) WriteHighScore(road *Road) error {
	return fc.write(&highScoreDocument{Length: road.Length(), Path: road.ExportPath()})
}

// Erase replaces the record with an empty one.
func (fc *FileCheckpoint) Erase() error {
	return fc.write(&highScoreDocument{Length: NoScoreLength})
}

func (fc *FileCheckpoint) write(doc *highScoreDocument) error {
	if err := os.MkdirAll(filepath.Dir(fc.Path), 0o755); err != nil {
		return err
	}
	content, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(fc.Path, content, 0o644)
}
