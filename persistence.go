package salesman

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	cp "github.com/jinzhu/copier"
	gorm "gorm.io/gorm"
)

type PersistenceConfig struct {
	Name          string
	Path          string
	SQLitePragmas []string
	SQLiteOptions []string
}

// Persistence is the SQLite history store: one Run row per search, one
// RoundRecord per generation, and the high score records. It implements
// both Reporter and HighScoreStore.
type Persistence struct {
	Config *PersistenceConfig
	DB     *gorm.DB

	run *Run
}

var (
	_ Reporter       = (*Persistence)(nil)
	_ HighScoreStore = (*Persistence)(nil)
)

type Run struct {
	ID            uint
	CreatedAt     time.Time
	Seed          int64
	NbCities      int
	PoolSize      int
	PoolKeepBest  int
	PoolAddRandom int
	NbRounds      int
	RoundsRun     int
	BestLength    float64
	Finished      bool
}

type RoundRecord struct {
	ID             uint
	RunID          uint `gorm:"index"`
	Round          int
	PoolSize       int
	Attempts       int
	Converged      bool
	DegradedPairs  uint
	BestLength     float64
	TopHalfAverage float64
	Diversity      int
	HighScore      float64
	Improved       bool
	DurationMS     int64
}

type HighScoreRecord struct {
	ID        uint
	CreatedAt time.Time
	RunID     *uint
	Length    float64
	Path      [][]int `gorm:"serializer:json"`
}

func NewPersistence(config *PersistenceConfig) (*Persistence, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if len(config.Path) == 0 {
		return nil, fmt.Errorf("Path to database must be defined")
	}

	if len(config.Name) == 0 {
		return nil, fmt.Errorf("Name of database must be defined")
	}

	params := make([]string, 0, len(config.SQLitePragmas)+len(config.SQLiteOptions))
	for _, prag := range config.SQLitePragmas {
		params = append(params, fmt.Sprintf("_pragma=%s", prag))
	}
	params = append(params, config.SQLiteOptions...)

	var path strings.Builder
	path.WriteString(filepath.Join(expandHome(config.Path), config.Name))
	if len(params) > 0 {
		path.WriteRune('?')
		path.WriteString(strings.Join(params, "&"))
	}

	db, err := gorm.Open(sqlite.Open(path.String()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	db = db.Session(&gorm.Session{PrepareStmt: true, CreateBatchSize: 1000})

	p := &Persistence{Config: config, DB: db}
	if err = p.initialize(); err != nil {
		return nil, err
	}

	return p, nil
}

// HistoryConfig is the store configuration used by the tools: the history
// database sits in the data directory next to the cities file.
func HistoryConfig(p *Parameters) *PersistenceConfig {
	name := p.HistoryDB
	if name == "" {
		name = HistoryFile
	}
	return &PersistenceConfig{
		Name:          name,
		Path:          p.Dir(),
		SQLitePragmas: []string{"journal_mode(WAL)", "busy_timeout(5000)"},
	}
}

func (p *Persistence) initialize() error {
	if err := p.DB.AutoMigrate(
		&Run{},
		&RoundRecord{},
		&HighScoreRecord{},
	); err != nil {
		return err
	}

	return nil
}

func (p *Persistence) Shutdown() {
	if sqldb, err := p.DB.DB(); err != nil {
		log.Fatalf("Failed to retrieve raw DB: %v", err)
	} else {
		sqldb.Close()
	}
}

// StartRun records a new run; following rounds and high scores attach to it.
func (p *Persistence) StartRun(params *Parameters) (*Run, error) {
	run := &Run{
		Seed:          params.Seed,
		NbCities:      params.NbCities,
		PoolSize:      params.PoolSize,
		PoolKeepBest:  params.PoolKeepBest,
		PoolAddRandom: params.PoolAddRandom,
		NbRounds:      params.NbRounds,
	}
	if result := p.DB.Create(run); result.Error != nil {
		return nil, fmt.Errorf("Failed to call gorm.Create(): %w", result.Error)
	}
	p.run = run
	return run, nil
}

func (p *Persistence) ReportRound(report *GenerationReport) error {
	record := &RoundRecord{}
	if err := cp.Copy(record, report); err != nil {
		return fmt.Errorf("failed to copy round report: %w", err)
	}
	record.DurationMS = report.Duration.Milliseconds()
	if p.run != nil {
		record.RunID = p.run.ID
	}
	if result := p.DB.Create(record); result.Error != nil {
		return fmt.Errorf("failed to save round %d: %w", report.Round, result.Error)
	}
	if p.run != nil {
		p.run.RoundsRun = report.Round
		p.run.BestLength = report.HighScore
		if result := p.DB.Save(p.run); result.Error != nil {
			return fmt.Errorf("failed to update run %d: %w", p.run.ID, result.Error)
		}
	}
	return nil
}

// ReadHighScore returns the most recent high score, nil when none is stored
// or the stored path is malformed.
func (p *Persistence) ReadHighScore() (*Road, error) {
	var record HighScoreRecord
	result := p.DB.Order("id desc").Limit(1).Find(&record)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to query high score: %w", result.Error)
	}
	if result.RowsAffected == 0 || len(record.Path) == 0 {
		return nil, nil
	}
	road, err := RoadFromList(record.Path)
	if err != nil {
		log.Printf("Ignoring corrupt high score %d: %v", record.ID, err)
		return nil, nil
	}
	return road, nil
}

// WriteHighScore stores road and marks the current run finished.
func (p *Persistence) WriteHighScore(road *Road) error {
	record := &HighScoreRecord{Length: road.Length(), Path: road.ExportPath()}
	if p.run != nil {
		id := p.run.ID
		record.RunID = &id
	}
	return p.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to save high score: %w", err)
		}
		if p.run == nil {
			return nil
		}
		p.run.BestLength = record.Length
		p.run.Finished = true
		return tx.Save(p.run).Error
	})
}

// EraseHighScore drops every stored high score.
func (p *Persistence) EraseHighScore() error {
	return p.DB.Where("1 = 1").Delete(&HighScoreRecord{}).Error
}

func (p *Persistence) Runs() ([]Run, error) {
	var runs []Run
	if err := p.DB.Order("id").Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (p *Persistence) Rounds(runID uint) ([]RoundRecord, error) {
	var rounds []RoundRecord
	if err := p.DB.Where("run_id = ?", runID).Order("round").Find(&rounds).Error; err != nil {
		return nil, err
	}
	return rounds, nil
}

type PruneResult struct {
	TotalRuns     int
	KeptRuns      int
	DeletedRuns   int
	DeletedRounds int64
}

// Prune deletes every run but the latest keep, with their round records.
// High score records are kept, detached from their deleted run.
func (p *Persistence) Prune(keep int, dryRun bool) (*PruneResult, error) {
	if keep < 0 {
		return nil, errors.New("keep must not be negative")
	}
	runs, err := p.Runs()
	if err != nil {
		return nil, err
	}
	result := &PruneResult{TotalRuns: len(runs)}
	if len(runs) <= keep {
		result.KeptRuns = len(runs)
		return result, nil
	}

	doomed := make([]uint, 0, len(runs)-keep)
	for _, r := range runs[:len(runs)-keep] {
		doomed = append(doomed, r.ID)
	}
	result.KeptRuns = keep
	result.DeletedRuns = len(doomed)

	if dryRun {
		if err := p.DB.Model(&RoundRecord{}).Where("run_id IN ?", doomed).Count(&result.DeletedRounds).Error; err != nil {
			return nil, err
		}
		return result, nil
	}

	err = p.DB.Transaction(func(tx *gorm.DB) error {
		rounds := tx.Where("run_id IN ?", doomed).Delete(&RoundRecord{})
		if rounds.Error != nil {
			return fmt.Errorf("failed to delete rounds: %w", rounds.Error)
		}
		result.DeletedRounds = rounds.RowsAffected
		if err := tx.Model(&HighScoreRecord{}).Where("run_id IN ?", doomed).Update("run_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach high scores: %w", err)
		}
		if err := tx.Where("id IN ?", doomed).Delete(&Run{}).Error; err != nil {
			return fmt.Errorf("failed to delete runs: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
