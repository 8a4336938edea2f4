package salesman

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	cp "github.com/jinzhu/copier"
)

const DefaultDataPath = "~/tmp/salesman/data"

// Parameters is the key/value configuration of a run, stored as TOML in
// <data_path>/params.toml.
type Parameters struct {
	DataPath      string `toml:"data_path"`
	NbCities      int    `toml:"nb_cities"`
	SizeX         int    `toml:"size_x"`
	SizeY         int    `toml:"size_y"`
	PoolSize      int    `toml:"pool_size"`
	PoolKeepBest  int    `toml:"pool_keep_best"`
	PoolAddRandom int    `toml:"pool_add_random"`
	NbRounds      int    `toml:"nb_rounds"`

	Seed                int64  `toml:"seed"`
	Workers             int    `toml:"workers"`
	MaxParentDraws      int    `toml:"max_parent_draws"`
	MaxConvergeAttempts int    `toml:"max_converge_attempts"`
	RefineChildren      bool   `toml:"refine_children"`
	HistoryDB           string `toml:"history_db"`
}

func DefaultParameters() *Parameters {
	return &Parameters{
		DataPath:            DefaultDataPath,
		NbCities:            100,
		SizeX:               1000,
		SizeY:               1000,
		PoolSize:            250,
		PoolKeepBest:        66,
		PoolAddRandom:       33,
		NbRounds:            100,
		Workers:             1,
		MaxParentDraws:      MaxParentDraws,
		MaxConvergeAttempts: MaxConvergeAttempts,
	}
}

// LoadParameters reads params.toml under dataPath, writing a file with the
// defaults first if there is none. Keys missing from the file keep their
// default value.
func LoadParameters(dataPath string) (*Parameters, error) {
	if dataPath == "" {
		dataPath = DefaultDataPath
	}
	p := DefaultParameters()
	p.DataPath = dataPath
	path := p.Join(ParamsFile)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := p.Save(); err != nil {
			return nil, err
		}
		return p, nil
	} else if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, p); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	// The file location wins over whatever data_path it records.
	p.DataPath = dataPath
	return p, nil
}

func (p *Parameters) Save() error {
	if err := p.EnsureDataDir(); err != nil {
		return err
	}
	f, err := os.Create(p.Join(ParamsFile))
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(p); err != nil {
		f.Close()
		return fmt.Errorf("failed to write parameters: %w", err)
	}
	return f.Close()
}

// Dir is DataPath with a leading "~" expanded.
func (p *Parameters) Dir() string {
	return expandHome(p.DataPath)
}

func (p *Parameters) Join(name string) string {
	return filepath.Join(p.Dir(), name)
}

func (p *Parameters) EnsureDataDir() error {
	return os.MkdirAll(p.Dir(), 0o755)
}

func (p *Parameters) Clone() *Parameters {
	clone := &Parameters{}
	cp.Copy(clone, p)
	return clone
}

func (p *Parameters) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}
	check(p.NbCities > 0, "nb_cities must be positive, got %d", p.NbCities)
	check(p.SizeX > 0 && p.SizeY > 0, "size_x and size_y must be positive, got %dx%d", p.SizeX, p.SizeY)
	check(p.PoolSize > 0, "pool_size must be positive, got %d", p.PoolSize)
	check(p.PoolKeepBest >= 0, "pool_keep_best must not be negative, got %d", p.PoolKeepBest)
	check(p.PoolAddRandom >= 0, "pool_add_random must not be negative, got %d", p.PoolAddRandom)
	check(p.NbRounds >= 0, "nb_rounds must not be negative, got %d", p.NbRounds)
	check(p.Workers >= 0, "workers must not be negative, got %d", p.Workers)
	check(p.MaxParentDraws >= 1, "max_parent_draws must be at least 1, got %d", p.MaxParentDraws)
	check(p.MaxConvergeAttempts >= 1, "max_converge_attempts must be at least 1, got %d", p.MaxConvergeAttempts)
	if len(problems) > 0 {
		return fmt.Errorf("invalid parameters: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Keys lists the recognized parameter names.
func (p *Parameters) Keys() []string {
	t := reflect.TypeOf(*p)
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		keys = append(keys, t.Field(i).Tag.Get("toml"))
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value stored under key.
func (p *Parameters) Get(key string) (any, error) {
	field, err := p.field(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set parses value for key and saves the parameters file.
func (p *Parameters) Set(key, value string) error {
	field, err := p.field(key)
	if err != nil {
		return err
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("parameter %s: %w", key, err)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parameter %s: %w", key, err)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("parameter %s: unsupported kind %s", key, field.Kind())
	}
	return p.Save()
}

func (p *Parameters) field(key string) (reflect.Value, error) {
	v := reflect.ValueOf(p).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") == key {
			return v.Field(i), nil
		}
	}
	return reflect.Value{}, fmt.Errorf("%w: %q", ErrUnknownParameter, key)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
