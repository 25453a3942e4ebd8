package simulation

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lao-tseu-is-alive/go-flocking/pkg/flock"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrUnsupportedConfigFormat is returned for config files that are neither
// .json nor .toml.
var ErrUnsupportedConfigFormat = errors.New("unsupported config format")

//go:embed config.schema.json
var configSchema string

type Config struct {
	// Population
	NumBoids    int     `json:"numBoids" toml:"numBoids"`
	SpawnExtent float64 `json:"spawnExtent" toml:"spawnExtent"` // side of the spawn square, centred on the origin
	Seed        uint64  `json:"seed" toml:"seed"`

	// Scheduling
	TicksPerSecond int    `json:"ticksPerSecond" toml:"ticksPerSecond"`
	TickMode       string `json:"tickMode" toml:"tickMode"` // serial, fused or parallel
	Workers        int    `json:"workers" toml:"workers"`   // parallel mode only, 0 means GOMAXPROCS

	// Viewer
	WorldWidth  float64 `json:"worldWidth" toml:"worldWidth"`
	WorldHeight float64 `json:"worldHeight" toml:"worldHeight"`
	Zoom        float64 `json:"zoom" toml:"zoom"`

	// Flocking rules, tunable at runtime
	Control flock.Control `json:"control" toml:"control"`
}

func DefaultConfig() *Config {
	return &Config{
		NumBoids:       2000,
		SpawnExtent:    1000,
		Seed:           1,
		TicksPerSecond: 60,
		TickMode:       string(flock.ModeSerial),
		Workers:        0,
		WorldWidth:     1000,
		WorldHeight:    800,
		Zoom:           0.8,
		Control:        flock.DefaultControl(),
	}
}

// Mode returns the parsed TickMode, falling back to serial.
func (c *Config) Mode() flock.Mode {
	m, err := flock.ParseMode(c.TickMode)
	if err != nil {
		return flock.ModeSerial
	}
	return m
}

// Validate checks the settings the schema cannot express and repeats the
// range checks for configs that did not go through the schema (TOML).
func (c *Config) Validate() error {
	var errs []error
	if c.NumBoids < 0 {
		errs = append(errs, fmt.Errorf("numBoids must be >= 0, got %d", c.NumBoids))
	}
	if c.SpawnExtent <= 0 {
		errs = append(errs, fmt.Errorf("spawnExtent must be > 0, got %v", c.SpawnExtent))
	}
	if c.TicksPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("ticksPerSecond must be > 0, got %d", c.TicksPerSecond))
	}
	if _, err := flock.ParseMode(c.TickMode); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %vx%v", c.WorldWidth, c.WorldHeight))
	}
	if c.Zoom <= 0 {
		errs = append(errs, fmt.Errorf("zoom must be > 0, got %v", c.Zoom))
	}
	if err := c.Control.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("control: %w", err))
	}
	return errors.Join(errs...)
}

// LoadConfig loads configuration from a JSON or TOML file.
// JSON files are validated against schemaFile, or against the embedded
// schema when schemaFile is empty. Keys missing from the file keep their
// DefaultConfig value.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".json":
		cfg, err = loadJSON(configFile, schemaFile)
	case ".toml":
		cfg, err = loadTOML(configFile)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedConfigFormat, configFile)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}
	return cfg, nil
}

func compileSchema(schemaFile string) (*jsonschema.Schema, error) {
	if schemaFile == "" {
		return jsonschema.CompileString("config.schema.json", configSchema)
	}
	return jsonschema.Compile(schemaFile)
}

func loadJSON(configFile, schemaFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := compileSchema(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Validate
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal over the defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

func loadTOML(configFile string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(configFile, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("config validation failed: unknown keys %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}
