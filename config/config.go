// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Pheromone PheromoneConfig `yaml:"pheromone"`
	Steering  SteeringConfig  `yaml:"steering"`
	Ant       AntConfig       `yaml:"ant"`
	Colony    ColonyConfig    `yaml:"colony"`
	Food      FoodConfig      `yaml:"food"`
	Parallel  ParallelConfig  `yaml:"parallel"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions.
// World can differ from the screen; zero means "use screen size".
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PhysicsConfig holds tick timing and the shared grid resolution.
// CellSize is used by both the terrain grid and the pheromone field, so a
// trail cell and a terrain cell always coincide.
type PhysicsConfig struct {
	DT       float64 `yaml:"dt"`
	CellSize float64 `yaml:"cell_size"`
}

// PheromoneConfig holds trail field decay parameters.
type PheromoneConfig struct {
	EvaporationRate float64 `yaml:"evaporation_rate"` // strength lost per second
	RemoveThreshold float64 `yaml:"remove_threshold"` // entries at or below this are deleted
}

// SteeringConfig holds the pheromone-following parameters.
// Foraging ants search a wide arc quickly; carrying ants home in on a narrow
// forward arc with a slow, stable turn rate.
type SteeringConfig struct {
	DirectionsForaging int     `yaml:"directions_foraging"`
	DirectionsCarrying int     `yaml:"directions_carrying"`
	MinSenseDistance   float64 `yaml:"min_sense_distance"`
	MaxSenseDistance   float64 `yaml:"max_sense_distance"`
	SenseThreshold     float64 `yaml:"sense_threshold"`
	ForwardForaging    float64 `yaml:"forward_foraging"` // max accepted turn, radians
	ForwardCarrying    float64 `yaml:"forward_carrying"`
	TurnRateForaging   float64 `yaml:"turn_rate_foraging"`
	TurnRateCarrying   float64 `yaml:"turn_rate_carrying"`
	NoiseForaging      float64 `yaml:"noise_foraging"` // uniform perturbation amplitude, radians
	NoiseCarrying      float64 `yaml:"noise_carrying"`
	IgnoreDuration     float64 `yaml:"ignore_duration"` // seconds of sensing suppression after a find
}

// AntConfig holds per-ant movement and deposit parameters.
type AntConfig struct {
	Speed                 float64 `yaml:"speed"`
	DepositIntervalSearch float64 `yaml:"deposit_interval_search"` // seconds between Home deposits
	DepositIntervalReturn float64 `yaml:"deposit_interval_return"` // seconds between Food deposits
	DepositNear           float64 `yaml:"deposit_near"`            // strength at the trip origin
	DepositFar            float64 `yaml:"deposit_far"`             // strength at and beyond the falloff distance
	DepositFalloff        float64 `yaml:"deposit_falloff"`         // distance over which strength fades
	WanderTurn            float64 `yaml:"wander_turn"`             // random turn range, radians
	WanderMinInterval     float64 `yaml:"wander_min_interval"`
	WanderMaxInterval     float64 `yaml:"wander_max_interval"`
	WanderBoostForaging   float64 `yaml:"wander_boost_foraging"` // turn multiplier when no trail is sensed
	WanderBoostCarrying   float64 `yaml:"wander_boost_carrying"`
	EdgeMargin            float64 `yaml:"edge_margin"`
}

// ColonyConfig holds nest and population parameters.
type ColonyConfig struct {
	InitialAnts int     `yaml:"initial_ants"`
	MaxAnts     int     `yaml:"max_ants"`
	MaxAntsCap  int     `yaml:"max_ants_cap"` // hard ceiling for colony growth
	SpawnCost   float64 `yaml:"spawn_cost"`   // food consumed per new ant
	GrowthFood  float64 `yaml:"growth_food"`  // stored food needed to raise the ant cap
	NestRadius  float64 `yaml:"nest_radius"`  // delivery distance
}

// FoodConfig holds food source parameters.
type FoodConfig struct {
	CellAmount   float64 `yaml:"cell_amount"`   // units per placed food cell
	PickupAmount float64 `yaml:"pickup_amount"` // units one ant carries
	Patches      int     `yaml:"patches"`       // food patches seeded at startup
	PatchCells   int     `yaml:"patch_cells"`   // cells per seeded patch
}

// ParallelConfig holds the parallel steering pass parameters.
type ParallelConfig struct {
	Threshold int `yaml:"threshold"` // minimum ant count before workers are used
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32     float32 // Physics.DT as float32
	WorldW32 float32 // effective world width
	WorldH32 float32 // effective world height
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the simulation cannot run with.
// Degenerate grid geometry is a fatal setup error, not a per-call concern.
func (c *Config) validate() error {
	if c.Physics.CellSize <= 0 {
		return fmt.Errorf("config: cell_size must be positive, got %v", c.Physics.CellSize)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("config: dt must be positive, got %v", c.Physics.DT)
	}
	if c.Pheromone.EvaporationRate <= 0 {
		return fmt.Errorf("config: evaporation_rate must be positive, got %v", c.Pheromone.EvaporationRate)
	}
	if c.Steering.MaxSenseDistance < c.Steering.MinSenseDistance {
		return fmt.Errorf("config: max_sense_distance %v below min_sense_distance %v",
			c.Steering.MaxSenseDistance, c.Steering.MinSenseDistance)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
