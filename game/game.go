package game

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/antworks/components"
	"github.com/pthm-cable/antworks/config"
	"github.com/pthm-cable/antworks/pheromone"
	"github.com/pthm-cable/antworks/systems"
	"github.com/pthm-cable/antworks/telemetry"
)

// Options configures game creation.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	SnapshotDir    string
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	cfg   *config.Config
	opts  Options
	seed  int64

	antMapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Heading,
		components.Ant,
	]
	antFilter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Heading,
		components.Ant,
	]

	// Individual component mappers for lookups
	posMap     *ecs.Map1[components.Position]
	headingMap *ecs.Map1[components.Heading]
	antMap     *ecs.Map1[components.Ant]

	// Trail field and terrain share one cell grid resolution
	field    *pheromone.Field
	terrain  *systems.WorldGrid
	deposits pheromone.DepositBuffer

	colonies []*Colony

	parallel *parallelState

	collector *telemetry.Collector
	output    *telemetry.OutputManager

	// State
	tick          int32
	simTime       float32
	paused        bool
	nextID        uint32
	antCount      int
	carryingCount int
	stepsPerFrame int

	// Interaction (graphical mode)
	brush brushMode

	width, height float32
}

// NewGameWithOptions creates a game with the given options.
// config.Init must have been called first.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	stepsPerFrame := opts.StepsPerUpdate
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}

	g := &Game{
		world:  world,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		cfg:    cfg,
		opts:   opts,
		seed:   opts.Seed,
		width:  cfg.Derived.WorldW32,
		height: cfg.Derived.WorldH32,

		stepsPerFrame: stepsPerFrame,
		brush:         brushWall,

		antMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Heading,
			components.Ant,
		](world),
		antFilter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Heading,
			components.Ant,
		](world),
		posMap:     ecs.NewMap1[components.Position](world),
		headingMap: ecs.NewMap1[components.Heading](world),
		antMap:     ecs.NewMap1[components.Ant](world),
	}

	field, err := pheromone.NewField(g.width, g.height, float32(cfg.Physics.CellSize))
	if err != nil {
		panic(err)
	}
	field.EvaporationRate = float32(cfg.Pheromone.EvaporationRate)
	field.RemoveThreshold = float32(cfg.Pheromone.RemoveThreshold)
	g.field = field

	terrain, err := systems.NewWorldGrid(g.width, g.height, float32(cfg.Physics.CellSize))
	if err != nil {
		panic(err)
	}
	g.terrain = terrain

	g.parallel = newParallelState(g.seed, steeringParams(cfg), field)

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, cfg.Physics.DT)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	} else {
		g.output = om
		if err := g.output.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
		}
	}

	g.setupWorld()

	return g
}

// steeringParams builds pheromone steering parameters from the config.
func steeringParams(cfg *config.Config) pheromone.Params {
	return pheromone.Params{
		DirectionsForaging: cfg.Steering.DirectionsForaging,
		DirectionsCarrying: cfg.Steering.DirectionsCarrying,
		SampleDistances: pheromone.SampleDistances(
			float32(cfg.Steering.MinSenseDistance),
			float32(cfg.Steering.MaxSenseDistance),
		),
		SenseThreshold:   float32(cfg.Steering.SenseThreshold),
		ForwardForaging:  float32(cfg.Steering.ForwardForaging),
		ForwardCarrying:  float32(cfg.Steering.ForwardCarrying),
		TurnRateForaging: float32(cfg.Steering.TurnRateForaging),
		TurnRateCarrying: float32(cfg.Steering.TurnRateCarrying),
		NoiseForaging:    float32(cfg.Steering.NoiseForaging),
		NoiseCarrying:    float32(cfg.Steering.NoiseCarrying),
	}
}

// setupWorld places the starting colony and food patches.
func (g *Game) setupWorld() {
	nestX, nestY, ok := g.terrain.PlaceNest(g.width/2, g.height/2)
	if !ok {
		panic("game: nest placement failed")
	}

	colony := NewColony(0, nestX, nestY, g.cfg)
	g.colonies = append(g.colonies, colony)

	g.seedFoodPatches()

	for i := 0; i < g.cfg.Colony.InitialAnts; i++ {
		heading := g.rng.Float32()*2*math.Pi - math.Pi
		g.spawnAnt(colony, heading)
	}
}

// seedFoodPatches scatters food patches away from the nest.
func (g *Game) seedFoodPatches() {
	cell := float32(g.cfg.Physics.CellSize)
	margin := float32(g.cfg.Ant.EdgeMargin)
	cellAmount := float32(g.cfg.Food.CellAmount)

	for p := 0; p < g.cfg.Food.Patches; p++ {
		// Keep patches out of the center third of the world so ants have to
		// establish trails.
		var px, py float32
		for tries := 0; tries < 32; tries++ {
			px = margin + g.rng.Float32()*(g.width-2*margin)
			py = margin + g.rng.Float32()*(g.height-2*margin)
			dx := px - g.width/2
			dy := py - g.height/2
			if dx*dx+dy*dy > (g.width/3)*(g.width/3) {
				break
			}
		}

		// Square patch of cells around the anchor
		side := 1
		for side*side < g.cfg.Food.PatchCells {
			side++
		}
		placed := 0
		for dy := 0; dy < side && placed < g.cfg.Food.PatchCells; dy++ {
			for dx := 0; dx < side && placed < g.cfg.Food.PatchCells; dx++ {
				g.terrain.AddFood(px+float32(dx)*cell, py+float32(dy)*cell, cellAmount)
				placed++
			}
		}
	}
}

// spawnAnt creates a new ant at its colony's nest.
func (g *Game) spawnAnt(colony *Colony, heading float32) ecs.Entity {
	return g.spawnAntAt(colony, colony.X, colony.Y, heading)
}

// spawnAntAt creates a new ant at an arbitrary position.
func (g *Game) spawnAntAt(colony *Colony, x, y, heading float32) ecs.Entity {
	id := g.nextID
	g.nextID++

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	rot := components.Heading{Angle: heading}
	ant := components.Ant{
		ID:           id,
		ColonyID:     colony.ID,
		Mode:         components.ModeSearching,
		DepositTimer: float32(g.cfg.Ant.DepositIntervalSearch),
		WanderTimer:  g.wanderInterval(),
		TripOriginX:  colony.X,
		TripOriginY:  colony.Y,
		TripStart:    g.simTime,
		HomeX:        colony.X,
		HomeY:        colony.Y,
	}

	entity := g.antMapper.NewEntity(&pos, &vel, &rot, &ant)
	g.antCount++
	colony.AntCount++
	g.collector.RecordSpawn()

	return entity
}

// wanderInterval draws the next random-turn delay.
func (g *Game) wanderInterval() float32 {
	lo := float32(g.cfg.Ant.WanderMinInterval)
	hi := float32(g.cfg.Ant.WanderMaxInterval)
	return lo + g.rng.Float32()*(hi-lo)
}

// Update runs input handling and simulation steps for one frame.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	for i := 0; i < g.stepsPerFrame; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs simulation steps without any input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerFrame; i++ {
		g.simulationStep()
	}
}

// simulationStep runs a single tick.
//
// Order matters: the field evaporates before anyone samples it, the behavior
// pass reads the field and queues deposits, and the queued deposits land
// after the pass so they become visible next tick.
func (g *Game) simulationStep() {
	dt := g.cfg.Derived.DT32

	// 1. Evaporate trails
	g.field.Update(dt)

	// 2. Behavior: steering, wander, deposits, food interactions
	g.updateBehavior(dt)

	// 3. Apply queued deposits
	g.deposits.Flush(g.field)

	// 4. Movement and collision
	g.updateMovement(dt)

	// 5. Colony upkeep: spawning and growth
	g.updateColonies()

	// 6. Telemetry window
	g.flushTelemetry()

	g.tick++
	g.simTime += dt
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// SimTime returns the simulated time in seconds.
func (g *Game) SimTime() float32 {
	return g.simTime
}

// AntCount returns the number of live ants.
func (g *Game) AntCount() int {
	return g.antCount
}

// Unload releases resources and closes output files.
func (g *Game) Unload() {
	g.parallel.stopWorkers()
	if g.output != nil {
		if err := g.output.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}
