// Package components defines ECS components for the colony simulation.
package components

// AntMode is the behavioral state of an ant. A boolean carried-food flag is
// not enough once more states exist (alarm and defense behaviors are
// anticipated), so the mode is an explicit enum from the start.
type AntMode uint8

const (
	ModeSearching AntMode = iota // outbound, looking for food
	ModeReturning                // carrying food back to the nest
)

func (m AntMode) String() string {
	switch m {
	case ModeSearching:
		return "searching"
	case ModeReturning:
		return "returning"
	}
	return "unknown"
}

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in world units per second.
// It is recomputed from Heading and the configured speed each tick.
type Velocity struct {
	X, Y float32
}

// Heading holds an entity's facing angle in radians, wrapped to [-pi, pi].
type Heading struct {
	Angle float32
}

// Ant holds ant-specific state.
type Ant struct {
	ID       uint32
	ColonyID uint8
	Mode     AntMode

	CarryingFood bool

	// IgnoreUntil suppresses pheromone sensing until this sim time. Armed on
	// food pickup and on delivery to break circular trail-following.
	IgnoreUntil float32

	// DepositTimer counts down to the next pheromone deposit.
	DepositTimer float32

	// WanderTimer counts down to the next undirected random turn.
	WanderTimer float32

	// Trip origin: the nest for outbound ants, the food pickup point for
	// returning ants. Deposit strength fades with distance from it.
	TripOriginX float32
	TripOriginY float32
	TripStart   float32 // sim time the current trip began

	// Home nest position, for delivery checks.
	HomeX float32
	HomeY float32
}
