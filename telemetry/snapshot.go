package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/antworks/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete simulation state for replay.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	WorldWidth  float32 `json:"world_width"`
	WorldHeight float32 `json:"world_height"`
	CellSize    float32 `json:"cell_size"`

	Tick int32 `json:"tick"`

	Terrain  []TerrainCellState `json:"terrain"`
	Trails   []TrailCellState   `json:"trails"`
	Ants     []AntEntityState   `json:"ants"`
	Colonies []ColonyState      `json:"colonies"`
}

// TerrainCellState holds one non-empty terrain cell.
type TerrainCellState struct {
	CX   int     `json:"cx"`
	CY   int     `json:"cy"`
	Kind uint8   `json:"kind"`
	Food float32 `json:"food,omitempty"`
}

// TrailCellState holds one live pheromone cell. The dense grids are stored
// sparsely since almost all cells are empty.
type TrailCellState struct {
	CX       int     `json:"cx"`
	CY       int     `json:"cy"`
	Kind     uint8   `json:"kind"`
	Strength float32 `json:"strength"`
}

// AntEntityState holds one ant's complete state.
type AntEntityState struct {
	ID       uint32             `json:"id"`
	ColonyID uint8              `json:"colony_id"`
	Mode     components.AntMode `json:"mode"`

	X       float32 `json:"x"`
	Y       float32 `json:"y"`
	Heading float32 `json:"heading"`

	CarryingFood bool    `json:"carrying_food"`
	IgnoreUntil  float32 `json:"ignore_until"`
	DepositTimer float32 `json:"deposit_timer"`
	WanderTimer  float32 `json:"wander_timer"`

	TripOriginX float32 `json:"trip_origin_x"`
	TripOriginY float32 `json:"trip_origin_y"`
	TripStart   float32 `json:"trip_start"`
}

// ColonyState holds one colony's state.
type ColonyState struct {
	ID         uint8   `json:"id"`
	X          float32 `json:"x"`
	Y          float32 `json:"y"`
	FoodStored float32 `json:"food_stored"`
	MaxAnts    int     `json:"max_ants"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d.json", snapshot.Tick)
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d not supported", snapshot.Version)
	}

	return &snapshot, nil
}
