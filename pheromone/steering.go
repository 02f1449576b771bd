package pheromone

import (
	"math"
	"math/rand"
)

// AntState is the read-only slice of an ant's state that steering needs.
type AntState struct {
	X, Y         float32
	Heading      float32 // radians, (-pi, pi]
	CarryingFood bool
	IgnoreUntil  float32 // sim time below which sensing is suppressed
}

// Params holds the steering tunables. Foraging ants search a wide arc with a
// fast turn rate; carrying ants use a narrow forward arc and a slow rate so
// homing stays stable.
type Params struct {
	DirectionsForaging int
	DirectionsCarrying int

	// SampleDistances are the offsets probed along each candidate heading.
	SampleDistances []float32

	// SenseThreshold is the minimum best-sample strength that counts as a
	// trail at all.
	SenseThreshold float32

	// ForwardForaging / ForwardCarrying bound both the sampled arc and the
	// accepted turn. A returning ant never turns more than 90 degrees toward
	// a sample, a foraging ant tolerates 120.
	ForwardForaging float32
	ForwardCarrying float32

	TurnRateForaging float32
	TurnRateCarrying float32

	// Noise amplitudes for the uniform heading perturbation. Zero makes the
	// steering deterministic, which the tests rely on.
	NoiseForaging float32
	NoiseCarrying float32
}

// DefaultParams returns the stock steering parameters.
func DefaultParams() Params {
	return Params{
		DirectionsForaging: 12,
		DirectionsCarrying: 6,
		SampleDistances:    SampleDistances(5.0, 40.0),
		SenseThreshold:     0.01,
		ForwardForaging:    2 * math.Pi / 3,
		ForwardCarrying:    math.Pi / 2,
		TurnRateForaging:   0.7,
		TurnRateCarrying:   0.1,
		NoiseForaging:      0.1,
		NoiseCarrying:      0.01,
	}
}

// SampleDistances builds the probe offsets for a sensing range: the minimum
// distance plus quarter fractions of the maximum. Near probes anchor the ant
// to the trail under it, far probes let it pick up a strong trail beyond a
// weak neighborhood.
func SampleDistances(minDist, maxDist float32) []float32 {
	return []float32{
		minDist,
		maxDist * 0.25,
		maxDist * 0.50,
		maxDist * 0.75,
		maxDist,
	}
}

// Steering computes trail-following heading adjustments against a field.
// The RNG is injected so tests can seed it (or zero the noise amplitudes).
type Steering struct {
	params Params
	field  *Field
	rng    *rand.Rand
}

// NewSteering creates a steering unit over the given field.
func NewSteering(field *Field, params Params, rng *rand.Rand) *Steering {
	return &Steering{params: params, field: field, rng: rng}
}

// Params returns the active steering parameters.
func (s *Steering) Params() Params {
	return s.params
}

// Follow computes a new heading for the ant, or reports ok=false when the
// ant keeps its current heading: either sensing is suppressed by the ignore
// window, or no trail scored above threshold (the caller falls back to
// undirected wandering, with a larger nudge in the no-signal case).
//
// Carrying ants seek Home scent, foraging ants seek Food scent; the same
// shared field drives both traffic directions without separate maps.
func (s *Steering) Follow(st AntState, now float32) (float32, bool) {
	// An ant that just found food would otherwise re-follow its own fresh
	// outbound trail straight back into a loop.
	if st.IgnoreUntil > now {
		return st.Heading, false
	}

	kind := KindFood
	dirs := s.params.DirectionsForaging
	limit := s.params.ForwardForaging
	turnRate := s.params.TurnRateForaging
	noise := s.params.NoiseForaging
	if st.CarryingFood {
		kind = KindHome
		dirs = s.params.DirectionsCarrying
		limit = s.params.ForwardCarrying
		turnRate = s.params.TurnRateCarrying
		noise = s.params.NoiseCarrying
	}

	best, score := s.bestDirection(st.X, st.Y, st.Heading, kind, dirs, limit)
	if score <= s.params.SenseThreshold {
		return st.Heading, false
	}

	diff := SignedArc(st.Heading, best)
	if absf(diff) > limit {
		// Rear-ward sample noise must not produce u-turns.
		return st.Heading, false
	}

	heading := st.Heading + diff*turnRate
	if noise > 0 {
		heading += (s.rng.Float32()*2 - 1) * noise
	}
	return NormalizeAngle(heading), true
}

// bestDirection probes dirs evenly spaced headings across the forward arc
// [-limit, +limit] and scores each by its strongest single sample. Taking the
// max rather than a sum rewards headings that reach any strong trail point,
// instead of biasing toward the ant's immediate surroundings.
func (s *Steering) bestDirection(x, y, heading float32, kind Kind, dirs int, limit float32) (float32, float32) {
	bestDir := heading
	bestScore := float32(-1)

	for i := 0; i < dirs; i++ {
		offset := float32(0)
		if dirs > 1 {
			offset = -limit + 2*limit*float32(i)/float32(dirs-1)
		}
		dir := heading + offset
		cos := float32(math.Cos(float64(dir)))
		sin := float32(math.Sin(float64(dir)))

		var score float32
		for _, d := range s.params.SampleDistances {
			v := s.field.Sample(x+cos*d, y+sin*d, kind)
			if v > score {
				score = v
			}
		}
		if score > bestScore {
			bestScore = score
			bestDir = dir
		}
	}
	return bestDir, bestScore
}

// SignedArc returns the shortest signed angle from one heading to another,
// normalized into (-pi, pi].
func SignedArc(from, to float32) float32 {
	d := float64(to-from) + 3*math.Pi
	return float32(math.Mod(d, 2*math.Pi) - math.Pi)
}

// NormalizeAngle wraps an angle to [-pi, pi].
func NormalizeAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
