package game

import (
	"math/rand"

	"github.com/zusu/flappy-arcade/internal/config"
	"github.com/zusu/flappy-arcade/internal/core"
)

// PipeVariant is the cosmetic pipe style. Switching variants has no effect on
// hitboxes or difficulty.
type PipeVariant int

const (
	VariantGreen PipeVariant = iota
	VariantRed
)

// String returns a human-readable name for the variant.
func (v PipeVariant) String() string {
	if v == VariantRed {
		return "red"
	}
	return "green"
}

// PipePair is one obstacle: a top and bottom pipe sharing a vertical gap.
// X is the horizontal center of both pipes; GapTop is the top edge of the gap.
type PipePair struct {
	X       float64
	GapTop  float64
	Variant PipeVariant
}

// TopRect returns the lethal hitbox of the top pipe.
func (p PipePair) TopRect(cfg config.ObstacleConfig) core.Rect {
	return core.NewRect(p.X-cfg.PipeWidth/2, p.GapTop-cfg.PipeHeight, cfg.PipeWidth, cfg.PipeHeight)
}

// BottomRect returns the lethal hitbox of the bottom pipe.
func (p PipePair) BottomRect(cfg config.ObstacleConfig) core.Rect {
	return core.NewRect(p.X-cfg.PipeWidth/2, p.GapTop+cfg.GapHeight, cfg.PipeWidth, cfg.PipeHeight)
}

// Sensor is the invisible scoring hitbox placed within a gap. It is distinct
// from the pipe hitboxes so a lethal collision and a scoring pass at nearly
// the same horizontal position can never be confused. A sensor is destroyed
// the moment it scores, which makes scoring at-most-once per gap.
type Sensor struct {
	X      float64 // horizontal center
	GapTop float64
}

// Rect returns the sensor's overlap rectangle.
func (g Sensor) Rect(cfg config.ObstacleConfig) core.Rect {
	return core.NewRect(g.X-cfg.SensorWidth/2, g.GapTop, cfg.SensorWidth, cfg.GapHeight)
}

// PipeSet manages spawning, movement and removal of pipe pairs and their
// gap sensors.
type PipeSet struct {
	cfg     config.ObstacleConfig
	groundY float64
	rng     *rand.Rand

	pairs   []PipePair
	sensors []Sensor
}

// NewPipeSet creates an empty obstacle set with a deterministic RNG.
func NewPipeSet(cfg config.ObstacleConfig, groundY float64, seed int64) *PipeSet {
	return &PipeSet{
		cfg:     cfg,
		groundY: groundY,
		rng:     rand.New(rand.NewSource(seed)),
		pairs:   make([]PipePair, 0, 8),
		sensors: make([]Sensor, 0, 8),
	}
}

// Spawn creates a new pipe pair at the spawn line. The top pipe's center
// offset is sampled uniformly within the configured band; the gap and the
// bottom pipe follow from the fixed geometry.
func (ps *PipeSet) Spawn(v PipeVariant) {
	offset := ps.cfg.TopOffsetMin + ps.rng.Float64()*(ps.cfg.TopOffsetMax-ps.cfg.TopOffsetMin)
	gapTop := offset + ps.cfg.PipeHeight/2

	ps.pairs = append(ps.pairs, PipePair{
		X:       ps.cfg.SpawnX,
		GapTop:  gapTop,
		Variant: v,
	})
	ps.sensors = append(ps.sensors, Sensor{
		X:      ps.cfg.SpawnX - ps.cfg.SensorLead,
		GapTop: gapTop,
	})
}

// Advance moves every pipe pair and sensor left by dx and removes anything
// fully past the despawn line. Off-screen obstacles are never retained.
func (ps *PipeSet) Advance(dx float64) {
	keptPairs := ps.pairs[:0]
	for _, p := range ps.pairs {
		p.X -= dx
		if p.X+ps.cfg.PipeWidth/2 > ps.cfg.DespawnX {
			keptPairs = append(keptPairs, p)
		}
	}
	ps.pairs = keptPairs

	keptSensors := ps.sensors[:0]
	for _, g := range ps.sensors {
		g.X -= dx
		if g.X+ps.cfg.SensorWidth/2 > ps.cfg.DespawnX {
			keptSensors = append(keptSensors, g)
		}
	}
	ps.sensors = keptSensors
}

// SensorOverlap destroys every sensor the bird overlaps and returns how many
// were destroyed. A destroyed sensor can never score again.
func (ps *PipeSet) SensorOverlap(bird core.Rect) int {
	hit := 0
	kept := ps.sensors[:0]
	for _, g := range ps.sensors {
		if bird.Intersects(g.Rect(ps.cfg)) {
			hit++
			continue
		}
		kept = append(kept, g)
	}
	ps.sensors = kept
	return hit
}

// Collides reports whether the bird intersects any pipe hitbox.
func (ps *PipeSet) Collides(bird core.Rect) bool {
	for _, p := range ps.pairs {
		if bird.Intersects(p.TopRect(ps.cfg)) || bird.Intersects(p.BottomRect(ps.cfg)) {
			return true
		}
	}
	return false
}

// Pairs returns the live pipe pairs, ordered oldest first.
func (ps *PipeSet) Pairs() []PipePair {
	return ps.pairs
}

// Sensors returns the live (unscored) gap sensors.
func (ps *PipeSet) Sensors() []Sensor {
	return ps.sensors
}
