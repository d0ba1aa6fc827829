package leaderboard

import (
	"math/rand"

	"github.com/zusu/flappy-arcade/internal/config"
)

// Gauge is the simulated active-user counter. It is display-only: clients
// nudge it with small signed deltas, the server adds a little jitter of its
// own, and the value is clamped to a fixed band. Nothing may depend on it for
// capacity or correctness decisions.
type Gauge struct {
	count  int
	min    int
	max    int
	jitter int
	rng    *rand.Rand
}

// NewGauge creates a gauge at the configured initial value.
func NewGauge(cfg config.GaugeConfig, seed int64) *Gauge {
	g := &Gauge{
		count:  cfg.Initial,
		min:    cfg.Min,
		max:    cfg.Max,
		jitter: cfg.Jitter,
		rng:    rand.New(rand.NewSource(seed)),
	}
	g.count = g.clamp(g.count)
	return g
}

// Value returns the current count.
func (g *Gauge) Value() int {
	return g.count
}

// Nudge applies a client delta plus server jitter, then clamps to the band.
// Returns the new count.
func (g *Gauge) Nudge(delta int) int {
	jitter := 0
	if g.jitter > 0 {
		jitter = g.rng.Intn(2*g.jitter+1) - g.jitter
	}
	g.count = g.clamp(g.count + delta + jitter)
	return g.count
}

func (g *Gauge) clamp(v int) int {
	if v < g.min {
		return g.min
	}
	if v > g.max {
		return g.max
	}
	return v
}
