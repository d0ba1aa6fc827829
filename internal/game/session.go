// Package game implements the Flappy Bird session engine: a fixed-tick state
// machine that owns the bird physics, obstacle scoring and collision-triggered
// transitions. It is pure logic over world units; the platform layer handles
// input mapping, timing, rendering and the network.
package game

import (
	"time"

	"github.com/zusu/flappy-arcade/internal/config"
	"github.com/zusu/flappy-arcade/internal/core"
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	// PhaseIdle is the initial state: the world is set up but physics do not
	// run until the first flap.
	PhaseIdle Phase = iota
	// PhaseRunning is active play.
	PhaseRunning
	// PhaseTerminal is entered exactly once, on a fatal collision. A session
	// never leaves this phase; restarting constructs a new session.
	PhaseTerminal
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhaseTerminal:
		return "Terminal"
	default:
		return "Unknown"
	}
}

// EventKind identifies a one-shot cue emitted by the session.
type EventKind int

const (
	// EventFlap fires on every accepted flap input.
	EventFlap EventKind = iota
	// EventScore fires a fixed delay after a gap is passed. It carries the
	// score as of that pass; the displayed score updates with it.
	EventScore
	// EventHit fires exactly once, on the terminal transition.
	EventHit
)

// Event is a one-shot cue for the platform (sound, HUD flash, submission).
type Event struct {
	Kind  EventKind
	Score int // set for EventScore and EventHit
}

// State is the externally visible session state after a tick.
type State struct {
	Phase  Phase
	Score  int
	Paused bool
}

// StepResult is returned by Step after each simulation tick.
type StepResult struct {
	State  State
	Events []Event
}

// pendingCue is a score cue waiting out its cosmetic delay.
type pendingCue struct {
	ticksLeft int
	score     int
}

// Session owns the state of one play-through. Create with NewSession, drive
// with Step once per tick, and throw away after the terminal transition;
// restart means a fresh session.
type Session struct {
	cfg      config.GameConfig
	tickRate int
	dt       float64 // seconds per tick

	phase  Phase
	paused bool

	score        int
	displayScore int // trails score by the cue delay

	birdY   float64 // vertical center of the bird hitbox
	birdVel float64 // world units per second, positive = down

	pipes       *PipeSet
	tickCounter int

	groundOffset float64 // cosmetic scroll offset, wraps

	scoreDelayTicks int
	pendingCues     []pendingCue
}

// NewSession creates a session in PhaseIdle.
func NewSession(cfg config.GameConfig, rc core.RuntimeConfig) *Session {
	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	tickRate := rc.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	delayTicks := cfg.Cues.ScoreDelayMs * tickRate / 1000

	return &Session{
		cfg:             cfg,
		tickRate:        tickRate,
		dt:              1.0 / float64(tickRate),
		phase:           PhaseIdle,
		birdY:           cfg.Player.StartY,
		pipes:           NewPipeSet(cfg.Obstacles, cfg.World.GroundY, seed),
		scoreDelayTicks: delayTicks,
	}
}

// Step advances the simulation by one fixed tick.
func (s *Session) Step(in core.InputFrame) StepResult {
	var events []Event

	if s.phase == PhaseTerminal {
		// The world is frozen; nothing moves and no cue can re-fire.
		return StepResult{State: s.State()}
	}

	if in.Has(core.ActionPause) && s.phase == PhaseRunning {
		s.paused = !s.paused
	}

	if in.Has(core.ActionFlap) && !s.paused {
		if s.phase == PhaseIdle {
			// First input both starts the session and performs the first flap.
			s.phase = PhaseRunning
			s.pipes.Spawn(s.Variant())
		}
		s.birdVel = s.cfg.Physics.FlapImpulse
		events = append(events, Event{Kind: EventFlap})
	}

	if s.phase != PhaseRunning || s.paused {
		return StepResult{State: s.State(), Events: events}
	}

	// Gravity-integrated vertical motion.
	s.birdVel += s.cfg.Physics.Gravity * s.dt
	if s.birdVel > s.cfg.Physics.MaxFallSpeed {
		s.birdVel = s.cfg.Physics.MaxFallSpeed
	}
	s.birdY += s.birdVel * s.dt

	// The bird cannot fly above the ceiling; hitting it is not fatal.
	if s.birdY < s.cfg.World.CeilingY {
		s.birdY = s.cfg.World.CeilingY
	}

	// Cosmetic scroll; wraps once a full tile has passed.
	scroll := s.cfg.Physics.ScrollSpeed * s.dt
	s.groundOffset += scroll
	for s.groundOffset >= s.cfg.World.Width {
		s.groundOffset -= s.cfg.World.Width
	}

	// Advance obstacles and drop the ones fully off-screen.
	s.pipes.Advance(scroll)

	// Periodic spawn.
	s.tickCounter++
	if s.tickCounter >= s.cfg.Obstacles.SpawnEveryTicks {
		s.pipes.Spawn(s.Variant())
		s.tickCounter = 0
	}

	bird := s.BirdRect()

	// Scoring: each destroyed sensor is exactly one point. The cue and the
	// displayed score update are deferred to decouple them from the overlap.
	for range s.pipes.SensorOverlap(bird) {
		s.score++
		s.pendingCues = append(s.pendingCues, pendingCue{
			ticksLeft: s.scoreDelayTicks,
			score:     s.score,
		})
	}

	events = append(events, s.drainCues()...)

	// Fatal collisions: ground or any pipe.
	if bird.Bottom() >= s.cfg.World.GroundY || s.pipes.Collides(bird) {
		s.birdY = core.ClampF(s.birdY, s.cfg.World.CeilingY, s.cfg.World.GroundY-s.cfg.Player.Height/2)
		events = append(events, s.terminate()...)
	}

	return StepResult{State: s.State(), Events: events}
}

// drainCues ticks down pending score cues and emits the due ones.
func (s *Session) drainCues() []Event {
	var due []Event
	remaining := s.pendingCues[:0]
	for _, c := range s.pendingCues {
		c.ticksLeft--
		if c.ticksLeft <= 0 {
			s.displayScore = c.score
			due = append(due, Event{Kind: EventScore, Score: c.score})
		} else {
			remaining = append(remaining, c)
		}
	}
	s.pendingCues = remaining
	return due
}

// terminate performs the one-way transition to PhaseTerminal. Calling it
// again for the same collision is a no-op, so the hit cue and the score
// submission it triggers happen exactly once.
func (s *Session) terminate() []Event {
	if s.phase == PhaseTerminal {
		return nil
	}
	s.phase = PhaseTerminal
	// Undelivered score cues still belong to this session's display.
	s.displayScore = s.score
	s.pendingCues = nil
	return []Event{{Kind: EventHit, Score: s.score}}
}

// BirdRect returns the bird's collision rectangle.
func (s *Session) BirdRect() core.Rect {
	p := s.cfg.Player
	return core.NewRect(p.X-p.Width/2, s.birdY-p.Height/2, p.Width, p.Height)
}

// State returns the current session state.
func (s *Session) State() State {
	return State{Phase: s.phase, Score: s.score, Paused: s.paused}
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Score returns the authoritative score (every gap passed so far).
func (s *Session) Score() int {
	return s.score
}

// DisplayScore returns the score as the HUD should show it: it trails the
// authoritative score by the cue delay.
func (s *Session) DisplayScore() int {
	return s.displayScore
}

// Variant returns the cosmetic pipe variant for the current score.
func (s *Session) Variant() PipeVariant {
	if s.score >= s.cfg.Variant.SwitchScore {
		return VariantRed
	}
	return VariantGreen
}

// GroundOffset returns the cosmetic scroll offset in world units.
func (s *Session) GroundOffset() float64 {
	return s.groundOffset
}

// Pipes exposes the obstacle set for rendering.
func (s *Session) Pipes() *PipeSet {
	return s.pipes
}

// Config returns the tuning this session was created with.
func (s *Session) Config() config.GameConfig {
	return s.cfg
}
