package game

import (
	"testing"

	"github.com/zusu/flappy-arcade/internal/config"
	"github.com/zusu/flappy-arcade/internal/core"
)

func testRC(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

// neutralConfig disables gravity and collisions so the bird hovers at its
// start position forever while pipes and sensors stream past it. The gap
// spans the whole world, so every sensor crosses the bird and scores.
func neutralConfig() config.GameConfig {
	cfg := config.DefaultGameConfig()
	cfg.Physics.Gravity = 0
	cfg.Physics.FlapImpulse = 0
	cfg.Obstacles.PipeHeight = 0
	cfg.Obstacles.GapHeight = cfg.World.Height
	cfg.Obstacles.TopOffsetMin = 0
	cfg.Obstacles.TopOffsetMax = 0
	return cfg
}

func flapFrame() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionFlap)
	return in
}

func TestSessionStartsIdle(t *testing.T) {
	s := NewSession(config.DefaultGameConfig(), testRC(1))

	if s.Phase() != PhaseIdle {
		t.Fatalf("new session should be Idle, got %v", s.Phase())
	}

	// Nothing moves and nothing spawns until the first flap.
	startY := s.birdY
	for i := 0; i < 200; i++ {
		s.Step(core.NewInputFrame())
	}

	if s.Phase() != PhaseIdle {
		t.Errorf("session should stay Idle without input, got %v", s.Phase())
	}
	if s.birdY != startY {
		t.Errorf("bird should not move while Idle, was %f, now %f", startY, s.birdY)
	}
	if len(s.Pipes().Pairs()) != 0 {
		t.Errorf("no pipes should spawn while Idle, got %d", len(s.Pipes().Pairs()))
	}
}

func TestFirstFlapStartsRun(t *testing.T) {
	s := NewSession(config.DefaultGameConfig(), testRC(1))

	result := s.Step(flapFrame())

	if s.Phase() != PhaseRunning {
		t.Errorf("first flap should start the run, got %v", s.Phase())
	}
	if len(s.Pipes().Pairs()) != 1 {
		t.Errorf("first flap should spawn the first pipe, got %d", len(s.Pipes().Pairs()))
	}

	found := false
	for _, ev := range result.Events {
		if ev.Kind == EventFlap {
			found = true
		}
	}
	if !found {
		t.Error("flap should emit EventFlap")
	}
}

func TestSessionDeterminism(t *testing.T) {
	// Same seed and same inputs must replay identically.
	run := func() (State, float64, int) {
		s := NewSession(config.DefaultGameConfig(), testRC(12345))
		var st State
		for i := 0; i < 600; i++ {
			in := core.NewInputFrame()
			if i%15 == 0 {
				in.Set(core.ActionFlap)
			}
			st = s.Step(in).State
			if st.Phase == PhaseTerminal {
				break
			}
		}
		return st, s.birdY, len(s.Pipes().Pairs())
	}

	st1, y1, n1 := run()
	st2, y2, n2 := run()

	if st1 != st2 {
		t.Errorf("states differ: %+v vs %+v", st1, st2)
	}
	if y1 != y2 {
		t.Errorf("bird positions differ: %f vs %f", y1, y2)
	}
	if n1 != n2 {
		t.Errorf("pipe counts differ: %d vs %d", n1, n2)
	}
}

func TestFlapPhysics(t *testing.T) {
	cfg := config.DefaultGameConfig()
	s := NewSession(cfg, testRC(1))

	s.Step(flapFrame())

	if s.birdVel != cfg.Physics.FlapImpulse {
		t.Errorf("flap should set velocity to the impulse, got %f", s.birdVel)
	}

	// The bird rises on the following ticks while the impulse dominates.
	startY := s.birdY
	s.Step(core.NewInputFrame())
	if s.birdY >= startY {
		t.Errorf("bird should rise after a flap, was %f, now %f", startY, s.birdY)
	}
}

func TestCeilingIsNotFatal(t *testing.T) {
	cfg := config.DefaultGameConfig()
	s := NewSession(cfg, testRC(1))

	// Flap every tick; the bird pins against the ceiling and survives.
	// Stop before the first pipe reaches the bird.
	for i := 0; i < 100; i++ {
		s.Step(flapFrame())
		if s.birdY < cfg.World.CeilingY {
			t.Fatalf("bird above ceiling: %f", s.birdY)
		}
	}
	if s.Phase() == PhaseTerminal {
		t.Error("hitting the ceiling should not end the run")
	}
}

func TestFallToGroundTerminates(t *testing.T) {
	s := NewSession(config.DefaultGameConfig(), testRC(1))

	// Start the run, then never flap again.
	s.Step(flapFrame())

	hits := 0
	terminalAt := -1
	for i := 0; i < 600; i++ {
		result := s.Step(core.NewInputFrame())
		for _, ev := range result.Events {
			if ev.Kind == EventHit {
				hits++
			}
		}
		if result.State.Phase == PhaseTerminal && terminalAt < 0 {
			terminalAt = i
		}
	}

	if terminalAt < 0 {
		t.Fatal("free fall should end the run")
	}
	if hits != 1 {
		t.Errorf("EventHit should fire exactly once, got %d", hits)
	}
}

func TestTerminalFreezesWorld(t *testing.T) {
	s := NewSession(config.DefaultGameConfig(), testRC(1))

	s.Step(flapFrame())
	for s.Phase() != PhaseTerminal {
		s.Step(core.NewInputFrame())
	}

	pairsBefore := append([]PipePair(nil), s.Pipes().Pairs()...)
	yBefore := s.birdY

	// Ticks and inputs after the terminal transition change nothing.
	for i := 0; i < 50; i++ {
		result := s.Step(flapFrame())
		if len(result.Events) != 0 {
			t.Fatalf("no events should fire after terminal, got %v", result.Events)
		}
	}

	if s.Phase() != PhaseTerminal {
		t.Errorf("session should stay Terminal, got %v", s.Phase())
	}
	if s.birdY != yBefore {
		t.Errorf("bird should be frozen, was %f, now %f", yBefore, s.birdY)
	}
	pairsAfter := s.Pipes().Pairs()
	if len(pairsAfter) != len(pairsBefore) {
		t.Fatalf("pipe count changed after terminal: %d vs %d", len(pairsBefore), len(pairsAfter))
	}
	for i := range pairsBefore {
		if pairsAfter[i].X != pairsBefore[i].X {
			t.Errorf("pipe %d moved after terminal", i)
		}
	}
}

func TestSpawnCadence(t *testing.T) {
	cfg := neutralConfig()
	s := NewSession(cfg, testRC(1))

	s.Step(flapFrame()) // spawns the first pipe

	// Three full spawn periods later there are exactly three more pipes
	// (none has reached the despawn line yet).
	for i := 0; i < 3*cfg.Obstacles.SpawnEveryTicks; i++ {
		s.Step(core.NewInputFrame())
	}

	if got := len(s.Pipes().Pairs()); got != 4 {
		t.Errorf("expected 4 pipes after 3 spawn periods, got %d", got)
	}
}

func TestScoringOncePerGap(t *testing.T) {
	cfg := neutralConfig()
	s := NewSession(cfg, testRC(1))

	s.Step(flapFrame())

	var cues []Event
	for i := 0; i < 800; i++ {
		result := s.Step(core.NewInputFrame())
		for _, ev := range result.Events {
			if ev.Kind == EventScore {
				cues = append(cues, ev)
			}
		}
	}

	if s.Score() < 3 {
		t.Fatalf("expected at least 3 gaps passed, got %d", s.Score())
	}
	if len(cues) != s.Score() {
		t.Errorf("every point should produce exactly one cue: score=%d cues=%d", s.Score(), len(cues))
	}
	for i, ev := range cues {
		if ev.Score != i+1 {
			t.Errorf("cue %d should carry score %d, got %d", i, i+1, ev.Score)
		}
	}
	if s.DisplayScore() != s.Score() {
		t.Errorf("display score should have caught up: display=%d score=%d", s.DisplayScore(), s.Score())
	}
}

func TestScoreCueDelay(t *testing.T) {
	cfg := neutralConfig()
	s := NewSession(cfg, testRC(1))
	s.Step(flapFrame())

	// Step until the first gap is passed.
	for s.Score() == 0 {
		s.Step(core.NewInputFrame())
	}

	if s.DisplayScore() != 0 {
		t.Fatal("display score should trail the authoritative score")
	}

	// The cue arrives after the configured delay.
	delayTicks := cfg.Cues.ScoreDelayMs * 60 / 1000
	sawCue := false
	for i := 0; i < delayTicks+1 && !sawCue; i++ {
		for _, ev := range s.Step(core.NewInputFrame()).Events {
			if ev.Kind == EventScore {
				sawCue = true
			}
		}
	}
	if !sawCue {
		t.Fatal("score cue never arrived")
	}
	if s.DisplayScore() != 1 {
		t.Errorf("display score should be 1 after the cue, got %d", s.DisplayScore())
	}
}

func TestPauseStopsPhysics(t *testing.T) {
	s := NewSession(config.DefaultGameConfig(), testRC(1))
	s.Step(flapFrame())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	s.Step(pause)

	if !s.State().Paused {
		t.Fatal("pause input should pause a running session")
	}

	yBefore := s.birdY
	for i := 0; i < 100; i++ {
		s.Step(core.NewInputFrame())
	}
	if s.birdY != yBefore {
		t.Errorf("bird should not move while paused, was %f, now %f", yBefore, s.birdY)
	}

	// Flaps are ignored while paused.
	s.Step(flapFrame())
	if s.birdY != yBefore {
		t.Error("flap should be ignored while paused")
	}

	s.Step(pause)
	if s.State().Paused {
		t.Error("second pause input should resume")
	}
}

func TestVariantSwitch(t *testing.T) {
	cfg := config.DefaultGameConfig()
	s := NewSession(cfg, testRC(1))

	s.score = cfg.Variant.SwitchScore - 1
	if s.Variant() != VariantGreen {
		t.Errorf("below the threshold pipes are green, got %v", s.Variant())
	}

	s.score = cfg.Variant.SwitchScore
	if s.Variant() != VariantRed {
		t.Errorf("at the threshold pipes turn red, got %v", s.Variant())
	}
}

func TestHitCarriesFinalScore(t *testing.T) {
	cfg := neutralConfig()
	s := NewSession(cfg, testRC(1))
	s.Step(flapFrame())

	// Let a couple of gaps pass, then force the crash.
	for s.Score() < 2 {
		s.Step(core.NewInputFrame())
	}
	s.cfg.World.GroundY = s.birdY // next tick the bird is in the ground

	var hit *Event
	for i := 0; i < 10 && hit == nil; i++ {
		for _, ev := range s.Step(core.NewInputFrame()).Events {
			if ev.Kind == EventHit {
				e := ev
				hit = &e
			}
		}
	}

	if hit == nil {
		t.Fatal("expected a hit event")
	}
	if hit.Score != s.Score() {
		t.Errorf("hit should carry the final score %d, got %d", s.Score(), hit.Score)
	}
	if s.DisplayScore() != s.Score() {
		t.Errorf("display score should flush on terminal: display=%d score=%d", s.DisplayScore(), s.Score())
	}
}
