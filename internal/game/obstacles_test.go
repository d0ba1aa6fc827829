package game

import (
	"testing"

	"github.com/zusu/flappy-arcade/internal/config"
	"github.com/zusu/flappy-arcade/internal/core"
)

func TestSpawnSamplesWithinBand(t *testing.T) {
	cfg := config.DefaultGameConfig()
	ps := NewPipeSet(cfg.Obstacles, cfg.World.GroundY, 42)

	lo := cfg.Obstacles.TopOffsetMin + cfg.Obstacles.PipeHeight/2
	hi := cfg.Obstacles.TopOffsetMax + cfg.Obstacles.PipeHeight/2

	for i := 0; i < 200; i++ {
		ps.Spawn(VariantGreen)
	}

	for i, p := range ps.Pairs() {
		if p.GapTop < lo || p.GapTop > hi {
			t.Fatalf("pair %d gap top %f outside [%f, %f]", i, p.GapTop, lo, hi)
		}
		// The gap always fits between ceiling and ground.
		if p.GapTop+cfg.Obstacles.GapHeight >= cfg.World.GroundY {
			t.Fatalf("pair %d gap reaches the ground", i)
		}
	}
}

func TestSpawnPlacesSensorBehindGap(t *testing.T) {
	cfg := config.DefaultGameConfig()
	ps := NewPipeSet(cfg.Obstacles, cfg.World.GroundY, 1)

	ps.Spawn(VariantGreen)

	pair := ps.Pairs()[0]
	sensor := ps.Sensors()[0]
	if sensor.X != pair.X-cfg.Obstacles.SensorLead {
		t.Errorf("sensor should lead the pipe by %f, pipe at %f, sensor at %f",
			cfg.Obstacles.SensorLead, pair.X, sensor.X)
	}
	if sensor.GapTop != pair.GapTop {
		t.Errorf("sensor gap %f should match pipe gap %f", sensor.GapTop, pair.GapTop)
	}
}

func TestAdvanceDespawnsOffscreen(t *testing.T) {
	cfg := config.DefaultGameConfig()
	ps := NewPipeSet(cfg.Obstacles, cfg.World.GroundY, 1)

	ps.Spawn(VariantGreen)
	ps.Spawn(VariantRed)

	// Push everything far past the despawn line.
	ps.Advance(cfg.Obstacles.SpawnX - cfg.Obstacles.DespawnX + cfg.Obstacles.PipeWidth)

	if n := len(ps.Pairs()); n != 0 {
		t.Errorf("all pipes should despawn, %d left", n)
	}
	if n := len(ps.Sensors()); n != 0 {
		t.Errorf("all sensors should despawn, %d left", n)
	}
}

func TestSensorScoresAtMostOnce(t *testing.T) {
	cfg := config.DefaultGameConfig()
	ps := NewPipeSet(cfg.Obstacles, cfg.World.GroundY, 1)
	ps.Spawn(VariantGreen)

	sensor := ps.Sensors()[0]
	bird := core.NewRect(sensor.X-10, sensor.GapTop+10, 20, 20)

	if got := ps.SensorOverlap(bird); got != 1 {
		t.Fatalf("first overlap should score once, got %d", got)
	}
	if got := ps.SensorOverlap(bird); got != 0 {
		t.Errorf("destroyed sensor scored again: %d", got)
	}
	if len(ps.Sensors()) != 0 {
		t.Error("scored sensor should be removed")
	}
	// The pipe itself survives its sensor.
	if len(ps.Pairs()) != 1 {
		t.Error("pipe should outlive its sensor")
	}
}

func TestCollidesWithPipes(t *testing.T) {
	cfg := config.DefaultGameConfig()
	ps := NewPipeSet(cfg.Obstacles, cfg.World.GroundY, 1)
	ps.Spawn(VariantGreen)

	pair := ps.Pairs()[0]

	inGap := core.NewRect(pair.X-10, pair.GapTop+cfg.Obstacles.GapHeight/2, 20, 20)
	if ps.Collides(inGap) {
		t.Error("bird inside the gap should not collide")
	}

	inTop := core.NewRect(pair.X-10, pair.GapTop-30, 20, 20)
	if !ps.Collides(inTop) {
		t.Error("bird overlapping the top pipe should collide")
	}

	inBottom := core.NewRect(pair.X-10, pair.GapTop+cfg.Obstacles.GapHeight+10, 20, 20)
	if !ps.Collides(inBottom) {
		t.Error("bird overlapping the bottom pipe should collide")
	}
}
