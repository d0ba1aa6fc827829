package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

//go:embed defaults/server.yaml
var defaultServerYAML []byte

// DefaultGameConfig returns the built-in game tuning, used when no YAML
// config can be found or the embedded file fails to parse.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		World: WorldConfig{
			Width:    576,
			Height:   1024,
			GroundY:  896,
			CeilingY: 40,
		},
		Physics: PhysicsConfig{
			Gravity:      600,
			FlapImpulse:  -350,
			MaxFallSpeed: 600,
			ScrollSpeed:  170,
		},
		Player: PlayerConfig{
			X:      120,
			Width:  64,
			Height: 64,
			StartY: 400,
		},
		Obstacles: ObstacleConfig{
			PipeWidth:       104,
			PipeHeight:      640,
			GapHeight:       210,
			SpawnEveryTicks: 150,
			SpawnX:          650,
			SensorLead:      50,
			SensorWidth:     4,
			TopOffsetMin:    -200,
			TopOffsetMax:    30,
			DespawnX:        -100,
		},
		Variant: VariantConfig{
			SwitchScore: 20,
		},
		Cues: CueConfig{
			ScoreDelayMs: 400,
		},
		API: APIClientConfig{
			URL:                  "http://localhost:8080",
			TimeoutSeconds:       5,
			NudgeIntervalSeconds: 5,
		},
	}
}

// DefaultServerConfig returns the built-in leaderboard service configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            ":8080",
		DBPath:          "~/.flappy/leaderboard.db",
		TopN:            10,
		CacheTTLSeconds: 5,
		LogRequests:     true,
		ShutdownSeconds: 10,
		RateLimit: RateLimitConfig{
			WindowSeconds:        60,
			MaxRequests:          120,
			NudgeIntervalSeconds: 2,
		},
		Gauge: GaugeConfig{
			Initial: 650,
			Min:     400,
			Max:     900,
			Jitter:  5,
		},
	}
}
