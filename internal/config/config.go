// Package config provides YAML-based configuration for the game client and
// the leaderboard server, with embedded defaults and environment overrides.
package config

// GameConfig contains all tuning for the game session engine.
// Coordinates are in world units: the playfield is a fixed-size world that
// the platform projects onto whatever terminal size is available.
type GameConfig struct {
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Obstacles ObstacleConfig  `yaml:"obstacles"`
	Variant   VariantConfig   `yaml:"variant"`
	Cues      CueConfig       `yaml:"cues"`
	API       APIClientConfig `yaml:"api"`
}

// WorldConfig defines the playfield geometry.
type WorldConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	GroundY  float64 `yaml:"ground_y"`  // collision plane; bird bottom past this is fatal
	CeilingY float64 `yaml:"ceiling_y"` // bird top is clamped to this, non-fatal
}

// PhysicsConfig defines motion parameters in world units per second.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`        // downward acceleration (u/s^2)
	FlapImpulse  float64 `yaml:"flap_impulse"`   // vertical velocity set on flap (negative = up)
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // terminal velocity
	ScrollSpeed  float64 `yaml:"scroll_speed"`   // leftward speed of pipes and ground
}

// PlayerConfig defines the bird hitbox.
type PlayerConfig struct {
	X      float64 `yaml:"x"`       // fixed horizontal position of the hitbox center
	Width  float64 `yaml:"width"`   // hitbox width
	Height float64 `yaml:"height"`  // hitbox height
	StartY float64 `yaml:"start_y"` // vertical center at session start
}

// ObstacleConfig defines pipe pair and gap sensor geometry.
type ObstacleConfig struct {
	PipeWidth       float64 `yaml:"pipe_width"`
	PipeHeight      float64 `yaml:"pipe_height"`
	GapHeight       float64 `yaml:"gap_height"`
	SpawnEveryTicks int     `yaml:"spawn_every_ticks"`
	SpawnX          float64 `yaml:"spawn_x"`        // pipe center x at spawn
	SensorLead      float64 `yaml:"sensor_lead"`    // gap sensor sits this far left of the pipe center
	SensorWidth     float64 `yaml:"sensor_width"`   // thin; the sensor is a scoring line, not a wall
	TopOffsetMin    float64 `yaml:"top_offset_min"` // sampled band for the top pipe center
	TopOffsetMax    float64 `yaml:"top_offset_max"`
	DespawnX        float64 `yaml:"despawn_x"` // pipes fully past this are removed
}

// VariantConfig controls the cosmetic pipe variant switch.
type VariantConfig struct {
	SwitchScore int `yaml:"switch_score"` // score at which pipes turn red; no gameplay effect
}

// CueConfig controls cue timing.
type CueConfig struct {
	ScoreDelayMs int `yaml:"score_delay_ms"` // delay between a scoring overlap and its cue
}

// APIClientConfig defines how the game session talks to the leaderboard service.
type APIClientConfig struct {
	URL                  string `yaml:"url"`
	TimeoutSeconds       int    `yaml:"timeout_seconds"`
	NudgeIntervalSeconds int    `yaml:"nudge_interval_seconds"`
}

// ServerConfig contains all configuration for the leaderboard service.
type ServerConfig struct {
	Addr             string          `yaml:"addr"`
	DBPath           string          `yaml:"db_path"` // empty means in-memory only
	TopN             int             `yaml:"top_n"`
	CacheTTLSeconds  int             `yaml:"cache_ttl_seconds"`
	RateLimit        RateLimitConfig `yaml:"rate_limit"`
	Gauge            GaugeConfig     `yaml:"gauge"`
	LogRequests      bool            `yaml:"log_requests"`
	ShutdownSeconds  int             `yaml:"shutdown_seconds"`
}

// RateLimitConfig defines the request budgets.
type RateLimitConfig struct {
	WindowSeconds        int `yaml:"window_seconds"`         // fixed window length
	MaxRequests          int `yaml:"max_requests"`           // budget per window across all endpoints
	NudgeIntervalSeconds int `yaml:"nudge_interval_seconds"` // min spacing between accepted nudges
}

// GaugeConfig defines the simulated active-user gauge band.
type GaugeConfig struct {
	Initial int `yaml:"initial"`
	Min     int `yaml:"min"`
	Max     int `yaml:"max"`
	Jitter  int `yaml:"jitter"` // server-side random offset applied to each nudge
}
