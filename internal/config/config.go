// Package config provides YAML-based game configuration loading, validation
// and difficulty handling for both games.
package config

import "time"

// WorldConfig is the size of a playfield in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// AntsConfig contains all configuration for the ant smasher.
type AntsConfig struct {
	World      WorldConfig      `yaml:"world"`
	Colony     AntColony        `yaml:"colony"`
	Timing     AntTiming        `yaml:"timing"`
	Escalation EscalationConfig `yaml:"escalation"`
}

// AntColony defines the ants placed at the start of a run.
type AntColony struct {
	Count         int     `yaml:"count"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Speed         float64 `yaml:"speed"`          // per-axis speed, sign chosen at random
	SpawnAttempts int     `yaml:"spawn_attempts"` // placement retries per ant
}

// AntTiming defines the tick interval and the smash removal delay.
type AntTiming struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	RemovalDelay time.Duration `yaml:"removal_delay"`
}

// RemovalTicks converts the removal delay into whole ticks (at least one).
func (t AntTiming) RemovalTicks() int {
	if t.TickInterval <= 0 {
		return 1
	}
	n := int(t.RemovalDelay / t.TickInterval)
	if n < 1 {
		n = 1
	}
	return n
}

// EscalationConfig defines the one-shot speed-up of the ant smasher.
type EscalationConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Threshold int     `yaml:"threshold"` // minimum score
	Every     int     `yaml:"every"`     // score must be a multiple of this
	Factor    float64 `yaml:"factor"`    // velocity multiplier
}

// FlappyConfig contains all configuration for the flappy game.
type FlappyConfig struct {
	World     WorldConfig     `yaml:"world"`
	Physics   FlappyPhysics   `yaml:"physics"`
	Player    FlappyPlayer    `yaml:"player"`
	Obstacles FlappyObstacles `yaml:"obstacles"`
	Scenery   FlappyScenery   `yaml:"scenery"`
	Timing    FlappyTiming    `yaml:"timing"`
}

// FlappyPhysics defines the bird's vertical motion.
// Gravity starts at GravityBase and grows by GravityStep every tick until
// the next impulse resets it.
type FlappyPhysics struct {
	GravityBase     float64 `yaml:"gravity_base"`
	GravityStep     float64 `yaml:"gravity_step"`
	ImpulseVelocity float64 `yaml:"impulse_velocity"` // negative = up
}

// FlappyPlayer defines the bird's hitbox and wing animation.
type FlappyPlayer struct {
	X          float64 `yaml:"x"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	FlapFrames int     `yaml:"flap_frames"` // ticks per wing frame
}

// FlappyObstacles defines pipe geometry, speed and spawn cadence.
type FlappyObstacles struct {
	PipeWidth    float64 `yaml:"pipe_width"`
	MinGapSize   float64 `yaml:"min_gap_size"`
	MaxGapSize   float64 `yaml:"max_gap_size"`
	TopMargin    float64 `yaml:"top_margin"`
	BottomMargin float64 `yaml:"bottom_margin"`
	Speed        float64 `yaml:"speed"`
	SpawnEvery   int     `yaml:"spawn_every"` // ticks between pipes
}

// FlappyScenery defines the ground strip and parallax scroll speeds.
type FlappyScenery struct {
	GroundHeight    float64 `yaml:"ground_height"`
	BackgroundSpeed float64 `yaml:"background_speed"`
	GroundSpeed     float64 `yaml:"ground_speed"`
}

// FlappyTiming defines the tick interval.
type FlappyTiming struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

// PlayHeight returns the height above the ground.
func (c FlappyConfig) PlayHeight() float64 {
	return c.World.Height - c.Scenery.GroundHeight
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", invalidf("difficulty preset %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyAntsPreset adjusts colony size and speed for a preset.
// Fixed disables the speed escalation.
func ApplyAntsPreset(cfg *AntsConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Colony.Count = 10
	case DifficultyHard:
		cfg.Colony.Count = 30
		cfg.Colony.Speed *= 2
	case DifficultyFixed:
		cfg.Escalation.Enabled = false
	}
}

// ApplyFlappyPreset adjusts gap sizes and pipe speed for a preset.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.MinGapSize += 30
		cfg.Obstacles.MaxGapSize += 30
	case DifficultyHard:
		cfg.Obstacles.MinGapSize -= 20
		cfg.Obstacles.MaxGapSize -= 20
		cfg.Obstacles.Speed *= 1.25
	}
}
