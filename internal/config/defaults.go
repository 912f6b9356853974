package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/ants.yaml
var defaultAntsYAML []byte

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultAntsConfig returns the hard-coded ant smasher configuration.
// It mirrors defaults/ants.yaml and is used if the embedded file fails to parse.
func DefaultAntsConfig() AntsConfig {
	return AntsConfig{
		World: WorldConfig{Width: 1200, Height: 500},
		Colony: AntColony{
			Count:         20,
			Width:         28,
			Height:        35,
			Speed:         1,
			SpawnAttempts: 1000,
		},
		Timing: AntTiming{
			TickInterval: 20 * time.Millisecond,
			RemovalDelay: time.Second,
		},
		Escalation: EscalationConfig{
			Enabled:   true,
			Threshold: 10,
			Every:     5,
			Factor:    3,
		},
	}
}

// DefaultFlappyConfig returns the hard-coded flappy configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: WorldConfig{Width: 600, Height: 650},
		Physics: FlappyPhysics{
			GravityBase:     0.25,
			GravityStep:     0.005,
			ImpulseVelocity: -6,
		},
		Player: FlappyPlayer{
			X:          80,
			Width:      34,
			Height:     24,
			FlapFrames: 8,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:    52,
			MinGapSize:   140,
			MaxGapSize:   170,
			TopMargin:    60,
			BottomMargin: 60,
			Speed:        2,
			SpawnEvery:   120,
		},
		Scenery: FlappyScenery{
			GroundHeight:    100,
			BackgroundSpeed: 0.25,
			GroundSpeed:     2,
		},
		Timing: FlappyTiming{
			TickInterval: 16 * time.Millisecond,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "ants":
		return defaultAntsYAML
	case "flappy":
		return defaultFlappyYAML
	default:
		return nil
	}
}
