package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this for deterministic simulation; the platform uses the screen
// size to scale the world onto the terminal.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Ticks per second override (0 = game's own interval)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 0,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Interval resolves the tick interval: the override when set, else fallback.
func (c RuntimeConfig) Interval(fallback time.Duration) time.Duration {
	if c.TickRate > 0 {
		return time.Second / time.Duration(c.TickRate)
	}
	return fallback
}

// Mode is the controller's current phase. Exactly one is active at a time.
type Mode int

const (
	ModeMenu Mode = iota
	ModeRunning
	ModeGameOver
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "Menu"
	case ModeRunning:
		return "Running"
	case ModeGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Outcome describes why a run ended.
type Outcome int

const (
	OutcomeNone      Outcome = iota
	OutcomeDied              // collision or boundary violation
	OutcomeCompleted         // nothing left to play (all ants smashed)
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDied:
		return "died"
	case OutcomeCompleted:
		return "completed"
	default:
		return "none"
	}
}

// GameState is the state a game reports after each tick.
type GameState struct {
	Score   int     // Current score, never decreases within a run
	Over    bool    // Whether the run has ended
	Outcome Outcome // Why the run ended
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
