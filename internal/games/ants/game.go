// Package ants implements the ant smasher: ants roam and bounce around the
// playfield and the player clicks them until none are left.
package ants

import (
	"time"

	"github.com/vovakirdan/tui-minigames/internal/config"
	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/registry"
)

// CompletionMessage is shown once every ant has been smashed.
const CompletionMessage = "CONGRATULATIONS!!! YOU SMASHED ALL ANTS"

// Game implements the ant smasher logic.
type Game struct {
	cfg        config.AntsConfig
	colony     *Colony
	escalation *config.Escalation
	render     core.Renderer
	score      int
	over       bool
	outcome    core.Outcome
}

// New creates an ant smasher with a validated configuration.
func New(cfg config.AntsConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Game{
		cfg:        cfg,
		escalation: config.NewEscalation(cfg.Escalation),
		render:     &core.NopRenderer{},
	}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "ants"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Ant Smasher"
}

// Interval returns the configured tick interval.
func (g *Game) Interval() time.Duration {
	return g.cfg.Timing.TickInterval
}

// Inputs returns the inputs bound while running: clicks only.
func (g *Game) Inputs() []core.InputKind {
	return []core.InputKind{core.InputPointer}
}

// Restartable is false: a completed run is final.
func (g *Game) Restartable() bool {
	return false
}

// Bounds returns the playfield in world units.
func (g *Game) Bounds() core.Box {
	return core.NewBox(0, 0, g.cfg.World.Width, g.cfg.World.Height)
}

// Reset starts a new run and spawns the colony.
func (g *Game) Reset(cfg core.RuntimeConfig, r core.Renderer) error {
	if r == nil {
		r = &core.NopRenderer{}
	}
	if g.colony != nil {
		g.colony.Clear()
	}
	g.render = r
	g.score = 0
	g.over = false
	g.outcome = core.OutcomeNone
	g.escalation.Reset()

	col := g.cfg.Colony
	g.colony = NewColony(g.Bounds(), ColonyOptions{
		AntW:          col.Width,
		AntH:          col.Height,
		Speed:         col.Speed,
		SpawnAttempts: col.SpawnAttempts,
		RemovalTicks:  g.cfg.Timing.RemovalTicks(),
	}, cfg.Seed, r)

	if err := g.colony.Spawn(col.Count, g.Bounds()); err != nil {
		// Ants placed before the failure must not stay on screen
		g.colony.Clear()
		return err
	}
	return nil
}

// Step processes this tick's clicks, moves the colony and checks for the
// speed-up and for completion.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.over {
		return core.StepResult{State: g.State()}
	}

	for _, click := range in.Of(core.InputPointer) {
		if g.colony.SmashAt(click.X, click.Y) {
			g.score++
		}
	}

	g.colony.Tick()

	if factor, ok := g.escalation.Check(g.score); ok {
		g.colony.Escalate(factor)
	}

	if g.colony.Live() == 0 {
		g.complete()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) complete() {
	g.over = true
	g.outcome = core.OutcomeCompleted
	g.colony.FlushRemovals()
	g.render.PlaySound(core.SoundComplete)
	g.render.ShowMessage(CompletionMessage)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:   g.score,
		Over:    g.over,
		Outcome: g.outcome,
	}
}

// Colony exposes the live colony, mainly for inspection in tests.
func (g *Game) Colony() *Colony {
	return g.colony
}

// Register the game with the registry
func init() {
	registry.Register("ants", "Ant Smasher", func(opts registry.Options) (registry.Game, error) {
		cfg, err := config.LoadAnts(opts.ConfigPath, opts.Preset)
		if err != nil {
			return nil, err
		}
		return New(cfg)
	})
}
