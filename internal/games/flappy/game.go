// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps in vertical pipes.
package flappy

import (
	"time"

	"github.com/vovakirdan/tui-minigames/internal/config"
	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/registry"
)

// Game implements the Flappy Bird game logic.
type Game struct {
	cfg       config.FlappyConfig
	bird      Bird
	pipes     *PipeManager
	render    core.Renderer
	score     int
	over      bool
	tickCount int

	bgOffset     float64 // background scroll, 0 to -world width
	groundOffset float64
	bgHandle     core.Handle
	groundHandle core.Handle
}

// New creates a flappy game with a validated configuration.
func New(cfg config.FlappyConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Game{cfg: cfg, render: &core.NopRenderer{}}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Interval returns the configured tick interval.
func (g *Game) Interval() time.Duration {
	return g.cfg.Timing.TickInterval
}

// Inputs returns the inputs bound while running.
func (g *Game) Inputs() []core.InputKind {
	return []core.InputKind{core.InputImpulse}
}

// Restartable is true: game over can go straight back to a new run.
func (g *Game) Restartable() bool {
	return true
}

// Bounds returns the whole world, ground included, in world units.
func (g *Game) Bounds() core.Box {
	return core.NewBox(0, 0, g.cfg.World.Width, g.cfg.World.Height)
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig, r core.Renderer) error {
	if r == nil {
		r = &core.NopRenderer{}
	}
	g.clear()
	g.render = r
	g.score = 0
	g.over = false
	g.tickCount = 0
	g.bgOffset = 0
	g.groundOffset = 0

	playH := g.cfg.PlayHeight()
	p := g.cfg.Player

	// Scenery first so the renderer draws it beneath the pipes and the bird
	g.bgHandle = r.CreateEntity(core.EntityBackground)
	g.groundHandle = r.CreateEntity(core.EntityGround)
	g.pipes = NewPipeManager(cfg.Seed, g.cfg.Obstacles, g.cfg.World.Width, playH, r)

	g.bird = Bird{
		Box:     core.NewBox(p.X, playH/2, p.Width, p.Height),
		Gravity: g.cfg.Physics.GravityBase,
		handle:  r.CreateEntity(core.EntityBird),
	}

	g.syncScenery()
	g.syncBird()
	return nil
}

// clear removes the previous run's sprites.
func (g *Game) clear() {
	if g.pipes == nil {
		return
	}
	g.pipes.Clear()
	g.render.MarkEntityRemoved(g.bird.handle)
	g.render.MarkEntityRemoved(g.bgHandle)
	g.render.MarkEntityRemoved(g.groundHandle)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.over {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	ph := g.cfg.Physics

	if in.Has(core.InputImpulse) {
		g.bird.Impulse(ph.ImpulseVelocity, ph.GravityBase)
		g.render.PlaySound(core.SoundFlap)
	}

	g.bird.Fall(ph.GravityStep)
	g.bird.Animate(g.cfg.Player.FlapFrames)

	g.scroll()
	g.pipes.Tick()

	if g.crashed() {
		g.die()
	} else {
		g.score += g.pipes.Score(g.bird.Right())
	}

	g.syncBird()
	return core.StepResult{State: g.State()}
}

// scroll moves the background and the ground left, wrapping at the world width.
func (g *Game) scroll() {
	w := g.cfg.World.Width

	g.bgOffset -= g.cfg.Scenery.BackgroundSpeed
	if g.bgOffset <= -w {
		g.bgOffset = 0
	}
	g.groundOffset -= g.cfg.Scenery.GroundSpeed
	if g.groundOffset <= -w {
		g.groundOffset = 0
	}

	g.syncScenery()
}

// crashed checks the ceiling, the ground and every pipe.
func (g *Game) crashed() bool {
	playH := g.cfg.PlayHeight()

	if g.bird.Y < 0 {
		return true
	}
	if g.bird.Bottom() >= playH {
		g.bird.Y = playH - g.bird.H
		return true
	}
	return g.pipes.Collides(g.bird.Box)
}

func (g *Game) die() {
	g.bird.Dead = true
	g.over = true
	g.render.PlaySound(core.SoundCrash)
}

func (g *Game) syncBird() {
	g.render.UpdateEntityTransform(g.bird.handle, core.Transform{
		Box:   g.bird.Box,
		Frame: g.bird.Frame,
		Dead:  g.bird.Dead,
	})
}

func (g *Game) syncScenery() {
	playH := g.cfg.PlayHeight()
	w := g.cfg.World.Width
	g.render.UpdateEntityTransform(g.bgHandle, core.Transform{
		Box: core.NewBox(g.bgOffset, 0, w, playH),
	})
	g.render.UpdateEntityTransform(g.groundHandle, core.Transform{
		Box: core.NewBox(g.groundOffset, playH, w, g.cfg.Scenery.GroundHeight),
	})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{Score: g.score, Over: g.over}
	if g.over {
		st.Outcome = core.OutcomeDied
	}
	return st
}

// Bird returns a copy of the bird.
func (g *Game) Bird() Bird {
	return g.bird
}

// Pipes returns the pipes currently on screen.
func (g *Game) Pipes() []Pipe {
	return g.pipes.Pipes()
}

// Register the game with the registry
func init() {
	registry.Register("flappy", "Flappy Bird", func(opts registry.Options) (registry.Game, error) {
		cfg, err := config.LoadFlappy(opts.ConfigPath, opts.Preset)
		if err != nil {
			return nil, err
		}
		return New(cfg)
	})
}
