// Package session drives one game through Menu, Running and GameOver.
//
// The Controller is a single consumer: renderer input callbacks only post
// events into a buffered channel, and Run applies them and the fixed-interval
// ticks one at a time on its own goroutine. Gameplay inputs are collected
// into an InputFrame and handed to the game once per tick.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/registry"
)

// ErrInvalidTransition is returned when a mode change is not allowed from
// the current mode.
var ErrInvalidTransition = errors.New("session: invalid transition")

// DefaultQueueSize is the input buffer used when Options leaves it zero.
const DefaultQueueSize = 64

// Options configures a Controller.
type Options struct {
	Runtime   core.RuntimeConfig
	Logger    *log.Logger // nil discards
	QueueSize int
}

// Controller owns the mode machine, the tick driver and the input queue.
type Controller struct {
	game   registry.Game
	render core.Renderer
	store  HighScoreStore
	rt     core.RuntimeConfig
	log    *log.Logger

	events  chan core.InputEvent
	pending core.InputFrame
	bound   []func()

	mode     core.Mode
	high     int
	ticker   *time.Ticker
	tickC    <-chan time.Time // nil while the driver is stopped
	interval time.Duration
}

// New creates a controller in Menu mode with the Start input bound.
// A high score that cannot be read counts as 0.
func New(game registry.Game, r core.Renderer, store HighScoreStore, opts Options) (*Controller, error) {
	if game == nil {
		return nil, errors.New("session: game is required")
	}
	if r == nil {
		r = &core.NopRenderer{}
	}
	if store == nil {
		store = NewMemoryStore()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	size := opts.QueueSize
	if size <= 0 {
		size = DefaultQueueSize
	}

	c := &Controller{
		game:     game,
		render:   r,
		store:    store,
		rt:       opts.Runtime,
		log:      logger.With("game", game.ID()),
		events:   make(chan core.InputEvent, size),
		interval: opts.Runtime.Interval(game.Interval()),
	}

	high, err := store.HighScore(game.ID())
	if err != nil {
		c.log.Warn("cannot read high score, using 0", "err", err)
		high = 0
	}
	c.high = high

	c.enterMenu()
	return c, nil
}

// Post queues an input event without blocking. It is safe to call from any
// goroutine. Returns false when the queue is full and the event was dropped.
func (c *Controller) Post(ev core.InputEvent) bool {
	select {
	case c.events <- ev:
		return true
	default:
		c.log.Debug("input queue full, event dropped", "kind", ev.Kind)
		return false
	}
}

// Run consumes queued events and driver ticks until ctx is done.
// All state changes happen on the goroutine running Run.
func (c *Controller) Run(ctx context.Context) error {
	defer c.stopDriver()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-c.events:
			c.handle(ev)
		case <-c.tickC:
			c.Tick()
		}
	}
}

// Pump applies every queued event without waiting.
func (c *Controller) Pump() {
	for {
		select {
		case ev := <-c.events:
			c.handle(ev)
		default:
			return
		}
	}
}

func (c *Controller) handle(ev core.InputEvent) {
	switch {
	case ev.Kind == core.InputStart && c.mode == core.ModeMenu:
		if err := c.Start(); err != nil {
			c.log.Error("cannot start game", "err", err)
		}
	case ev.Kind == core.InputRestart && c.mode == core.ModeGameOver:
		if err := c.Restart(); err != nil {
			c.log.Error("cannot restart game", "err", err)
		}
	case c.mode == core.ModeRunning:
		c.pending.Add(ev)
	default:
		// Posted before the kind was unbound
		c.log.Debug("stale input ignored", "kind", ev.Kind, "mode", c.mode)
	}
}

// Start moves Menu to Running.
func (c *Controller) Start() error {
	if c.mode != core.ModeMenu {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, c.mode)
	}
	return c.run()
}

// Restart moves GameOver back to Running for restartable games.
func (c *Controller) Restart() error {
	if c.mode != core.ModeGameOver || !c.game.Restartable() {
		return fmt.Errorf("%w: restart %s from %s", ErrInvalidTransition, c.game.ID(), c.mode)
	}
	return c.run()
}

// Menu moves GameOver back to Menu.
func (c *Controller) Menu() error {
	if c.mode != core.ModeGameOver {
		return fmt.Errorf("%w: menu from %s", ErrInvalidTransition, c.mode)
	}
	c.enterMenu()
	return nil
}

// run resets the game and enters Running.
func (c *Controller) run() error {
	if err := c.game.Reset(c.rt, c.render); err != nil {
		return fmt.Errorf("session: cannot reset %s: %w", c.game.ID(), err)
	}

	c.unbindAll()
	c.pending.Clear()
	c.setMode(core.ModeRunning)
	c.render.ShowScore(0)
	c.render.ShowHighScore(c.high)

	for _, kind := range c.game.Inputs() {
		c.bind(kind)
	}
	c.startDriver()
	return nil
}

// Tick drains the queue, advances the game one step and ends the run when
// the game reports it is over. Does nothing outside Running.
func (c *Controller) Tick() {
	c.Pump()
	if c.mode != core.ModeRunning {
		return
	}

	res := c.game.Step(c.pending)
	c.pending.Clear()
	c.render.ShowScore(res.State.Score)
	if res.State.Score > c.high {
		c.raise(res.State.Score)
	}

	if res.State.Over {
		c.finish(res.State)
	}
}

// finish leaves Running: stop the driver, unbind input, persist the score.
func (c *Controller) finish(st core.GameState) {
	c.stopDriver()
	c.unbindAll()

	high, err := c.store.RecordScore(c.game.ID(), st.Score)
	if err != nil {
		c.log.Warn("cannot save score", "score", st.Score, "err", err)
		high = c.high
	}
	c.high = max(c.high, high, st.Score)

	c.log.Info("game over", "score", st.Score, "high", c.high, "outcome", st.Outcome)

	c.render.ShowHighScore(c.high)
	c.setMode(core.ModeGameOver)

	if c.game.Restartable() {
		c.bind(core.InputRestart)
	}
}

// raise persists a high score improvement made during the run.
func (c *Controller) raise(score int) {
	c.high = score
	c.render.ShowHighScore(score)
	if _, err := c.store.RaiseHighScore(c.game.ID(), score); err != nil {
		c.log.Warn("cannot save high score", "score", score, "err", err)
	}
}

func (c *Controller) enterMenu() {
	c.stopDriver()
	c.unbindAll()
	c.pending.Clear()
	c.render.ShowHighScore(c.high)
	c.setMode(core.ModeMenu)
	c.bind(core.InputStart)
}

func (c *Controller) setMode(m core.Mode) {
	c.log.Debug("mode change", "from", c.mode, "to", m)
	c.mode = m
	c.render.ShowMode(m)
}

func (c *Controller) bind(kind core.InputKind) {
	c.bound = append(c.bound, c.render.OnInput(kind, func(ev core.InputEvent) {
		c.Post(ev)
	}))
}

func (c *Controller) unbindAll() {
	for _, unbind := range c.bound {
		unbind()
	}
	c.bound = c.bound[:0]
}

func (c *Controller) startDriver() {
	c.stopDriver()
	c.ticker = time.NewTicker(c.interval)
	c.tickC = c.ticker.C
}

func (c *Controller) stopDriver() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	c.ticker = nil
	c.tickC = nil
}

// Close stops the driver and removes every input binding.
func (c *Controller) Close() {
	c.stopDriver()
	c.unbindAll()
}

// Mode returns the current mode. Call it from the goroutine running Run,
// or when Run is not running.
func (c *Controller) Mode() core.Mode {
	return c.mode
}

// State is the session view of a run: the game's score with the
// controller's high score and mode.
type State struct {
	Score     int
	HighScore int
	Mode      core.Mode
}

// State returns the current session state. Same goroutine rules as Mode.
func (c *Controller) State() State {
	return State{Score: c.game.State().Score, HighScore: c.high, Mode: c.mode}
}

// HighScore returns the best score known to the controller.
func (c *Controller) HighScore() int {
	return c.high
}

// Running reports whether the tick driver is active.
func (c *Controller) Running() bool {
	return c.ticker != nil
}

// Interval returns the tick driver interval.
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// Game returns the driven game.
func (c *Controller) Game() registry.Game {
	return c.game
}
