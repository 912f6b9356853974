package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-minigames/internal/config"
	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/core/coretest"
	"github.com/vovakirdan/tui-minigames/internal/games/flappy"
)

// stubGame scores one point per tick and ends after overAfter ticks.
type stubGame struct {
	restartable bool
	overAfter   int
	resetErr    error

	resets int
	steps  int
	score  int
	frames []core.InputFrame
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig, core.Renderer) error {
	if g.resetErr != nil {
		return g.resetErr
	}
	g.resets++
	g.steps = 0
	g.score = 0
	return nil
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.score++
	g.frames = append(g.frames, core.InputFrame{Events: append([]core.InputEvent(nil), in.Events...)})
	return core.StepResult{State: g.State()}
}

func (g *stubGame) State() core.GameState {
	over := g.steps >= g.overAfter
	st := core.GameState{Score: g.score, Over: over}
	if over {
		st.Outcome = core.OutcomeDied
	}
	return st
}

func (g *stubGame) Interval() time.Duration  { return time.Millisecond }
func (g *stubGame) Inputs() []core.InputKind { return []core.InputKind{core.InputImpulse} }
func (g *stubGame) Restartable() bool        { return g.restartable }

type failingStore struct{}

func (failingStore) HighScore(string) (int, error) { return 0, errors.New("disk on fire") }
func (failingStore) RecordScore(string, int) (int, error) {
	return 0, errors.New("disk on fire")
}
func (failingStore) RaiseHighScore(string, int) (int, error) {
	return 0, errors.New("disk on fire")
}

func newController(t *testing.T, g *stubGame, store HighScoreStore) (*Controller, *coretest.Renderer) {
	t.Helper()
	r := coretest.NewRenderer()
	c, err := New(g, r, store, Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return c, r
}

func TestNewEntersMenu(t *testing.T) {
	store := NewMemoryStore()
	store.RecordScore("stub", 42)

	c, r := newController(t, &stubGame{overAfter: 3}, store)

	if c.Mode() != core.ModeMenu {
		t.Errorf("Mode() = %s, expected Menu", c.Mode())
	}
	if c.HighScore() != 42 {
		t.Errorf("HighScore() = %d, expected 42", c.HighScore())
	}
	if r.Bound(core.InputStart) != 1 {
		t.Error("Start should be bound in Menu")
	}
	if r.Bound(core.InputImpulse) != 0 {
		t.Error("game inputs must not be bound in Menu")
	}
	if c.Running() {
		t.Error("driver must not run in Menu")
	}
}

func TestNewRequiresGame(t *testing.T) {
	if _, err := New(nil, nil, nil, Options{}); err == nil {
		t.Error("New(nil game) should fail")
	}
}

func TestHighScoreReadFailureDefaultsToZero(t *testing.T) {
	g := &stubGame{overAfter: 2}
	c, r := newController(t, g, failingStore{})

	if c.HighScore() != 0 {
		t.Errorf("HighScore() = %d, expected 0", c.HighScore())
	}

	if err := c.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	c.Tick()
	c.Tick()

	// The write fails too, but the session still shows the run's score
	if c.Mode() != core.ModeGameOver || c.HighScore() != 2 {
		t.Errorf("mode %s, high %d", c.Mode(), c.HighScore())
	}
	if last := r.HighScores[len(r.HighScores)-1]; last != 2 {
		t.Errorf("shown high score = %d, expected 2", last)
	}
}

func TestStartBindsGameInput(t *testing.T) {
	g := &stubGame{overAfter: 10}
	c, r := newController(t, g, nil)

	if !r.Fire(core.InputEvent{Kind: core.InputStart}) {
		t.Fatal("Start input should be bound")
	}
	c.Pump()

	if c.Mode() != core.ModeRunning {
		t.Fatalf("Mode() = %s, expected Running", c.Mode())
	}
	if g.resets != 1 {
		t.Errorf("game reset %d times, expected 1", g.resets)
	}
	if !c.Running() {
		t.Error("driver should run in Running")
	}
	if r.Bound(core.InputStart) != 0 {
		t.Error("Start should be unbound in Running")
	}
	if r.Bound(core.InputImpulse) != 1 {
		t.Error("game input should be bound in Running")
	}
	if err := c.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second Start() error = %v, expected ErrInvalidTransition", err)
	}
	c.Close()
}

func TestResetFailureStaysInMenu(t *testing.T) {
	boom := errors.New("too crowded")
	c, r := newController(t, &stubGame{overAfter: 1, resetErr: boom}, nil)

	if err := c.Start(); !errors.Is(err, boom) {
		t.Fatalf("Start() error = %v, expected wrapped reset error", err)
	}
	if c.Mode() != core.ModeMenu || c.Running() {
		t.Errorf("mode %s, running %v after failed start", c.Mode(), c.Running())
	}
	if r.Bound(core.InputStart) != 1 {
		t.Error("Start should stay bound after a failed start")
	}
}

func TestTickDrainsInputsOncePerTick(t *testing.T) {
	g := &stubGame{overAfter: 10}
	c, r := newController(t, g, nil)
	if err := c.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer c.Close()

	r.Fire(core.InputEvent{Kind: core.InputImpulse})
	r.Fire(core.InputEvent{Kind: core.InputImpulse})
	c.Tick()
	c.Tick()

	if len(g.frames) != 2 {
		t.Fatalf("game stepped %d times, expected 2", len(g.frames))
	}
	if g.frames[0].Len() != 2 {
		t.Errorf("first frame has %d events, expected 2", g.frames[0].Len())
	}
	if g.frames[1].Len() != 0 {
		t.Errorf("second frame has %d events, expected 0", g.frames[1].Len())
	}
	if last := r.Scores[len(r.Scores)-1]; last != 2 {
		t.Errorf("shown score = %d, expected 2", last)
	}
}

func TestGameOver(t *testing.T) {
	store := NewMemoryStore()
	g := &stubGame{overAfter: 3, restartable: true}
	c, r := newController(t, g, store)

	if err := c.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		c.Tick()
	}

	if c.Mode() != core.ModeGameOver {
		t.Fatalf("Mode() = %s, expected GameOver", c.Mode())
	}
	if c.Running() {
		t.Error("driver should stop on game over")
	}
	if r.Bound(core.InputImpulse) != 0 {
		t.Error("game input should be unbound on game over")
	}
	if r.Bound(core.InputRestart) != 1 {
		t.Error("Restart should be bound for a restartable game")
	}
	if runs := store.Runs("stub"); len(runs) != 1 || runs[0] != 3 {
		t.Errorf("recorded runs = %v, expected [3]", runs)
	}
	if c.HighScore() != 3 {
		t.Errorf("HighScore() = %d, expected 3", c.HighScore())
	}
	if st := c.State(); st != (State{Score: 3, HighScore: 3, Mode: core.ModeGameOver}) {
		t.Errorf("State() = %+v", st)
	}

	want := []core.Mode{core.ModeMenu, core.ModeRunning, core.ModeGameOver}
	if len(r.Modes) != len(want) {
		t.Fatalf("modes = %v, expected %v", r.Modes, want)
	}
	for i := range want {
		if r.Modes[i] != want[i] {
			t.Errorf("modes[%d] = %s, expected %s", i, r.Modes[i], want[i])
		}
	}

	// Ticks after game over do nothing
	c.Tick()
	if g.steps != 3 {
		t.Errorf("game stepped after game over: %d", g.steps)
	}
}

func TestRestart(t *testing.T) {
	g := &stubGame{overAfter: 2, restartable: true}
	c, r := newController(t, g, nil)

	if err := c.Restart(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Restart() from Menu error = %v", err)
	}

	c.Start()
	c.Tick()
	c.Tick()

	r.Fire(core.InputEvent{Kind: core.InputRestart})
	c.Pump()

	if c.Mode() != core.ModeRunning {
		t.Fatalf("Mode() = %s, expected Running after restart", c.Mode())
	}
	if g.resets != 2 || g.steps != 0 {
		t.Errorf("resets %d steps %d, expected a fresh run", g.resets, g.steps)
	}
	if r.Bound(core.InputRestart) != 0 || r.Bound(core.InputImpulse) != 1 {
		t.Error("bindings not switched back to the game")
	}
	c.Close()
}

func TestNoRestartForTerminalGame(t *testing.T) {
	g := &stubGame{overAfter: 1}
	c, r := newController(t, g, nil)

	c.Start()
	c.Tick()

	if r.Bound(core.InputRestart) != 0 {
		t.Error("Restart must not be bound for a non-restartable game")
	}
	if err := c.Restart(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Restart() error = %v, expected ErrInvalidTransition", err)
	}
	if c.Mode() != core.ModeGameOver {
		t.Errorf("Mode() = %s, expected to stay in GameOver", c.Mode())
	}
}

func TestMenuFromGameOver(t *testing.T) {
	g := &stubGame{overAfter: 1}
	c, r := newController(t, g, nil)

	if err := c.Menu(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Menu() from Menu error = %v", err)
	}

	c.Start()
	c.Tick()
	if err := c.Menu(); err != nil {
		t.Fatalf("Menu() failed: %v", err)
	}
	if c.Mode() != core.ModeMenu || r.Bound(core.InputStart) != 1 {
		t.Errorf("mode %s, start bound %d", c.Mode(), r.Bound(core.InputStart))
	}
}

func TestHighScoreNeverDecreases(t *testing.T) {
	store := NewMemoryStore()

	for _, tt := range []struct {
		score    int
		wantHigh int
	}{
		{5, 5},
		{3, 5},
		{8, 8},
		{1, 8},
	} {
		g := &stubGame{overAfter: tt.score}
		c, _ := newController(t, g, store)
		c.Start()
		for i := 0; i < tt.score; i++ {
			c.Tick()
		}
		if c.HighScore() != tt.wantHigh {
			t.Errorf("after score %d: high %d, expected %d", tt.score, c.HighScore(), tt.wantHigh)
		}
		if h, _ := store.HighScore("stub"); h != tt.wantHigh {
			t.Errorf("after score %d: stored high %d, expected %d", tt.score, h, tt.wantHigh)
		}
	}
}

func TestHighScoreSavedDuringRun(t *testing.T) {
	store := NewMemoryStore()
	store.RecordScore("stub", 1)

	g := &stubGame{overAfter: 10}
	c, r := newController(t, g, store)
	c.Start()
	for i := 0; i < 3; i++ {
		c.Tick()
	}

	if c.Mode() != core.ModeRunning {
		t.Fatalf("Mode() = %s, expected Running", c.Mode())
	}
	if h, _ := store.HighScore("stub"); h != 3 {
		t.Errorf("stored high during run = %d, expected 3", h)
	}
	if last := r.HighScores[len(r.HighScores)-1]; last != 3 {
		t.Errorf("shown high score = %d, expected 3", last)
	}
	// Only finished runs enter the history
	if runs := store.Runs("stub"); len(runs) != 1 {
		t.Errorf("runs = %v, expected only the seeded run", runs)
	}
}

func TestStaleInputIgnored(t *testing.T) {
	g := &stubGame{overAfter: 5}
	c, _ := newController(t, g, nil)

	// Posted directly, bypassing bindings, while still in Menu
	c.Post(core.InputEvent{Kind: core.InputImpulse})
	c.Pump()
	c.Start()
	c.Tick()

	if g.frames[0].Len() != 0 {
		t.Errorf("event from Menu leaked into the run: %+v", g.frames[0])
	}
	c.Close()
}

func TestPostDropsWhenFull(t *testing.T) {
	r := coretest.NewRenderer()
	c, err := New(&stubGame{overAfter: 1}, r, nil, Options{QueueSize: 1})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if !c.Post(core.InputEvent{Kind: core.InputImpulse}) {
		t.Error("first Post should fit")
	}
	if c.Post(core.InputEvent{Kind: core.InputImpulse}) {
		t.Error("second Post should be dropped")
	}
}

func TestTickRateOverride(t *testing.T) {
	g := &stubGame{overAfter: 1}
	c, err := New(g, nil, nil, Options{Runtime: core.RuntimeConfig{TickRate: 50}})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if c.Interval() != 20*time.Millisecond {
		t.Errorf("Interval() = %s, expected 20ms", c.Interval())
	}
}

func TestRunDrivesTicks(t *testing.T) {
	store := NewMemoryStore()
	g := &stubGame{overAfter: 5}
	r := coretest.NewRenderer()
	c, err := New(g, r, store, Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	r.Fire(core.InputEvent{Kind: core.InputStart})

	deadline := time.After(2 * time.Second)
	for len(store.Runs("stub")) == 0 {
		select {
		case <-deadline:
			cancel()
			t.Fatal("run did not finish")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
	if runs := store.Runs("stub"); runs[0] != 5 {
		t.Errorf("recorded score %d, expected 5", runs[0])
	}
}

func TestFlappySession(t *testing.T) {
	game, err := flappy.New(config.DefaultFlappyConfig())
	if err != nil {
		t.Fatalf("flappy.New() failed: %v", err)
	}
	r := coretest.NewRenderer()
	c, err := New(game, r, nil, Options{Runtime: core.RuntimeConfig{Seed: 1}})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if err := c.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	// Without flapping the bird falls to the ground
	for i := 0; i < 1000 && c.Mode() == core.ModeRunning; i++ {
		c.Tick()
	}
	if c.Mode() != core.ModeGameOver {
		t.Fatalf("Mode() = %s, expected GameOver", c.Mode())
	}
	if r.Bound(core.InputRestart) != 1 {
		t.Error("flappy should be restartable")
	}

	r.Fire(core.InputEvent{Kind: core.InputRestart})
	c.Pump()
	if c.Mode() != core.ModeRunning || game.State().Over {
		t.Errorf("restart failed: mode %s, state %+v", c.Mode(), game.State())
	}
	if r.Live(core.EntityBird) != 1 {
		t.Errorf("%d birds on screen after restart", r.Live(core.EntityBird))
	}
	c.Close()
}
