package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/registry"
	"github.com/vovakirdan/tui-minigames/internal/session"
)

// GameOptions configures one game screen.
type GameOptions struct {
	Context context.Context // stops the controller when done, nil = never
	Runtime core.RuntimeConfig
	Store   session.HighScoreStore // nil keeps scores in memory
	Sound   SoundPlayer            // nil is silent
	Logger  *log.Logger
	FPS     int // repaint rate, 0 = 30
}

// play is the controller goroutine behind a GameModel. Models are copied by
// value, so they share it through a pointer.
type play struct {
	ctrl   *session.Controller
	render *SpriteRenderer
	cancel context.CancelFunc
	done   chan error
}

func (p *play) stop() error {
	p.cancel()
	err := <-p.done
	p.ctrl.Close()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// bounded is implemented by games that know their playfield size.
type bounded interface {
	Bounds() core.Box
}

// GameModel is the Bubble Tea model for one game session. The session
// controller runs on its own goroutine; the model turns keys and clicks
// into renderer inputs and repaints on a fixed frame rate.
type GameModel struct {
	game       registry.Game
	play       *play
	screen     *core.Screen
	keyMapper  *KeyMapper
	fps        int
	muted      bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates the renderer and controller and starts the controller
// goroutine in Menu mode. Stop must be called when the model is discarded.
func NewGameModel(game registry.Game, opts GameOptions) (GameModel, error) {
	var world core.Box
	if b, ok := game.(bounded); ok {
		world = b.Bounds()
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}

	render := NewSpriteRenderer(world, opts.Sound)
	ctrl, err := session.New(game, render, opts.Store, session.Options{
		Runtime: opts.Runtime,
		Logger:  opts.Logger,
	})
	if err != nil {
		return GameModel{}, err
	}

	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	p := &play{
		ctrl:   ctrl,
		render: render,
		cancel: cancel,
		done:   make(chan error, 1),
	}
	go func() {
		p.done <- ctrl.Run(ctx)
	}()

	return GameModel{
		game:      game,
		play:      p,
		screen:    core.NewScreen(max(opts.Runtime.ScreenW, 1), max(opts.Runtime.ScreenH, 2)),
		keyMapper: NewKeyMapper(),
		fps:       opts.FPS,
	}, nil
}

// Init starts the repaint loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.play.render.Click(msg.X, msg.Y, m.screen.Width(), m.screen.Height())
		}
		return m, nil

	case tea.WindowSizeMsg:
		// The world is scaled, so the game keeps running across resizes
		m.screen.Resize(msg.Width, max(msg.Height, 2))
		return m, nil

	case TickMsg:
		if m.quitting || m.backToMenu {
			return m, nil
		}
		return m, tickCmd(m.fps)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kinds, action := m.keyMapper.MapKey(msg)

	switch action {
	case KeyActionQuit:
		m.quitting = true
		return m, tea.Quit

	case KeyActionBack:
		// Only outside a run, a running game is not abandoned by accident
		if m.play.render.HUD().Mode != core.ModeRunning {
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil

	case KeyActionScreenshot:
		m.saveScreenshot()
		return m, nil

	case KeyActionMute:
		if s, ok := m.play.render.sound.(interface{ SetMuted(bool) }); ok {
			m.muted = !m.muted
			s.SetMuted(m.muted)
		}
		return m, nil
	}

	m.play.render.EmitFirst(kinds)
	return m, nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.play.render.Paint(m.screen, m.game.Title())
	if lines := m.overlay(); len(lines) > 0 {
		DrawOverlay(m.screen, lines, core.ColorBrightYellow)
	}
	return RenderScreen(m.screen)
}

// overlay returns the panel text for the current mode.
func (m GameModel) overlay() []string {
	hud := m.play.render.HUD()

	switch hud.Mode {
	case core.ModeMenu:
		lines := []string{m.game.Title(), ""}
		if hud.High > 0 {
			lines = append(lines, fmt.Sprintf("High score: %d", hud.High), "")
		}
		return append(lines, "SPACE / ENTER  start", "Q  quit")

	case core.ModeGameOver:
		lines := []string{"GAME OVER"}
		if hud.Message != "" {
			lines = []string{hud.Message}
		}
		lines = append(lines, "", fmt.Sprintf("Score: %d   High: %d", hud.Score, hud.High), "")
		if m.game.Restartable() {
			lines = append(lines, "SPACE / R  play again")
		}
		return append(lines, "B  menu   Q  quit")
	}
	return nil
}

// Stop ends the controller goroutine and releases its input bindings.
func (m GameModel) Stop() error {
	return m.play.stop()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// saveScreenshot saves the current screen to a file.
func (m GameModel) saveScreenshot() {
	m.play.render.Paint(m.screen, m.game.Title())

	dir := filepath.Join(os.Getenv("HOME"), ".minigames", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// Run starts a Bubble Tea program for the game and blocks until the player
// quits or goes back. It reports whether the player asked for the menu.
func Run(game registry.Game, opts GameOptions) (backToMenu bool, err error) {
	model, err := NewGameModel(game, opts)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks smash ants
	)

	final, runErr := p.Run()
	stopErr := model.Stop()
	if runErr != nil {
		return false, runErr
	}
	if stopErr != nil {
		return false, stopErr
	}

	if fm, ok := final.(GameModel); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
