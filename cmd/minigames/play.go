package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-minigames/internal/audio"
	"github.com/vovakirdan/tui-minigames/internal/config"
	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/platform/tui"
	"github.com/vovakirdan/tui-minigames/internal/registry"
	"github.com/vovakirdan/tui-minigames/internal/session"
	"github.com/vovakirdan/tui-minigames/internal/storage"
)

// The SQLite store is the persistent high score store of every session.
var _ session.HighScoreStore = (*storage.Store)(nil)

var (
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagPrintConf  bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Space/Enter  - Start (title screen)
  Left click   - Smash an ant
  Space/Up     - Flap
  Space/R      - Play again (flappy, after game over)
  M            - Mute sound
  B/Esc        - Back (outside a run)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Fewer, slower ants; wider pipe gaps
  normal - The defaults
  hard   - More, faster ants; narrower gaps and faster pipes
  fixed  - No speed-up while playing

Examples:
  minigames play ants
  minigames play flappy --difficulty hard
  minigames play ants --difficulty fixed --seed 42
  minigames play flappy --config ./my-flappy.yaml
  minigames play ants --print-default-config > ants.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start without sound")
	playCmd.Flags().BoolVar(&flagPrintConf, "print-default-config", false, "Print the game's default config YAML and exit")

	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	menuCmd.Flags().BoolVar(&flagMute, "mute", false, "Start without sound")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'minigames list' to see available games.")
		os.Exit(1)
	}

	if flagPrintConf {
		os.Stdout.Write(config.GetDefaultYAML(gameID))
		return
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID, registry.Options{ConfigPath: flagConfig, Preset: preset})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newFileLogger("minigames")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStore(logger)
	sound := newSound(logger)

	_, runErr := tui.Run(game, gameOptions(runtimeConfig(), store, sound, logger))

	sound.Cleanup()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game failed", "game", gameID, "err", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the runtime config from the global flags and the
// terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database. Games still run without it, with
// high scores kept in memory.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// newSound opens the audio device. Without one every cue is silently
// dropped.
func newSound(logger *log.Logger) *audio.SoundManager {
	sm := audio.NewSoundManager()
	sm.SetMuted(flagMute)
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio unavailable", "err", err)
	}
	return sm
}

func gameOptions(rt core.RuntimeConfig, store *storage.Store, sound *audio.SoundManager, logger *log.Logger) tui.GameOptions {
	opts := tui.GameOptions{
		Runtime: rt,
		Sound:   sound,
		Logger:  logger,
	}
	// A nil *storage.Store must not become a non-nil interface
	if store != nil {
		opts.Store = store
	}
	return opts
}
