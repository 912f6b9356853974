package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-minigames/internal/core"
)

// KeyMapper translates Bubble Tea key messages to semantic inputs.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// KeyAction is what the game screen does with a key besides emitting inputs.
type KeyAction int

const (
	KeyActionNone KeyAction = iota
	KeyActionQuit
	KeyActionBack
	KeyActionMute
	KeyActionScreenshot
)

// MapKey returns the input kinds a key may produce. Space is shared by
// Start, Impulse and Restart; only the kind currently bound reaches the
// controller.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (kinds []core.InputKind, action KeyAction) {
	switch msg.String() {
	case "ctrl+c", "q":
		return nil, KeyActionQuit
	case "b", "esc":
		return nil, KeyActionBack
	case "m":
		return nil, KeyActionMute
	case "ctrl+s":
		return nil, KeyActionScreenshot
	case " ":
		return []core.InputKind{core.InputStart, core.InputImpulse, core.InputRestart}, KeyActionNone
	case "enter":
		return []core.InputKind{core.InputStart}, KeyActionNone
	case "up", "w":
		return []core.InputKind{core.InputImpulse}, KeyActionNone
	case "r":
		return []core.InputKind{core.InputRestart}, KeyActionNone
	}
	return nil, KeyActionNone
}
