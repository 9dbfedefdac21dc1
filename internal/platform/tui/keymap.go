package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
)

// KeyMap translates Bubble Tea key messages to game actions.
// Bindings come from the config file so players can remap them.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	RotateCW  key.Binding
	RotateCCW key.Binding
	SoftDrop  key.Binding
	HardDrop  key.Binding
	Hold      key.Binding
	Confirm   key.Binding
	Pause     key.Binding
	Restart   key.Binding
	Quit      key.Binding

	// Platform-only bindings, not forwarded to the game
	Help       key.Binding
	Screenshot key.Binding
}

// NewKeyMap builds bindings from the configured controls.
func NewKeyMap(c config.TetrisControls) KeyMap {
	return KeyMap{
		Left:      newBinding(c.Left, "move left"),
		Right:     newBinding(c.Right, "move right"),
		RotateCW:  newBinding(c.RotateCW, "rotate"),
		RotateCCW: newBinding(c.RotateCCW, "rotate ccw"),
		SoftDrop:  newBinding(c.SoftDrop, "soft drop"),
		HardDrop:  newBinding(c.HardDrop, "hard drop"),
		Hold:      newBinding(c.Hold, "hold"),
		Confirm:   newBinding(c.Confirm, "start"),
		Pause:     newBinding(c.Pause, "pause"),
		Restart:   newBinding(c.Restart, "restart"),
		Quit:      newBinding(c.Quit, "quit"),

		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Screenshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
	}
}

// DefaultKeyMap returns the bindings of the default config.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.DefaultTetrisConfig().Controls)
}

func newBinding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keyLabel(keys), desc),
	)
}

// keyLabel renders key names for the help footer.
func keyLabel(keys []string) string {
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		switch k {
		case " ":
			labels = append(labels, "space")
		case "left":
			labels = append(labels, "←")
		case "right":
			labels = append(labels, "→")
		case "up":
			labels = append(labels, "↑")
		case "down":
			labels = append(labels, "↓")
		default:
			labels = append(labels, k)
		}
	}
	return strings.Join(labels, "/")
}

// Action returns the game action bound to msg, or ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	for _, b := range k.actionBindings() {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return core.ActionNone
}

type actionBinding struct {
	action  core.Action
	binding key.Binding
}

func (k KeyMap) actionBindings() []actionBinding {
	return []actionBinding{
		{core.ActionQuit, k.Quit},
		{core.ActionLeft, k.Left},
		{core.ActionRight, k.Right},
		{core.ActionRotateCW, k.RotateCW},
		{core.ActionRotateCCW, k.RotateCCW},
		{core.ActionSoftDrop, k.SoftDrop},
		{core.ActionHardDrop, k.HardDrop},
		{core.ActionHold, k.Hold},
		{core.ActionConfirm, k.Confirm},
		{core.ActionPause, k.Pause},
		{core.ActionRestart, k.Restart},
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.RotateCW, k.HardDrop, k.Hold, k.Pause, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.SoftDrop, k.HardDrop},
		{k.RotateCW, k.RotateCCW, k.Hold},
		{k.Confirm, k.Pause, k.Restart},
		{k.Screenshot, k.Quit, k.Help},
	}
}
