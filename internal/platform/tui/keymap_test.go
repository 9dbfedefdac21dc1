package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"a", runeKey('a'), core.ActionLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotateCW},
		{"z", runeKey('z'), core.ActionRotateCCW},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionSoftDrop},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionHardDrop},
		{"c", runeKey('c'), core.ActionHold},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"p", runeKey('p'), core.ActionPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"r", runeKey('r'), core.ActionRestart},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"help is not a game action", runeKey('?'), core.ActionNone},
		{"unbound", runeKey('m'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, km.Action(tc.msg), "key %q", tc.msg.String())
		})
	}
}

func TestKeyMapFromConfig(t *testing.T) {
	controls := config.DefaultTetrisConfig().Controls
	controls.Hold = []string{"h"}
	controls.HardDrop = []string{"enter"}
	controls.Confirm = []string{"y"}
	km := NewKeyMap(controls)

	assert.Equal(t, core.ActionHold, km.Action(runeKey('h')))
	assert.Equal(t, core.ActionNone, km.Action(runeKey('c')), "old hold key is unbound")
	assert.Equal(t, core.ActionHardDrop, km.Action(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, core.ActionConfirm, km.Action(runeKey('y')))
}

func TestKeyLabel(t *testing.T) {
	tests := []struct {
		keys []string
		want string
	}{
		{[]string{"left", "a"}, "←/a"},
		{[]string{" "}, "space"},
		{[]string{"q", "ctrl+c"}, "q/ctrl+c"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, keyLabel(tc.keys))
	}
}

func TestHelpBindingsHaveText(t *testing.T) {
	km := DefaultKeyMap()
	for _, column := range km.FullHelp() {
		for _, b := range column {
			assert.NotEmpty(t, b.Help().Key, "binding %v", b.Keys())
			assert.NotEmpty(t, b.Help().Desc, "binding %v", b.Keys())
		}
	}
	assert.NotEmpty(t, km.ShortHelp())
}
