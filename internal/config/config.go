// Package config provides YAML-based game configuration loading and
// difficulty presets for blockfall.
package config

import "errors"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// TetrisConfig contains all configuration for the Tetris game.
type TetrisConfig struct {
	Playfield  TetrisPlayfield  `yaml:"playfield"`
	Gameplay   TetrisGameplay   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Controls   TetrisControls   `yaml:"controls"`
}

// TetrisPlayfield defines the grid dimensions.
type TetrisPlayfield struct {
	Rows   int `yaml:"rows"`   // Total rows including the hidden spawn rows
	Cols   int `yaml:"cols"`   // Columns
	Hidden int `yaml:"hidden"` // Rows above the visible area
}

// VisibleRows returns the number of rows shown to the player.
func (p TetrisPlayfield) VisibleRows() int {
	return p.Rows - p.Hidden
}

// TetrisGameplay defines session parameters.
type TetrisGameplay struct {
	StartLevel int `yaml:"start_level"` // Level preselected on the start screen
	TickRate   int `yaml:"tick_rate"`   // Simulation ticks per second
}

// DifficultyConfig selects a difficulty preset.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// TetrisControls lists the keys bound to each action.
// Key names follow Bubble Tea's KeyMsg.String() format ("left", "ctrl+c", " ").
type TetrisControls struct {
	Left      []string `yaml:"left"`
	Right     []string `yaml:"right"`
	RotateCW  []string `yaml:"rotate_cw"`
	RotateCCW []string `yaml:"rotate_ccw"`
	SoftDrop  []string `yaml:"soft_drop"`
	HardDrop  []string `yaml:"hard_drop"`
	Hold      []string `yaml:"hold"`
	Confirm   []string `yaml:"confirm"`
	Pause     []string `yaml:"pause"`
	Restart   []string `yaml:"restart"`
	Quit      []string `yaml:"quit"`
}

// Bindings returns the controls as (name, keys) pairs in display order.
func (c TetrisControls) Bindings() []Binding {
	return []Binding{
		{"left", c.Left},
		{"right", c.Right},
		{"rotate_cw", c.RotateCW},
		{"rotate_ccw", c.RotateCCW},
		{"soft_drop", c.SoftDrop},
		{"hard_drop", c.HardDrop},
		{"hold", c.Hold},
		{"confirm", c.Confirm},
		{"pause", c.Pause},
		{"restart", c.Restart},
		{"quit", c.Quit},
	}
}

// Binding is one named control and its keys.
type Binding struct {
	Name string
	Keys []string
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)
