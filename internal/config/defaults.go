package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default Tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Playfield: TetrisPlayfield{
			Rows:   22,
			Cols:   10,
			Hidden: 2,
		},
		Gameplay: TetrisGameplay{
			StartLevel: 1,
			TickRate:   60,
		},
		Difficulty: DifficultyConfig{
			Preset: "", // start_level with normal progression
		},
		Controls: TetrisControls{
			Left:      []string{"left", "a"},
			Right:     []string{"right", "d"},
			RotateCW:  []string{"up", "x", "w"},
			RotateCCW: []string{"z"},
			SoftDrop:  []string{"down", "s"},
			HardDrop:  []string{" "},
			Hold:      []string{"c"},
			Confirm:   []string{"enter"},
			Pause:     []string{"p", "esc"},
			Restart:   []string{"r"},
			Quit:      []string{"q", "ctrl+c"},
		},
	}
}
