package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Limits enforced by Validate.
const (
	MinVisibleRows = 4
	MinCols        = 4
	MinStartLevel  = 1
	MaxStartLevel  = 30
	MaxTickRate    = 240
)

// LoadTetris loads Tetris configuration.
// Search order: customPath -> ~/.blockfall/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default.
// Files are layered over the defaults, so they only need the keys they change.
func LoadTetris(customPath string) (TetrisConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TetrisConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return parseTetris(data, customPath)
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("tetris.yaml"), filepath.Join("configs", "tetris.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return parseTetris(data, path)
	}

	// Use embedded default YAML
	cfg, err := parseTetris(defaultTetrisYAML, "embedded default")
	if err != nil {
		return DefaultTetrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseTetris(data []byte, source string) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TetrisConfig{}, fmt.Errorf("failed to parse config %s: %w", source, err)
	}
	if err := cfg.Validate(); err != nil {
		return TetrisConfig{}, fmt.Errorf("config %s: %w", source, err)
	}
	// Validate accepted the preset, so only its spelling can change here.
	cfg.Difficulty.Preset, _ = ParsePreset(string(cfg.Difficulty.Preset))
	ApplyTetrisPreset(&cfg, cfg.Difficulty.Preset)
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockfall", "configs", filename)
}

// Validate checks the config for values the game cannot run with.
// All problems are reported together; each wraps ErrInvalidConfig.
func (c TetrisConfig) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	p := c.Playfield
	if p.Hidden < 1 {
		invalid("playfield.hidden must be at least 1, got %d", p.Hidden)
	}
	if p.VisibleRows() < MinVisibleRows {
		invalid("playfield must have at least %d visible rows, got %d", MinVisibleRows, p.VisibleRows())
	}
	if p.Cols < MinCols {
		invalid("playfield.cols must be at least %d, got %d", MinCols, p.Cols)
	}

	if l := c.Gameplay.StartLevel; l < MinStartLevel || l > MaxStartLevel {
		invalid("gameplay.start_level must be in %d..%d, got %d", MinStartLevel, MaxStartLevel, l)
	}
	if r := c.Gameplay.TickRate; r < 1 || r > MaxTickRate {
		invalid("gameplay.tick_rate must be in 1..%d, got %d", MaxTickRate, r)
	}

	if _, err := ParsePreset(string(c.Difficulty.Preset)); err != nil {
		errs = append(errs, err)
	}

	owner := make(map[string]string)
	for _, b := range c.Controls.Bindings() {
		if len(b.Keys) == 0 {
			invalid("controls.%s has no keys", b.Name)
		}
		for _, k := range b.Keys {
			if prev, ok := owner[k]; ok {
				invalid("key %q is bound to both %s and %s", k, prev, b.Name)
				continue
			}
			owner[k] = b.Name
		}
	}

	return errors.Join(errs...)
}
