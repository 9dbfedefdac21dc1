package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/tetris"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (tetris if omitted).

Default controls:
  ←/→ or A/D     - Move
  ↑, X or W      - Rotate clockwise
  Z              - Rotate counter-clockwise
  ↓ or S         - Soft drop
  Space          - Hard drop
  C              - Hold
  Enter          - Start
  P/Esc          - Pause
  R              - Restart
  Q/Ctrl+C       - Quit
  ?              - Toggle full help

On the start screen, left/right choose the starting level.
Controls can be remapped in the config file.

Difficulty options:
  easy   - Start at level 1
  normal - Start at level 5
  hard   - Start at level 10
  fixed  - Start at the configured level, never speed up

Examples:
  blockfall play
  blockfall play tetris --difficulty hard
  blockfall play --seed 42 --log-level debug --log-file blockfall.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := tetris.ID
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blockfall list' to see available games.")
		os.Exit(1)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gameCfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The alt screen owns stdout, so logs only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard, "blockfall")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(preset)
	tetris.SetLogger(logger)

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = gameCfg.Gameplay.TickRate
	if cmd.Flags().Changed("fps") {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting game", "game", gameID, "tick_rate", cfg.TickRate, "seed", flagSeed)
	runErr := tui.Run(game, cfg, tui.Options{
		Keys:   tui.NewKeyMap(gameCfg.Controls),
		Logger: logger,
	})
	if runErr != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	state := game.State()
	if state.Started || state.GameOver {
		fmt.Printf("Score %d  Level %d  Lines %d\n", state.Score, state.Level, state.Lines)
	}
}
