package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/games/tetris/core"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show gravity speed and scoring per level",
	Long: `Shows how fast pieces fall at every selectable level, how many
lines each level needs and what line clears are worth.

Drop times use the configured tick rate (or --fps).`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(cmd *cobra.Command, _ []string) {
	gameCfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	tickRate := gameCfg.Gameplay.TickRate
	if cmd.Flags().Changed("fps") {
		tickRate = flagFPS
	}
	if tickRate <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --fps must be positive")
		os.Exit(1)
	}

	fmt.Println(levelTable(tickRate).Render())
}

func levelTable(tickRate int) *table.Table {
	rows := make([][]string, 0, core.MaxSelectableLevel)
	for level := core.MinLevel; level <= core.MaxSelectableLevel; level++ {
		ticks := core.GravityInterval(level)
		perRow := time.Duration(ticks) * time.Second / time.Duration(tickRate)

		advance := "-"
		if level < core.MaxLevel {
			advance = strconv.Itoa(core.LinesPerLevel * level)
		}

		rows = append(rows, []string{
			strconv.Itoa(level),
			strconv.Itoa(ticks),
			perRow.Round(time.Millisecond).String(),
			advance,
			strconv.Itoa(core.LineClearScore(1, level)),
			strconv.Itoa(core.LineClearScore(4, level)),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Level", "Ticks/row", "Time/row", "Lines to advance", "Single", "Tetris").
		Rows(rows...)
}
