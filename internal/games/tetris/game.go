// Package tetris implements the falling-block puzzle for the blockfall platform.
// The rules live in the core subpackage; this package adds the start screen,
// pause, restart and terminal rendering.
package tetris

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	platformcore "github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/tetris/core"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "tetris"

// Package-level settings applied on the next Reset.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset overrides the preset from the config file.
// The empty preset keeps the file's setting.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetLogger sets the logger handed to new sessions.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// Game implements registry.Game on top of a core.Session.
type Game struct {
	session *core.Session
	cfg     config.TetrisConfig
	logger  *log.Logger

	screenW int
	screenH int

	tickCount uint64
	paused    bool
}

// New creates a new Tetris game. Reset must be called before use.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset loads the config and builds a fresh session on the start screen.
func (g *Game) Reset(runtime platformcore.RuntimeConfig) {
	g.logger = logger.With("game", ID)

	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		g.logger.Warn("falling back to default config", "err", err)
		cfg = config.DefaultTetrisConfig()
	}
	config.ApplyTetrisPreset(&cfg, difficultyPreset)
	g.cfg = cfg

	g.session = core.NewSession(core.Config{
		Rows:       cfg.Playfield.Rows,
		Cols:       cfg.Playfield.Cols,
		Hidden:     cfg.Playfield.Hidden,
		Rand:       rand.New(rand.NewSource(runtime.Seed)),
		Logger:     g.logger,
		FixedLevel: config.IsFixedPreset(cfg.Difficulty.Preset),
	})
	g.session.SetLevel(cfg.Gameplay.StartLevel)
	g.session.Restart()

	g.screenW = runtime.ScreenW
	g.screenH = runtime.ScreenH
	g.tickCount = 0
	g.paused = false

	g.logger.Debug("reset",
		"seed", runtime.Seed,
		"level", g.session.Level(),
		"preset", cfg.Difficulty.Preset,
	)
}

// Resize updates the screen size used for layout without touching the session.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	s := g.session

	switch s.Phase() {
	case core.PhaseGameOver:
		if in.Has(platformcore.ActionRestart) || in.Has(platformcore.ActionConfirm) {
			g.restart()
		}
		return platformcore.StepResult{State: g.State()}

	case core.PhaseReady:
		g.selectLevel(in)
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionRestart) {
		g.restart()
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	g.apply(in)
	s.Tick()
	g.tickCount++

	return platformcore.StepResult{State: g.State()}
}

// selectLevel handles the start screen.
func (g *Game) selectLevel(in platformcore.InputFrame) {
	s := g.session
	switch {
	case in.Has(platformcore.ActionConfirm), in.Has(platformcore.ActionHardDrop):
		s.BeginPlay()
	case in.Has(platformcore.ActionRight), in.Has(platformcore.ActionRotateCW):
		s.LevelUp()
	case in.Has(platformcore.ActionLeft), in.Has(platformcore.ActionSoftDrop):
		s.LevelDown()
	}
}

// apply forwards gameplay actions to the session for the coming tick.
func (g *Game) apply(in platformcore.InputFrame) {
	s := g.session
	if in.Has(platformcore.ActionLeft) {
		s.MoveLeft()
	}
	if in.Has(platformcore.ActionRight) {
		s.MoveRight()
	}
	if in.Has(platformcore.ActionRotateCW) {
		s.RotateRight()
	}
	if in.Has(platformcore.ActionRotateCCW) {
		s.RotateLeft()
	}
	if in.Has(platformcore.ActionSoftDrop) {
		s.SoftDrop()
	}
	if in.Has(platformcore.ActionHardDrop) {
		s.HardDrop()
	}
	if in.Has(platformcore.ActionHold) {
		s.Hold()
	}
}

// restart ends a running game before returning to the start screen.
func (g *Game) restart() {
	g.logger.Debug("restart", "score", g.session.Score(), "level", g.session.Level())
	if !g.session.IsOver() {
		g.session.ForceGameOver()
	}
	g.session.Restart()
	g.paused = false
	g.tickCount = 0
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.session == nil {
		return platformcore.GameState{}
	}
	phase := g.session.Phase()
	return platformcore.GameState{
		Score:    g.session.Score(),
		Level:    g.session.Level(),
		Lines:    g.session.Lines(),
		Started:  phase == core.PhaseRunning || phase == core.PhaseLineClear,
		GameOver: phase == core.PhaseGameOver,
		Paused:   g.paused,
	}
}

// Session exposes the underlying rules engine.
func (g *Game) Session() *core.Session {
	return g.session
}
