package core

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Session timing constants, in ticks.
const (
	LineClearPause     = 30
	LockFrameLimit     = 30
	LockMoveLimit      = 15
	SoftDropMultiplier = 20
)

// Phase is the coarse state of a session.
type Phase uint8

const (
	PhaseNotSetUp Phase = iota
	PhaseReady
	PhaseRunning
	PhaseLineClear
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotSetUp:
		return "not_set_up"
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhaseLineClear:
		return "line_clear"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Config configures a new Session. Zero values select the defaults.
type Config struct {
	Rows   int
	Cols   int
	Hidden int

	// Rand is the piece generator. When nil a time-seeded source is used.
	Rand *rand.Rand

	// Logger receives debug events. When nil events are discarded.
	Logger *log.Logger

	// FixedLevel disables automatic level advancement.
	FixedLevel bool
}

// Board is the read-only view of the playfield exposed to renderers.
type Board interface {
	Rows() int
	Cols() int
	HiddenRows() int
	VisibleRows() int
	Cell(row, col int) Color
	Active() Piece
	ActivePosition() (row, col int)
	Ghost() (row, col int)
	PendingLines() []int
	NumPendingLines() int
}

// intents are one-shot player commands latched between ticks.
type intents struct {
	moveLeft    bool
	moveRight   bool
	rotateLeft  bool
	rotateRight bool
	softDrop    bool
	hardDrop    bool
}

// Session runs the game rules over a Grid, one fixed tick at a time.
// It is not safe for concurrent use; a single driver owns it.
type Session struct {
	grid   *Grid
	rng    *rand.Rand
	logger *log.Logger
	fixed  bool

	score int
	level int
	lines int

	next Kind
	held Kind

	framesPerRow     int
	moveDownCounter  int
	lockCounter      int
	lineClearCounter int
	movesSinceSpawn  int

	input intents

	grounded           bool
	pausedForLineClear bool
	canSwapHeld        bool
	over               bool
	setUp              bool
	playing            bool
}

// NewSession creates a session in PhaseNotSetUp at level 1.
func NewSession(cfg Config) *Session {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		grid:   NewGrid(cfg.Rows, cfg.Cols, cfg.Hidden),
		rng:    rng,
		logger: logger,
		fixed:  cfg.FixedLevel,
		level:  MinLevel,
		held:   KindNone,
	}
	s.next = s.randomKind()
	return s
}

// Restart clears the playfield and all counters. The current level is kept,
// including any level reached during play.
func (s *Session) Restart() {
	s.score = 0
	s.lines = 0

	s.next = s.randomKind()
	s.held = KindNone

	s.movesSinceSpawn = 0
	s.lockCounter = 0
	s.moveDownCounter = 0
	s.lineClearCounter = 0
	s.input = intents{}

	s.canSwapHeld = true
	s.over = false
	s.grounded = false
	s.pausedForLineClear = false
	s.playing = false

	s.grid.Clear()
	s.setUp = true
}

// BeginPlay starts a session that has been set up by Restart.
func (s *Session) BeginPlay() {
	if !s.setUp || s.playing || s.over {
		return
	}
	s.playing = true
	s.input = intents{}
	s.framesPerRow = GravityInterval(s.level)
	s.logger.Debug("begin play", "level", s.level, "frames_per_row", s.framesPerRow)
	s.spawn()
}

// Tick advances the simulation by one fixed step.
func (s *Session) Tick() {
	if !s.playing || s.over {
		return
	}

	if s.pausedForLineClear {
		s.input = intents{}
		s.lineClearCounter++
		if s.lineClearCounter < LineClearPause {
			return
		}
		s.scoreLineClear(s.grid.NumPendingLines())
		s.grid.ClearLines()
		s.pausedForLineClear = false
		s.spawn()
		return
	}

	s.moveDownCounter++
	if s.grounded {
		s.lockCounter++
	} else {
		s.lockCounter = 0
	}

	if s.input.moveLeft && s.grid.MoveHorizontal(-1) != 0 {
		s.movesSinceSpawn++
	}
	if s.input.moveRight && s.grid.MoveHorizontal(1) != 0 {
		s.movesSinceSpawn++
	}

	switch {
	case s.input.rotateLeft && s.input.rotateRight:
		// conflicting rotations cancel out
	case s.input.rotateRight:
		if s.grid.Rotate(RotateRight) {
			s.movesSinceSpawn++
		}
	case s.input.rotateLeft:
		if s.grid.Rotate(RotateLeft) {
			s.movesSinceSpawn++
		}
	}

	if !s.input.hardDrop {
		multiplier := 1.0
		if s.input.softDrop {
			multiplier = SoftDropMultiplier
		}
		if float64(s.moveDownCounter) >= float64(s.framesPerRow)/multiplier {
			if s.grid.MoveVertical(-1) != 0 && s.input.softDrop {
				s.score++
			}
			s.moveDownCounter = 0
		}
		s.checkLock()
	} else if s.grid.Active().Kind() != KindNone {
		row, _ := s.grid.ActivePosition()
		ghost, _ := s.grid.Ghost()
		rows := row - ghost
		s.grid.MoveVertical(-rows)
		s.score += HardDropScore(rows, s.level)
		s.lock()
	}

	s.input = intents{}
}

func (s *Session) checkLock() {
	if !s.grid.IsGrounded() {
		s.grounded = false
		return
	}
	s.grounded = true
	if s.lockCounter >= LockFrameLimit || s.movesSinceSpawn >= LockMoveLimit {
		s.lock()
	}
}

func (s *Session) lock() {
	s.lockCounter = 0
	s.grounded = false
	s.canSwapHeld = true

	if err := s.grid.Lock(); err != nil {
		s.logger.Debug("lock failed", "err", err)
		s.GameOver()
		return
	}

	if n := s.grid.NumPendingLines(); n > 0 {
		s.logger.Debug("line clear", "rows", s.grid.PendingLines())
		s.pausedForLineClear = true
		s.lineClearCounter = 0
		return
	}
	s.spawn()
}

func (s *Session) spawn() {
	if err := s.grid.Spawn(s.next); err != nil {
		s.logger.Debug("spawn failed", "kind", s.next, "err", err)
		s.GameOver()
		return
	}
	s.next = s.randomKind()
	s.movesSinceSpawn = 0
}

func (s *Session) scoreLineClear(n int) {
	s.lines += n
	s.score += LineClearScore(n, s.level)
	if !s.fixed && s.level < MaxLevel && s.lines >= LinesPerLevel*s.level {
		s.level++
		s.framesPerRow = GravityInterval(s.level)
		s.logger.Debug("level up", "level", s.level, "frames_per_row", s.framesPerRow)
	}
}

func (s *Session) randomKind() Kind {
	return Kind(s.rng.Intn(NumKinds)) + KindI
}

// Hold swaps the falling piece with the held one. Only one swap is allowed
// between locks, and none while a line clear is in progress.
func (s *Session) Hold() {
	if !s.canSwapHeld || s.pausedForLineClear || !s.playing || s.over {
		return
	}
	falling := s.grid.Active().Kind()
	if falling == KindNone {
		return
	}

	swapIn := s.held
	if swapIn == KindNone {
		swapIn = s.randomKind()
	}
	if err := s.grid.Spawn(swapIn); err != nil {
		s.logger.Debug("hold spawn failed", "kind", swapIn, "err", err)
		s.GameOver()
		return
	}
	s.held = falling
	s.canSwapHeld = false
	s.movesSinceSpawn = 0
	s.lockCounter = 0
	s.grounded = false
}

// GameOver ends the session. Restart is required to play again.
func (s *Session) GameOver() {
	if !s.over {
		s.logger.Debug("game over", "score", s.score, "level", s.level, "lines", s.lines)
	}
	s.over = true
	s.setUp = false
	s.playing = false
	s.pausedForLineClear = false
}

// ForceGameOver ends the session on the collaborator's request.
func (s *Session) ForceGameOver() { s.GameOver() }

// MoveLeft requests a one-column shift left on the next tick.
func (s *Session) MoveLeft() { s.input.moveLeft = true }

// MoveRight requests a one-column shift right on the next tick.
func (s *Session) MoveRight() { s.input.moveRight = true }

// RotateLeft requests a counter-clockwise rotation on the next tick.
func (s *Session) RotateLeft() { s.input.rotateLeft = true }

// RotateRight requests a clockwise rotation on the next tick.
func (s *Session) RotateRight() { s.input.rotateRight = true }

// SoftDrop speeds up gravity for the next tick.
func (s *Session) SoftDrop() { s.input.softDrop = true }

// HardDrop drops and locks the falling piece on the next tick.
func (s *Session) HardDrop() { s.input.hardDrop = true }

// LevelUp raises the starting level. It has no effect once play has begun.
func (s *Session) LevelUp() {
	if s.playing {
		return
	}
	if s.level < MaxSelectableLevel {
		s.level++
	}
}

// LevelDown lowers the starting level. It has no effect once play has begun.
func (s *Session) LevelDown() {
	if s.playing {
		return
	}
	if s.level > MinLevel {
		s.level--
	}
}

// SetLevel selects the starting level, clamped to the selectable range.
func (s *Session) SetLevel(level int) {
	if s.playing {
		return
	}
	s.level = min(max(level, MinLevel), MaxSelectableLevel)
}

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Level returns the current level.
func (s *Session) Level() int { return s.level }

// Lines returns the total number of cleared rows.
func (s *Session) Lines() int { return s.lines }

// Next returns the kind that will spawn next.
func (s *Session) Next() Kind { return s.next }

// Held returns the held kind, or KindNone.
func (s *Session) Held() Kind { return s.held }

// CanHold reports whether a hold swap is currently permitted.
func (s *Session) CanHold() bool { return s.canSwapHeld && !s.pausedForLineClear }

// Board returns a read-only view of the playfield.
func (s *Session) Board() Board { return s.grid }

// GravityInterval returns the ticks per row drop in effect.
func (s *Session) GravityInterval() int { return s.framesPerRow }

// IsGrounded reports whether the falling piece was resting on the stack at the last lock check.
func (s *Session) IsGrounded() bool { return s.grounded }

// LockProgress returns the lock timer as a fraction of its limit.
func (s *Session) LockProgress() float64 {
	return float64(s.lockCounter) / LockFrameLimit
}

// LineClearProgress returns how far the line clear pause has run, from 0 to 1.
func (s *Session) LineClearProgress() float64 {
	return float64(s.lineClearCounter) / LineClearPause
}

// IsPausedForLineClear reports whether the session is waiting out a line clear.
func (s *Session) IsPausedForLineClear() bool { return s.pausedForLineClear }

// IsOver reports whether the game has ended.
func (s *Session) IsOver() bool { return s.over }

// Phase returns the coarse state of the session.
func (s *Session) Phase() Phase {
	switch {
	case s.over:
		return PhaseGameOver
	case s.pausedForLineClear:
		return PhaseLineClear
	case s.playing:
		return PhaseRunning
	case s.setUp:
		return PhaseReady
	default:
		return PhaseNotSetUp
	}
}
