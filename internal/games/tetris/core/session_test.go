package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(seed int64) *Session {
	s := NewSession(Config{Rand: rand.New(rand.NewSource(seed))})
	s.Restart()
	return s
}

// startWith begins play with a known first piece.
func startWith(s *Session, k Kind) {
	s.next = k
	s.BeginPlay()
}

func dropToGhost(s *Session) {
	for s.grid.MoveVertical(-1) != 0 {
	}
}

func fillRowExcept(g *Grid, row int, skip ...int) {
	for col := 0; col < g.Cols(); col++ {
		open := false
		for _, c := range skip {
			if c == col {
				open = true
			}
		}
		if !open {
			g.Set(row, col, ColorRed)
		}
	}
}

func TestGravityInterval(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 43}, {2, 38}, {5, 23}, {9, 3},
		{10, 6},
		{11, 5}, {12, 5}, {13, 4}, {15, 4}, {16, 3}, {18, 3}, {19, 2},
		{20, 2}, {29, 2},
		{30, 1}, {45, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GravityInterval(tt.level), "level %d", tt.level)
	}
}

func TestLineClearScore(t *testing.T) {
	assert.Equal(t, 40, LineClearScore(1, 1))
	assert.Equal(t, 100, LineClearScore(2, 1))
	assert.Equal(t, 300, LineClearScore(3, 1))
	assert.Equal(t, 1200, LineClearScore(4, 1))
	assert.Equal(t, 160, LineClearScore(1, 2))
	assert.Equal(t, 10800, LineClearScore(4, 3))
	assert.Zero(t, LineClearScore(0, 5))
	assert.Zero(t, LineClearScore(5, 5))
}

func TestPhases(t *testing.T) {
	s := NewSession(Config{Rand: rand.New(rand.NewSource(1))})
	assert.Equal(t, PhaseNotSetUp, s.Phase())
	assert.False(t, s.setUp)

	s.Tick()
	assert.Equal(t, PhaseNotSetUp, s.Phase(), "ticks before setup are ignored")

	s.Restart()
	assert.Equal(t, PhaseReady, s.Phase())
	assert.True(t, s.setUp)

	next := s.Next()
	s.BeginPlay()
	assert.Equal(t, PhaseRunning, s.Phase())
	assert.Equal(t, next, s.Board().Active().Kind())
	assert.Equal(t, GravityInterval(1), s.GravityInterval())

	s.ForceGameOver()
	assert.Equal(t, PhaseGameOver, s.Phase())
	assert.True(t, s.IsOver())
	assert.False(t, s.setUp)

	s.Restart()
	assert.Equal(t, PhaseReady, s.Phase())
	assert.Equal(t, KindNone, s.Board().Active().Kind())
}

func TestLevelSelection(t *testing.T) {
	s := newTestSession(1)
	s.LevelDown()
	assert.Equal(t, 1, s.Level())

	for range 40 {
		s.LevelUp()
	}
	assert.Equal(t, MaxSelectableLevel, s.Level())

	s.SetLevel(3)
	s.BeginPlay()
	s.LevelUp()
	s.LevelDown()
	assert.Equal(t, 3, s.Level(), "level is fixed once play starts")
	assert.Equal(t, GravityInterval(3), s.GravityInterval())
}

func TestScoreForTwoLines(t *testing.T) {
	s := newTestSession(1)
	s.BeginPlay()

	s.scoreLineClear(2)
	assert.Equal(t, 100, s.Score())
	assert.Equal(t, 2, s.Lines())
	assert.Equal(t, 1, s.Level())
}

func TestLevelAdvance(t *testing.T) {
	s := newTestSession(1)
	s.BeginPlay()

	s.scoreLineClear(4)
	s.scoreLineClear(4)
	assert.Equal(t, 1, s.Level())

	s.scoreLineClear(2)
	assert.Equal(t, 10, s.Lines())
	assert.Equal(t, 2, s.Level())
	assert.Equal(t, 38, s.GravityInterval())
}

func TestLevelAdvanceCapped(t *testing.T) {
	s := newTestSession(1)
	s.SetLevel(MaxLevel)
	s.BeginPlay()

	for range 60 {
		s.scoreLineClear(4)
	}
	assert.Equal(t, MaxLevel, s.Level())
}

func TestFixedLevel(t *testing.T) {
	s := NewSession(Config{Rand: rand.New(rand.NewSource(1)), FixedLevel: true})
	s.Restart()
	s.BeginPlay()

	s.scoreLineClear(4)
	s.scoreLineClear(4)
	s.scoreLineClear(4)
	assert.Equal(t, 1, s.Level())
	assert.Equal(t, 12, s.Lines())
}

func TestGravityDrop(t *testing.T) {
	s := newTestSession(3)
	startWith(s, KindT)
	row, _ := s.grid.ActivePosition()

	for range 42 {
		s.Tick()
	}
	r, _ := s.grid.ActivePosition()
	assert.Equal(t, row, r)

	s.Tick()
	r, _ = s.grid.ActivePosition()
	assert.Equal(t, row-1, r)
	assert.Zero(t, s.Score(), "gravity does not score")
}

func TestSoftDrop(t *testing.T) {
	s := newTestSession(3)
	startWith(s, KindT)
	row, _ := s.grid.ActivePosition()

	// 43 / 20 = 2.15, so the third tick moves the piece
	for range 2 {
		s.SoftDrop()
		s.Tick()
	}
	r, _ := s.grid.ActivePosition()
	assert.Equal(t, row, r)

	s.SoftDrop()
	s.Tick()
	r, _ = s.grid.ActivePosition()
	assert.Equal(t, row-1, r)
	assert.Equal(t, 1, s.Score())
}

func TestHardDrop(t *testing.T) {
	s := newTestSession(5)
	s.SetLevel(3)
	startWith(s, KindT)

	row, _ := s.grid.ActivePosition()
	ghost, _ := s.grid.Ghost()
	s.grid.MoveVertical(-(row - ghost - 5))
	row, _ = s.grid.ActivePosition()
	require.Equal(t, 5, row-ghost)

	next := s.Next()
	s.HardDrop()
	s.Tick()

	assert.Equal(t, 30, s.Score())
	assert.Equal(t, 4, s.grid.FilledCount(), "piece locked immediately")
	assert.Equal(t, next, s.Board().Active().Kind())
	assert.True(t, s.CanHold())
	assert.Equal(t, PhaseRunning, s.Phase())
}

func TestRotationConflictCancels(t *testing.T) {
	s := newTestSession(1)
	startWith(s, KindT)

	s.RotateLeft()
	s.RotateRight()
	s.Tick()
	assert.Equal(t, StateSpawn, s.Board().Active().State())
	assert.Zero(t, s.movesSinceSpawn)

	s.RotateRight()
	s.Tick()
	assert.Equal(t, StateRight, s.Board().Active().State())

	s.RotateLeft()
	s.Tick()
	assert.Equal(t, StateSpawn, s.Board().Active().State())
	assert.Equal(t, 2, s.movesSinceSpawn)
}

func TestMoveLeftAndRightSameTick(t *testing.T) {
	s := newTestSession(1)
	startWith(s, KindT)
	_, col := s.grid.ActivePosition()

	s.MoveLeft()
	s.MoveRight()
	s.Tick()
	_, c := s.grid.ActivePosition()
	assert.Equal(t, col, c)
	assert.Equal(t, 2, s.movesSinceSpawn)

	s.MoveLeft()
	s.Tick()
	_, c = s.grid.ActivePosition()
	assert.Equal(t, col-1, c)

	s.Tick()
	_, c = s.grid.ActivePosition()
	assert.Equal(t, col-1, c, "intents are one-shot")
}

func TestLockDelay(t *testing.T) {
	s := newTestSession(1)
	startWith(s, KindT)
	dropToGhost(s)

	for range LockFrameLimit {
		s.Tick()
	}
	assert.Zero(t, s.grid.FilledCount())
	assert.True(t, s.IsGrounded())
	assert.InDelta(t, float64(LockFrameLimit-1)/LockFrameLimit, s.LockProgress(), 1e-9)

	s.Tick()
	assert.Equal(t, 4, s.grid.FilledCount())
	assert.False(t, s.IsGrounded())
	assert.Zero(t, s.LockProgress())
}

func TestLockMoveLimit(t *testing.T) {
	s := newTestSession(1)
	startWith(s, KindT)
	dropToGhost(s)

	for i := 0; i < LockMoveLimit-1; i++ {
		if i%2 == 0 {
			s.MoveLeft()
		} else {
			s.MoveRight()
		}
		s.Tick()
	}
	assert.Zero(t, s.grid.FilledCount())

	s.MoveRight()
	s.Tick()
	assert.Equal(t, 4, s.grid.FilledCount())
}

func TestLineClearPause(t *testing.T) {
	s := newTestSession(9)
	fillRowExcept(s.grid, 0, 3, 4, 5, 6)
	startWith(s, KindI)

	s.HardDrop()
	s.Tick()
	// I falls from row 21 to row 1
	require.Equal(t, 40, s.Score())
	require.Equal(t, PhaseLineClear, s.Phase())
	assert.True(t, s.IsPausedForLineClear())
	assert.False(t, s.CanHold())
	assert.Equal(t, []int{0}, s.Board().PendingLines())
	assert.Equal(t, KindNone, s.Board().Active().Kind())

	next := s.Next()
	for range LineClearPause - 1 {
		s.MoveLeft()
		s.Hold()
		s.Tick()
	}
	assert.Equal(t, PhaseLineClear, s.Phase())
	assert.InDelta(t, float64(LineClearPause-1)/LineClearPause, s.LineClearProgress(), 1e-9)
	assert.Equal(t, 10, s.grid.FilledCount())

	s.Tick()
	assert.Equal(t, PhaseRunning, s.Phase())
	assert.Equal(t, 80, s.Score())
	assert.Equal(t, 1, s.Lines())
	assert.Zero(t, s.grid.FilledCount())
	assert.Zero(t, s.Board().NumPendingLines())
	assert.Equal(t, next, s.Board().Active().Kind())
	assert.Equal(t, KindNone, s.Held())
	assert.Equal(t, intents{}, s.input)
}

func TestHold(t *testing.T) {
	s := newTestSession(2)
	startWith(s, KindT)
	require.Equal(t, KindNone, s.Held())

	s.Hold()
	assert.Equal(t, KindT, s.Held())
	assert.False(t, s.CanHold())
	swapped := s.Board().Active().Kind()
	assert.NotEqual(t, KindNone, swapped)

	s.Hold()
	assert.Equal(t, KindT, s.Held(), "second hold before a lock is ignored")
	assert.Equal(t, swapped, s.Board().Active().Kind())

	s.HardDrop()
	s.Tick()
	require.True(t, s.CanHold())

	falling := s.Board().Active().Kind()
	s.Hold()
	assert.Equal(t, KindT, s.Board().Active().Kind())
	assert.Equal(t, falling, s.Held())
}

func TestHoldIgnoredBeforePlay(t *testing.T) {
	s := newTestSession(2)
	s.Hold()
	assert.Equal(t, KindNone, s.Held())
	assert.Equal(t, KindNone, s.Board().Active().Kind())
}

func TestSpawnBlockedEndsGame(t *testing.T) {
	s := newTestSession(4)
	for col := 3; col <= 6; col++ {
		s.grid.Set(20, col, ColorBlue)
	}
	s.BeginPlay()

	assert.True(t, s.IsOver())
	assert.Equal(t, PhaseGameOver, s.Phase())

	score := s.Score()
	s.HardDrop()
	s.Tick()
	assert.Equal(t, score, s.Score(), "ticks after game over are ignored")
}

func TestTopOutEndsGame(t *testing.T) {
	s := newTestSession(4)
	for col := 3; col <= 6; col++ {
		s.grid.Set(19, col, ColorBlue)
	}
	startWith(s, KindI)
	require.False(t, s.IsOver())

	s.HardDrop()
	s.Tick()
	assert.True(t, s.IsOver())
	assert.False(t, s.setUp)
}

func TestRestartClearsState(t *testing.T) {
	s := newTestSession(6)
	s.SetLevel(4)
	startWith(s, KindO)
	s.HardDrop()
	s.Tick()
	s.Hold()
	require.NotZero(t, s.Score())

	s.Restart()
	assert.Zero(t, s.Score())
	assert.Zero(t, s.Lines())
	assert.Equal(t, 4, s.Level(), "selected level survives a restart")
	assert.Equal(t, KindNone, s.Held())
	assert.Zero(t, s.grid.FilledCount())
	assert.True(t, s.CanHold())
	assert.Equal(t, PhaseReady, s.Phase())
}

func TestSameSeedSamePieces(t *testing.T) {
	a := newTestSession(77)
	b := newTestSession(77)
	a.BeginPlay()
	b.BeginPlay()

	for range 20 {
		require.Equal(t, a.Board().Active().Kind(), b.Board().Active().Kind())
		require.Equal(t, a.Next(), b.Next())
		a.HardDrop()
		b.HardDrop()
		a.Tick()
		b.Tick()
	}
}

func TestRandomKindRange(t *testing.T) {
	s := newTestSession(8)
	seen := map[Kind]bool{}
	for range 500 {
		k := s.randomKind()
		require.GreaterOrEqual(t, k, KindI)
		require.LessOrEqual(t, k, KindT)
		seen[k] = true
	}
	assert.Len(t, seen, NumKinds)
}
