package core_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/games/tetris/core"
)

func newGrid() *core.Grid {
	return core.NewGrid(core.DefaultRows, core.DefaultCols, core.DefaultHidden)
}

func fillRow(g *core.Grid, row int, c core.Color, skip ...int) {
	for col := 0; col < g.Cols(); col++ {
		skipped := false
		for _, s := range skip {
			if s == col {
				skipped = true
			}
		}
		if !skipped {
			g.Set(row, col, c)
		}
	}
}

// positionOpen is a direct restatement of the collision rule used to cross-check the grid.
func positionOpen(g *core.Grid, row, col int, p core.Piece) bool {
	if p.Kind() == core.KindNone {
		return false
	}
	for _, c := range p.Cells() {
		r, cc := row-c.Row, col+c.Col
		if r < 0 || r >= g.Rows() || cc < 0 || cc >= g.Cols() {
			return false
		}
		if g.Cell(r, cc) != core.ColorEmpty {
			return false
		}
	}
	return true
}

func TestNewGridDefaults(t *testing.T) {
	g := core.NewGrid(0, 0, -1)
	assert.Equal(t, 22, g.Rows())
	assert.Equal(t, 10, g.Cols())
	assert.Equal(t, 2, g.HiddenRows())
	assert.Equal(t, 20, g.VisibleRows())
	assert.Equal(t, core.KindNone, g.Active().Kind())
	assert.Zero(t, g.FilledCount())
}

func TestIsCellOpen(t *testing.T) {
	g := newGrid()
	g.Set(3, 4, core.ColorRed)

	assert.True(t, g.IsCellOpen(0, 0))
	assert.True(t, g.IsCellOpen(21, 9))
	assert.False(t, g.IsCellOpen(3, 4))
	assert.False(t, g.IsCellOpen(-1, 0))
	assert.False(t, g.IsCellOpen(22, 0))
	assert.False(t, g.IsCellOpen(0, -1))
	assert.False(t, g.IsCellOpen(0, 10))
}

func TestIsPositionOpenBounds(t *testing.T) {
	g := newGrid()
	tp := core.NewPiece(core.KindT)

	assert.True(t, g.IsPositionOpen(1, 3, tp))
	assert.False(t, g.IsPositionOpen(0, 3, tp), "bottom row of template below the floor")
	assert.True(t, g.IsPositionOpen(21, 3, tp))
	assert.False(t, g.IsPositionOpen(22, 3, tp), "top of template above the grid")
	assert.True(t, g.IsPositionOpen(5, 0, tp))
	assert.False(t, g.IsPositionOpen(5, -1, tp))
	assert.True(t, g.IsPositionOpen(5, 7, tp))
	assert.False(t, g.IsPositionOpen(5, 8, tp))

	g.Set(5, 4, core.ColorRed)
	assert.False(t, g.IsPositionOpen(6, 3, tp))

	assert.False(t, g.IsPositionOpen(10, 3, core.Piece{}), "none piece never fits")
}

func TestIsPositionOpenMatchesCellRule(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := newGrid()
	for i := 0; i < 60; i++ {
		g.Set(rng.Intn(g.Rows()), rng.Intn(g.Cols()), core.ColorGreen)
	}

	for _, k := range allKinds {
		p := core.NewPiece(k)
		for range 4 {
			for row := -2; row < g.Rows()+2; row++ {
				for col := -4; col < g.Cols()+2; col++ {
					assert.Equal(t, positionOpen(g, row, col, p), g.IsPositionOpen(row, col, p),
						"kind %v state %v at (%d,%d)", k, p.State(), row, col)
				}
			}
			p = p.Rotated(core.RotateRight)
		}
	}
}

func TestSpawnPositions(t *testing.T) {
	tests := []struct {
		kind     core.Kind
		row, col int
	}{
		{core.KindI, 21, 3},
		{core.KindT, 19, 3},
		{core.KindJ, 19, 3},
		{core.KindO, 19, 4},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			g := newGrid()
			require.NoError(t, g.Spawn(tt.kind))
			row, col := g.ActivePosition()
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.col, col)
			assert.Equal(t, tt.kind, g.Active().Kind())
		})
	}
}

func TestSpawnShortDrop(t *testing.T) {
	g := newGrid()
	g.Set(18, 4, core.ColorRed)

	require.NoError(t, g.Spawn(core.KindT))
	row, _ := g.ActivePosition()
	assert.Equal(t, 20, row, "T can only drop one row before hitting (18,4)")
}

func TestSpawnBlocked(t *testing.T) {
	g := newGrid()
	g.Set(20, 4, core.ColorRed)

	err := g.Spawn(core.KindT)
	assert.ErrorIs(t, err, core.ErrSpawnBlocked)
	assert.Equal(t, core.KindNone, g.Active().Kind())
}

func TestGhostIsLowestLegalRow(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 20; trial++ {
		g := newGrid()
		for i := 0; i < 40; i++ {
			g.Set(rng.Intn(12), rng.Intn(g.Cols()), core.ColorBlue)
		}
		require.NoError(t, g.Spawn(allKinds[trial%len(allKinds)]))
		g.MoveHorizontal(rng.Intn(5) - 2)

		ghostRow, ghostCol := g.Ghost()
		_, col := g.ActivePosition()
		assert.Equal(t, col, ghostCol)

		for g.MoveVertical(-1) != 0 {
		}
		row, _ := g.ActivePosition()
		assert.Equal(t, ghostRow, row)
		assert.False(t, g.IsPositionOpen(ghostRow-1, ghostCol, g.Active()))
		assert.True(t, g.IsGrounded())
	}
}

func TestMoveHorizontalStopsAtWall(t *testing.T) {
	g := newGrid()
	require.NoError(t, g.Spawn(core.KindT))

	for i := 0; i < 3; i++ {
		assert.Equal(t, -1, g.MoveHorizontal(-1))
	}
	assert.Equal(t, 0, g.MoveHorizontal(-1))
	_, col := g.ActivePosition()
	assert.Equal(t, 0, col)

	assert.Equal(t, 0, g.MoveHorizontal(0))
	assert.Equal(t, 1, g.MoveHorizontal(1))
}

func TestMoveVerticalUpdatesGhost(t *testing.T) {
	g := newGrid()
	require.NoError(t, g.Spawn(core.KindT))
	g.Set(5, 4, core.ColorRed)

	// the ghost only changes once the piece moves
	ghostBefore, _ := g.Ghost()
	assert.Equal(t, 1, ghostBefore)

	assert.Equal(t, -1, g.MoveVertical(-1))
	ghostAfter, _ := g.Ghost()
	assert.Equal(t, 7, ghostAfter)
}

func TestRotateOpenField(t *testing.T) {
	g := newGrid()
	require.NoError(t, g.Spawn(core.KindT))
	row, col := g.ActivePosition()

	require.True(t, g.Rotate(core.RotateRight))
	assert.Equal(t, core.StateRight, g.Active().State())
	r2, c2 := g.ActivePosition()
	assert.Equal(t, row, r2)
	assert.Equal(t, col, c2)

	require.True(t, g.Rotate(core.RotateLeft))
	assert.Equal(t, core.NewPiece(core.KindT), g.Active())
}

func TestRotateWallKick(t *testing.T) {
	g := newGrid()
	require.NoError(t, g.Spawn(core.KindT))
	for g.MoveHorizontal(-1) != 0 {
	}
	require.True(t, g.Rotate(core.RotateRight))
	// the right-facing T has an empty left column, so it can hug the wall at col -1
	require.Equal(t, -1, g.MoveHorizontal(-1))
	_, col := g.ActivePosition()
	require.Equal(t, -1, col)

	require.True(t, g.Rotate(core.RotateRight))
	assert.Equal(t, core.StateTwo, g.Active().State())
	row, col := g.ActivePosition()
	assert.Equal(t, 19, row)
	assert.Equal(t, 1, col, "kicked by (0,+2)")
}

func TestRotateRejected(t *testing.T) {
	g := newGrid()
	for row := 0; row < 20; row++ {
		fillRow(g, row, core.ColorGreen)
	}
	require.NoError(t, g.Spawn(core.KindI))
	before := g.Active()
	row, col := g.ActivePosition()

	assert.False(t, g.Rotate(core.RotateRight))
	assert.Equal(t, before, g.Active())
	r2, c2 := g.ActivePosition()
	assert.Equal(t, row, r2)
	assert.Equal(t, col, c2)
}

func TestRotateNoActivePiece(t *testing.T) {
	g := newGrid()
	assert.False(t, g.Rotate(core.RotateRight))
}

func TestLockWritesCells(t *testing.T) {
	g := newGrid()
	require.NoError(t, g.Spawn(core.KindT))
	for g.MoveVertical(-1) != 0 {
	}

	require.NoError(t, g.Lock())
	assert.Equal(t, core.KindNone, g.Active().Kind())
	assert.Equal(t, 4, g.FilledCount())
	assert.Equal(t, core.ColorPurple, g.Cell(1, 4))
	assert.Equal(t, core.ColorPurple, g.Cell(0, 3))
	assert.Equal(t, core.ColorPurple, g.Cell(0, 4))
	assert.Equal(t, core.ColorPurple, g.Cell(0, 5))
	assert.Zero(t, g.NumPendingLines())
}

func TestLockTopOut(t *testing.T) {
	g := newGrid()
	require.NoError(t, g.Spawn(core.KindI))
	// I spawns with its blocks in row 20, inside the hidden area
	assert.ErrorIs(t, g.Lock(), core.ErrTopOut)
	assert.Equal(t, core.KindNone, g.Active().Kind())
	assert.Equal(t, core.ColorCyan, g.Cell(20, 3))
}

func TestLockPartlyVisibleIsNotTopOut(t *testing.T) {
	g := newGrid()
	require.NoError(t, g.Spawn(core.KindT))
	// T at row 19 spans rows 19 and 18
	assert.NoError(t, g.Lock())
}

func TestLockWithoutPiece(t *testing.T) {
	g := newGrid()
	assert.ErrorIs(t, g.Lock(), core.ErrNoActivePiece)
}

func TestLockMarksLineClear(t *testing.T) {
	g := newGrid()
	fillRow(g, 0, core.ColorRed, 3, 4, 5, 6)
	require.NoError(t, g.Spawn(core.KindI))
	for g.MoveVertical(-1) != 0 {
	}

	require.NoError(t, g.Lock())
	assert.Equal(t, []int{0}, g.PendingLines())
	assert.Equal(t, 10, g.FilledCount(), "live grid untouched until ClearLines")

	g.ClearLines()
	assert.Zero(t, g.FilledCount())
	assert.Zero(t, g.NumPendingLines())
}

func TestLineClearCompaction(t *testing.T) {
	g := newGrid()
	fillRow(g, 0, core.ColorRed)
	g.Set(1, 0, core.ColorBlue)
	g.Set(1, 5, core.ColorBlue)
	fillRow(g, 2, core.ColorRed)
	g.Set(3, 9, core.ColorGreen)

	before := g.FilledCount()
	g.UpdateLineClears()
	assert.Equal(t, []int{0, 2}, g.PendingLines())
	assert.Equal(t, before, g.FilledCount())

	g.ClearLines()
	assert.Equal(t, before-2*g.Cols(), g.FilledCount())
	assert.Equal(t, core.ColorBlue, g.Cell(0, 0))
	assert.Equal(t, core.ColorBlue, g.Cell(0, 5))
	assert.Equal(t, core.ColorEmpty, g.Cell(0, 1))
	assert.Equal(t, core.ColorGreen, g.Cell(1, 9))
	for col := 0; col < g.Cols(); col++ {
		assert.Equal(t, core.ColorEmpty, g.Cell(2, col))
		assert.Equal(t, core.ColorEmpty, g.Cell(3, col))
	}
}

func TestClearLinesNoop(t *testing.T) {
	g := newGrid()
	g.Set(0, 0, core.ColorRed)
	g.UpdateLineClears()
	assert.Empty(t, g.PendingLines())

	g.ClearLines()
	assert.Equal(t, core.ColorRed, g.Cell(0, 0))
	assert.Equal(t, 1, g.FilledCount())
}

func TestClearResetsGrid(t *testing.T) {
	g := newGrid()
	fillRow(g, 0, core.ColorRed)
	g.UpdateLineClears()
	require.NoError(t, g.Spawn(core.KindO))

	g.Clear()
	assert.Zero(t, g.FilledCount())
	assert.Zero(t, g.NumPendingLines())
	assert.Equal(t, core.KindNone, g.Active().Kind())
}
