package core

import "errors"

// Default playfield dimensions: 20 visible rows plus 2 hidden rows above them.
const (
	DefaultRows   = 22
	DefaultCols   = 10
	DefaultHidden = 2
)

// spawnDrop is how many extra rows a non-I piece may fall right after spawning.
const spawnDrop = 2

var (
	// ErrSpawnBlocked is returned when a new piece cannot be placed at the spawn position.
	ErrSpawnBlocked = errors.New("core: spawn position blocked")
	// ErrTopOut is returned when a locked piece lies entirely inside the hidden rows.
	ErrTopOut = errors.New("core: piece locked above the playfield")
	// ErrNoActivePiece is returned when locking with no falling piece.
	ErrNoActivePiece = errors.New("core: no active piece")
)

// Grid is the playfield: a matrix of cell colors plus the falling piece.
//
// Row 0 is the bottom row and rows grow upward, so a falling piece moves to
// lower row indices. The active position is the grid coordinate of the piece
// template's top-left corner; template row r occupies grid row activeRow-r.
type Grid struct {
	rows   int
	cols   int
	hidden int
	cells  []Color

	active    Piece
	activeRow int
	activeCol int
	ghostRow  int
	ghostCol  int

	pending   []int
	compacted []Color
}

// NewGrid creates an empty grid. rows includes the hidden rows.
// Non-positive arguments fall back to the defaults.
func NewGrid(rows, cols, hidden int) *Grid {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	if hidden <= 0 || hidden >= rows {
		hidden = DefaultHidden
	}
	g := &Grid{
		rows:   rows,
		cols:   cols,
		hidden: hidden,
		cells:  make([]Color, rows*cols),
	}
	g.activeRow = g.spawnRow()
	g.ghostRow = g.activeRow
	return g
}

// Rows returns the total number of rows including hidden ones.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// HiddenRows returns the number of rows above the visible field.
func (g *Grid) HiddenRows() int { return g.hidden }

// VisibleRows returns the number of visible rows, which is also the top-out threshold.
func (g *Grid) VisibleRows() int { return g.rows - g.hidden }

func (g *Grid) spawnRow() int { return g.rows - 1 }

func (g *Grid) index(row, col int) int { return row*g.cols + col }

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Cell returns the color at (row, col). Out-of-bounds cells read as empty.
func (g *Grid) Cell(row, col int) Color {
	if !g.inBounds(row, col) {
		return ColorEmpty
	}
	return g.cells[g.index(row, col)]
}

// Set writes a color into a cell. Out-of-bounds writes are ignored.
func (g *Grid) Set(row, col int, c Color) {
	if !g.inBounds(row, col) {
		return
	}
	g.cells[g.index(row, col)] = c
}

// Clear empties every cell, drops the active piece and any pending clears.
func (g *Grid) Clear() {
	clear(g.cells)
	g.active = Piece{}
	g.activeRow = g.spawnRow()
	g.activeCol = 0
	g.ghostRow = g.activeRow
	g.ghostCol = 0
	g.pending = g.pending[:0]
	g.compacted = nil
}

// Active returns the falling piece (KindNone if there is none).
func (g *Grid) Active() Piece { return g.active }

// ActivePosition returns the row and column of the falling piece.
func (g *Grid) ActivePosition() (row, col int) { return g.activeRow, g.activeCol }

// Ghost returns the resting position of the falling piece if dropped straight down.
func (g *Grid) Ghost() (row, col int) { return g.ghostRow, g.ghostCol }

// IsCellOpen reports whether (row, col) is inside the grid and empty.
func (g *Grid) IsCellOpen(row, col int) bool {
	return g.inBounds(row, col) && g.cells[g.index(row, col)] == ColorEmpty
}

// IsPositionOpen reports whether piece p fits with its template corner at (row, col).
// A KindNone piece never fits.
func (g *Grid) IsPositionOpen(row, col int, p Piece) bool {
	if p.Kind() == KindNone {
		return false
	}
	for r := 0; r < p.size; r++ {
		for c := 0; c < p.size; c++ {
			if p.cells[r][c] != ColorEmpty && !g.IsCellOpen(row-r, col+c) {
				return false
			}
		}
	}
	return true
}

// Spawn places a new piece of kind k at the spawn position.
func (g *Grid) Spawn(k Kind) error {
	p := NewPiece(k)
	row := g.spawnRow()
	col := (g.cols - p.Size()) / 2

	if !g.IsPositionOpen(row, col, p) {
		g.active = Piece{}
		return ErrSpawnBlocked
	}
	g.active = p
	g.activeRow = row
	g.activeCol = col

	if k != KindI {
		i := 0
		for ; i < spawnDrop; i++ {
			if !g.IsPositionOpen(row-(i+1), col, p) {
				break
			}
		}
		g.activeRow -= i
	}
	g.updateGhost()
	return nil
}

// MoveHorizontal shifts the falling piece by delta columns (positive is right).
// It returns the applied delta, or 0 if the move was blocked.
func (g *Grid) MoveHorizontal(delta int) int {
	if delta == 0 || !g.IsPositionOpen(g.activeRow, g.activeCol+delta, g.active) {
		return 0
	}
	g.activeCol += delta
	g.updateGhost()
	return delta
}

// MoveVertical shifts the falling piece by delta rows (negative is down).
// It returns the applied delta, or 0 if the move was blocked.
func (g *Grid) MoveVertical(delta int) int {
	if delta == 0 || !g.IsPositionOpen(g.activeRow+delta, g.activeCol, g.active) {
		return 0
	}
	g.activeRow += delta
	g.updateGhost()
	return delta
}

// Rotate turns the falling piece, trying each kick offset in order.
// Shape, rotation state and position change together or not at all.
func (g *Grid) Rotate(dir Rotation) bool {
	if g.active.Kind() == KindNone {
		return false
	}
	rotated := g.active.Rotated(dir)
	for _, k := range Kicks(g.active.Kind(), g.active.State(), rotated.State()) {
		row, col := g.activeRow+k.Row, g.activeCol+k.Col
		if g.IsPositionOpen(row, col, rotated) {
			g.active = rotated
			g.activeRow = row
			g.activeCol = col
			g.updateGhost()
			return true
		}
	}
	return false
}

// IsGrounded reports whether the falling piece cannot move down any further.
func (g *Grid) IsGrounded() bool {
	return !g.IsPositionOpen(g.activeRow-1, g.activeCol, g.active)
}

func (g *Grid) updateGhost() {
	g.ghostRow, g.ghostCol = g.activeRow, g.activeCol
	for g.IsPositionOpen(g.ghostRow-1, g.ghostCol, g.active) {
		g.ghostRow--
	}
}

// Lock writes the falling piece into the grid and scans for full rows.
// It returns ErrTopOut when none of the written cells is below the hidden rows.
// The active piece is cleared either way.
func (g *Grid) Lock() error {
	if g.active.Kind() == KindNone {
		return ErrNoActivePiece
	}

	threshold := g.VisibleRows()
	topOut := true
	color := g.active.Color()
	for _, c := range g.active.Cells() {
		row, col := g.activeRow-c.Row, g.activeCol+c.Col
		g.Set(row, col, color)
		if row < threshold {
			topOut = false
		}
	}

	g.active = Piece{}
	g.UpdateLineClears()

	if topOut {
		return ErrTopOut
	}
	return nil
}

// UpdateLineClears records which rows are full and precomputes the grid as it
// will look once they are removed. Live cells are not modified.
func (g *Grid) UpdateLineClears() {
	g.pending = g.pending[:0]
	if g.compacted == nil || len(g.compacted) != len(g.cells) {
		g.compacted = make([]Color, len(g.cells))
	} else {
		clear(g.compacted)
	}

	dst := 0
	for row := 0; row < g.rows; row++ {
		if g.isRowFull(row) {
			g.pending = append(g.pending, row)
			continue
		}
		copy(g.compacted[g.index(dst, 0):g.index(dst+1, 0)], g.cells[g.index(row, 0):g.index(row+1, 0)])
		dst++
	}
}

func (g *Grid) isRowFull(row int) bool {
	for col := 0; col < g.cols; col++ {
		if g.cells[g.index(row, col)] == ColorEmpty {
			return false
		}
	}
	return true
}

// ClearLines applies the compaction computed by UpdateLineClears.
// It is a no-op when no rows are pending.
func (g *Grid) ClearLines() {
	if len(g.pending) == 0 {
		return
	}
	copy(g.cells, g.compacted)
	g.pending = g.pending[:0]
}

// PendingLines returns the full rows waiting to be cleared, bottom first.
func (g *Grid) PendingLines() []int {
	out := make([]int, len(g.pending))
	copy(out, g.pending)
	return out
}

// NumPendingLines returns the number of full rows waiting to be cleared.
func (g *Grid) NumPendingLines() int { return len(g.pending) }
