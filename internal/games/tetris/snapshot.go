package tetris

// Snapshot contains the complete observable game state for replay and
// determinism checks. Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick   uint64
	Phase  string
	Paused bool

	Score int
	Level int
	Lines int

	Next    int
	Held    int
	CanHold bool

	// Falling piece; ActiveKind is 0 when there is none
	ActiveKind  int
	ActiveState int
	ActiveRow   int
	ActiveCol   int
	GhostRow    int

	// Rows awaiting removal during a line clear pause
	PendingRows []int

	// Cell colors, row-major from the bottom row (row*cols + col)
	Rows  int
	Cols  int
	Cells []int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.session
	b := s.Board()

	cells := make([]int, 0, b.Rows()*b.Cols())
	for row := range b.Rows() {
		for col := range b.Cols() {
			cells = append(cells, int(b.Cell(row, col)))
		}
	}

	row, col := b.ActivePosition()
	ghostRow, _ := b.Ghost()

	return Snapshot{
		Tick:        g.tickCount,
		Phase:       s.Phase().String(),
		Paused:      g.paused,
		Score:       s.Score(),
		Level:       s.Level(),
		Lines:       s.Lines(),
		Next:        int(s.Next()),
		Held:        int(s.Held()),
		CanHold:     s.CanHold(),
		ActiveKind:  int(b.Active().Kind()),
		ActiveState: int(b.Active().State()),
		ActiveRow:   row,
		ActiveCol:   col,
		GhostRow:    ghostRow,
		PendingRows: b.PendingLines(),
		Rows:        b.Rows(),
		Cols:        b.Cols(),
		Cells:       cells,
	}
}
