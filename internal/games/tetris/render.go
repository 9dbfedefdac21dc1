package tetris

import (
	"fmt"
	"strconv"
	"strings"

	platformcore "github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/tetris/core"
)

// Visual characters for rendering
const (
	BlockChar   = '█'
	GhostChar   = '░'
	FlashChar   = '▒'
	EmptyChar   = '·'
	cellWidth   = 2 // terminal columns per grid column
	panelWidth  = 14
	panelHeight = 19 // rows used by drawPanel
	panelGap    = 2
)

// pieceColors maps engine colors to the platform palette.
var pieceColors = map[core.Color]platformcore.Color{
	core.ColorCyan:   platformcore.ColorCyan,
	core.ColorBlue:   platformcore.ColorBlue,
	core.ColorOrange: platformcore.ColorOrange,
	core.ColorYellow: platformcore.ColorYellow,
	core.ColorGreen:  platformcore.ColorGreen,
	core.ColorRed:    platformcore.ColorRed,
	core.ColorPurple: platformcore.ColorMagenta,
}

func screenColor(c core.Color) platformcore.Color {
	if sc, ok := pieceColors[c]; ok {
		return sc
	}
	return platformcore.ColorDefault
}

// layout is where the board and side panel go on the current screen.
type layout struct {
	board platformcore.Rect // including the border
	panel platformcore.Rect
}

func (g *Game) layout() (layout, bool) {
	b := g.session.Board()
	boardW := b.Cols()*cellWidth + 2
	boardH := b.VisibleRows() + 2
	totalW, totalH := g.MinScreenSize()

	if g.screenW < totalW || g.screenH < totalH {
		return layout{}, false
	}

	outer := platformcore.NewRect(0, 0, g.screenW, g.screenH).CenterIn(totalW, totalH)
	return layout{
		board: platformcore.NewRect(outer.X, outer.Y, boardW, boardH),
		panel: platformcore.NewRect(outer.X+boardW+panelGap, outer.Y, panelWidth, panelHeight),
	}, true
}

// MinScreenSize returns the smallest screen the game can be drawn on.
func (g *Game) MinScreenSize() (width, height int) {
	b := g.session.Board()
	return b.Cols()*cellWidth + 2 + panelGap + panelWidth, max(b.VisibleRows()+2, panelHeight)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	l, ok := g.layout()
	if !ok {
		w, h := g.MinScreenSize()
		dst.DrawTextCentered(dst.Height()/2-1, "Terminal too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d, have %dx%d", w, h, g.screenW, g.screenH))
		return
	}

	g.drawBoard(dst, l.board)
	g.drawPanel(dst, l.panel)

	s := g.session
	switch {
	case s.Phase() == core.PhaseReady:
		g.drawCenteredMessage(dst, l.board,
			"TETRIS",
			fmt.Sprintf("< Level %d >", s.Level()),
			"Enter to start",
		)
	case s.IsOver():
		g.drawCenteredMessage(dst, l.board,
			"GAME OVER",
			fmt.Sprintf("Score %d", s.Score()),
			"R to restart",
		)
	case g.paused:
		g.drawCenteredMessage(dst, l.board, "PAUSED", "P to resume")
	}
}

// drawBoard renders the visible rows, bottom row last.
func (g *Game) drawBoard(dst *platformcore.Screen, area platformcore.Rect) {
	s := g.session
	b := s.Board()
	visible := b.VisibleRows()
	dst.DrawBoxColor(area, platformcore.ColorGray)
	inner := area.Inset(1)

	// y on screen for a grid row
	rowY := func(row int) int { return inner.Y + visible - 1 - row }
	colX := func(col int) int { return inner.X + col*cellWidth }

	flashing := make(map[int]bool)
	if s.IsPausedForLineClear() && int(s.LineClearProgress()*6)%2 == 0 {
		for _, row := range b.PendingLines() {
			flashing[row] = true
		}
	}

	for row := range visible {
		for col := range b.Cols() {
			x, y := colX(col), rowY(row)
			switch c := b.Cell(row, col); {
			case flashing[row]:
				drawBlock(dst, x, y, FlashChar, platformcore.ColorBrightWhite)
			case c != core.ColorEmpty:
				drawBlock(dst, x, y, BlockChar, screenColor(c))
			default:
				dst.SetColor(x, y, ' ', platformcore.ColorDefault)
				dst.SetColor(x+1, y, EmptyChar, platformcore.ColorGray)
			}
		}
	}

	p := b.Active()
	if p.Kind() == core.KindNone {
		return
	}
	color := screenColor(p.Color())
	row, col := b.ActivePosition()
	ghostRow, ghostCol := b.Ghost()

	// Cells still in the hidden rows fall outside inner.
	for _, c := range p.Cells() {
		r, cc := ghostRow-c.Row, ghostCol+c.Col
		if inner.Contains(colX(cc), rowY(r)) && b.Cell(r, cc) == core.ColorEmpty {
			drawBlock(dst, colX(cc), rowY(r), GhostChar, color)
		}
	}
	for _, c := range p.Cells() {
		x, y := colX(col+c.Col), rowY(row-c.Row)
		if inner.Contains(x, y) {
			drawBlock(dst, x, y, BlockChar, color)
		}
	}
}

func drawBlock(dst *platformcore.Screen, x, y int, r rune, c platformcore.Color) {
	dst.SetColor(x, y, r, c)
	dst.SetColor(x+1, y, r, c)
}

// drawPanel renders next/hold previews and the counters.
func (g *Game) drawPanel(dst *platformcore.Screen, area platformcore.Rect) {
	s := g.session
	x, y := area.X, area.Y

	dst.DrawTextColor(x, y, "NEXT", platformcore.ColorGray)
	drawPreview(dst, x, y+1, s.Next(), true)

	dst.DrawTextColor(x, y+4, "HOLD", platformcore.ColorGray)
	drawPreview(dst, x, y+5, s.Held(), s.CanHold())
	dst.DrawHLine(x, y+7, area.W, '─')

	counters := []struct {
		label string
		value int
	}{
		{"SCORE", s.Score()},
		{"LEVEL", s.Level()},
		{"LINES", s.Lines()},
	}
	for i, c := range counters {
		cy := y + 8 + i*3
		dst.DrawTextColor(x, cy, c.label, platformcore.ColorGray)
		dst.DrawText(x, cy+1, strconv.Itoa(c.value))
	}

	dst.DrawHLine(x, y+16, area.W, '─')
	if s.IsGrounded() {
		dst.DrawTextColor(x, y+17, "LOCK", platformcore.ColorGray)
		dst.DrawTextColor(x, y+18, progressBar(s.LockProgress(), 10), platformcore.ColorYellow)
	}
}

// drawPreview draws a piece in its spawn orientation, top row at y.
func drawPreview(dst *platformcore.Screen, x, y int, k core.Kind, enabled bool) {
	if k == core.KindNone {
		return
	}
	p := core.NewPiece(k)
	color := screenColor(p.Color())
	if !enabled {
		color = platformcore.ColorGray
	}

	cells := p.Cells()
	top := cells[0].Row
	for _, c := range cells {
		top = min(top, c.Row)
	}
	for _, c := range cells {
		drawBlock(dst, x+c.Col*cellWidth, y+c.Row-top, BlockChar, color)
	}
}

func progressBar(frac float64, width int) string {
	filled := platformcore.Clamp(int(frac*float64(width)+0.5), 0, width)
	return strings.Repeat("■", filled) + strings.Repeat("·", width-filled)
}

// drawCenteredMessage draws a message box in the middle of area.
func (g *Game) drawCenteredMessage(dst *platformcore.Screen, area platformcore.Rect, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, len([]rune(line)))
	}
	inner := area.Inset(1)
	box := inner.CenterIn(min(width+4, inner.W), len(lines)*2+1)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, line := range lines {
		dst.DrawTextCenteredIn(box, box.Y+1+i*2, line, platformcore.ColorWhite)
	}
}
