package core

// FilledCount returns the number of non-empty cells.
func (g *Grid) FilledCount() int {
	n := 0
	for _, c := range g.cells {
		if c != ColorEmpty {
			n++
		}
	}
	return n
}
