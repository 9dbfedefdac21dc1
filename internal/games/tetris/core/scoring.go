package core

// lineClearPoints is the base award per number of rows cleared at once.
var lineClearPoints = [...]int{0, 40, 100, 300, 1200}

// LineClearScore returns the points awarded for clearing n rows at level.
// The base value is scaled by the level twice.
func LineClearScore(n, level int) int {
	if n <= 0 || n >= len(lineClearPoints) {
		return 0
	}
	delta := lineClearPoints[n] * level
	return delta * level
}

// HardDropScore returns the points for hard dropping the given number of rows.
func HardDropScore(rows, level int) int {
	return 2 * level * rows
}
