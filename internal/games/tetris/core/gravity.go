package core

// Level limits.
const (
	MinLevel = 1
	// MaxLevel caps automatic level advancement.
	MaxLevel = 20
	// MaxSelectableLevel caps manual level selection before play.
	MaxSelectableLevel = 30
)

// LinesPerLevel is multiplied by the current level to get the line total
// needed to advance.
const LinesPerLevel = 10

// GravityInterval returns the number of ticks between one-row drops at the given level.
// The curve follows NES-era timing: steep until level 9, then a slow taper down
// to a single tick per row from level 30.
func GravityInterval(level int) int {
	switch {
	case level < 10:
		return 48 - 5*level
	case level == 10:
		return 6
	case level < 20:
		return 6 - ((level-10)/3 + 1)
	case level < 30:
		return 2
	default:
		return 1
	}
}
