package core

// Offset is a (row, col) translation tried while rotating.
// Positive rows move the piece up, positive cols move it right.
type Offset struct {
	Row, Col int
}

type transition struct {
	from, to RotationState
}

type kickTable map[transition][]Offset

// kicksJLSTZ is shared by J, L, S, Z, T and O.
var kicksJLSTZ = kickTable{
	{StateSpawn, StateRight}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{StateRight, StateSpawn}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{StateRight, StateTwo}:   {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{StateTwo, StateRight}:   {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{StateTwo, StateLeft}:    {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	{StateLeft, StateTwo}:    {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{StateLeft, StateSpawn}:  {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{StateSpawn, StateLeft}:  {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
}

var kicksI = kickTable{
	{StateSpawn, StateRight}: {{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{StateRight, StateSpawn}: {{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{StateRight, StateTwo}:   {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
	{StateTwo, StateRight}:   {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{StateTwo, StateLeft}:    {{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{StateLeft, StateTwo}:    {{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{StateLeft, StateSpawn}:  {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{StateSpawn, StateLeft}:  {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
}
