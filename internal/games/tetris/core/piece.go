// Package core provides the rules engine for the Tetris game: piece shapes,
// the playfield grid and the fixed-tick session state machine.
// This package is UI-agnostic and does no rendering.
package core

import (
	"fmt"
	"slices"
)

// Color identifies the contents of a playfield cell.
// Every piece kind has its own color; ColorEmpty marks an open cell.
type Color uint8

const (
	ColorEmpty Color = iota
	ColorCyan
	ColorBlue
	ColorOrange
	ColorYellow
	ColorGreen
	ColorRed
	ColorPurple
)

// Kind is the shape family of a piece.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindJ
	KindL
	KindO
	KindS
	KindZ
	KindT
)

// NumKinds is the number of playable piece kinds.
const NumKinds = 7

// String returns the conventional one-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindT:
		return "T"
	default:
		return "-"
	}
}

// Color returns the cell color used by pieces of this kind.
func (k Kind) Color() Color {
	return shapes[k].color
}

// Rotation is a 90 degree turn direction.
type Rotation uint8

const (
	RotateRight Rotation = iota // clockwise
	RotateLeft                  // counter-clockwise
)

// RotationState is one of the four orientations of a piece.
type RotationState uint8

const (
	StateSpawn RotationState = iota
	StateRight
	StateTwo
	StateLeft
)

// Next returns the state reached by rotating once in the given direction.
func (s RotationState) Next(r Rotation) RotationState {
	if r == RotateLeft {
		return (s + 3) % 4
	}
	return (s + 1) % 4
}

// String returns the state name.
func (s RotationState) String() string {
	switch s {
	case StateSpawn:
		return "0"
	case StateRight:
		return "R"
	case StateTwo:
		return "2"
	case StateLeft:
		return "L"
	default:
		return "?"
	}
}

// maxSize is the side length of the largest template (I).
const maxSize = 4

type shape struct {
	size     int
	color    Color
	template [maxSize][maxSize]bool
	kicks    *kickTable
}

// shapes holds the spawn template of every kind. Row 0 is the top row.
var shapes = [...]shape{
	KindNone: {},
	KindI: {size: 4, color: ColorCyan, kicks: &kicksI, template: [maxSize][maxSize]bool{
		{false, false, false, false},
		{true, true, true, true},
	}},
	KindJ: {size: 3, color: ColorBlue, kicks: &kicksJLSTZ, template: [maxSize][maxSize]bool{
		{true, false, false},
		{true, true, true},
	}},
	KindL: {size: 3, color: ColorOrange, kicks: &kicksJLSTZ, template: [maxSize][maxSize]bool{
		{false, false, true},
		{true, true, true},
	}},
	// O never changes shape when rotated but still references a table
	KindO: {size: 2, color: ColorYellow, kicks: &kicksJLSTZ, template: [maxSize][maxSize]bool{
		{true, true},
		{true, true},
	}},
	KindS: {size: 3, color: ColorGreen, kicks: &kicksJLSTZ, template: [maxSize][maxSize]bool{
		{false, true, true},
		{true, true, false},
	}},
	KindZ: {size: 3, color: ColorRed, kicks: &kicksJLSTZ, template: [maxSize][maxSize]bool{
		{true, true, false},
		{false, true, true},
	}},
	KindT: {size: 3, color: ColorPurple, kicks: &kicksJLSTZ, template: [maxSize][maxSize]bool{
		{false, true, false},
		{true, true, true},
	}},
}

// Piece is an immutable value describing a piece kind in a given orientation.
// Rotating produces a new Piece; the zero value is a KindNone piece.
type Piece struct {
	kind  Kind
	state RotationState
	size  int
	cells [maxSize][maxSize]Color
}

// NewPiece builds a piece of the given kind in spawn orientation.
func NewPiece(k Kind) Piece {
	if k > KindT {
		k = KindNone
	}
	s := shapes[k]
	p := Piece{kind: k, state: StateSpawn, size: s.size}
	for r := 0; r < s.size; r++ {
		for c := 0; c < s.size; c++ {
			if s.template[r][c] {
				p.cells[r][c] = s.color
			}
		}
	}
	return p
}

// Kind returns the piece kind.
func (p Piece) Kind() Kind { return p.kind }

// State returns the current rotation state.
func (p Piece) State() RotationState { return p.state }

// Size returns the template side length (0 for KindNone).
func (p Piece) Size() int { return p.size }

// Color returns the color of the piece's filled cells.
func (p Piece) Color() Color { return p.kind.Color() }

// Cell is a filled template cell relative to the template's top-left corner.
type Cell struct {
	Row, Col int
}

// Cells returns the filled template cells in row-major order.
func (p Piece) Cells() []Cell {
	out := make([]Cell, 0, 4)
	for r := 0; r < p.size; r++ {
		for c := 0; c < p.size; c++ {
			if p.cells[r][c] != ColorEmpty {
				out = append(out, Cell{Row: r, Col: c})
			}
		}
	}
	return out
}

// Rotated returns the piece turned 90 degrees in the given direction.
func (p Piece) Rotated(dir Rotation) Piece {
	out := Piece{kind: p.kind, state: p.state.Next(dir), size: p.size}
	n := p.size
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if dir == RotateRight {
				out.cells[r][c] = p.cells[n-1-c][r]
			} else {
				out.cells[r][c] = p.cells[c][n-1-r]
			}
		}
	}
	return out
}

// Kicks returns a copy of the ordered kick offsets for a kind and rotation
// transition. It panics if the kind has no table or the transition is not
// between adjacent rotation states.
func Kicks(k Kind, from, to RotationState) []Offset {
	if k == KindNone || k > KindT {
		panic(fmt.Sprintf("core: no kick table for kind %v", k))
	}
	offsets, ok := (*shapes[k].kicks)[transition{from, to}]
	if !ok {
		panic(fmt.Sprintf("core: invalid rotation transition %v->%v", from, to))
	}
	return slices.Clone(offsets)
}
