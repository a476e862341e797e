package game

import (
	"strings"

	"github.com/pkg/errors"
)

// Size is the side length of the square board.
const Size = 9

// Cells is the number of cells on the board.
const Cells = Size * Size

// CellState represents the state of a cell on the board.
// It can be Empty or occupied by PlayerX or PlayerO.
type CellState int

const (
	Empty CellState = iota
	PlayerX
	PlayerO
)

func (c CellState) String() string {
	switch c {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	}
	return "."
}

// Opponent returns the other player, or Empty for Empty.
func Opponent(player CellState) CellState {
	switch player {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	}
	return Empty
}

// CellReader is anything that can report the state of a flat cell index.
type CellReader interface {
	Cell(idx int) CellState
}

// Board is a 9x9 grid indexed row-major: idx = row*Size + col.
type Board struct {
	cells [Cells]CellState
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{}
}

// InBounds returns true if idx addresses a cell of the board.
func InBounds(idx int) bool {
	return idx >= 0 && idx < Cells
}

// Cell returns the state of cell idx. Out of range indices read as Empty.
func (b *Board) Cell(idx int) CellState {
	if !InBounds(idx) {
		return Empty
	}
	return b.cells[idx]
}

// Get returns the state at (row, col).
func (b *Board) Get(row, col int) CellState {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return Empty
	}
	return b.cells[row*Size+col]
}

// Set updates cell idx. Returns an error if idx is out of bounds.
func (b *Board) Set(idx int, state CellState) error {
	if !InBounds(idx) {
		return errors.Errorf("cell %d out of bounds", idx)
	}
	b.cells[idx] = state
	return nil
}

// CountPieces counts the cells held by player.
func (b *Board) CountPieces(player CellState) int {
	n := 0
	for _, c := range b.cells {
		if c == player {
			n++
		}
	}
	return n
}

// Occupied returns the number of non-empty cells.
func (b *Board) Occupied() int {
	return Cells - b.CountPieces(Empty)
}

// Clone returns a copy of the board.
func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

// String renders the board with row numbers on the left and column letters
// underneath, top row is row 9.
func (b *Board) String() string {
	var sb strings.Builder
	for row := Size - 1; row >= 0; row-- {
		sb.WriteByte(byte('1' + row))
		for col := 0; col < Size; col++ {
			sb.WriteByte(' ')
			sb.WriteString(b.cells[row*Size+col].String())
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte(' ')
	for col := 0; col < Size; col++ {
		sb.WriteByte(' ')
		sb.WriteByte(byte('a' + col))
	}
	sb.WriteByte('\n')
	return sb.String()
}
