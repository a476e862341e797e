package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrBadNotation is returned by ParseMove for text that names no cell.
var ErrBadNotation = errors.New("bad move notation")

// Move places a stone of the side to move on a flat cell index.
type Move int

// NoMove is the zero-information move, used before the first ply.
const NoMove Move = -1

// Index returns the flat cell index 0..80.
func (m Move) Index() int { return int(m) }

// Row returns the 0-based row.
func (m Move) Row() int { return int(m) / Size }

// Col returns the 0-based column.
func (m Move) Col() int { return int(m) % Size }

// Valid reports whether the move addresses a board cell.
func (m Move) Valid() bool { return InBounds(int(m)) }

// String returns the column letter followed by the 1-based row, e.g. "e5".
func (m Move) String() string {
	if !m.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+m.Col(), m.Row()+1)
}

// MoveAt builds the move for (row, col).
func MoveAt(row, col int) Move {
	return Move(row*Size + col)
}

// ParseMove is the inverse of Move.String.
func ParseMove(s string) (Move, error) {
	if len(s) != 2 {
		return NoMove, errors.Wrapf(ErrBadNotation, "%q", s)
	}
	col := int(s[0] - 'a')
	row := int(s[1] - '1')
	if s[0] < 'a' || col >= Size || s[1] < '1' || row >= Size {
		return NoMove, errors.Wrapf(ErrBadNotation, "%q", s)
	}
	return MoveAt(row, col), nil
}
