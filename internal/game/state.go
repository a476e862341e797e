package game

import (
	"github.com/pkg/errors"
)

// WinLength is the number of stones in a line that wins the game.
const WinLength = 5

// ErrIllegalMove is returned when a move cannot be played in the current state.
var ErrIllegalMove = errors.New("illegal move")

// Outcome is the result of a game so far.
type Outcome int

const (
	Ongoing Outcome = iota
	XWins
	OWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case XWins:
		return "X wins"
	case OWins:
		return "O wins"
	case Draw:
		return "draw"
	}
	return "ongoing"
}

// Terminal reports whether the game has concluded.
func (o Outcome) Terminal() bool { return o != Ongoing }

// Winner returns the winning player, or Empty for a draw or ongoing game.
func (o Outcome) Winner() CellState {
	switch o {
	case XWins:
		return PlayerX
	case OWins:
		return PlayerO
	}
	return Empty
}

// lineDirs are the four line orientations: horizontal, vertical and both diagonals.
var lineDirs = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// GameState holds the board, the side to move and the result so far.
type GameState struct {
	Board         *Board
	CurrentPlayer CellState
	LastMove      Move
	Ply           int
	outcome       Outcome
}

// NewGameState returns an empty board with X to move.
func NewGameState() *GameState {
	return &GameState{
		Board:         NewBoard(),
		CurrentPlayer: PlayerX,
		LastMove:      NoMove,
	}
}

// Cell implements CellReader.
func (gs *GameState) Cell(idx int) CellState { return gs.Board.Cell(idx) }

// Outcome returns the current result.
func (gs *GameState) Outcome() Outcome { return gs.outcome }

// LegalMoves calls yield for every empty cell in ascending index order until
// yield returns false. A finished game has no legal moves.
func (gs *GameState) LegalMoves(yield func(Move) bool) {
	if gs.outcome.Terminal() {
		return
	}
	for i := 0; i < Cells; i++ {
		if gs.Board.cells[i] != Empty {
			continue
		}
		if !yield(Move(i)) {
			return
		}
	}
}

// GenerateMoves collects LegalMoves into a slice.
func (gs *GameState) GenerateMoves() []Move {
	var moves []Move
	gs.LegalMoves(func(m Move) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

// IsLegal reports whether m can be played now.
func (gs *GameState) IsLegal(m Move) bool {
	return !gs.outcome.Terminal() && m.Valid() && gs.Board.cells[m] == Empty
}

// Apply plays m for the side to move, updates the outcome and passes the turn.
func (gs *GameState) Apply(m Move) error {
	if !gs.IsLegal(m) {
		return errors.Wrapf(ErrIllegalMove, "%s for %s (%s)", m, gs.CurrentPlayer, gs.outcome)
	}
	if err := gs.Board.Set(m.Index(), gs.CurrentPlayer); err != nil {
		return err
	}
	gs.LastMove = m
	gs.Ply++
	gs.checkGameOver(m)
	if !gs.outcome.Terminal() {
		gs.CurrentPlayer = Opponent(gs.CurrentPlayer)
	}
	return nil
}

// checkGameOver looks for a line through the last stone, then for a full board.
func (gs *GameState) checkGameOver(last Move) {
	player := gs.Board.cells[last]
	for _, d := range lineDirs {
		n := 1 + gs.run(last, d[0], d[1], player) + gs.run(last, -d[0], -d[1], player)
		if n >= WinLength {
			if player == PlayerX {
				gs.outcome = XWins
			} else {
				gs.outcome = OWins
			}
			return
		}
	}
	if gs.Board.Occupied() == Cells {
		gs.outcome = Draw
	}
}

// run counts consecutive stones of player from m (exclusive) along (dr, dc).
func (gs *GameState) run(m Move, dr, dc int, player CellState) int {
	n := 0
	r, c := m.Row()+dr, m.Col()+dc
	for r >= 0 && r < Size && c >= 0 && c < Size && gs.Board.cells[r*Size+c] == player {
		n++
		r += dr
		c += dc
	}
	return n
}

// String renders the board followed by the side to move or the result.
func (gs *GameState) String() string {
	s := gs.Board.String()
	if gs.outcome.Terminal() {
		return s + "result: " + gs.outcome.String() + "\n"
	}
	return s + gs.CurrentPlayer.String() + " to move\n"
}

// Clone returns an independent copy.
func (gs *GameState) Clone() *GameState {
	ng := *gs
	ng.Board = gs.Board.Clone()
	return &ng
}

// Reset restores the initial position.
func (gs *GameState) Reset() {
	*gs = *NewGameState()
}
