package game

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
)

// play applies the moves alternately starting from X.
func play(t *testing.T, gs *GameState, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatal(err)
		}
		if err := gs.Apply(m); err != nil {
			t.Fatalf("Apply(%s): %v", s, err)
		}
	}
}

func TestFiveInARowWins(t *testing.T) {
	gs := NewGameState()
	play(t, gs, "a1", "a2", "b1", "b2", "c1", "c2", "d1", "d2")
	if gs.Outcome() != Ongoing {
		t.Fatalf("outcome after four in a row = %v, want ongoing", gs.Outcome())
	}
	play(t, gs, "e1")
	if gs.Outcome() != XWins {
		t.Fatalf("outcome = %v, want X wins", gs.Outcome())
	}
	if gs.CurrentPlayer != PlayerX {
		t.Errorf("side to move changed after the winning move")
	}
	if moves := gs.GenerateMoves(); len(moves) != 0 {
		t.Errorf("finished game has %d legal moves", len(moves))
	}
	if err := gs.Apply(MoveAt(8, 8)); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("move after game end: err = %v, want ErrIllegalMove", err)
	}
}

func TestDiagonalWinForO(t *testing.T) {
	gs := NewGameState()
	play(t, gs, "i9", "a1", "i8", "b2", "i7", "c3", "h9", "d4", "h8", "e5")
	if gs.Outcome() != OWins {
		t.Fatalf("outcome = %v, want O wins", gs.Outcome())
	}
	if gs.Outcome().Winner() != PlayerO {
		t.Errorf("winner = %v, want O", gs.Outcome().Winner())
	}
}

func TestAntiDiagonalWin(t *testing.T) {
	gs := NewGameState()
	play(t, gs, "e1", "a9", "d2", "b9", "c3", "c9", "b4", "d9", "a5")
	if gs.Outcome() != XWins {
		t.Fatalf("outcome = %v, want X wins", gs.Outcome())
	}
}

func TestOccupiedCellIsIllegal(t *testing.T) {
	gs := NewGameState()
	play(t, gs, "e5")
	before := *gs.Board
	if err := gs.Apply(MoveAt(4, 4)); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("err = %v, want ErrIllegalMove", err)
	}
	if *gs.Board != before {
		t.Errorf("board changed after an illegal move")
	}
	if gs.CurrentPlayer != PlayerO {
		t.Errorf("side to move = %v, want O", gs.CurrentPlayer)
	}
}

func TestLegalMovesStopsEarly(t *testing.T) {
	gs := NewGameState()
	play(t, gs, "a1")
	var seen []Move
	gs.LegalMoves(func(m Move) bool {
		seen = append(seen, m)
		return len(seen) < 3
	})
	want := []Move{1, 2, 3}
	if len(seen) != len(want) {
		t.Fatalf("saw %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("saw %v, want %v", seen, want)
		}
	}
}

func TestFullBoardIsDraw(t *testing.T) {
	gs := NewGameState()
	// Rows repeat XXOOXXOOX shifted by two every row, which never lines up five.
	pattern := []CellState{PlayerX, PlayerX, PlayerO, PlayerO}
	var xs, os []Move
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if pattern[(col+2*row)%4] == PlayerX {
				xs = append(xs, MoveAt(row, col))
			} else {
				os = append(os, MoveAt(row, col))
			}
		}
	}
	if len(xs) != 41 || len(os) != 40 {
		t.Fatalf("pattern has %d X and %d O", len(xs), len(os))
	}
	for i := range xs {
		if err := gs.Apply(xs[i]); err != nil {
			t.Fatalf("X %s: %v", xs[i], err)
		}
		if i < len(os) {
			if err := gs.Apply(os[i]); err != nil {
				t.Fatalf("O %s: %v", os[i], err)
			}
		}
	}
	if gs.Outcome() != Draw {
		t.Fatalf("outcome = %v, want draw", gs.Outcome())
	}
}

func TestStringShowsStonesAndTurn(t *testing.T) {
	gs := NewGameState()
	play(t, gs, "a1")
	s := gs.String()
	lines := strings.Split(s, "\n")
	if lines[8] != "1 X . . . . . . . ." {
		t.Errorf("row 1 = %q", lines[8])
	}
	if !strings.Contains(s, "O to move") {
		t.Errorf("missing side to move in %q", s)
	}
}
