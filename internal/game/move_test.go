package game

import (
	"testing"

	"github.com/pkg/errors"
)

func TestMoveNotationCorners(t *testing.T) {
	if s := Move(0).String(); s != "a1" {
		t.Errorf("Move(0) = %q, want a1", s)
	}
	if s := Move(80).String(); s != "i9" {
		t.Errorf("Move(80) = %q, want i9", s)
	}
	if s := MoveAt(4, 4).String(); s != "e5" {
		t.Errorf("MoveAt(4,4) = %q, want e5", s)
	}
}

func TestParseMoveRoundTrip(t *testing.T) {
	for i := 0; i < Cells; i++ {
		m, err := ParseMove(Move(i).String())
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", Move(i), err)
		}
		if m != Move(i) {
			t.Fatalf("ParseMove(%q) = %d, want %d", Move(i), m, i)
		}
	}
}

func TestParseMoveRejects(t *testing.T) {
	for _, s := range []string{"", "q", "j1", "a0", "a10", "A1", "e5 ", "1a"} {
		if _, err := ParseMove(s); !errors.Is(err, ErrBadNotation) {
			t.Errorf("ParseMove(%q) err = %v, want ErrBadNotation", s, err)
		}
	}
}
