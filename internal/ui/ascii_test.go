package ui

import (
	"math"
	"strings"
	"testing"
)

func TestPolicyArtFlatScores(t *testing.T) {
	scores := make([]float32, 81)
	for i := range scores {
		scores[i] = 0.25
	}
	art := PolicyArt(scores, 9)
	rows := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
	if len(rows) != 9 {
		t.Fatalf("%d rows, want 9", len(rows))
	}
	for _, r := range rows {
		if r != strings.Repeat("+", 18) {
			t.Fatalf("row = %q, want 18 x '+'", r)
		}
	}
}

func TestPolicyArtRampEnds(t *testing.T) {
	scores := make([]float32, 81)
	scores[0] = -2
	scores[80] = 8
	for i := 1; i < 80; i++ {
		scores[i] = 3 // exactly the middle of the range
	}
	art := PolicyArt(scores, 9)
	if !strings.HasPrefix(art, "  ++") {
		t.Errorf("first row starts %q, want minimum then midpoint", art[:4])
	}
	if !strings.HasSuffix(art, "++@@\n") {
		t.Errorf("art ends %q, want maximum last", art[len(art)-5:])
	}
}

func TestPolicyArtNonFinite(t *testing.T) {
	scores := []float32{float32(math.NaN()), 1, 2, float32(math.Inf(1))}
	if got := PolicyArt(scores, 2); got != "    \n@@  \n" {
		t.Errorf("art = %q", got)
	}
}
