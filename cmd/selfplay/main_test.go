package main

import (
	"math/rand"
	"testing"

	"gomoku_go/internal/dataset"
	"gomoku_go/internal/game"
	"gomoku_go/internal/ml"
	"gomoku_go/internal/play"
)

type flatModel struct{}

func (flatModel) Evaluate(ml.Tensor) ([]ml.Tensor, error) {
	return []ml.Tensor{{DType: ml.F32, Shape: []int64{81}, Data: make([]float32, game.Cells)}}, nil
}

func TestPlayOneGameEndsAndLabelsRows(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	agent := &play.Agent{Eval: flatModel{}, TieBreak: play.TieRandom, Rand: r}
	rows, err := playOneGame(agent, 4, r)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) == 0 || len(rows) > game.Cells-4 {
		t.Fatalf("%d rows", len(rows))
	}
	id := rows[0][dataset.Columns-1]
	for i, row := range rows {
		if len(row) != dataset.Columns {
			t.Fatalf("row %d has %d columns", i, len(row))
		}
		if row[dataset.Columns-1] != id {
			t.Fatalf("row %d belongs to game %q, want %q", i, row[dataset.Columns-1], id)
		}
	}
}
