package play

import (
	"gomoku_go/internal/game"
	"gomoku_go/internal/ml"
)

// fakeEval returns fixed scores and remembers the inputs it saw.
type fakeEval struct {
	scores []float32
	outs   []ml.Tensor // overrides scores when set
	err    error
	inputs []ml.Tensor
}

func (f *fakeEval) Evaluate(in ml.Tensor) ([]ml.Tensor, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	if f.outs != nil {
		return f.outs, nil
	}
	data := make([]float32, len(f.scores))
	copy(data, f.scores)
	return []ml.Tensor{{DType: ml.F32, Shape: []int64{1, int64(len(data))}, Data: data}}, nil
}

// peaked returns 81 scores that are zero except for the given cells.
func peaked(cells map[int]float32) []float32 {
	s := make([]float32, game.Cells)
	for i, v := range cells {
		s[i] = v
	}
	return s
}

type recordingObserver struct {
	moves    []MoveEvent
	finished []game.Outcome
}

func (r *recordingObserver) OnMove(ev MoveEvent)             { r.moves = append(r.moves, ev) }
func (r *recordingObserver) OnFinished(outcome game.Outcome) { r.finished = append(r.finished, outcome) }
