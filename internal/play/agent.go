package play

import (
	"math"
	"math/rand"
	"strings"

	"github.com/op/go-logging"
	"github.com/pkg/errors"

	"gomoku_go/internal/game"
	"gomoku_go/internal/ml"
)

var log = logging.MustGetLogger("play")

// ErrNoLegalMove is returned when the network is asked to move in a position
// without legal moves.
var ErrNoLegalMove = errors.New("no legal move")

// TieBreak decides between legal moves sharing the top score.
type TieBreak int

const (
	// TieFirst keeps the first tied move in enumeration order.
	TieFirst TieBreak = iota
	// TieLast keeps the last tied move in enumeration order.
	TieLast
	// TieRandom picks uniformly among the tied moves.
	TieRandom
)

func (tb TieBreak) String() string {
	switch tb {
	case TieLast:
		return "last"
	case TieRandom:
		return "random"
	}
	return "first"
}

// ParseTieBreak maps first, last or random to a TieBreak.
func ParseTieBreak(s string) (TieBreak, error) {
	switch strings.ToLower(s) {
	case "", "first":
		return TieFirst, nil
	case "last":
		return TieLast, nil
	case "random":
		return TieRandom, nil
	}
	return TieFirst, errors.Errorf("unknown tie-break %q", s)
}

// Agent plays the network's top-scored legal move.
type Agent struct {
	Eval     ml.Evaluator
	TieBreak TieBreak
	Rand     *rand.Rand // used by TieRandom only
}

// Policy encodes pos, runs the network and returns the 81 cell scores.
func (a *Agent) Policy(pos game.CellReader) ([]float32, error) {
	feat := game.EncodeBoardTensor(pos)
	outs, err := a.Eval.Evaluate(ml.FeatureInput(feat[:]))
	if err != nil {
		return nil, errors.Wrap(err, "evaluate")
	}
	return ml.DecodePolicy(outs)
}

// Choose returns the legal move with the greatest score along with all scores.
func (a *Agent) Choose(pos Position) (game.Move, []float32, error) {
	policy, err := a.Policy(pos)
	if err != nil {
		return game.NoMove, nil, err
	}
	m, err := SelectMove(pos, policy, a.TieBreak, a.Rand)
	return m, policy, err
}

// SelectMove picks the legal move whose cell has the strictly greatest score.
// NaN ranks below every number. Ties are settled by tb.
func SelectMove(pos Position, scores []float32, tb TieBreak, r *rand.Rand) (game.Move, error) {
	var (
		best  = math.Inf(-1)
		tied  []game.Move
		found bool
	)
	pos.LegalMoves(func(m game.Move) bool {
		s := math.Inf(-1)
		if idx := m.Index(); idx < len(scores) && !math.IsNaN(float64(scores[idx])) {
			s = float64(scores[idx])
		}
		switch {
		case !found || s > best:
			best, tied, found = s, append(tied[:0], m), true
		case s == best:
			tied = append(tied, m)
		}
		return true
	})
	if !found {
		return game.NoMove, ErrNoLegalMove
	}
	if len(tied) > 1 {
		log.Debugf("%d moves tied at %g, tie-break %s", len(tied), best, tb)
	}
	switch tb {
	case TieLast:
		return tied[len(tied)-1], nil
	case TieRandom:
		if r == nil {
			return tied[rand.Intn(len(tied))], nil
		}
		return tied[r.Intn(len(tied))], nil
	}
	return tied[0], nil
}
