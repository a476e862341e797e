package play

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"gomoku_go/internal/game"
)

func newTestController(input string, scores []float32) (*Controller, *game.GameState, *recordingObserver) {
	gs := game.NewGameState()
	obs := &recordingObserver{}
	agent := &Agent{Eval: &fakeEval{scores: scores}}
	c := NewController(gs, agent, strings.NewReader(input), &bytes.Buffer{}, obs)
	return c, gs, obs
}

func TestNetworkTurnPlaysTopMove(t *testing.T) {
	c, gs, obs := newTestController("", peaked(map[int]float32{40: 1}))
	if c.State() != AwaitingNetworkMove {
		t.Fatalf("initial state = %v", c.State())
	}
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.State() != AwaitingHumanMove {
		t.Errorf("state = %v, want awaiting human move", c.State())
	}
	if gs.Cell(40) != game.PlayerX || gs.Board.Occupied() != 1 {
		t.Errorf("board after network move:\n%s", gs)
	}
	if len(obs.moves) != 1 || obs.moves[0].Source != Network || obs.moves[0].Player != game.PlayerX {
		t.Errorf("observed %+v", obs.moves)
	}
}

func TestQuitLeavesBoardUntouched(t *testing.T) {
	c, gs, obs := newTestController("q\n", peaked(map[int]float32{40: 1}))
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	before := *gs.Board
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.State() != Terminal {
		t.Errorf("state = %v, want terminal", c.State())
	}
	if *gs.Board != before {
		t.Error("quit changed the board")
	}
	if len(obs.finished) != 1 || obs.finished[0] != game.Ongoing {
		t.Errorf("finished = %v", obs.finished)
	}
}

func TestInvalidInputIsReportedAndBoardUntouched(t *testing.T) {
	for _, input := range []string{"z9\n", "e5\n", "hello\n"} {
		c, gs, _ := newTestController(input, peaked(map[int]float32{40: 1}))
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
		before := *gs.Board
		err := c.Step()
		if !errors.Is(err, ErrInvalidMoveInput) {
			t.Errorf("%q: err = %v, want ErrInvalidMoveInput", input, err)
		}
		var ime *InvalidMoveError
		if !errors.As(err, &ime) || ime.Input != strings.TrimSpace(input) {
			t.Errorf("%q: err = %#v", input, err)
		}
		if *gs.Board != before {
			t.Errorf("%q: board changed", input)
		}
	}
}

func TestHumanMoveIsTrimmedAndApplied(t *testing.T) {
	c, gs, obs := newTestController("  a1 \r\n", peaked(map[int]float32{40: 1}))
	for i := 0; i < 2; i++ {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if gs.Cell(0) != game.PlayerO {
		t.Errorf("a1 = %v, want O", gs.Cell(0))
	}
	if c.State() != AwaitingNetworkMove {
		t.Errorf("state = %v", c.State())
	}
	if obs.moves[1].Source != Human || obs.moves[1].Move != 0 {
		t.Errorf("observed %+v", obs.moves[1])
	}
}

func TestRunUntilNetworkWins(t *testing.T) {
	// The network always prefers the lowest free index on row 5, so it builds
	// a5..e5 while the human answers on row 1.
	scores := make([]float32, game.Cells)
	for col := 0; col < game.Size; col++ {
		scores[game.MoveAt(4, col)] = float32(100 - col)
	}
	c, gs, obs := newTestController("a1\nb1\nc1\nd1\n", scores)
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if gs.Outcome() != game.XWins {
		t.Fatalf("outcome = %v\n%s", gs.Outcome(), gs)
	}
	if len(obs.moves) != 9 || len(obs.finished) != 1 || obs.finished[0] != game.XWins {
		t.Errorf("moves=%d finished=%v", len(obs.moves), obs.finished)
	}
	if err := c.Step(); err != nil || c.State() != Terminal {
		t.Errorf("step after terminal: %v, %v", err, c.State())
	}
}

func TestEndOfInputQuits(t *testing.T) {
	c, _, obs := newTestController("", peaked(map[int]float32{40: 1}))
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if c.State() != Terminal || len(obs.finished) != 1 {
		t.Errorf("state=%v finished=%v", c.State(), obs.finished)
	}
}

func TestEvaluatorFailureIsFatal(t *testing.T) {
	gs := game.NewGameState()
	agent := &Agent{Eval: &fakeEval{err: errors.New("session gone")}}
	c := NewController(gs, agent, strings.NewReader(""), &bytes.Buffer{})
	if err := c.Run(); err == nil {
		t.Fatal("Run succeeded with a failing evaluator")
	}
	if gs.Board.Occupied() != 0 {
		t.Error("board changed")
	}
}
