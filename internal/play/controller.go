package play

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"gomoku_go/internal/game"
)

// QuitToken ends the session when entered instead of a move.
const QuitToken = "q"

// ErrInvalidMoveInput matches every *InvalidMoveError.
var ErrInvalidMoveInput = errors.New("invalid move input")

// InvalidMoveError reports human input that is neither a legal move nor QuitToken.
type InvalidMoveError struct {
	Input string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("%q is not a legal move", e.Input)
}

func (e *InvalidMoveError) Is(target error) bool { return target == ErrInvalidMoveInput }

// State is a state of the game loop.
type State int

const (
	AwaitingNetworkMove State = iota
	AwaitingHumanMove
	Terminal
)

func (s State) String() string {
	switch s {
	case AwaitingNetworkMove:
		return "awaiting network move"
	case AwaitingHumanMove:
		return "awaiting human move"
	}
	return "terminal"
}

// Source tells who chose a move.
type Source int

const (
	Network Source = iota
	Human
)

func (s Source) String() string {
	if s == Human {
		return "human"
	}
	return "network"
}

// MoveEvent describes a move that has just been applied.
type MoveEvent struct {
	Ply      int
	Player   game.CellState
	Move     game.Move
	Source   Source
	Scores   []float32 // network moves only
	Position Position
}

// Observer is told about every applied move and about the end of the loop.
// The outcome passed to OnFinished is Ongoing when the human quit.
type Observer interface {
	OnMove(ev MoveEvent)
	OnFinished(outcome game.Outcome)
}

// Controller alternates network and human turns on one position.
// The network moves first.
type Controller struct {
	pos       Position
	agent     *Agent
	in        *bufio.Reader
	out       io.Writer
	observers []Observer
	state     State
	ply       int
}

// NewController returns a controller in AwaitingNetworkMove.
func NewController(pos Position, agent *Agent, in io.Reader, out io.Writer, observers ...Observer) *Controller {
	c := &Controller{
		pos:       pos,
		agent:     agent,
		in:        bufio.NewReader(in),
		out:       out,
		observers: observers,
	}
	if pos.Outcome().Terminal() {
		c.state = Terminal
	}
	return c
}

// State returns the current loop state.
func (c *Controller) State() State { return c.state }

// Position returns the position being played.
func (c *Controller) Position() Position { return c.pos }

// Run steps until Terminal. Errors are returned as they happen; the
// position is left as it was before the failing step.
func (c *Controller) Run() error {
	for c.state != Terminal {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step performs exactly one transition.
func (c *Controller) Step() error {
	switch c.state {
	case AwaitingNetworkMove:
		return c.networkTurn()
	case AwaitingHumanMove:
		return c.humanTurn()
	}
	return nil
}

func (c *Controller) networkTurn() error {
	m, scores, err := c.agent.Choose(c.pos)
	if err != nil {
		return err
	}
	log.Infof("network plays %s", m)
	if err := c.apply(m, Network, scores); err != nil {
		return err
	}
	if c.state != Terminal {
		c.state = AwaitingHumanMove
	}
	return nil
}

func (c *Controller) humanTurn() error {
	fmt.Fprintf(c.out, "your move (%s to quit): ", QuitToken)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			log.Infof("input closed, quitting")
			c.finish()
			return nil
		}
		return errors.Wrap(err, "read move")
	}
	input := strings.TrimSpace(line)
	if input == QuitToken {
		log.Infof("quit requested")
		c.finish()
		return nil
	}
	m, ok := c.findMove(input)
	if !ok {
		return &InvalidMoveError{Input: input}
	}
	if err := c.apply(m, Human, nil); err != nil {
		return err
	}
	if c.state != Terminal {
		c.state = AwaitingNetworkMove
	}
	return nil
}

// findMove returns the first legal move whose notation equals text.
func (c *Controller) findMove(text string) (game.Move, bool) {
	found := game.NoMove
	c.pos.LegalMoves(func(m game.Move) bool {
		if m.String() == text {
			found = m
			return false
		}
		return true
	})
	return found, found != game.NoMove
}

func (c *Controller) apply(m game.Move, src Source, scores []float32) error {
	if err := c.pos.Apply(m); err != nil {
		return err
	}
	c.ply++
	ev := MoveEvent{
		Ply:      c.ply,
		Player:   c.pos.Cell(m.Index()),
		Move:     m,
		Source:   src,
		Scores:   scores,
		Position: c.pos,
	}
	for _, o := range c.observers {
		o.OnMove(ev)
	}
	if c.pos.Outcome().Terminal() {
		c.finish()
	}
	return nil
}

func (c *Controller) finish() {
	c.state = Terminal
	outcome := c.pos.Outcome()
	log.Infof("game over after %d plies: %s", c.ply, outcome)
	for _, o := range c.observers {
		o.OnFinished(outcome)
	}
}
