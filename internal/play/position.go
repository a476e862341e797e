// Package play drives a game between the policy network and a human.
package play

import "gomoku_go/internal/game"

// Position is what the controller needs from the rules engine.
// *game.GameState implements it.
type Position interface {
	game.CellReader
	// LegalMoves calls yield for each legal move until yield returns false.
	LegalMoves(yield func(game.Move) bool)
	Apply(m game.Move) error
	Outcome() game.Outcome
	String() string
}

var _ Position = (*game.GameState)(nil)
