package battleship

import (
	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

// Strategy decides where the agent shoots next on the human's board.
type Strategy interface {
	ChooseMove(board Board) (Coordinates, error)
}

// RandomAgent samples positions uniformly and keeps the first one
// that has not been targeted yet.
type RandomAgent struct {
	rnd Random
}

var _ Strategy = (*RandomAgent)(nil)

func NewRandomAgent(rnd Random) *RandomAgent {
	return &RandomAgent{rnd: rnd}
}

func (ra *RandomAgent) ChooseMove(board Board) (Coordinates, error) {
	maxAttempts := board.Size() * board.Size()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		c := NewCoordinates(ra.rnd.Intn(board.Size()), ra.rnd.Intn(board.Size()))

		cell, err := board.Cell(c)
		if err != nil {
			return Coordinates{}, err
		}
		if !cell.State.IsTargeted() {
			return c, nil
		}
	}
	return Coordinates{}, cerr.ErrAgentNoMove(maxAttempts)
}
