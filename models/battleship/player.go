package battleship

import (
	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

type Side string

const (
	SidePlayer1 Side = "player1"
	SidePlayer2 Side = "player2"
	SideAgent   Side = "agent"
)

type OpponentMode string

const (
	OpponentModeAgent OpponentMode = "vsAgent"
	OpponentModeHuman OpponentMode = "vsSecondHuman"
)

func ParseOpponentMode(s string) (OpponentMode, error) {
	mode := OpponentMode(s)
	if mode != OpponentModeAgent && mode != OpponentModeHuman {
		return "", cerr.ErrOpponentModeInvalid(s)
	}
	return mode, nil
}

// The side playing against player 1 in this mode
func (om OpponentMode) Opponent() Side {
	if om == OpponentModeHuman {
		return SidePlayer2
	}
	return SideAgent
}

// Board and fleet slots in the session. Player 1 always owns
// slot 0; whoever plays against them owns slot 1.
const (
	slotPlayer1 = iota
	slotOpponent
)

func slotOf(side Side) int {
	if side == SidePlayer1 {
		return slotPlayer1
	}
	return slotOpponent
}

type Outcome struct {
	Mode   OpponentMode `json:"mode"`
	Winner Side         `json:"winner"`
	Loser  Side         `json:"loser"`
}

// Headline frames the result from the human's point of view when
// playing the agent, and by player number otherwise.
func (o Outcome) Headline() string {
	if o.Mode == OpponentModeAgent {
		if o.Winner == SidePlayer1 {
			return "YOU WIN!"
		}
		return "YOU LOSE!"
	}

	if o.Winner == SidePlayer1 {
		return "Player 1 Wins!"
	}
	return "Player 2 Wins!"
}
