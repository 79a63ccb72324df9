package connection

import (
	mb "github.com/saeidalz13/battleship-engine/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespBoard struct {
	Side      mb.Side   `json:"side"`
	Grid      [][]uint8 `json:"grid"`
	ShipsSunk int       `json:"ships_sunk"`
	// Only present on a board whose ships are visible
	Ships []mb.Ship `json:"ships,omitempty"`
}

type RespOutcome struct {
	Winner   mb.Side `json:"winner"`
	Loser    mb.Side `json:"loser"`
	Headline string  `json:"headline"`
}

type RespState struct {
	Phase      mb.Phase        `json:"phase"`
	Mode       mb.OpponentMode `json:"mode,omitempty"`
	Size       mb.BoardSize    `json:"size"`
	GridSize   int             `json:"grid_size"`
	View       mb.Side         `json:"view"`
	Turn       mb.Side         `json:"turn"`
	RosterSize int             `json:"roster_size"`
	Boards     []RespBoard     `json:"boards,omitempty"`
	Outcome    *RespOutcome    `json:"outcome,omitempty"`
	HandOff    string          `json:"hand_off,omitempty"`
	LastShot   *mb.ShotReport  `json:"last_shot,omitempty"`
}

// NewRespState turns a snapshot into what the client may see. Ships
// are only shown on the board of the side holding the screen, none
// during a hand-off, and all of them once the game is over.
func NewRespState(snap mb.Snapshot) RespState {
	resp := RespState{
		Phase:      snap.Phase,
		Mode:       snap.Mode,
		Size:       snap.Size,
		GridSize:   snap.GridSize,
		View:       snap.View,
		Turn:       snap.Turn,
		RosterSize: snap.RosterSize,
		HandOff:    snap.HandOff,
		LastShot:   snap.LastShot,
	}

	for _, ss := range snap.Sides {
		visible := snap.Phase == mb.PhaseWinLoss || (snap.Phase == mb.PhasePlaying && ss.Side == snap.View)

		var cells [][]mb.Cell
		if visible {
			cells = ss.Board.Cells()
		} else {
			cells = ss.Board.Masked()
		}

		board := RespBoard{
			Side:      ss.Side,
			Grid:      newGrid(cells),
			ShipsSunk: ss.ShipsSunk,
		}
		if visible {
			board.Ships = ss.Ships
		}
		resp.Boards = append(resp.Boards, board)
	}

	if snap.Outcome != nil {
		resp.Outcome = &RespOutcome{
			Winner:   snap.Outcome.Winner,
			Loser:    snap.Outcome.Loser,
			Headline: snap.Outcome.Headline(),
		}
	}
	return resp
}

func newGrid(cells [][]mb.Cell) [][]uint8 {
	grid := make([][]uint8, len(cells))
	for y := range cells {
		grid[y] = make([]uint8, len(cells[y]))
		for x := range cells[y] {
			grid[y][x] = uint8(cells[y][x].State)
		}
	}
	return grid
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
