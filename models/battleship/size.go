package battleship

import (
	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

type BoardSize string

const (
	BoardSizeSmall  BoardSize = "small"
	BoardSizeMedium BoardSize = "medium"
	BoardSizeLarge  BoardSize = "large"
)

const (
	GridSizeSmall  int = 8
	GridSizeMedium int = 10
	GridSizeLarge  int = 12
)

// The size that is selected when the size selection screen opens
const DefaultBoardSize = BoardSizeMedium

type RosterEntry struct {
	Type   ShipType
	Length int
}

var rosters = map[BoardSize][]RosterEntry{
	BoardSizeSmall: {
		{ShipTypeBattleship, 4},
		{ShipTypeCruiser, 3},
		{ShipTypeSubmarine, 3},
		{ShipTypeDestroyer, 2},
	},
	BoardSizeMedium: {
		{ShipTypeCarrier, 5},
		{ShipTypeBattleship, 4},
		{ShipTypeCruiser, 3},
		{ShipTypeSubmarine, 3},
		{ShipTypeDestroyer, 2},
	},
	BoardSizeLarge: {
		{ShipTypeMothership, 6},
		{ShipTypeCarrier, 5},
		{ShipTypeBattleship, 4},
		{ShipTypeCruiser, 3},
		{ShipTypeSubmarine, 3},
		{ShipTypeDestroyer, 2},
	},
}

func ParseBoardSize(s string) (BoardSize, error) {
	size := BoardSize(s)
	if !size.IsValid() {
		return "", cerr.ErrBoardSizeInvalid(s)
	}
	return size, nil
}

func BoardSizeFromGrid(gridSize int) (BoardSize, error) {
	switch gridSize {
	case GridSizeSmall:
		return BoardSizeSmall, nil
	case GridSizeMedium:
		return BoardSizeMedium, nil
	case GridSizeLarge:
		return BoardSizeLarge, nil
	default:
		return "", cerr.ErrBoardSizeInvalid(gridSize)
	}
}

func (bs BoardSize) IsValid() bool {
	_, prs := rosters[bs]
	return prs
}

// GridSize returns the board dimension, or 0 for an invalid size.
func (bs BoardSize) GridSize() int {
	switch bs {
	case BoardSizeSmall:
		return GridSizeSmall
	case BoardSizeMedium:
		return GridSizeMedium
	case BoardSizeLarge:
		return GridSizeLarge
	default:
		return 0
	}
}

// Roster returns a copy of the ship list for this size.
func (bs BoardSize) Roster() []RosterEntry {
	roster := rosters[bs]
	out := make([]RosterEntry, len(roster))
	copy(out, roster)
	return out
}

// Number of sunken ships that ends the game
func (bs BoardSize) RosterSize() int {
	return len(rosters[bs])
}
