package battleship

import (
	"github.com/charmbracelet/log"
	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

const MaxPlacementAttempts = 100

type Orientation uint8

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

type FleetGenerator struct {
	rnd         Random
	maxAttempts int
	logger      *log.Logger
}

func NewFleetGenerator(rnd Random, logger *log.Logger) *FleetGenerator {
	if logger == nil {
		logger = log.Default()
	}
	return &FleetGenerator{
		rnd:         rnd,
		maxAttempts: MaxPlacementAttempts,
		logger:      logger,
	}
}

// PlaceFleet builds the roster of size and places every ship on a
// fresh board. Ships never touch each other, diagonals included.
// A ship that cannot be placed within the attempt budget stays in
// the fleet with Placed set to false and is left off the board.
func (fg *FleetGenerator) PlaceFleet(size BoardSize) (Fleet, Board, error) {
	if !size.IsValid() {
		return Fleet{}, Board{}, cerr.ErrBoardSizeInvalid(size)
	}

	fleet := NewFleet(size.Roster())
	board := newEmptyBoard(size.GridSize())

	for _, ship := range fleet.Ships() {
		cells, err := fg.findPlacement(board, ship)
		if err != nil {
			fg.logger.Warn("failed to place ship", "type", ship.Type, "length", ship.Length, "err", err)
			continue
		}

		for _, c := range cells {
			board.set(c, Cell{State: CellOccupied, ShipId: ship.Id})
		}
		ship.Placed = true
		fleet.ships[ship.Id] = ship
	}

	return fleet, board, nil
}

func (fg *FleetGenerator) findPlacement(board Board, ship Ship) ([]Coordinates, error) {
	for attempt := 0; attempt < fg.maxAttempts; attempt++ {
		anchor := NewCoordinates(fg.rnd.Intn(board.size), fg.rnd.Intn(board.size))
		orientation := Orientation(fg.rnd.Intn(2))

		cells := shipCells(anchor, orientation, ship.Length)
		if canPlace(board, cells) {
			return cells, nil
		}
	}
	return nil, cerr.ErrShipNotPlaced(string(ship.Type), fg.maxAttempts)
}

// Ships grow to the right when horizontal and downwards when vertical.
func shipCells(anchor Coordinates, orientation Orientation, length int) []Coordinates {
	cells := make([]Coordinates, length)
	for i := 0; i < length; i++ {
		if orientation == OrientationVertical {
			cells[i] = NewCoordinates(anchor.X, anchor.Y+i)
		} else {
			cells[i] = NewCoordinates(anchor.X+i, anchor.Y)
		}
	}
	return cells
}

func canPlace(board Board, cells []Coordinates) bool {
	for _, c := range cells {
		if !board.InBounds(c) {
			return false
		}
		if board.occupiedNear(c) {
			return false
		}
	}
	return true
}
