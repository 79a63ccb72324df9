package battleship

import (
	"io"

	"github.com/charmbracelet/log"
)

var discardLogger = log.New(io.Discard)

// zeroRandom always picks the first option: anchor (0,0), horizontal.
type zeroRandom struct{}

func (zeroRandom) Intn(int) int { return 0 }

func cellsWithState(board Board, state CellState) []Coordinates {
	var out []Coordinates
	for y := 0; y < board.Size(); y++ {
		for x := 0; x < board.Size(); x++ {
			if board.cells[y][x].State == state {
				out = append(out, NewCoordinates(x, y))
			}
		}
	}
	return out
}

func cellsOfShip(board Board, shipId string) []Coordinates {
	var out []Coordinates
	for y := 0; y < board.Size(); y++ {
		for x := 0; x < board.Size(); x++ {
			if board.cells[y][x].ShipId == shipId {
				out = append(out, NewCoordinates(x, y))
			}
		}
	}
	return out
}

// Builds a small board with a destroyer at (1,1)-(2,1) and a
// cruiser at (5,3)-(5,5).
func testBoardAndFleet() (Board, Fleet, Ship, Ship) {
	fleet := NewFleet([]RosterEntry{{ShipTypeDestroyer, 2}, {ShipTypeCruiser, 3}})
	ships := fleet.Ships()
	destroyer, cruiser := ships[0], ships[1]

	board := newEmptyBoard(GridSizeSmall)
	board.set(NewCoordinates(1, 1), Cell{State: CellOccupied, ShipId: destroyer.Id})
	board.set(NewCoordinates(2, 1), Cell{State: CellOccupied, ShipId: destroyer.Id})
	for y := 3; y <= 5; y++ {
		board.set(NewCoordinates(5, y), Cell{State: CellOccupied, ShipId: cruiser.Id})
	}

	destroyer.Placed = true
	cruiser.Placed = true
	fleet.ships[destroyer.Id] = destroyer
	fleet.ships[cruiser.Id] = cruiser
	return board, fleet, destroyer, cruiser
}

// Lays the whole roster of size out horizontally, one ship on
// every other row starting at x=0, so no two ships touch.
func testRosterBoardAndFleet(size BoardSize) (Board, Fleet) {
	fleet := NewFleet(size.Roster())
	board := newEmptyBoard(size.GridSize())

	for i, ship := range fleet.Ships() {
		for x := 0; x < ship.Length; x++ {
			board.set(NewCoordinates(x, i*2), Cell{State: CellOccupied, ShipId: ship.Id})
		}
		ship.Placed = true
		fleet.ships[ship.Id] = ship
	}
	return board, fleet
}
