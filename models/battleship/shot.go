package battleship

import "fmt"

type ShotOutcome uint8

const (
	ShotMiss ShotOutcome = iota
	ShotHit
	// The position was already hit or missed. Nothing changes
	// and the turn must not advance.
	ShotRejected
)

func (so ShotOutcome) String() string {
	switch so {
	case ShotMiss:
		return "miss"
	case ShotHit:
		return "hit"
	case ShotRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

func (so ShotOutcome) MarshalText() ([]byte, error) {
	return []byte(so.String()), nil
}

func (so *ShotOutcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "miss":
		*so = ShotMiss
	case "hit":
		*so = ShotHit
	case "rejected":
		*so = ShotRejected
	default:
		return fmt.Errorf("unknown shot outcome: %s", text)
	}
	return nil
}

type ShotResult struct {
	Board   Board
	Fleet   Fleet
	Outcome ShotOutcome
	// Set only when this shot sank the ship
	SunkShipId string
}

func (sr ShotResult) IsSunk() bool {
	return sr.SunkShipId != ""
}

// ResolveShot applies a shot at c to the board and fleet of the
// defending side. The inputs are left untouched; the result holds
// the new board and fleet.
func ResolveShot(board Board, fleet Fleet, c Coordinates) (ShotResult, error) {
	cell, err := board.Cell(c)
	if err != nil {
		return ShotResult{}, err
	}

	switch cell.State {
	case CellHit, CellMiss:
		return ShotResult{Board: board, Fleet: fleet, Outcome: ShotRejected}, nil

	case CellOccupied:
		ship, err := fleet.Ship(cell.ShipId)
		if err != nil {
			return ShotResult{}, err
		}
		wasSunk := ship.Sunk
		ship = ship.gotHit()

		result := ShotResult{
			Board:   board.with(c, Cell{State: CellHit, ShipId: cell.ShipId}),
			Fleet:   fleet.with(ship),
			Outcome: ShotHit,
		}
		if ship.Sunk && !wasSunk {
			result.SunkShipId = ship.Id
		}
		return result, nil

	default:
		return ShotResult{
			Board:   board.with(c, Cell{State: CellMiss}),
			Fleet:   fleet,
			Outcome: ShotMiss,
		}, nil
	}
}
