package battleship

import (
	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

type ShipType string

const (
	ShipTypeMothership ShipType = "mothership"
	ShipTypeCarrier    ShipType = "carrier"
	ShipTypeBattleship ShipType = "battleship"
	ShipTypeCruiser    ShipType = "cruiser"
	ShipTypeSubmarine  ShipType = "submarine"
	ShipTypeDestroyer  ShipType = "destroyer"
)

type Ship struct {
	Id     string   `json:"id"`
	Type   ShipType `json:"type"`
	Length int      `json:"length"`
	Hits   int      `json:"hits"`
	Sunk   bool     `json:"sunk"`
	Placed bool     `json:"placed"`
}

func NewShip(id string, shipType ShipType, length int) Ship {
	return Ship{
		Id:     id,
		Type:   shipType,
		Length: length,
	}
}

// gotHit returns the ship after one more hit. Once sunk, the
// ship stays sunk.
func (sh Ship) gotHit() Ship {
	sh.Hits++
	if sh.Hits >= sh.Length {
		sh.Sunk = true
	}
	return sh
}

// Fleet is the set of ships of one side, keyed by ship id and
// kept in roster order. Like Board, it is replaced rather than
// mutated once handed out.
type Fleet struct {
	ships map[string]Ship
	order []string
}

func NewFleet(roster []RosterEntry) Fleet {
	fleet := Fleet{
		ships: make(map[string]Ship, len(roster)),
		order: make([]string, 0, len(roster)),
	}

	for _, entry := range roster {
		id := uuid.NewString()[:8]
		for fleet.has(id) {
			id = uuid.NewString()[:8]
		}

		fleet.ships[id] = NewShip(id, entry.Type, entry.Length)
		fleet.order = append(fleet.order, id)
	}
	return fleet
}

func (f Fleet) Len() int {
	return len(f.order)
}

func (f Fleet) has(id string) bool {
	_, prs := f.ships[id]
	return prs
}

func (f Fleet) Ship(id string) (Ship, error) {
	ship, prs := f.ships[id]
	if !prs {
		return Ship{}, cerr.ErrShipNotExist(id)
	}
	return ship, nil
}

// Ships returns the ships in roster order.
func (f Fleet) Ships() []Ship {
	ships := make([]Ship, 0, len(f.order))
	for _, id := range f.order {
		ships = append(ships, f.ships[id])
	}
	return ships
}

func (f Fleet) SunkCount() int {
	var sunk int
	for _, ship := range f.ships {
		if ship.Sunk {
			sunk++
		}
	}
	return sunk
}

func (f Fleet) PlacedCount() int {
	var placed int
	for _, ship := range f.ships {
		if ship.Placed {
			placed++
		}
	}
	return placed
}

// with returns a new fleet where the ship with the same id is
// replaced by ship.
func (f Fleet) with(ship Ship) Fleet {
	ships := make(map[string]Ship, len(f.ships))
	for id, sh := range f.ships {
		ships[id] = sh
	}
	ships[ship.Id] = ship

	return Fleet{ships: ships, order: f.order}
}
