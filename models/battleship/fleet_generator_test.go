package battleship

import (
	"testing"
)

func chebyshev(a, b Coordinates) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

func TestPlaceFleet(t *testing.T) {
	tests := []struct {
		name         string
		size         BoardSize
		expectedLens []int
	}{
		{name: "small", size: BoardSizeSmall, expectedLens: []int{4, 3, 3, 2}},
		{name: "medium", size: BoardSizeMedium, expectedLens: []int{5, 4, 3, 3, 2}},
		{name: "large", size: BoardSizeLarge, expectedLens: []int{6, 5, 4, 3, 3, 2}},
	}

	for _, test := range tests {
		for seed := int64(1); seed <= 20; seed++ {
			t.Run(test.name, func(t *testing.T) {
				fg := NewFleetGenerator(NewRandom(seed), discardLogger)
				fleet, board, err := fg.PlaceFleet(test.size)
				if err != nil {
					t.Fatal(err)
				}

				if board.Size() != test.size.GridSize() {
					t.Fatalf("expected grid size: %d\tgot: %d", test.size.GridSize(), board.Size())
				}

				ships := fleet.Ships()
				if len(ships) != len(test.expectedLens) {
					t.Fatalf("expected ships: %d\tgot: %d", len(test.expectedLens), len(ships))
				}

				placedCells := 0
				for i, ship := range ships {
					if ship.Length != test.expectedLens[i] {
						t.Fatalf("expected length: %d\tgot: %d", test.expectedLens[i], ship.Length)
					}
					if ship.Hits != 0 || ship.Sunk {
						t.Fatalf("new ship must be intact: %+v", ship)
					}

					cells := cellsOfShip(board, ship.Id)
					if ship.Placed {
						placedCells += ship.Length
						if len(cells) != ship.Length {
							t.Fatalf("expected %d cells for %s\tgot: %d", ship.Length, ship.Type, len(cells))
						}
					} else if len(cells) != 0 {
						t.Fatalf("unplaced ship %s found on board", ship.Type)
					}
				}

				if occupied := board.Count(CellOccupied); occupied != placedCells {
					t.Fatalf("expected occupied cells: %d\tgot: %d", placedCells, occupied)
				}

				occupied := cellsWithState(board, CellOccupied)
				for _, a := range occupied {
					for _, b := range occupied {
						ca, _ := board.Cell(a)
						cb, _ := board.Cell(b)
						if ca.ShipId != cb.ShipId && chebyshev(a, b) <= 1 {
							t.Fatalf("ships touch at %+v and %+v", a, b)
						}
					}
				}
			})
		}
	}
}

func TestPlaceFleetSmallScenario(t *testing.T) {
	fg := NewFleetGenerator(NewRandom(42), discardLogger)
	fleet, board, err := fg.PlaceFleet(BoardSizeSmall)
	if err != nil {
		t.Fatal(err)
	}

	if fleet.PlacedCount() != 4 {
		t.Fatalf("expected all 4 ships placed\tgot: %d", fleet.PlacedCount())
	}
	if occupied := board.Count(CellOccupied); occupied != 12 {
		t.Fatalf("expected occupied cells: %d\tgot: %d", 12, occupied)
	}

	for _, ship := range fleet.Ships() {
		for _, c := range cellsOfShip(board, ship.Id) {
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					n, err := board.Cell(NewCoordinates(c.X+dx, c.Y+dy))
					if err != nil {
						continue
					}
					if n.State == CellOccupied && n.ShipId != ship.Id {
						t.Fatalf("%s touches another ship around %+v", ship.Type, c)
					}
				}
			}
		}
	}
}

func TestPlaceFleetExhausted(t *testing.T) {
	// Every attempt lands on (0,0) horizontal, so only the first
	// ship can ever be placed.
	fg := NewFleetGenerator(zeroRandom{}, discardLogger)
	fleet, board, err := fg.PlaceFleet(BoardSizeSmall)
	if err != nil {
		t.Fatal(err)
	}

	if fleet.Len() != 4 {
		t.Fatalf("unplaced ships must stay in the fleet, got %d ships", fleet.Len())
	}
	if fleet.PlacedCount() != 1 {
		t.Fatalf("expected placed ships: %d\tgot: %d", 1, fleet.PlacedCount())
	}
	if occupied := board.Count(CellOccupied); occupied != 4 {
		t.Fatalf("expected occupied cells: %d\tgot: %d", 4, occupied)
	}

	for _, ship := range fleet.Ships()[1:] {
		if ship.Placed || ship.Hits != 0 {
			t.Fatalf("expected unplaced intact ship\tgot: %+v", ship)
		}
	}
}

func TestPlaceFleetInvalidSize(t *testing.T) {
	fg := NewFleetGenerator(NewRandom(1), discardLogger)
	if _, _, err := fg.PlaceFleet(BoardSize("huge")); err == nil {
		t.Fatal("expected error for invalid size")
	}
}

func TestPlaceFleetSidesUncorrelated(t *testing.T) {
	fg := NewFleetGenerator(NewRandom(7), discardLogger)
	_, first, _ := fg.PlaceFleet(BoardSizeMedium)
	_, second, _ := fg.PlaceFleet(BoardSizeMedium)

	same := true
	for y := 0; y < first.Size() && same; y++ {
		for x := 0; x < first.Size(); x++ {
			a, _ := first.Cell(NewCoordinates(x, y))
			b, _ := second.Cell(NewCoordinates(x, y))
			if a.State != b.State {
				same = false
				break
			}
		}
	}
	if same {
		t.Fatal("two consecutive placements produced the same layout")
	}
}
