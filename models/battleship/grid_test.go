package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

func TestNewBoard(t *testing.T) {
	tests := []struct {
		name        string
		gridSize    int
		expectedErr error
	}{
		{name: "small", gridSize: GridSizeSmall},
		{name: "medium", gridSize: GridSizeMedium},
		{name: "large", gridSize: GridSizeLarge},
		{name: "unsupported size", gridSize: 9, expectedErr: cerr.ErrInvalidBoardSize},
		{name: "zero size", gridSize: 0, expectedErr: cerr.ErrInvalidBoardSize},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board, err := NewBoard(test.gridSize)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected err: %v\tgot: %v", test.expectedErr, err)
			}
			if err != nil {
				return
			}

			if board.Size() != test.gridSize {
				t.Fatalf("expected size: %d\tgot: %d", test.gridSize, board.Size())
			}
			if empty := board.Count(CellEmpty); empty != test.gridSize*test.gridSize {
				t.Fatalf("expected empty cells: %d\tgot: %d", test.gridSize*test.gridSize, empty)
			}
		})
	}
}

func TestBoardCellOutOfBound(t *testing.T) {
	board, _ := NewBoard(GridSizeSmall)

	for _, c := range []Coordinates{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, 100}} {
		if _, err := board.Cell(c); !errors.Is(err, cerr.ErrInvalidCoordinate) {
			t.Fatalf("expected invalid coordinate for %+v\tgot: %v", c, err)
		}
	}
}

func TestBoardWithDoesNotMutate(t *testing.T) {
	board, _ := NewBoard(GridSizeSmall)
	c := NewCoordinates(3, 4)

	next := board.with(c, Cell{State: CellMiss})

	before, _ := board.Cell(c)
	after, _ := next.Cell(c)
	if before.State != CellEmpty {
		t.Fatalf("original board changed: %s", before.State)
	}
	if after.State != CellMiss {
		t.Fatalf("expected miss on new board\tgot: %s", after.State)
	}
}

func TestBoardMasked(t *testing.T) {
	board, _, destroyer, _ := testBoardAndFleet()
	board = board.with(NewCoordinates(1, 1), Cell{State: CellHit, ShipId: destroyer.Id})
	board = board.with(NewCoordinates(0, 0), Cell{State: CellMiss})

	masked := board.Masked()
	for y := range masked {
		for x := range masked[y] {
			if masked[y][x].State == CellOccupied {
				t.Fatalf("occupied cell visible at x: %d y: %d", x, y)
			}
		}
	}

	if masked[1][1].State != CellHit {
		t.Fatalf("expected hit to stay visible\tgot: %s", masked[1][1].State)
	}
	if masked[0][0].State != CellMiss {
		t.Fatalf("expected miss to stay visible\tgot: %s", masked[0][0].State)
	}
	if board.Count(CellOccupied) != 4 {
		t.Fatalf("masking changed the board")
	}
}
