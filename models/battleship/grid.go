package battleship

import (
	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

type CellState uint8

const (
	// Never targeted
	CellEmpty CellState = iota
	// Untargeted ship segment
	CellOccupied
	// Targeted ship segment
	CellHit
	// Targeted empty position
	CellMiss
)

func (cs CellState) String() string {
	switch cs {
	case CellEmpty:
		return "empty"
	case CellOccupied:
		return "occupied"
	case CellHit:
		return "hit"
	case CellMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// A position on the board is already targeted when it
// holds either a hit or a miss.
func (cs CellState) IsTargeted() bool {
	return cs == CellHit || cs == CellMiss
}

type Cell struct {
	State  CellState `json:"state"`
	ShipId string    `json:"ship_id,omitempty"`
}

type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

// Board is the grid of one side. It is indexed as cells[y][x].
// Every change produces a new Board; a Board value that was handed
// out is never modified afterwards.
type Board struct {
	size  int
	cells [][]Cell
}

// Creates a new board with all positions empty.
func NewBoard(gridSize int) (Board, error) {
	if _, err := BoardSizeFromGrid(gridSize); err != nil {
		return Board{}, err
	}
	return newEmptyBoard(gridSize), nil
}

func newEmptyBoard(gridSize int) Board {
	cells := make([][]Cell, gridSize)
	for i := 0; i < gridSize; i++ {
		cells[i] = make([]Cell, gridSize)
	}
	return Board{size: gridSize, cells: cells}
}

func (b Board) Size() int {
	return b.size
}

func (b Board) InBounds(c Coordinates) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < b.size && c.Y < b.size
}

func (b Board) Cell(c Coordinates) (Cell, error) {
	if !b.InBounds(c) {
		return Cell{}, cerr.ErrXorYOutOfGridBound(c.X, c.Y)
	}
	return b.cells[c.Y][c.X], nil
}

// Cells returns a copy of the grid for the presentation layer.
func (b Board) Cells() [][]Cell {
	out := make([][]Cell, b.size)
	for y := range b.cells {
		out[y] = make([]Cell, b.size)
		copy(out[y], b.cells[y])
	}
	return out
}

// Masked hides the ships that have not been hit yet. This is how
// the opponent sees this board.
func (b Board) Masked() [][]Cell {
	out := b.Cells()
	for y := range out {
		for x := range out[y] {
			if out[y][x].State == CellOccupied {
				out[y][x] = Cell{State: CellEmpty}
			}
		}
	}
	return out
}

func (b Board) Count(state CellState) int {
	var count int
	for y := range b.cells {
		for x := range b.cells[y] {
			if b.cells[y][x].State == state {
				count++
			}
		}
	}
	return count
}

// with returns a copy of the board where c holds cell.
// Rows that do not change are shared between the two values,
// which is safe since rows are never written after creation.
func (b Board) with(c Coordinates, cell Cell) Board {
	rows := make([][]Cell, b.size)
	copy(rows, b.cells)

	row := make([]Cell, b.size)
	copy(row, b.cells[c.Y])
	row[c.X] = cell
	rows[c.Y] = row

	return Board{size: b.size, cells: rows}
}

// occupiedNear reports whether any ship segment sits on c or on
// one of its 8 neighbours.
func (b Board) occupiedNear(c Coordinates) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			n := NewCoordinates(c.X+dx, c.Y+dy)
			if !b.InBounds(n) {
				continue
			}
			if b.cells[n.Y][n.X].State == CellOccupied {
				return true
			}
		}
	}
	return false
}

// set writes cell in place. Only used on a board that has
// not been handed out yet, such as during fleet placement.
func (b Board) set(c Coordinates, cell Cell) {
	b.cells[c.Y][c.X] = cell
}
