package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

func TestRandomAgentChooseMove(t *testing.T) {
	board, _, _, _ := testBoardAndFleet()
	// target everything but the last row
	for y := 0; y < board.Size()-1; y++ {
		for x := 0; x < board.Size(); x++ {
			board = board.with(NewCoordinates(x, y), Cell{State: CellMiss})
		}
	}

	agent := NewRandomAgent(NewRandom(3))
	for i := 0; i < 20; i++ {
		c, err := agent.ChooseMove(board)
		if err != nil {
			// 64 attempts on 8 free cells out of 64 may miss; that
			// path is covered below
			if !errors.Is(err, cerr.ErrAgentMoveExhausted) {
				t.Fatal(err)
			}
			continue
		}

		cell, err := board.Cell(c)
		if err != nil {
			t.Fatal(err)
		}
		if cell.State.IsTargeted() {
			t.Fatalf("agent chose targeted cell %+v", c)
		}
	}
}

func TestRandomAgentExhausted(t *testing.T) {
	board := newEmptyBoard(GridSizeSmall)
	for y := 0; y < board.Size(); y++ {
		for x := 0; x < board.Size(); x++ {
			board = board.with(NewCoordinates(x, y), Cell{State: CellMiss})
		}
	}

	_, err := NewRandomAgent(NewRandom(1)).ChooseMove(board)
	if !errors.Is(err, cerr.ErrAgentMoveExhausted) {
		t.Fatalf("expected agent move exhausted\tgot: %v", err)
	}
}
