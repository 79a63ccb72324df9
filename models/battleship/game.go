package battleship

type Phase string

const (
	PhaseStart        Phase = "start"
	PhaseSelectSize   Phase = "selectSize"
	PhasePlaying      Phase = "playing"
	PhaseChangePlayer Phase = "changePlayer"
	PhaseWinLoss      Phase = "winLoss"
)

// GameSession is the whole state of one game. It is owned by a
// Controller and only ever changed while holding its lock.
type GameSession struct {
	Size BoardSize
	Mode OpponentMode

	Phase Phase
	// The side whose screen is shown while playing
	View Side
	// The side that is allowed to shoot
	Turn Side

	boards   [2]Board
	fleets   [2]Fleet
	sunk     [2]int
	outcome  *Outcome
	lastShot *ShotReport
}

func newGameSession() GameSession {
	return GameSession{
		Size:  DefaultBoardSize,
		Phase: PhaseStart,
		View:  SidePlayer1,
		Turn:  SidePlayer1,
	}
}

// Board returns the board owned by side.
func (gs *GameSession) Board(side Side) Board {
	return gs.boards[slotOf(side)]
}

func (gs *GameSession) Fleet(side Side) Fleet {
	return gs.fleets[slotOf(side)]
}

// SunkCounter returns how many ships of side's fleet are sunk.
func (gs *GameSession) SunkCounter(side Side) int {
	return gs.sunk[slotOf(side)]
}

func (gs *GameSession) Opponent(side Side) Side {
	if side != SidePlayer1 {
		return SidePlayer1
	}
	return gs.Mode.Opponent()
}

// Sides returns player 1 followed by the opponent.
func (gs *GameSession) Sides() []Side {
	return []Side{SidePlayer1, gs.Mode.Opponent()}
}

func (gs *GameSession) Outcome() (Outcome, bool) {
	if gs.outcome == nil {
		return Outcome{}, false
	}
	return *gs.outcome, true
}

type SideSnapshot struct {
	Side      Side   `json:"side"`
	Board     Board  `json:"-"`
	Ships     []Ship `json:"ships"`
	ShipsSunk int    `json:"ships_sunk"`
}

// Snapshot is what the presentation layer gets to draw.
type Snapshot struct {
	Phase      Phase          `json:"phase"`
	Mode       OpponentMode   `json:"mode"`
	Size       BoardSize      `json:"size"`
	GridSize   int            `json:"grid_size"`
	View       Side           `json:"view"`
	Turn       Side           `json:"turn"`
	RosterSize int            `json:"roster_size"`
	Sides      []SideSnapshot `json:"sides"`
	Outcome    *Outcome       `json:"outcome,omitempty"`
	HandOff    string         `json:"hand_off,omitempty"`
	LastShot   *ShotReport    `json:"last_shot,omitempty"`
}

func (gs *GameSession) snapshot() Snapshot {
	snap := Snapshot{
		Phase:      gs.Phase,
		Mode:       gs.Mode,
		Size:       gs.Size,
		GridSize:   gs.Size.GridSize(),
		View:       gs.View,
		Turn:       gs.Turn,
		RosterSize: gs.Size.RosterSize(),
	}

	if gs.Phase == PhasePlaying || gs.Phase == PhaseChangePlayer || gs.Phase == PhaseWinLoss {
		for _, side := range gs.Sides() {
			snap.Sides = append(snap.Sides, SideSnapshot{
				Side:      side,
				Board:     gs.Board(side),
				Ships:     gs.Fleet(side).Ships(),
				ShipsSunk: gs.SunkCounter(side),
			})
		}
	}

	if outcome, ok := gs.Outcome(); ok {
		snap.Outcome = &outcome
	}
	if gs.lastShot != nil {
		shot := *gs.lastShot
		snap.LastShot = &shot
	}

	if gs.Phase == PhaseChangePlayer {
		if gs.Turn == SidePlayer2 {
			snap.HandOff = "Player 2's Turn!"
		} else {
			snap.HandOff = "Player 1's Turn"
		}
	}
	return snap
}

// Side returns the snapshot of one side, if boards exist.
func (s Snapshot) Side(side Side) (SideSnapshot, bool) {
	for _, ss := range s.Sides {
		if ss.Side == side {
			return ss, true
		}
	}
	return SideSnapshot{}, false
}
