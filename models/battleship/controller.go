package battleship

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	cerr "github.com/saeidalz13/battleship-engine/internal/error"
)

// Delay before the agent answers a shot. It only gives the
// renderer time to show the human's shot first.
const DefaultAgentDelay = time.Second

type ShotReport struct {
	Shooter    Side        `json:"shooter"`
	Target     Coordinates `json:"target"`
	Outcome    ShotOutcome `json:"outcome"`
	SunkShipId string      `json:"sunk_ship_id,omitempty"`
}

type ControllerOption func(*Controller)

func WithRandom(rnd Random) ControllerOption {
	return func(c *Controller) {
		c.generator = NewFleetGenerator(rnd, c.logger)
		c.agent = NewRandomAgent(rnd)
	}
}

func WithStrategy(strategy Strategy) ControllerOption {
	return func(c *Controller) {
		c.agent = strategy
	}
}

// A zero or negative delay makes the agent move synchronously
// within the human's Shoot call.
func WithAgentDelay(delay time.Duration) ControllerOption {
	return func(c *Controller) {
		c.agentDelay = delay
	}
}

func WithLogger(logger *log.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
		if c.generator != nil {
			c.generator.logger = logger
		}
	}
}

// Controller sequences the phases of one game session. It is the
// only owner of the GameSession and serialises every event,
// including the deferred agent move.
type Controller struct {
	mu         sync.Mutex
	session    GameSession
	generator  *FleetGenerator
	agent      Strategy
	agentDelay time.Duration
	logger     *log.Logger

	// Bumped on every reset or new game. A deferred agent move
	// carrying an older epoch does nothing.
	epoch   uint64
	pending *time.Timer

	onUpdate []func(Snapshot)
}

func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		session:    newGameSession(),
		agentDelay: DefaultAgentDelay,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.generator == nil || c.agent == nil {
		rnd := NewTimeSeededRandom()
		if c.generator == nil {
			c.generator = NewFleetGenerator(rnd, c.logger)
		}
		if c.agent == nil {
			c.agent = NewRandomAgent(rnd)
		}
	}
	return c
}

// OnUpdate registers a callback fired after every state change,
// deferred agent moves included. Callbacks run outside the lock.
func (c *Controller) OnUpdate(fn func(Snapshot)) {
	c.mu.Lock()
	c.onUpdate = append(c.onUpdate, fn)
	c.mu.Unlock()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.snapshot()
}

func (c *Controller) PlayAI() error {
	return c.selectMode(OpponentModeAgent)
}

func (c *Controller) PlayFriend() error {
	return c.selectMode(OpponentModeHuman)
}

func (c *Controller) selectMode(mode OpponentMode) error {
	c.mu.Lock()
	if c.session.Phase != PhaseStart {
		phase := c.session.Phase
		c.mu.Unlock()
		return cerr.ErrPhaseMismatch(string(PhaseStart), string(phase))
	}

	c.session.Mode = mode
	c.session.Phase = PhaseSelectSize
	snap := c.session.snapshot()
	c.mu.Unlock()

	c.notify(snap)
	return nil
}

// ChooseSize places both fleets independently and starts the game
// with player 1 to shoot.
func (c *Controller) ChooseSize(size BoardSize) error {
	if !size.IsValid() {
		return cerr.ErrBoardSizeInvalid(size)
	}

	c.mu.Lock()
	if c.session.Phase != PhaseSelectSize {
		phase := c.session.Phase
		c.mu.Unlock()
		return cerr.ErrPhaseMismatch(string(PhaseSelectSize), string(phase))
	}

	for _, side := range c.session.Sides() {
		fleet, board, err := c.generator.PlaceFleet(size)
		if err != nil {
			c.mu.Unlock()
			return err
		}
		slot := slotOf(side)
		c.session.fleets[slot] = fleet
		c.session.boards[slot] = board
		c.session.sunk[slot] = 0
	}

	c.epoch++
	c.session.Size = size
	c.session.outcome = nil
	c.session.lastShot = nil
	c.session.Phase = PhasePlaying
	c.session.View = SidePlayer1
	c.session.Turn = SidePlayer1
	snap := c.session.snapshot()
	c.mu.Unlock()

	c.logger.Info("game started", "size", size, "mode", snap.Mode)
	c.notify(snap)
	return nil
}

// Shoot fires at the opponent of shooter. Shots from the wrong side
// or phase and shots at already targeted positions change nothing.
func (c *Controller) Shoot(shooter Side, target Coordinates) (ShotReport, error) {
	c.mu.Lock()
	if err := c.guardShot(shooter); err != nil {
		c.mu.Unlock()
		return ShotReport{}, err
	}

	report, err := c.applyShot(shooter, target)
	if err != nil {
		c.mu.Unlock()
		return report, err
	}

	if report.Outcome == ShotRejected {
		c.mu.Unlock()
		return report, cerr.ErrPositionAlreadyTargeted(target.X, target.Y)
	}

	if c.session.Phase == PhasePlaying {
		c.session.Turn = c.session.Opponent(shooter)
	}

	agentTurn := c.session.Phase == PhasePlaying && c.session.Turn == SideAgent
	epoch := c.epoch
	snap := c.session.snapshot()
	c.mu.Unlock()

	c.notify(snap)
	if agentTurn {
		c.scheduleAgentMove(epoch)
	}
	return report, nil
}

func (c *Controller) guardShot(shooter Side) error {
	gs := &c.session
	if gs.Phase != PhasePlaying {
		return cerr.ErrPhaseMismatch(string(PhasePlaying), string(gs.Phase))
	}
	if gs.Turn != shooter || gs.View != shooter {
		return cerr.ErrNotSideTurn(string(shooter), string(gs.Phase))
	}
	return nil
}

// applyShot resolves a shot against the opponent's board and checks
// for the end of the game. Must be called with the lock held.
func (c *Controller) applyShot(shooter Side, target Coordinates) (ShotReport, error) {
	gs := &c.session
	defender := gs.Opponent(shooter)
	slot := slotOf(defender)

	result, err := ResolveShot(gs.boards[slot], gs.fleets[slot], target)
	if err != nil {
		return ShotReport{}, err
	}

	report := ShotReport{
		Shooter:    shooter,
		Target:     target,
		Outcome:    result.Outcome,
		SunkShipId: result.SunkShipId,
	}
	if result.Outcome == ShotRejected {
		return report, nil
	}

	gs.boards[slot] = result.Board
	gs.fleets[slot] = result.Fleet
	gs.lastShot = &report
	if result.IsSunk() {
		gs.sunk[slot]++
	}

	c.checkWinLoss()
	return report, nil
}

// checkWinLoss ends the game once a side has lost its whole roster.
func (c *Controller) checkWinLoss() {
	gs := &c.session
	if gs.Phase == PhaseWinLoss {
		return
	}

	for _, side := range gs.Sides() {
		if gs.SunkCounter(side) < gs.Size.RosterSize() {
			continue
		}

		gs.Phase = PhaseWinLoss
		gs.outcome = &Outcome{
			Mode:   gs.Mode,
			Winner: gs.Opponent(side),
			Loser:  side,
		}
		c.stopPending()
		c.logger.Info("game over", "winner", gs.outcome.Winner, "loser", side)
		return
	}
}

func (c *Controller) scheduleAgentMove(epoch uint64) {
	if c.agentDelay <= 0 {
		c.agentMove(epoch)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return
	}
	c.pending = time.AfterFunc(c.agentDelay, func() { c.agentMove(epoch) })
}

func (c *Controller) agentMove(epoch uint64) {
	c.mu.Lock()
	gs := &c.session
	if epoch != c.epoch || gs.Phase != PhasePlaying || gs.Turn != SideAgent {
		c.mu.Unlock()
		return
	}
	c.pending = nil

	target, err := c.agent.ChooseMove(gs.Board(SidePlayer1))
	if err != nil {
		c.logger.Warn("agent forfeits its turn", "err", err)
	} else {
		report, err := c.applyShot(SideAgent, target)
		if err != nil {
			c.logger.Error("agent shot failed", "x", target.X, "y", target.Y, "err", err)
		} else {
			c.logger.Debug("agent shot", "x", target.X, "y", target.Y, "outcome", report.Outcome)
		}
	}

	c.checkWinLoss()
	if gs.Phase == PhasePlaying {
		gs.Turn = SidePlayer1
	}
	snap := gs.snapshot()
	c.mu.Unlock()

	c.notify(snap)
}

// EndTurn hides the board of a human who already shot, before the
// other human takes the screen.
func (c *Controller) EndTurn() error {
	c.mu.Lock()
	gs := &c.session
	if gs.Mode != OpponentModeHuman || gs.Phase != PhasePlaying || gs.Turn == gs.View {
		err := cerr.ErrNotSideTurn(string(gs.View), string(gs.Phase))
		c.mu.Unlock()
		return err
	}

	gs.Phase = PhaseChangePlayer
	snap := gs.snapshot()
	c.mu.Unlock()

	c.notify(snap)
	return nil
}

func (c *Controller) StartTurn() error {
	c.mu.Lock()
	gs := &c.session
	if gs.Phase != PhaseChangePlayer {
		phase := gs.Phase
		c.mu.Unlock()
		return cerr.ErrPhaseMismatch(string(PhaseChangePlayer), string(phase))
	}

	gs.Phase = PhasePlaying
	gs.View = gs.Turn
	snap := gs.snapshot()
	c.mu.Unlock()

	c.notify(snap)
	return nil
}

// PlayAgain discards the finished game and goes back to the start.
func (c *Controller) PlayAgain() error {
	c.mu.Lock()
	if c.session.Phase != PhaseWinLoss {
		phase := c.session.Phase
		c.mu.Unlock()
		return cerr.ErrPhaseMismatch(string(PhaseWinLoss), string(phase))
	}
	snap := c.resetLocked()
	c.mu.Unlock()

	c.notify(snap)
	return nil
}

// Reset goes back to the start from any phase. A pending agent
// move is dropped.
func (c *Controller) Reset() {
	c.mu.Lock()
	snap := c.resetLocked()
	c.mu.Unlock()

	c.notify(snap)
}

func (c *Controller) resetLocked() Snapshot {
	c.epoch++
	c.stopPending()
	c.session = newGameSession()
	return c.session.snapshot()
}

func (c *Controller) stopPending() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Controller) notify(snap Snapshot) {
	c.mu.Lock()
	callbacks := make([]func(Snapshot), len(c.onUpdate))
	copy(callbacks, c.onUpdate)
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn(snap)
	}
}
