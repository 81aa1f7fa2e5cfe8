package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/spacehole-rogue/holejump/internal/galaxy"
	"github.com/spacehole-rogue/holejump/internal/jump"
	"github.com/spacehole-rogue/holejump/internal/notify"
	"github.com/spacehole-rogue/holejump/internal/picker"
)

// Options configures a Session. Zero values pick sensible defaults.
type Options struct {
	Jump   jump.Config
	Logger *slog.Logger
	Log    *MessageLog
	Sink   notify.Sink
	Cursor picker.CursorFunc
	Seed   int64            // seeds controller choices (relocation, new galaxy seeds)
	Now    func() time.Time // envelope timestamps
}

// Session owns the galaxy the player is in, the ship, and the jump flow.
// Reachability is re-derived on every Tick; the dialog is the only piece of
// interactive state.
type Session struct {
	Jump      jump.Config
	Galaxy    *galaxy.Galaxy
	Ship      *galaxy.ShipCapability
	CurrentID string
	Known     []int64 // seeds of galaxies already left behind
	Log       *MessageLog
	Picker    *picker.Picker
	Dialog    *jump.Dialog
	Ticks     uint64
	Jumps     int

	reach   jump.Result
	targets []string
	logger  *slog.Logger
	sink    notify.Sink
	rng     *rand.Rand
	now     func() time.Time
}

// NewSession validates the galaxy and ship and places the player at current.
// An empty current picks a random star system. ship may be nil.
func NewSession(g *galaxy.Galaxy, current string, ship *galaxy.ShipCapability, opts Options) (*Session, error) {
	if g == nil {
		return nil, fmt.Errorf("new session: %w", galaxy.ErrInvalidEntity)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	if ship != nil {
		if err := ship.Validate(); err != nil {
			return nil, fmt.Errorf("new session: %w", err)
		}
	}
	if opts.Jump == (jump.Config{}) {
		opts.Jump = jump.DefaultConfig()
	}
	if err := opts.Jump.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	if opts.Log == nil {
		opts.Log = NewMessageLog(50)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Session{
		Jump:   opts.Jump,
		Ship:   ship,
		Log:    opts.Log,
		Picker: picker.New(opts.Cursor),
		logger: discard(opts.Logger).With("component", "session"),
		sink:   opts.Sink,
		rng:    rand.New(rand.NewPCG(uint64(opts.Seed), uint64(opts.Seed>>16|3))),
		now:    opts.Now,
	}
	s.Dialog = jump.NewDialog(s)
	s.enterGalaxy(g)
	if current != "" {
		if _, ok := g.Locate(current); !ok {
			return nil, fmt.Errorf("new session: location %q: %w", current, galaxy.ErrInvalidEntity)
		}
		s.CurrentID = current
	}
	s.Tick()
	return s, nil
}

// Tick re-derives reachability from the current location and ship.
func (s *Session) Tick() {
	s.Ticks++
	prev := s.reach
	s.reach = jump.EvaluateFrom(s.Jump, s.Galaxy, s.CurrentID, s.Ship)
	s.targets = jump.InRange(s.Jump, s.Galaxy, s.CurrentID, s.Ship)
	if s.reach != prev {
		s.logger.Debug("reachability changed",
			"location", s.CurrentID,
			"tech_level", s.techLevel(),
			"max_jump", s.MaxJumpDistance(),
			"in_range", s.reach.InRange,
			"center_in_range", s.reach.CenterInRange,
			"black_holes", len(s.Galaxy.BlackHoles),
		)
	}
	// The affordance vanished under an open dialog; close it. Otherwise keep
	// the offered modes in step with the center flag.
	if s.Dialog.IsOpen() {
		if !s.reach.InRange {
			s.Dialog.Cancel()
		} else {
			_ = s.Dialog.Open(s.reach)
		}
	}
}

// Reach returns the reachability derived on the last Tick.
func (s *Session) Reach() jump.Result { return s.reach }

// JumpAvailable reports whether the jump affordance should exist at all.
func (s *Session) JumpAvailable() bool { return s.reach.InRange }

// Targets returns the ids of reachable black holes.
func (s *Session) Targets() []string { return s.targets }

// MaxJumpDistance returns the current ship's range, or 0 when it cannot jump.
func (s *Session) MaxJumpDistance() float64 {
	if !jump.IsEligible(s.Jump, s.Ship) {
		return 0
	}
	return s.Jump.MaxJumpDistance(s.Ship.TechLevel)
}

// SetTechLevel replaces the ship's tech level. Invalid values are rejected.
func (s *Session) SetTechLevel(level float64) error {
	next := galaxy.ShipCapability{TechLevel: level}
	if s.Ship != nil {
		next.Name = s.Ship.Name
	}
	if err := next.Validate(); err != nil {
		return err
	}
	s.Ship = &next
	s.Tick()
	return nil
}

// OpenJump shows the jump dialog.
func (s *Session) OpenJump() error {
	if err := s.Dialog.Open(s.reach); err != nil {
		return err
	}
	s.Log.Add("Jump boost primed. Destination is random.", MsgJump)
	return nil
}

// CancelJump closes the dialog without travelling.
func (s *Session) CancelJump() {
	if s.Dialog.IsOpen() {
		s.Dialog.Cancel()
		s.Log.Add("Jump boost stood down.", MsgInfo)
	}
}

// ConfirmJump confirms the dialog with mode. The resulting request is
// applied through EmitTravel.
func (s *Session) ConfirmJump(mode jump.Mode, seed *int64) error {
	req, err := s.Dialog.Confirm(mode, seed)
	if err != nil {
		s.logger.Warn("jump rejected", "mode", mode.String(), "err", err)
		return err
	}
	s.logger.Info("jump confirmed", "request", req.String())
	return nil
}

// LastKnownSeed returns the most recently left galaxy.
func (s *Session) LastKnownSeed() (int64, bool) {
	if len(s.Known) == 0 {
		return 0, false
	}
	return s.Known[len(s.Known)-1], true
}

// Click forwards a click to the picker and publishes the selection.
func (s *Session) Click(x, y float64, proj picker.Projector) (picker.SelectionEvent, bool) {
	ev, ok := s.Picker.Click(x, y, proj)
	if !ok {
		return ev, false
	}
	name := ev.ID
	if bh := s.Galaxy.BlackHole(ev.ID); bh != nil {
		name = bh.Name
	}
	s.Log.Add(fmt.Sprintf("Target: %s, %.0f units out.", name, s.distanceTo(ev.Pos)), MsgInfo)
	s.publish(notify.SelectionEnvelope(ev, s.now()))
	return ev, true
}

// Hover forwards pointer movement to the picker.
func (s *Session) Hover(x, y float64, proj picker.Projector) {
	s.Picker.Hover(x, y, proj)
}

// CurrentName returns a display name for the player's location.
func (s *Session) CurrentName() string {
	for _, sys := range s.Galaxy.Systems {
		if sys.ID == s.CurrentID {
			return sys.Name
		}
	}
	if bh := s.Galaxy.BlackHole(s.CurrentID); bh != nil {
		return bh.Name
	}
	return s.CurrentID
}

func (s *Session) distanceTo(p galaxy.Position) float64 {
	origin, ok := s.Galaxy.Locate(s.CurrentID)
	if !ok {
		return 0
	}
	return origin.Distance(p)
}

func (s *Session) techLevel() float64 {
	if s.Ship == nil {
		return 0
	}
	return s.Ship.TechLevel
}

func (s *Session) publish(e notify.Envelope) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Publish(e); err != nil {
		s.logger.Warn("publish event", "kind", string(e.Kind), "err", err)
	}
}
