package game

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/spacehole-rogue/holejump/internal/galaxy"
	"github.com/spacehole-rogue/holejump/internal/jump"
	"github.com/spacehole-rogue/holejump/internal/notify"
)

func fixture() *galaxy.Galaxy {
	return &galaxy.Galaxy{
		Seed: 77,
		Systems: []galaxy.StarSystem{
			{ID: "sys-0", Name: "Vega Prime", Pos: galaxy.Position{X: 20000}},
			{ID: "sys-c", Name: "Nyx", Pos: galaxy.Position{X: 3000}},
			{ID: "sys-far", Name: "Umbra", Pos: galaxy.Position{X: -45000}},
		},
		BlackHoles: []galaxy.BlackHole{
			{ID: "bh-0", Name: "Galactic Core", Pos: galaxy.Position{X: 500}},
			{ID: "bh-1", Name: "Maw", Pos: galaxy.Position{X: 24000}},
			{ID: "bh-2", Name: "Abyss", Pos: galaxy.Position{X: 26000}},
		},
	}
}

type captured struct {
	envs []notify.Envelope
}

func (c *captured) Publish(e notify.Envelope) error {
	c.envs = append(c.envs, e)
	return nil
}

func newTestSession(t *testing.T, current string, tech float64) (*Session, *captured) {
	t.Helper()
	sink := &captured{}
	s, err := NewSession(fixture(), current, &galaxy.ShipCapability{Name: "Nomad", TechLevel: tech}, Options{
		Sink: sink,
		Seed: 1,
	})
	if err != nil {
		t.Fatalf("Expected session, got %v", err)
	}
	return s, sink
}

func TestSessionReach(t *testing.T) {
	tests := []struct {
		name    string
		current string
		tech    float64
		want    jump.Result
	}{
		{"Outer holes only", "sys-0", 10, jump.Result{InRange: true}},
		{"Center in range", "sys-c", 10, jump.Result{InRange: true, CenterInRange: true}},
		{"Nothing nearby", "sys-far", 10, jump.Result{}},
		{"Ineligible", "sys-c", 5, jump.Result{}},
		{"From a black hole", "bh-1", 10, jump.Result{InRange: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t, tt.current, tt.tech)
			if got := s.Reach(); got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
			if s.JumpAvailable() != tt.want.InRange {
				t.Errorf("Expected JumpAvailable %v", tt.want.InRange)
			}
		})
	}
}

func TestSessionAbsentShip(t *testing.T) {
	s, err := NewSession(fixture(), "sys-c", nil, Options{})
	if err != nil {
		t.Fatalf("Expected session, got %v", err)
	}
	if s.JumpAvailable() {
		t.Error("Expected no jump without a ship")
	}
	if err := s.OpenJump(); !errors.Is(err, jump.ErrNotInRange) {
		t.Errorf("Expected ErrNotInRange, got %v", err)
	}
	if s.MaxJumpDistance() != 0 {
		t.Errorf("Expected zero range, got %g", s.MaxJumpDistance())
	}
}

func TestSessionLocalJump(t *testing.T) {
	s, sink := newTestSession(t, "sys-0", 10)

	if err := s.OpenJump(); err != nil {
		t.Fatalf("Expected dialog to open, got %v", err)
	}
	if err := s.ConfirmJump(jump.ModeLocal, nil); err != nil {
		t.Fatalf("Expected local jump, got %v", err)
	}

	if s.CurrentID != "bh-1" && s.CurrentID != "bh-2" {
		t.Errorf("Expected relocation to an in-range hole, got %s", s.CurrentID)
	}
	if s.Galaxy.Seed != 77 {
		t.Errorf("Expected to stay in galaxy 77, got %d", s.Galaxy.Seed)
	}
	if s.Dialog.IsOpen() {
		t.Error("Expected dialog closed")
	}
	if len(sink.envs) != 1 || sink.envs[0].Kind != notify.KindTravel {
		t.Fatalf("Expected one travel envelope, got %v", sink.envs)
	}
	if s.Jumps != 1 {
		t.Errorf("Expected 1 jump, got %d", s.Jumps)
	}
}

func TestSessionNewGalaxy(t *testing.T) {
	s, sink := newTestSession(t, "sys-c", 10)

	if err := s.OpenJump(); err != nil {
		t.Fatalf("Expected dialog to open, got %v", err)
	}
	if err := s.ConfirmJump(jump.ModeNewGalaxy, jump.Seed(5)); err != nil {
		t.Fatalf("Expected new galaxy jump, got %v", err)
	}

	if seed, ok := s.LastKnownSeed(); !ok || seed != 77 {
		t.Errorf("Expected galaxy 77 remembered, got %d/%v", seed, ok)
	}
	if s.Galaxy.Seed == 77 {
		t.Error("Expected a different galaxy")
	}
	if !strings.HasPrefix(s.CurrentID, "sys-") {
		t.Errorf("Expected to arrive at a star system, got %s", s.CurrentID)
	}
	if len(sink.envs) != 1 {
		t.Errorf("Expected one envelope, got %d", len(sink.envs))
	}
}

func TestSessionKnownGalaxy(t *testing.T) {
	s, _ := newTestSession(t, "sys-c", 10)
	_ = s.OpenJump()

	if err := s.ConfirmJump(jump.ModeKnownGalaxy, nil); !errors.Is(err, jump.ErrSeedRequired) {
		t.Fatalf("Expected ErrSeedRequired, got %v", err)
	}
	if !s.Dialog.IsOpen() {
		t.Error("Expected dialog to stay open after rejection")
	}
	if s.Jumps != 0 {
		t.Errorf("Expected no jump, got %d", s.Jumps)
	}

	if err := s.ConfirmJump(jump.ModeKnownGalaxy, jump.Seed(5)); err != nil {
		t.Fatalf("Expected known galaxy jump, got %v", err)
	}
	if s.Galaxy.Seed != 5 {
		t.Errorf("Expected galaxy 5, got %d", s.Galaxy.Seed)
	}
	if len(s.Galaxy.BlackHoles) != len(galaxy.Generate(5).BlackHoles) {
		t.Error("Expected the regenerated galaxy to match its seed")
	}
}

func TestSessionCenterModesLocked(t *testing.T) {
	s, sink := newTestSession(t, "sys-0", 10)
	_ = s.OpenJump()

	if err := s.ConfirmJump(jump.ModeNewGalaxy, nil); !errors.Is(err, jump.ErrModeLocked) {
		t.Errorf("Expected ErrModeLocked away from the center, got %v", err)
	}
	if len(sink.envs) != 0 {
		t.Errorf("Expected nothing published, got %v", sink.envs)
	}
}

func TestSessionLosingRangeClosesDialog(t *testing.T) {
	s, _ := newTestSession(t, "sys-0", 10)
	if err := s.OpenJump(); err != nil {
		t.Fatalf("Expected dialog to open, got %v", err)
	}
	if err := s.SetTechLevel(5); err != nil {
		t.Fatalf("Expected tech change, got %v", err)
	}
	if s.Dialog.IsOpen() {
		t.Error("Expected dialog to close once nothing is in range")
	}
	if s.Ship.Name != "Nomad" {
		t.Errorf("Expected ship name kept, got %q", s.Ship.Name)
	}
	if err := s.SetTechLevel(-1); !errors.Is(err, galaxy.ErrNegativeTech) {
		t.Errorf("Expected ErrNegativeTech, got %v", err)
	}
}

func TestSessionCancel(t *testing.T) {
	s, sink := newTestSession(t, "sys-0", 10)
	_ = s.OpenJump()
	s.CancelJump()
	if s.Dialog.IsOpen() {
		t.Error("Expected dialog closed")
	}
	if len(sink.envs) != 0 || s.Jumps != 0 {
		t.Error("Expected cancel to emit nothing")
	}
}

type flatProjection struct{}

func (flatProjection) Project(p galaxy.Position) (float64, float64, bool) {
	return p.X / 100, p.Z / 100, true
}

func TestSessionClickPublishesSelection(t *testing.T) {
	s, sink := newTestSession(t, "sys-0", 10)

	ev, ok := s.Click(240, 0, flatProjection{})
	if !ok || ev.ID != "bh-1" {
		t.Fatalf("Expected bh-1 selected, got %v ok=%v", ev, ok)
	}
	if len(sink.envs) != 1 || sink.envs[0].Kind != notify.KindSelection {
		t.Fatalf("Expected one selection envelope, got %v", sink.envs)
	}
	if _, ok := s.Click(-400, -400, flatProjection{}); ok {
		t.Error("Expected empty space click to select nothing")
	}
	if len(sink.envs) != 1 {
		t.Errorf("Expected no extra envelopes, got %d", len(sink.envs))
	}
}

func TestNewSessionRejects(t *testing.T) {
	bad := fixture()
	bad.BlackHoles[1].Pos.X = math.NaN()
	if _, err := NewSession(bad, "", nil, Options{}); !errors.Is(err, galaxy.ErrNonFinite) {
		t.Errorf("Expected ErrNonFinite, got %v", err)
	}

	if _, err := NewSession(fixture(), "nowhere", nil, Options{}); !errors.Is(err, galaxy.ErrInvalidEntity) {
		t.Errorf("Expected ErrInvalidEntity for unknown location, got %v", err)
	}

	ship := &galaxy.ShipCapability{TechLevel: -3}
	if _, err := NewSession(fixture(), "", ship, Options{}); !errors.Is(err, galaxy.ErrNegativeTech) {
		t.Errorf("Expected ErrNegativeTech, got %v", err)
	}

	if _, err := NewSession(nil, "", nil, Options{}); err == nil {
		t.Error("Expected nil galaxy to be rejected")
	}
}

func TestSessionDialogFollowsCenter(t *testing.T) {
	s, _ := newTestSession(t, "sys-0", 10)
	if err := s.OpenJump(); err != nil {
		t.Fatalf("Expected dialog to open, got %v", err)
	}
	if got := len(s.Dialog.Modes()); got != 1 {
		t.Fatalf("Expected local only, got %d modes", got)
	}

	// Range 20000 reaches the core at 19500 units.
	if err := s.SetTechLevel(32); err != nil {
		t.Fatalf("Expected tech change, got %v", err)
	}
	if !s.Dialog.IsOpen() || !s.Dialog.CenterInRange() {
		t.Fatal("Expected open dialog to pick up the center")
	}
	if got := len(s.Dialog.Modes()); got != 3 {
		t.Errorf("Expected 3 modes, got %d", got)
	}
}
