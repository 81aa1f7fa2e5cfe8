package game

import (
	"fmt"
	"slices"

	"github.com/spacehole-rogue/holejump/internal/galaxy"
	"github.com/spacehole-rogue/holejump/internal/jump"
	"github.com/spacehole-rogue/holejump/internal/notify"
)

// EmitTravel applies a confirmed travel request. Session is the dialog's
// emitter, so this runs exactly once per confirmation.
func (s *Session) EmitTravel(req jump.TravelRequest) {
	s.Jumps++
	switch req.Mode() {
	case jump.ModeLocal:
		s.jumpLocal()
	case jump.ModeNewGalaxy:
		s.leaveGalaxy()
		seed := s.rng.Int64()
		s.enterGalaxy(galaxy.Generate(seed))
		s.Log.Add(fmt.Sprintf("The singularity spits you out somewhere new. Galaxy %d.", seed), MsgJump)
	case jump.ModeKnownGalaxy:
		seed, _ := req.Seed()
		s.leaveGalaxy()
		s.enterGalaxy(galaxy.Generate(seed))
		s.Log.Add(fmt.Sprintf("Familiar stars. Back in galaxy %d.", seed), MsgJump)
	}
	s.logger.Info("travel applied",
		"request", req.String(),
		"galaxy", s.Galaxy.Seed,
		"location", s.CurrentID,
	)
	s.publish(notify.TravelEnvelope(req, s.now()))
	s.Tick()
}

// jumpLocal relocates the ship to a random reachable black hole, or any
// other black hole when none is reachable.
func (s *Session) jumpLocal() {
	candidates := slices.Clone(s.targets)
	if len(candidates) == 0 {
		for _, bh := range s.Galaxy.BlackHoles {
			if bh.ID != s.CurrentID {
				candidates = append(candidates, bh.ID)
			}
		}
	}
	if len(candidates) == 0 {
		s.Log.Add("The jump fizzles. Nowhere to go.", MsgWarning)
		return
	}
	s.CurrentID = candidates[s.rng.IntN(len(candidates))]
	s.Picker.ClearSelection()
	s.Log.Add(fmt.Sprintf("Jumped through to %s.", s.CurrentName()), MsgJump)
}

// leaveGalaxy remembers the current galaxy so it can be revisited by seed.
func (s *Session) leaveGalaxy() {
	if s.Galaxy == nil {
		return
	}
	seed := s.Galaxy.Seed
	s.Known = slices.DeleteFunc(s.Known, func(k int64) bool { return k == seed })
	s.Known = append(s.Known, seed)
}

// enterGalaxy swaps in a new galaxy and places the ship at a random system.
func (s *Session) enterGalaxy(g *galaxy.Galaxy) {
	s.Galaxy = g
	s.CurrentID = ""
	if n := len(g.Systems); n > 0 {
		s.CurrentID = g.Systems[s.rng.IntN(n)].ID
	}
	s.Picker.Load(g.BlackHoles)
	s.reach = jump.Result{}
	s.targets = nil
}
