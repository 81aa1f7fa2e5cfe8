package jump

import (
	"sort"

	"github.com/spacehole-rogue/holejump/internal/galaxy"
)

// Result is the outcome of a reachability evaluation.
type Result struct {
	InRange       bool // at least one black hole is within jump range
	CenterInRange bool // the galactic center is one of them
}

// IsEligible reports whether the ship can use black hole jumps at all.
func IsEligible(cfg Config, ship *galaxy.ShipCapability) bool {
	return ship != nil && ship.TechLevel >= cfg.MinTechLevel
}

// IsCenter reports whether a black hole is the galactic center.
func IsCenter(cfg Config, bh galaxy.BlackHole) bool {
	return bh.Pos.Norm() < cfg.CenterThreshold
}

// Evaluate checks which black holes are reachable from origin. The black hole
// whose id equals excludeID is skipped. An ineligible ship gets the zero
// Result without any distance work.
func Evaluate(cfg Config, origin galaxy.Position, holes []galaxy.BlackHole, ship *galaxy.ShipCapability, excludeID string) Result {
	var res Result
	scan(cfg, origin, holes, ship, excludeID, func(bh galaxy.BlackHole) {
		res.InRange = true
		if IsCenter(cfg, bh) {
			res.CenterInRange = true
		}
	})
	return res
}

// EvaluateFrom resolves currentID in the galaxy and evaluates from there.
// An unknown location yields the zero Result.
func EvaluateFrom(cfg Config, g *galaxy.Galaxy, currentID string, ship *galaxy.ShipCapability) Result {
	if g == nil || !IsEligible(cfg, ship) {
		return Result{}
	}
	origin, ok := g.Locate(currentID)
	if !ok {
		return Result{}
	}
	return Evaluate(cfg, origin, g.BlackHoles, ship, currentID)
}

// InRange returns the ids of all reachable black holes from currentID,
// sorted for stable output.
func InRange(cfg Config, g *galaxy.Galaxy, currentID string, ship *galaxy.ShipCapability) []string {
	if g == nil || !IsEligible(cfg, ship) {
		return nil
	}
	origin, ok := g.Locate(currentID)
	if !ok {
		return nil
	}
	var ids []string
	scan(cfg, origin, g.BlackHoles, ship, currentID, func(bh galaxy.BlackHole) {
		ids = append(ids, bh.ID)
	})
	sort.Strings(ids)
	return ids
}

// scan calls fn for each black hole within range. The gate runs before the
// loop.
func scan(cfg Config, origin galaxy.Position, holes []galaxy.BlackHole, ship *galaxy.ShipCapability, excludeID string, fn func(galaxy.BlackHole)) {
	if !IsEligible(cfg, ship) {
		return
	}
	maxDist := cfg.MaxJumpDistance(ship.TechLevel)
	for _, bh := range holes {
		if bh.ID == excludeID {
			continue
		}
		if origin.Distance(bh.Pos) <= maxDist {
			fn(bh)
		}
	}
}
