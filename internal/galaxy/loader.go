package galaxy

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the JSON-serializable form of a galaxy plus the ship reading it.
type Snapshot struct {
	Seed       int64          `json:"seed"`
	Current    string         `json:"current"`
	Ship       *shipDef       `json:"ship"`
	Systems    []systemDef    `json:"systems"`
	BlackHoles []blackHoleDef `json:"blackHoles"`
}

type shipDef struct {
	Name      string   `json:"name"`
	TechLevel *float64 `json:"techLevel"`
}

type systemDef struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Position *[3]float64 `json:"position"`
	Kind     StarKind    `json:"kind"`
}

type blackHoleDef struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Position *[3]float64 `json:"position"`
}

// Loaded is the validated result of LoadSnapshot. Ship is nil when the
// snapshot carries no ship record.
type Loaded struct {
	Galaxy  *Galaxy
	Ship    *ShipCapability
	Current string
}

// LoadSnapshot parses and validates a galaxy snapshot from JSON bytes.
func LoadSnapshot(data []byte) (*Loaded, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse galaxy snapshot: %w", err)
	}

	g := &Galaxy{
		Seed:       snap.Seed,
		Systems:    make([]StarSystem, 0, len(snap.Systems)),
		BlackHoles: make([]BlackHole, 0, len(snap.BlackHoles)),
	}
	for i, s := range snap.Systems {
		if s.Position == nil {
			return nil, fmt.Errorf("system %d (%q) has no position: %w", i, s.ID, ErrInvalidEntity)
		}
		g.Systems = append(g.Systems, StarSystem{
			ID:   s.ID,
			Name: s.Name,
			Pos:  fromArray(*s.Position),
			Kind: s.Kind,
		})
	}
	for i, bh := range snap.BlackHoles {
		if bh.Position == nil {
			return nil, fmt.Errorf("black hole %d (%q) has no position: %w", i, bh.ID, ErrInvalidEntity)
		}
		g.BlackHoles = append(g.BlackHoles, BlackHole{
			ID:   bh.ID,
			Name: bh.Name,
			Pos:  fromArray(*bh.Position),
		})
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	out := &Loaded{Galaxy: g, Current: snap.Current}
	if snap.Ship != nil {
		if snap.Ship.TechLevel == nil {
			return nil, fmt.Errorf("ship %q has no tech level: %w", snap.Ship.Name, ErrInvalidEntity)
		}
		ship := &ShipCapability{Name: snap.Ship.Name, TechLevel: *snap.Ship.TechLevel}
		if err := ship.Validate(); err != nil {
			return nil, err
		}
		out.Ship = ship
	}
	return out, nil
}

func fromArray(a [3]float64) Position {
	return Position{X: a[0], Y: a[1], Z: a[2]}
}
