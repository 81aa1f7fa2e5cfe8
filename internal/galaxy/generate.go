package galaxy

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Generation bounds for the demo galaxy.
const (
	Width          = 100000.0 // galaxy extent across the disc
	discThickness  = 4000.0   // total height of the disc
	minStarDist    = 1500.0   // minimum distance between generated entities
	coreRadius     = 1200.0   // the center black hole lands inside this radius
	outerHoleInner = 12000.0  // outer black holes stay clear of the core
)

var starNames = []string{
	"Vega Prime", "Kepler's Rest", "Nyx", "Caelum", "Draconis",
	"Forge", "Hadal Deep", "Meridian", "Obsidian", "Solis",
	"Tempest", "Umbra", "Zenith", "Arcturus", "Cygnus",
	"Eridani", "Lyra", "Procyon", "Rigel", "Sirius",
}

var holeNames = []string{
	"Maw", "Abyss", "Gullet", "Sink", "Hollow", "Throat", "Well", "Pit",
}

// Generate builds a galaxy from a seed. The same seed always yields the same
// galaxy. Exactly one black hole is placed near the origin.
func Generate(seed int64) *Galaxy {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed>>16|1)))

	numSystems := 40 + rng.IntN(21) // 40-60
	numHoles := 5 + rng.IntN(4)     // 5-8 outer holes

	names := make([]string, len(starNames))
	copy(names, starNames)
	rng.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})

	g := &Galaxy{
		Seed:       seed,
		Systems:    make([]StarSystem, 0, numSystems),
		BlackHoles: make([]BlackHole, 0, numHoles+1),
	}
	var placed []Position

	// Galactic center
	angle := rng.Float64() * 2 * math.Pi
	r := rng.Float64() * coreRadius
	center := Position{X: math.Cos(angle) * r, Y: 0, Z: math.Sin(angle) * r}
	g.BlackHoles = append(g.BlackHoles, BlackHole{ID: "bh-0", Name: "Galactic Core", Pos: center})
	placed = append(placed, center)

	for i := 1; i <= numHoles; i++ {
		pos := placeInDisc(rng, placed, outerHoleInner)
		placed = append(placed, pos)
		g.BlackHoles = append(g.BlackHoles, BlackHole{
			ID:   fmt.Sprintf("bh-%d", i),
			Name: holeNames[(i-1)%len(holeNames)],
			Pos:  pos,
		})
	}

	for i := 0; i < numSystems; i++ {
		pos := placeInDisc(rng, placed, outerHoleInner/2)
		placed = append(placed, pos)
		name := names[i%len(names)]
		if i >= len(names) {
			name = fmt.Sprintf("%s %d", name, i/len(names)+1)
		}
		g.Systems = append(g.Systems, StarSystem{
			ID:   fmt.Sprintf("sys-%d", i),
			Name: name,
			Pos:  pos,
			Kind: StarKind(rng.IntN(5)),
		})
	}

	return g
}

// placeInDisc picks a point in the galactic disc at least innerR from the
// origin, retrying to keep clear of already-placed entities.
func placeInDisc(rng *rand.Rand, placed []Position, innerR float64) Position {
	outerR := Width / 2
	var pos Position
	for attempts := 0; attempts < 100; attempts++ {
		angle := rng.Float64() * 2 * math.Pi
		// sqrt keeps the areal density uniform
		r := innerR + math.Sqrt(rng.Float64())*(outerR-innerR)
		pos = Position{
			X: math.Cos(angle) * r,
			Y: (rng.Float64() - 0.5) * discThickness,
			Z: math.Sin(angle) * r,
		}
		if !tooClose(placed, pos) {
			break
		}
	}
	return pos
}

func tooClose(placed []Position, p Position) bool {
	for _, q := range placed {
		if q.Distance(p) < minStarDist {
			return true
		}
	}
	return false
}
