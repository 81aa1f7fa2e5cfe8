package galaxy

import (
	"reflect"
	"testing"
)

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(42)
	b := Generate(42)
	if !reflect.DeepEqual(a, b) {
		t.Error("Expected the same seed to generate the same galaxy")
	}

	c := Generate(43)
	if reflect.DeepEqual(a.BlackHoles, c.BlackHoles) {
		t.Error("Expected different seeds to place black holes differently")
	}
}

func TestGenerateShape(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1000, -5} {
		g := Generate(seed)

		if err := g.Validate(); err != nil {
			t.Fatalf("seed %d: Expected valid galaxy, got %v", seed, err)
		}
		if len(g.Systems) < 40 || len(g.Systems) > 60 {
			t.Errorf("seed %d: Expected 40-60 systems, got %d", seed, len(g.Systems))
		}

		centers := 0
		for _, bh := range g.BlackHoles {
			if bh.Pos.Norm() < 5000 {
				centers++
			}
		}
		if centers != 1 {
			t.Errorf("seed %d: Expected exactly one black hole near the origin, got %d", seed, centers)
		}
	}
}
