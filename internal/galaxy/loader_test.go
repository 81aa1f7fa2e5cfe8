package galaxy

import (
	"errors"
	"testing"
)

const validSnapshot = `{
	"seed": 42,
	"current": "sys-0",
	"ship": {"name": "Nomad", "techLevel": 10},
	"systems": [{"id": "sys-0", "name": "Vega Prime", "position": [0, 0, 0], "kind": 1}],
	"blackHoles": [
		{"id": "bh-0", "name": "Galactic Core", "position": [1000, 0, 0]},
		{"id": "bh-1", "name": "Maw", "position": [7000, 0, 0]}
	]
}`

func TestLoadSnapshot(t *testing.T) {
	loaded, err := LoadSnapshot([]byte(validSnapshot))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if loaded.Current != "sys-0" {
		t.Errorf("Expected current sys-0, got %q", loaded.Current)
	}
	if loaded.Ship == nil || loaded.Ship.TechLevel != 10 {
		t.Errorf("Expected ship with tech level 10, got %+v", loaded.Ship)
	}
	if got := len(loaded.Galaxy.BlackHoles); got != 2 {
		t.Fatalf("Expected 2 black holes, got %d", got)
	}
	if loaded.Galaxy.BlackHoles[1].Pos != (Position{7000, 0, 0}) {
		t.Errorf("Expected bh-1 at (7000,0,0), got %v", loaded.Galaxy.BlackHoles[1].Pos)
	}
	if loaded.Galaxy.Systems[0].Kind != StarRed {
		t.Errorf("Expected red star, got %v", loaded.Galaxy.Systems[0].Kind)
	}
}

func TestLoadSnapshotWithoutShip(t *testing.T) {
	loaded, err := LoadSnapshot([]byte(`{"systems": [], "blackHoles": []}`))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if loaded.Ship != nil {
		t.Errorf("Expected absent ship, got %+v", loaded.Ship)
	}
}

func TestLoadSnapshotRejects(t *testing.T) {
	tests := []struct {
		name string
		json string
		want error
	}{
		{"Missing black hole position", `{"blackHoles": [{"id": "bh-0"}]}`, ErrInvalidEntity},
		{"Missing system position", `{"systems": [{"id": "sys-0"}]}`, ErrInvalidEntity},
		{"Missing tech level", `{"ship": {"name": "Nomad"}}`, ErrInvalidEntity},
		{"Negative tech level", `{"ship": {"name": "Nomad", "techLevel": -2}}`, ErrNegativeTech},
		{
			"Duplicate ids",
			`{"systems": [{"id": "x", "position": [0,0,0]}], "blackHoles": [{"id": "x", "position": [1,1,1]}]}`,
			ErrDuplicateID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSnapshot([]byte(tt.json))
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadSnapshotBadJSON(t *testing.T) {
	if _, err := LoadSnapshot([]byte(`{"blackHoles": [`)); err == nil {
		t.Error("Expected parse error for truncated JSON")
	}
}
