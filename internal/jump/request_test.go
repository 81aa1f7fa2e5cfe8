package jump

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestConfirmTravel(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		seed     *int64
		wantSeed int64
		hasSeed  bool
		wantErr  error
	}{
		{"Local", ModeLocal, nil, 0, false, nil},
		{"Local ignores seed", ModeLocal, Seed(7), 0, false, nil},
		{"New galaxy", ModeNewGalaxy, nil, 0, false, nil},
		{"New galaxy ignores seed", ModeNewGalaxy, Seed(99), 0, false, nil},
		{"Known galaxy", ModeKnownGalaxy, Seed(42), 42, true, nil},
		{"Known galaxy seed zero", ModeKnownGalaxy, Seed(0), 0, true, nil},
		{"Known galaxy without seed", ModeKnownGalaxy, nil, 0, false, ErrSeedRequired},
		{"Unknown mode", Mode(0), nil, 0, false, ErrUnknownMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ConfirmTravel(tt.mode, tt.seed)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				if req != (TravelRequest{}) {
					t.Errorf("Expected no request on error, got %v", req)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if req.Mode() != tt.mode {
				t.Errorf("Expected mode %v, got %v", tt.mode, req.Mode())
			}
			seed, ok := req.Seed()
			if ok != tt.hasSeed || seed != tt.wantSeed {
				t.Errorf("Expected seed %d/%v, got %d/%v", tt.wantSeed, tt.hasSeed, seed, ok)
			}
		})
	}
}

func TestTravelRequestJSON(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		seed *int64
		want string
	}{
		{"Local", ModeLocal, Seed(3), `{"mode":"local"}`},
		{"New galaxy", ModeNewGalaxy, nil, `{"mode":"newGalaxy"}`},
		{"Known galaxy", ModeKnownGalaxy, Seed(42), `{"mode":"knownGalaxy","seed":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ConfirmTravel(tt.mode, tt.seed)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			data, err := json.Marshal(req)
			if err != nil {
				t.Fatalf("Expected no marshal error, got %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, data)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	if ModeKnownGalaxy.String() != "knownGalaxy" {
		t.Errorf("Expected knownGalaxy, got %s", ModeKnownGalaxy)
	}
	if Mode(9).String() != "Mode(9)" {
		t.Errorf("Expected Mode(9), got %s", Mode(9))
	}
	if ModeLocal.NeedsCenter() {
		t.Error("Expected local jumps to not need the center")
	}
}
