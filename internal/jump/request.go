package jump

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Request builder errors.
var (
	ErrSeedRequired = errors.New("known galaxy jump requires a seed")
	ErrUnknownMode  = errors.New("unknown travel mode")
)

// Mode selects how the controller resolves a black hole jump.
type Mode uint8

const (
	ModeLocal       Mode = iota + 1 // re-roll within the current galaxy
	ModeNewGalaxy                   // generate a brand new galaxy
	ModeKnownGalaxy                 // return to a galaxy by seed
)

// String returns the wire name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeLocal:
		return "local"
	case ModeNewGalaxy:
		return "newGalaxy"
	case ModeKnownGalaxy:
		return "knownGalaxy"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// NeedsCenter reports whether the mode is only offered when the galactic
// center is within range.
func (m Mode) NeedsCenter() bool {
	return m == ModeNewGalaxy || m == ModeKnownGalaxy
}

// Seed returns a pointer to s, for passing an explicit seed to ConfirmTravel.
func Seed(s int64) *int64 { return &s }

// TravelRequest is an immutable jump instruction for the game-state
// controller. Only ModeKnownGalaxy carries a seed.
type TravelRequest struct {
	mode Mode
	seed int64
}

// Mode returns the request variant.
func (r TravelRequest) Mode() Mode { return r.mode }

// Seed returns the target galaxy seed. ok is false unless the request is a
// known galaxy jump.
func (r TravelRequest) Seed() (seed int64, ok bool) {
	if r.mode != ModeKnownGalaxy {
		return 0, false
	}
	return r.seed, true
}

func (r TravelRequest) String() string {
	if r.mode == ModeKnownGalaxy {
		return fmt.Sprintf("%s(seed=%d)", r.mode, r.seed)
	}
	return r.mode.String()
}

type requestJSON struct {
	Mode string `json:"mode"`
	Seed *int64 `json:"seed,omitempty"`
}

// MarshalJSON encodes the request as {"mode":...,"seed":...}.
func (r TravelRequest) MarshalJSON() ([]byte, error) {
	out := requestJSON{Mode: r.mode.String()}
	if seed, ok := r.Seed(); ok {
		out.Seed = &seed
	}
	return json.Marshal(out)
}

// ConfirmTravel packages a jump choice. The seed is required for
// ModeKnownGalaxy and ignored otherwise.
func ConfirmTravel(mode Mode, seed *int64) (TravelRequest, error) {
	switch mode {
	case ModeLocal, ModeNewGalaxy:
		return TravelRequest{mode: mode}, nil
	case ModeKnownGalaxy:
		if seed == nil {
			return TravelRequest{}, ErrSeedRequired
		}
		return TravelRequest{mode: mode, seed: *seed}, nil
	default:
		return TravelRequest{}, fmt.Errorf("%v: %w", mode, ErrUnknownMode)
	}
}
