package jump

import (
	"errors"
	"fmt"
)

// Dialog errors.
var (
	ErrNotInRange   = errors.New("no black hole in jump range")
	ErrDialogClosed = errors.New("jump dialog is closed")
	ErrModeLocked   = errors.New("travel mode requires the galactic center in range")
)

// Emitter receives confirmed travel requests.
type Emitter interface {
	EmitTravel(TravelRequest)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(TravelRequest)

func (f EmitterFunc) EmitTravel(r TravelRequest) { f(r) }

// Dialog is the two-state jump confirmation flow: Closed, then Open, then
// back to Closed on confirm or cancel. It owns the open flag.
type Dialog struct {
	emit   Emitter
	open   bool
	center bool
}

// NewDialog creates a closed dialog that hands requests to emit.
func NewDialog(emit Emitter) *Dialog {
	return &Dialog{emit: emit}
}

// IsOpen reports whether the dialog is showing.
func (d *Dialog) IsOpen() bool { return d.open }

// CenterInRange is the evaluator flag captured when the dialog opened.
func (d *Dialog) CenterInRange() bool { return d.center }

// Open shows the dialog. It fails unless a black hole is in range. Opening an
// open dialog refreshes the center flag only.
func (d *Dialog) Open(res Result) error {
	if !res.InRange {
		return ErrNotInRange
	}
	d.open = true
	d.center = res.CenterInRange
	return nil
}

// Cancel closes the dialog without emitting anything.
func (d *Dialog) Cancel() {
	d.open = false
	d.center = false
}

// Modes lists the travel modes the dialog offers.
func (d *Dialog) Modes() []Mode {
	if !d.open {
		return nil
	}
	if d.center {
		return []Mode{ModeLocal, ModeNewGalaxy, ModeKnownGalaxy}
	}
	return []Mode{ModeLocal}
}

// Confirm builds the request, emits it once and closes the dialog. On any
// error the dialog stays open and nothing is emitted.
func (d *Dialog) Confirm(mode Mode, seed *int64) (TravelRequest, error) {
	if !d.open {
		return TravelRequest{}, ErrDialogClosed
	}
	if mode.NeedsCenter() && !d.center {
		return TravelRequest{}, fmt.Errorf("%v: %w", mode, ErrModeLocked)
	}
	req, err := ConfirmTravel(mode, seed)
	if err != nil {
		return TravelRequest{}, err
	}
	d.open = false
	d.center = false
	if d.emit != nil {
		d.emit.EmitTravel(req)
	}
	return req, nil
}
