// Package notify carries outbound game events (travel requests and
// selections) to whoever drives the wider game state.
package notify

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/spacehole-rogue/holejump/internal/jump"
	"github.com/spacehole-rogue/holejump/internal/picker"
)

// Kind names the payload of an Envelope.
type Kind string

const (
	KindTravel    Kind = "travel"
	KindSelection Kind = "selection"
)

// Envelope wraps one outbound event. ID is unique per emission so consumers
// can drop duplicates.
type Envelope struct {
	ID      uuid.UUID `json:"id"`
	Kind    Kind      `json:"kind"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload"`
}

type selectionPayload struct {
	ID       string     `json:"id"`
	Position [3]float64 `json:"position"`
}

// TravelEnvelope wraps a travel request.
func TravelEnvelope(r jump.TravelRequest, at time.Time) Envelope {
	return Envelope{ID: uuid.New(), Kind: KindTravel, At: at, Payload: r}
}

// SelectionEnvelope wraps a selection event.
func SelectionEnvelope(ev picker.SelectionEvent, at time.Time) Envelope {
	return Envelope{
		ID:   uuid.New(),
		Kind: KindSelection,
		At:   at,
		Payload: selectionPayload{
			ID:       ev.ID,
			Position: [3]float64{ev.Pos.X, ev.Pos.Y, ev.Pos.Z},
		},
	}
}

// JSON encodes the envelope.
func (e Envelope) JSON() ([]byte, error) {
	return json.Marshal(e)
}

// Sink receives envelopes.
type Sink interface {
	Publish(Envelope) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Envelope) error

func (f SinkFunc) Publish(e Envelope) error { return f(e) }

// Fanout publishes to every sink and joins their errors.
type Fanout []Sink

func (f Fanout) Publish(e Envelope) error {
	var errs []error
	for _, s := range f {
		if s == nil {
			continue
		}
		if err := s.Publish(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
