package notify

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spacehole-rogue/holejump/internal/jump"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("Timed out waiting for condition")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWebSocketSinkBroadcast(t *testing.T) {
	sink := NewWebSocketSink(nil)
	defer sink.Close()

	srv := httptest.NewServer(sink)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Expected dial to succeed, got %v", err)
	}
	defer conn.Close()

	waitFor(t, func() bool { return sink.Clients() == 1 })

	req, _ := jump.ConfirmTravel(jump.ModeLocal, nil)
	if err := sink.Publish(TravelEnvelope(req, testTime)); err != nil {
		t.Fatalf("Expected publish, got %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Expected message, got %v", err)
	}

	var decoded struct {
		Kind    string            `json:"kind"`
		Payload map[string]string `json:"payload"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Expected JSON frame, got %v", err)
	}
	if decoded.Kind != "travel" || decoded.Payload["mode"] != "local" {
		t.Errorf("Expected local travel frame, got %s", data)
	}
}

func TestWebSocketSinkDisconnect(t *testing.T) {
	sink := NewWebSocketSink(nil)
	defer sink.Close()

	srv := httptest.NewServer(sink)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Expected dial to succeed, got %v", err)
	}
	waitFor(t, func() bool { return sink.Clients() == 1 })

	conn.Close()
	waitFor(t, func() bool { return sink.Clients() == 0 })
}

func TestWebSocketSinkClosed(t *testing.T) {
	sink := NewWebSocketSink(nil)
	if err := sink.Close(); err != nil {
		t.Fatalf("Expected close, got %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Errorf("Expected second close to be a no-op, got %v", err)
	}
	if err := sink.Publish(Envelope{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}

func TestWebSocketSinkConnectLimit(t *testing.T) {
	sink := NewWebSocketSink(nil)
	defer sink.Close()
	sink.SetConnectLimit(0.001, 1)

	srv := httptest.NewServer(sink)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Expected first dial to succeed, got %v", err)
	}
	defer conn.Close()

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if !errors.Is(err, websocket.ErrBadHandshake) {
		t.Fatalf("Expected handshake rejection, got %v", err)
	}
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", resp.StatusCode)
	}
}
