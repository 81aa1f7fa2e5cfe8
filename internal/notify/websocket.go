package notify

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// ErrQueueFull is returned when the broadcast queue cannot take an envelope.
var ErrQueueFull = errors.New("websocket broadcast queue full")

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("websocket sink closed")

const (
	broadcastQueue = 256
	writeTimeout   = 5 * time.Second

	connectRate  = 5 // new connections per second
	connectBurst = 10
)

// WebSocketSink broadcasts envelopes as JSON text frames to every connected
// client. It is an http.Handler; mount it where consumers should connect.
// Publish never blocks the caller.
type WebSocketSink struct {
	logger    *slog.Logger
	upgrader  websocket.Upgrader
	accept    *rate.Limiter
	mu        sync.RWMutex
	clients   map[*websocket.Conn]bool
	broadcast chan Envelope
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewWebSocketSink starts the broadcaster goroutine. logger may be nil.
func NewWebSocketSink(logger *slog.Logger) *WebSocketSink {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &WebSocketSink{
		logger:    logger.With("component", "websocket"),
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Envelope, broadcastQueue),
		done:      make(chan struct{}),
		accept:    rate.NewLimiter(rate.Limit(connectRate), connectBurst),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	s.wg.Add(1)
	go s.run()
	return s
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects.
func (s *WebSocketSink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.accept.Allow() {
		s.logger.Warn("connection rate limit exceeded", "remote", r.RemoteAddr)
		http.Error(w, "too many connection attempts", http.StatusTooManyRequests)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	s.mu.Lock()
	select {
	case <-s.done:
		s.mu.Unlock()
		conn.Close()
		return
	default:
	}
	s.clients[conn] = true
	s.mu.Unlock()
	s.logger.Debug("client connected", "remote", conn.RemoteAddr().String())

	// Consumers only listen; reading detects the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.drop(conn)
}

// SetConnectLimit replaces the limit on new connections. Call it before
// serving.
func (s *WebSocketSink) SetConnectLimit(perSecond float64, burst int) {
	s.accept = rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Clients returns the number of connected clients.
func (s *WebSocketSink) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Publish queues an envelope for broadcast.
func (s *WebSocketSink) Publish(e Envelope) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.broadcast <- e:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close disconnects all clients and stops the broadcaster.
func (s *WebSocketSink) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		close(s.done)
		for conn := range s.clients {
			conn.Close()
			delete(s.clients, conn)
		}
		s.mu.Unlock()
	})
	s.wg.Wait()
	return nil
}

func (s *WebSocketSink) run() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case e := <-s.broadcast:
			data, err := e.JSON()
			if err != nil {
				s.logger.Error("encode envelope", "kind", e.Kind, "err", err)
				continue
			}
			s.send(data)
		}
	}
}

func (s *WebSocketSink) send(data []byte) {
	s.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.mu.RUnlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logger.Debug("dropping client", "err", err)
			s.drop(conn)
		}
	}
}

func (s *WebSocketSink) drop(conn *websocket.Conn) {
	s.mu.Lock()
	if s.clients[conn] {
		delete(s.clients, conn)
	}
	s.mu.Unlock()
	conn.Close()
}
