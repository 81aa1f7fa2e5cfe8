package game

import (
	"strings"
	"sync"
)

// MsgPriority controls the color of a message in the comms log.
type MsgPriority uint8

const (
	MsgInfo     MsgPriority = iota // cyan
	MsgWarning                     // yellow
	MsgCritical                    // red
	MsgJump                        // magenta
	MsgDebug                       // dark gray
)

// Message is a single entry in the comms log.
type Message struct {
	Text     string
	Priority MsgPriority
}

// MessageLog is a bounded FIFO of messages. It is safe for concurrent use;
// background goroutines log into it through CommsHandler.
type MessageLog struct {
	mu       sync.Mutex
	Messages []Message
	maxSize  int
	width    int
}

// commsWidth is the comms panel width in cells.
const commsWidth = 55

// NewMessageLog creates a log that keeps the most recent maxSize lines.
func NewMessageLog(maxSize int) *MessageLog {
	return &MessageLog{
		Messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
		width:    commsWidth,
	}
}

// Add appends a message, wrapping it to the panel width and evicting the
// oldest lines if full.
func (l *MessageLog) Add(text string, priority MsgPriority) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range wrapText(text, l.width) {
		msg := Message{Text: line, Priority: priority}
		if len(l.Messages) >= l.maxSize {
			copy(l.Messages, l.Messages[1:])
			l.Messages[len(l.Messages)-1] = msg
		} else {
			l.Messages = append(l.Messages, msg)
		}
	}
}

// Recent returns a copy of the last n messages (or fewer if the log is
// shorter).
func (l *MessageLog) Recent(n int) []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > len(l.Messages) {
		n = len(l.Messages)
	}
	return append([]Message(nil), l.Messages[len(l.Messages)-n:]...)
}

func wrapText(s string, maxWidth int) []string {
	if len(s) <= maxWidth {
		return []string{s}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > maxWidth {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	return append(lines, line)
}
