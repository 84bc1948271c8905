package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of message
type MessageType string

const (
	// Client -> Server
	TypeNewGame  MessageType = "new_game"
	TypeActivate MessageType = "activate"

	// Server -> Client
	TypeWelcome MessageType = "welcome"
	TypeBoard   MessageType = "board"
	TypeNotify  MessageType = "notify"
	TypeError   MessageType = "error"
)

// Error codes sent in ErrorData
const (
	CodeInvalidMessage     = "invalid_message"
	CodeInvalidBoard       = "invalid_board"
	CodeTileOutOfRange     = "tile_out_of_range"
	CodeNoGame             = "no_game"
	CodeInvariantViolation = "invariant_violation"
)

// Message is the envelope for every frame on the wire
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s data: %w", messageType, err)
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Decode unmarshals the message payload into v
func (m *Message) Decode(v any) error {
	if len(m.Data) == 0 {
		return fmt.Errorf("%s message has no data", m.Type)
	}
	if err := json.Unmarshal(m.Data, v); err != nil {
		return fmt.Errorf("failed to decode %s data: %w", m.Type, err)
	}
	return nil
}

// Client -> Server Messages

// NewGameData asks the server to deal a fresh board. Zero size means the
// server default.
type NewGameData struct {
	Size int `json:"size,omitempty"`
}

// ActivateData selects the tile at the given index
type ActivateData struct {
	Tile int `json:"tile"`
}

// Server -> Client Messages

type WelcomeData struct {
	Session string `json:"session"`
}

// CellData describes one tile. Symbol is only present while the tile is
// face up.
type CellData struct {
	Index  int      `json:"index"`
	Symbol string   `json:"symbol,omitempty"`
	Flags  []string `json:"flags,omitempty"`
}

type BoardData struct {
	Size   int        `json:"size"`
	Solved bool       `json:"solved"`
	Cells  []CellData `json:"cells"`
}

type NotifyData struct {
	Message    string `json:"message"`
	DurationMs int64  `json:"durationMs"`
}

// Duration returns the display duration
func (n NotifyData) Duration() time.Duration {
	return time.Duration(n.DurationMs) * time.Millisecond
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
