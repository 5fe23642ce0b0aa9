// Package protocol defines the WebSocket frame types the clock stream
// speaks. These types are the client-facing wire contract.
package protocol

import "encoding/json"

// FrameType identifies the type of WebSocket frame.
type FrameType string

const (
	// Connection lifecycle
	FrameTypeConnectionAck     FrameType = "connection_ack"
	FrameTypeConnectionClosing FrameType = "connection_closing"

	// Clock events
	FrameTypeTick          FrameType = "tick"
	FrameTypeMinuteChanged FrameType = "minute_changed"
	FrameTypeHourChanged   FrameType = "hour_changed"
	FrameTypeDayChanged    FrameType = "day_changed"

	// Errors
	FrameTypeError FrameType = "error"
)

// Frame is the base structure for all WebSocket frames.
type Frame struct {
	Type    FrameType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ConnectionAck is sent by the server after successful WebSocket upgrade.
type ConnectionAck struct {
	ConnectionID   string `json:"connection_id"`
	TickIntervalMs int    `json:"tick_interval_ms"`
}

// ConnectionClosing is sent by the server before closing the connection.
type ConnectionClosing struct {
	Reason string `json:"reason"`
	Code   int    `json:"code"`
}

// Tick carries a fully resolved clock reading. The same payload rides
// on tick frames and on the minute/hour/day change frames.
type Tick struct {
	DateTime  string `json:"datetime"` // YYYY-MM-DD HH:MM.SS
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	Hour      int    `json:"hour"`
	Minute    int    `json:"minute"`
	Second    int    `json:"second"`
	Weekday   int    `json:"weekday"` // 0=Sunday
	DayOfYear int    `json:"day_of_year"`
	Elapsed   int64  `json:"elapsed_seconds"`
}

// Error is sent by the server to report an error.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewFrame creates a Frame with the given type and payload.
func NewFrame(frameType FrameType, payload any) (*Frame, error) {
	var payloadBytes json.RawMessage
	if payload != nil {
		var err error
		payloadBytes, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return &Frame{
		Type:    frameType,
		Payload: payloadBytes,
	}, nil
}

// ParsePayload unmarshals the frame payload into the given struct.
func (f *Frame) ParsePayload(v any) error {
	if f.Payload == nil {
		return nil
	}
	return json.Unmarshal(f.Payload, v)
}
