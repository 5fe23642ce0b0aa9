package errmap

import (
	"errors"

	"github.com/quartzless/softrtc/internal/domain"
)

// WebSocket close codes per RFC 6455.
// Application-specific codes use the 4000-4999 range.
const (
	// Standard codes (RFC 6455)
	CloseNormalClosure = 1000
	CloseGoingAway     = 1001
	CloseProtocolError = 1002
	CloseInternalError = 1011
	CloseTryAgainLater = 1013

	// Application-specific codes (4000-4999)
	CloseInvalidMessage = 4000
	CloseUnauthorized   = 4001
	CloseNotFound       = 4004
	CloseSlowConsumer   = 4029
)

// WebSocketClose represents a close code and reason for WebSocket
// termination.
type WebSocketClose struct {
	Code   int
	Reason string
}

// ToWebSocketClose converts a domain error to a WebSocket close code
// and reason.
func ToWebSocketClose(err error) WebSocketClose {
	if err == nil {
		return WebSocketClose{Code: CloseNormalClosure, Reason: "normal_closure"}
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return WebSocketClose{Code: CloseUnauthorized, Reason: "unauthorized"}

	case errors.Is(err, domain.ErrNotFound):
		return WebSocketClose{Code: CloseNotFound, Reason: "not_found"}

	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidTime),
		errors.Is(err, domain.ErrInvalidUnit),
		errors.Is(err, domain.ErrInvalidFormat):
		return WebSocketClose{Code: CloseInvalidMessage, Reason: "invalid_message"}

	case errors.Is(err, domain.ErrUnavailable):
		return WebSocketClose{Code: CloseTryAgainLater, Reason: "service_unavailable"}

	default:
		return WebSocketClose{Code: CloseInternalError, Reason: "internal_error"}
	}
}

// Common close reasons for cases not directly mapped to domain errors.
var (
	CloseServerShutdown = WebSocketClose{Code: CloseGoingAway, Reason: "server_shutdown"}
	CloseSlowSubscriber = WebSocketClose{Code: CloseSlowConsumer, Reason: "slow_consumer"}
)
