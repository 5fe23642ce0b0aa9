package port

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/quartzless/softrtc/internal/clock/app"
	"github.com/quartzless/softrtc/internal/domain"
	"github.com/quartzless/softrtc/internal/errmap"
	"github.com/quartzless/softrtc/pkg/protocol"
)

const streamWriteTimeout = 5 * time.Second

// upgrader accepts any origin: the stream is read-only and the daemon
// binds to a trusted local interface.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// handleStream upgrades the connection and relays clock events as JSON
// frames until the client disconnects or the subscription ends.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return
	}
	defer conn.Close()

	sub := h.svc.Subscribe()
	defer h.svc.Unsubscribe(sub)

	// Read pump: the client sends nothing meaningful; reading surfaces
	// disconnects and close frames.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	ack, err := protocol.NewFrame(protocol.FrameTypeConnectionAck, protocol.ConnectionAck{
		ConnectionID:   uuid.NewString(),
		TickIntervalMs: int(h.tickInterval / time.Millisecond),
	})
	if err != nil || writeFrame(conn, ack) != nil {
		return
	}

	for {
		select {
		case <-gone:
			return
		case ev, ok := <-sub.Events():
			if !ok {
				reason := errmap.CloseServerShutdown
				if sub.Kicked() {
					reason = errmap.CloseSlowSubscriber
				}
				closeStream(conn, reason)
				return
			}
			frame, err := eventFrame(ev)
			if err != nil {
				slog.Default().Error("encode clock event", slog.String("error", err.Error()))
				continue
			}
			if writeFrame(conn, frame) != nil {
				return
			}
		}
	}
}

// eventFrame converts an app event into its wire frame.
func eventFrame(ev app.Event) (*protocol.Frame, error) {
	frameType := protocol.FrameTypeTick
	switch ev.Kind {
	case app.EventMinuteChanged:
		frameType = protocol.FrameTypeMinuteChanged
	case app.EventHourChanged:
		frameType = protocol.FrameTypeHourChanged
	case app.EventDayChanged:
		frameType = protocol.FrameTypeDayChanged
	}

	i := ev.Instant
	return protocol.NewFrame(frameType, protocol.Tick{
		DateTime:  domain.FormatDateTime(i),
		Year:      i.Year,
		Month:     i.Month,
		Day:       i.Day,
		Hour:      i.Hour,
		Minute:    i.Minute,
		Second:    i.Second,
		Weekday:   int(i.Weekday),
		DayOfYear: i.DayOfYear,
		Elapsed:   ev.Elapsed,
	})
}

func writeFrame(conn *websocket.Conn, frame *protocol.Frame) error {
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	return conn.WriteJSON(frame)
}

// closeStream sends a closing frame followed by the websocket close
// control message.
func closeStream(conn *websocket.Conn, reason errmap.WebSocketClose) {
	frame, err := protocol.NewFrame(protocol.FrameTypeConnectionClosing, protocol.ConnectionClosing{
		Reason: reason.Reason,
		Code:   reason.Code,
	})
	if err == nil {
		_ = writeFrame(conn, frame)
	}
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(reason.Code, reason.Reason))
}
