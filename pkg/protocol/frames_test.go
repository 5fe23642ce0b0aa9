package protocol_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartzless/softrtc/pkg/protocol"
)

func TestNewFrame(t *testing.T) {
	t.Run("tick frame round-trips through the envelope", func(t *testing.T) {
		tick := protocol.Tick{
			DateTime: "2024-06-15 10:30.00",
			Year:     2024, Month: 6, Day: 15,
			Hour: 10, Minute: 30, Second: 0,
			Weekday: 6, DayOfYear: 167, Elapsed: 42,
		}

		frame, err := protocol.NewFrame(protocol.FrameTypeTick, tick)
		require.NoError(t, err)
		assert.Equal(t, protocol.FrameTypeTick, frame.Type)

		var got protocol.Tick
		require.NoError(t, frame.ParsePayload(&got))
		assert.Equal(t, tick, got)
	})

	t.Run("nil payload produces an envelope without payload", func(t *testing.T) {
		frame, err := protocol.NewFrame(protocol.FrameTypeConnectionClosing, nil)
		require.NoError(t, err)
		assert.Nil(t, frame.Payload)
		assert.NoError(t, frame.ParsePayload(&struct{}{}))
	})

	t.Run("wire form uses snake_case fields", func(t *testing.T) {
		frame, err := protocol.NewFrame(protocol.FrameTypeDayChanged, protocol.Tick{DayOfYear: 1})
		require.NoError(t, err)

		raw, err := json.Marshal(frame)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"type":"day_changed"`)
		assert.Contains(t, string(raw), `"day_of_year":1`)
	})
}
