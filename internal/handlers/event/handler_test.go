package event_test

import (
	"bytes"
	"encoding/json"
	"resort/infras/otel/mocks"
	"resort/internal/domains/booking/model"
	"resort/internal/handlers/event"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	previous := log.Logger
	log.Logger = zerolog.New(buf)

	t.Cleanup(func() {
		log.Logger = previous
	})

	return buf
}

func TestHandler_BookingEvent(t *testing.T) {
	occurredAt := time.Date(2025, 5, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		value     []byte
		wantLevel string
		wantType  string
	}{
		{
			name: "created event",
			value: mustJSON(t, model.Event{
				Type:       model.EventCreated,
				BookingID:  "booking-1",
				Status:     model.StatusPending,
				OccurredAt: occurredAt,
			}),
			wantLevel: "info",
			wantType:  model.EventCreated,
		},
		{
			name: "cancelled event",
			value: mustJSON(t, model.Event{
				Type:           model.EventCancelled,
				BookingID:      "booking-1",
				Status:         model.StatusCancelled,
				PreviousStatus: model.StatusConfirmed,
				OccurredAt:     occurredAt,
			}),
			wantLevel: "warn",
			wantType:  model.EventCancelled,
		},
		{
			name:      "malformed payload",
			value:     []byte("{not json"),
			wantLevel: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)
			handler := event.New(mocks.NewOtel())

			handler.BookingEvent(kafkaGo.Message{Key: []byte("booking-1"), Value: tt.value})

			var entry map[string]any
			require.NoError(t, json.Unmarshal(bytes.Split(buf.Bytes(), []byte("\n"))[0], &entry))

			assert.Equal(t, tt.wantLevel, entry["level"])

			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, entry["type"])
				assert.Equal(t, "booking-1", entry["booking_id"])
			}
		})
	}
}

func mustJSON(t *testing.T, value any) []byte {
	t.Helper()

	data, err := json.Marshal(value)
	require.NoError(t, err)

	return data
}
