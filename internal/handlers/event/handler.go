package event

import (
	"context"
	"resort/infras/kafka"
	"resort/infras/otel"
	"resort/internal/domains/booking/model"
	"resort/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

type Handler struct {
	otel otel.Otel
}

func New(otel otel.Otel) Handler {
	return Handler{
		otel: otel,
	}
}

// BookingEvent records one booking lifecycle event in the audit log.
func (handler *Handler) BookingEvent(message kafkaGo.Message) {
	_, scope := handler.otel.NewScope(context.Background(), constant.OtelEventScopeName, constant.OtelEventScopeName+".BookingEvent")
	defer scope.End()

	key, event, err := kafka.DecodeKafkaMessage[model.Event](message)
	if err != nil {
		scope.TraceError(err)

		return
	}

	scope.SetAttributes(map[string]any{
		"event.type": event.Type,
		"booking.id": event.BookingID,
	})

	logEvent := log.Info()
	if event.Type == model.EventCancelled {
		logEvent = log.Warn()
	}

	logEvent.
		Str("key", key).
		Str("type", event.Type).
		Str("booking_id", event.BookingID).
		Str("room_id", event.RoomID).
		Str("user_id", event.UserID).
		Str("actor_id", event.ActorID).
		Str("status", event.Status.String()).
		Str("previous_status", event.PreviousStatus.String()).
		Str("check_in_date", event.CheckInDate).
		Str("check_out_date", event.CheckOutDate).
		Float64("total_price", event.TotalPrice).
		Time("occurred_at", event.OccurredAt).
		Msg("booking event")
}
