package model

import "time"

const (
	EventCreated       = "booking.created"
	EventStatusChanged = "booking.status_changed"
	EventCancelled     = "booking.cancelled"
)

// Event is published to the booking events topic on every lifecycle change.
type Event struct {
	Type           string    `json:"type"`
	BookingID      string    `json:"booking_id"`
	RoomID         string    `json:"room_id"`
	UserID         string    `json:"user_id"`
	Status         Status    `json:"status"`
	PreviousStatus Status    `json:"previous_status,omitempty"`
	ActorID        string    `json:"actor_id"`
	TotalPrice     float64   `json:"total_price"`
	CheckInDate    string    `json:"check_in_date"`
	CheckOutDate   string    `json:"check_out_date"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, booking Booking, previous Status, actorID string, now time.Time) Event {
	return Event{
		Type:           eventType,
		BookingID:      booking.ID,
		RoomID:         booking.RoomID,
		UserID:         booking.UserID,
		Status:         booking.Status,
		PreviousStatus: previous,
		ActorID:        actorID,
		TotalPrice:     booking.TotalPrice,
		CheckInDate:    booking.CheckInDate.String(),
		CheckOutDate:   booking.CheckOutDate.String(),
		OccurredAt:     now,
	}
}
