package model

import (
	"errors"
	"fmt"
	roomModel "resort/internal/domains/room/model"
	userModel "resort/internal/domains/user/model"
	gDto "resort/shared/dto"
	"resort/shared/model"
	"strings"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldRoomID       = "room_id"
	FieldUserID       = "user_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldGuests       = "guests"
	FieldTotalPrice   = "total_price"
	FieldStatus       = "status"
)

var ErrUnknownStatus = errors.New("unknown booking status")

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// transitions is the booking lifecycle. Cancelled and completed are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

func Statuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}
}

// BlockingStatuses are the statuses that hold a room for their dates.
func BlockingStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed}
}

func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, value)
	}

	return status, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}

	return false
}

type Booking struct {
	ID           string     `db:"id"`
	RoomID       string     `db:"room_id"`
	UserID       string     `db:"user_id"`
	CheckInDate  model.Date `db:"check_in_date"`
	CheckOutDate model.Date `db:"check_out_date"`
	Guests       int        `db:"guests"`
	TotalPrice   float64    `db:"total_price"`
	Status       Status     `db:"status"`
	model.Metadata
}

// Nights is the length of the stay. Check-out day is not a night.
func (b Booking) Nights() int {
	return b.CheckInDate.DaysUntil(b.CheckOutDate)
}

// Overlaps reports whether two stays on the same room share a night.
// Stays are half-open, so a check-out on another stay's check-in day does not overlap.
func (b Booking) Overlaps(other Booking) bool {
	return b.RoomID == other.RoomID &&
		b.CheckInDate.Before(other.CheckOutDate) &&
		b.CheckOutDate.After(other.CheckInDate)
}

// BookingDetail is a booking joined with its room and booker for listings.
type BookingDetail struct {
	Booking
	RoomNumber    string  `column:"room_number"     db:"room_number"     table:"rooms"`
	RoomType      string  `column:"room_type"       db:"room_type"       table:"rooms"`
	PricePerNight float64 `column:"price_per_night" db:"price_per_night" table:"rooms"`
	BookedBy      string  `column:"username"        db:"booked_by"       table:"users"`
}

func (BookingDetail) GetJoinQuery() string {
	return fmt.Sprintf("JOIN %[1]s ON %[1]s.%[2]s = %[3]s.%[4]s JOIN %[5]s ON %[5]s.%[6]s = %[3]s.%[7]s",
		roomModel.TableName, roomModel.FieldID, TableName, FieldRoomID,
		userModel.TableName, userModel.FieldID, FieldUserID,
	)
}

func blockingFilter() gDto.Filter {
	statuses := BlockingStatuses()

	values := make([]string, len(statuses))
	for i, status := range statuses {
		values[i] = string(status)
	}

	return gDto.Filter{
		Field:    FieldStatus,
		Operator: gDto.FilterOperatorIn,
		Value:    values,
		Table:    TableName,
	}
}

// FilterOverlapping matches blocking bookings of roomID that share a night with
// [checkIn, checkOut). excludeID skips one booking, used when re-activating it.
func FilterOverlapping(roomID string, checkIn, checkOut model.Date, excludeID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    TableName,
		},
		blockingFilter(),
		gDto.Filter{
			ArgName:  "new_check_out",
			Field:    FieldCheckInDate,
			Operator: gDto.FilterOperatorLess,
			Value:    checkOut,
			Table:    TableName,
		},
		gDto.Filter{
			ArgName:  "new_check_in",
			Field:    FieldCheckOutDate,
			Operator: gDto.FilterOperatorGreater,
			Value:    checkIn,
			Table:    TableName,
		},
	}

	if excludeID != "" {
		filters = append(filters, gDto.Filter{
			ArgName:  "exclude_id",
			Field:    FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    excludeID,
			Table:    TableName,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

func FilterByUser(userID string) gDto.Filter {
	return gDto.Filter{
		Field:    FieldUserID,
		Operator: gDto.FilterOperatorEq,
		Value:    userID,
		Table:    TableName,
	}
}

func FilterByRoom(roomID string) gDto.Filter {
	return gDto.Filter{
		Field:    FieldRoomID,
		Operator: gDto.FilterOperatorEq,
		Value:    roomID,
		Table:    TableName,
	}
}

func FilterByStatus(status Status) gDto.Filter {
	return gDto.Filter{
		Field:    FieldStatus,
		Operator: gDto.FilterOperatorEq,
		Value:    status,
		Table:    TableName,
	}
}
