package model

import (
	gDto "resort/shared/dto"
	"resort/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldRoomNumber    = "room_number"
	FieldType          = "room_type"
	FieldPricePerNight = "price_per_night"
	FieldCapacity      = "capacity"
	FieldDescription   = "description"
	FieldImageURL      = "image_url"
	FieldIsAvailable   = "is_available"
)

type Room struct {
	ID            string  `db:"id"`
	RoomNumber    string  `db:"room_number"`
	Type          string  `db:"room_type"`
	PricePerNight float64 `db:"price_per_night"`
	Capacity      int     `db:"capacity"`
	Description   *string `db:"description"`
	ImageURL      *string `db:"image_url"`
	IsAvailable   bool    `db:"is_available"`
	model.Metadata
}

// Fits reports whether the room can host the given number of guests.
func (r Room) Fits(guests int) bool {
	return guests > 0 && guests <= r.Capacity
}

// PriceFor returns the total price of a stay of the given number of nights.
func (r Room) PriceFor(nights int) float64 {
	return float64(nights) * r.PricePerNight
}

func FilterAvailable() gDto.Filter {
	return FilterByAvailability(true)
}

func FilterByAvailability(available bool) gDto.Filter {
	return gDto.Filter{
		Field:    FieldIsAvailable,
		Operator: gDto.FilterOperatorEq,
		Value:    available,
		Table:    TableName,
	}
}

// FilterOtherWithNumber matches a room other than id that already uses roomNumber.
func FilterOtherWithNumber(roomNumber, id string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    FieldRoomNumber,
			Operator: gDto.FilterOperatorEq,
			Value:    roomNumber,
			Table:    TableName,
		},
	}

	if id != "" {
		filters = append(filters, gDto.Filter{
			Field:    FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    id,
			Table:    TableName,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}
