package dto

import (
	"resort/internal/domains/booking/model"
	"resort/shared"
	gDto "resort/shared/dto"
)

type CreateBookingRequest struct {
	RoomID       string `json:"room_id"        validate:"required,uuid"`
	CheckInDate  string `json:"check_in_date"  validate:"required,date"`
	CheckOutDate string `json:"check_out_date" validate:"required,date"`
	Guests       int    `json:"guests"         validate:"required,gt=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type BookingResponse struct {
	ID           string       `json:"id"`
	RoomID       string       `json:"room_id"`
	UserID       string       `json:"user_id"`
	CheckInDate  string       `json:"check_in_date"`
	CheckOutDate string       `json:"check_out_date"`
	Nights       int          `json:"nights"`
	Guests       int          `json:"guests"`
	TotalPrice   float64      `json:"total_price"`
	Status       model.Status `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.UserID = model.UserID
	r.CheckInDate = model.CheckInDate.String()
	r.CheckOutDate = model.CheckOutDate.String()
	r.Nights = model.Nights()
	r.Guests = model.Guests
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

// BookingDetailResponse adds the room and booker display fields to a booking.
type BookingDetailResponse struct {
	BookingResponse
	RoomNumber    string  `json:"room_number"`
	RoomType      string  `json:"room_type"`
	PricePerNight float64 `json:"price_per_night"`
	BookedBy      string  `json:"booked_by"`
}

func (r *BookingDetailResponse) FromModel(model model.BookingDetail) {
	r.BookingResponse.FromModel(model.Booking)
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.PricePerNight = model.PricePerNight
	r.BookedBy = model.BookedBy
}

type GetBookingsResponse struct {
	Bookings  []BookingDetailResponse `json:"bookings"`
	TotalPage int                     `json:"total_page"`
	TotalData int                     `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.BookingDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingDetailResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
