package dto

import (
	"mime/multipart"
	"resort/internal/domains/room/model"
	"resort/shared"
	gDto "resort/shared/dto"
	gModel "resort/shared/model"
	"time"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	RoomNumber    string  `json:"room_number"     validate:"required,max=20"`
	Type          string  `json:"type"            validate:"required,max=50"`
	PricePerNight float64 `json:"price_per_night" validate:"required,gt=0"`
	Capacity      int     `json:"capacity"        validate:"required,gt=0"`
	Description   *string `json:"description"     validate:"omitempty,max=1000"`
	ImageURL      *string `json:"image_url"       validate:"omitempty,url,max=500"`
	IsAvailable   *bool   `json:"is_available"`
}

func (c *CreateRoomRequest) ToModel(actor string, now time.Time) model.Room {
	isAvailable := true
	if c.IsAvailable != nil {
		isAvailable = *c.IsAvailable
	}

	return model.Room{
		ID:            uuid.NewString(),
		RoomNumber:    c.RoomNumber,
		Type:          c.Type,
		PricePerNight: c.PricePerNight,
		Capacity:      c.Capacity,
		Description:   c.Description,
		ImageURL:      c.ImageURL,
		IsAvailable:   isAvailable,
		Metadata:      gModel.NewMetadata(actor, now),
	}
}

// UpdateRoomRequest is a partial update. Only non-nil fields are written.
type UpdateRoomRequest struct {
	RoomNumber    *string  `db:"room_number"     json:"room_number"     validate:"omitempty,max=20"`
	Type          *string  `db:"room_type"       json:"type"            validate:"omitempty,max=50"`
	PricePerNight *float64 `db:"price_per_night" json:"price_per_night" validate:"omitempty,gt=0"`
	Capacity      *int     `db:"capacity"        json:"capacity"        validate:"omitempty,gt=0"`
	Description   *string  `db:"description"     json:"description"     validate:"omitempty,max=1000"`
	ImageURL      *string  `db:"image_url"       json:"image_url"       validate:"omitempty,url,max=500"`
	IsAvailable   *bool    `db:"is_available"    json:"is_available"`
}

func (u UpdateRoomRequest) IsEmpty() bool {
	return u == (UpdateRoomRequest{})
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile multipart.File        `validate:"-"`
}

type RoomResponse struct {
	ID            string  `json:"id"`
	RoomNumber    string  `json:"room_number"`
	Type          string  `json:"type"`
	PricePerNight float64 `json:"price_per_night"`
	Capacity      int     `json:"capacity"`
	Description   *string `json:"description"`
	ImageURL      *string `json:"image_url"`
	IsAvailable   bool    `json:"is_available"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.Type = model.Type
	r.PricePerNight = model.PricePerNight
	r.Capacity = model.Capacity
	r.Description = model.Description
	r.ImageURL = model.ImageURL
	r.IsAvailable = model.IsAvailable
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
