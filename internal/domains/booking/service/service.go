package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"resort/config"
	"resort/infras/kafka"
	"resort/infras/otel"
	"resort/internal/domains/booking/model"
	"resort/internal/domains/booking/model/dto"
	"resort/internal/domains/booking/repository"
	roomModel "resort/internal/domains/room/model"
	roomRepo "resort/internal/domains/room/repository"
	"resort/permissions"
	"resort/shared"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	gModel "resort/shared/model"
	gRepo "resort/shared/repository"
	"resort/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	msgRoomNotFound    = "room not found"
	msgBookingNotFound = "booking not found"
	msgRoomBooked      = "this room is already booked for some part of the requested dates"
)

var sortableColumns = []string{
	model.FieldCheckInDate,
	model.FieldCheckOutDate,
	model.FieldStatus,
	model.FieldTotalPrice,
	constant.FieldCreatedAt,
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	ListMine(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	ListAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	SetStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (dto.BookingResponse, error)
	Transition(ctx context.Context, req dto.UpdateStatusRequest, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	detailRepo repository.BookingDetail
	roomRepo   roomRepo.Room
	transactor gRepo.Transactor
	kafka      kafka.Client
	cfg        *config.Config
	otel       otel.Otel
	now        func() time.Time
}

func New(
	repo repository.Booking,
	detailRepo repository.BookingDetail,
	roomRepo roomRepo.Room,
	transactor gRepo.Transactor,
	kafka kafka.Client,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		detailRepo: detailRepo,
		roomRepo:   roomRepo,
		transactor: transactor,
		kafka:      kafka,
		cfg:        cfg,
		otel:       otel,
		now:        timezone.Now,
	}
}

// Create books a room for the requester. The room row stays locked from the
// overlap check until the insert commits, so concurrent requests for the same
// room are serialized.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	requesterID, _ := shared.GetRequester(ctx)
	if requesterID == constant.Empty {
		return res, failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	checkIn, checkOut, err := s.parseStay(req)
	if err != nil {
		return res, err
	}

	if req.Guests <= 0 {
		return res, failure.BadRequestFromString("number of guests must be a positive number") // nolint:wrapcheck
	}

	now := s.now()

	booking := model.Booking{
		ID:           uuid.NewString(),
		RoomID:       req.RoomID,
		UserID:       requesterID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Guests:       req.Guests,
		Status:       model.StatusPending,
		Metadata:     gModel.NewMetadata(requesterID, now),
	}

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		room, err := s.roomRepo.GetForUpdateTx(ctx, sqltx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound(msgRoomNotFound) // nolint:wrapcheck
		}

		if !room.IsAvailable {
			return failure.BadRequestFromString("this room is currently not available for booking") // nolint:wrapcheck
		}

		if !room.Fits(req.Guests) {
			return failure.BadRequestFromString(fmt.Sprintf("number of guests exceeds room capacity (%d)", room.Capacity)) // nolint:wrapcheck
		}

		if err := s.ensureFree(ctx, sqltx, booking); err != nil {
			return err
		}

		booking.TotalPrice = room.PriceFor(booking.Nights())

		if err := s.repo.InsertTx(ctx, sqltx, booking); err != nil {
			if gRepo.IsExclusionViolation(err) {
				return failure.Conflict(msgRoomBooked) // nolint:wrapcheck
			}

			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", req.RoomID).Msg("failed to create booking")

		return res, err // nolint:wrapcheck
	}

	s.publish(ctx, model.NewEvent(model.EventCreated, booking, constant.Empty, requesterID, now))

	res.FromModel(booking)

	return res, nil
}

// ListMine lists the requester's own bookings.
func (s *serviceImpl) ListMine(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	requesterID, _ := shared.GetRequester(ctx)
	if requesterID == constant.Empty {
		return res, failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	return s.list(ctx, req, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{model.FilterByUser(requesterID)},
	})
}

// ListAll lists every booking for staff.
func (s *serviceImpl) ListAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	req.RestrictSort(sortableColumns...)

	total, err := s.detailRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.detailRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

// SetStatus overwrites the status of a booking regardless of the lifecycle.
// Moving a booking back into a blocking status still refuses double bookings.
func (s *serviceImpl) SetStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	status, err := model.ParseStatus(req.Status)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	return s.changeStatus(ctx, id, status, false)
}

// Transition moves a booking along the lifecycle and rejects any other change.
func (s *serviceImpl) Transition(ctx context.Context, req dto.UpdateStatusRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	status, err := model.ParseStatus(req.Status)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	return s.changeStatus(ctx, id, status, true)
}

// Cancel cancels a booking on behalf of its owner or staff.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	requesterID, role := shared.GetRequester(ctx)
	now := s.now()

	var (
		booking  model.Booking
		previous model.Status
	)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		booking, err = s.lockBooking(ctx, sqltx, id)
		if err != nil {
			return err
		}

		if err := permissions.CanCancelBooking(requesterID, role, booking.UserID); err != nil {
			log.Warn().Str("booking_id", id).Str("user_id", requesterID).Msg("cancel attempted by non-owner")

			return failure.Forbidden(err.Error()) // nolint:wrapcheck
		}

		switch booking.Status {
		case model.StatusCancelled:
			return failure.BadRequestFromString("booking is already cancelled") // nolint:wrapcheck
		case model.StatusCompleted:
			return failure.BadRequestFromString("cannot cancel a completed booking") // nolint:wrapcheck
		}

		previous = booking.Status

		return s.writeStatus(ctx, sqltx, &booking, model.StatusCancelled, requesterID, now)
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to cancel booking")

		return res, err // nolint:wrapcheck
	}

	s.publish(ctx, model.NewEvent(model.EventCancelled, booking, previous, requesterID, now))

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) changeStatus(ctx context.Context, id string, status model.Status, strict bool) (res dto.BookingResponse, err error) {
	requesterID, _ := shared.GetRequester(ctx)
	now := s.now()

	var (
		booking  model.Booking
		previous model.Status
	)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		booking, err = s.lockBooking(ctx, sqltx, id)
		if err != nil {
			return err
		}

		previous = booking.Status

		if strict && !previous.CanTransition(status) {
			return failure.BadRequestFromString(fmt.Sprintf("cannot change booking status from %s to %s", previous, status)) // nolint:wrapcheck
		}

		if status.Blocking() && !previous.Blocking() {
			if _, err := s.roomRepo.GetForUpdateTx(ctx, sqltx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName)); err != nil {
				return fmt.Errorf("failed to lock room: %w", err)
			}

			if err := s.ensureFree(ctx, sqltx, booking); err != nil {
				return err
			}
		}

		return s.writeStatus(ctx, sqltx, &booking, status, requesterID, now)
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Str("status", string(status)).Msg("failed to change booking status")

		return res, err // nolint:wrapcheck
	}

	eventType := model.EventStatusChanged
	if status == model.StatusCancelled {
		eventType = model.EventCancelled
	}

	s.publish(ctx, model.NewEvent(eventType, booking, previous, requesterID, now))

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) parseStay(req dto.CreateBookingRequest) (checkIn, checkOut gModel.Date, err error) {
	checkIn, err = gModel.ParseDate(req.CheckInDate)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("check_in_date must be a date in YYYY-MM-DD format") // nolint:wrapcheck
	}

	checkOut, err = gModel.ParseDate(req.CheckOutDate)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("check_out_date must be a date in YYYY-MM-DD format") // nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return checkIn, checkOut, failure.BadRequestFromString("check-out date must be after check-in date") // nolint:wrapcheck
	}

	if checkIn.Before(gModel.DateOf(s.now())) {
		return checkIn, checkOut, failure.BadRequestFromString("check-in date cannot be in the past") // nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

func (s *serviceImpl) lockBooking(ctx context.Context, sqltx *sqlx.Tx, id string) (model.Booking, error) {
	booking, err := s.repo.GetForUpdateTx(ctx, sqltx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	return booking, nil
}

// ensureFree fails with Conflict when another blocking booking shares a night with booking.
func (s *serviceImpl) ensureFree(ctx context.Context, sqltx *sqlx.Tx, booking model.Booking) error {
	overlapping, err := s.repo.ExistTx(ctx, sqltx, model.FilterOverlapping(booking.RoomID, booking.CheckInDate, booking.CheckOutDate, booking.ID))
	if err != nil {
		return fmt.Errorf("failed to check overlapping bookings: %w", err)
	}

	if overlapping {
		return failure.Conflict(msgRoomBooked) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) writeStatus(ctx context.Context, sqltx *sqlx.Tx, booking *model.Booking, status model.Status, actor string, now time.Time) error {
	fields := map[string]any{
		model.FieldStatus:        status,
		constant.FieldUpdatedAt: now,
		constant.FieldUpdatedBy: actor,
	}

	if err := s.repo.UpdateTx(ctx, sqltx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		if gRepo.IsExclusionViolation(err) {
			return failure.Conflict(msgRoomBooked) // nolint:wrapcheck
		}

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = status
	booking.UpdatedAt = now
	booking.UpdatedBy = actor

	return nil
}

// publish emits a lifecycle event. Delivery is best effort and never fails the request.
func (s *serviceImpl) publish(ctx context.Context, event model.Event) {
	message := kafka.Message{Key: event.BookingID, Value: event}

	if err := s.kafka.SendMessages(context.WithoutCancel(ctx), s.cfg.Kafka.Topic, message); err != nil {
		log.Error().Err(err).Str("type", event.Type).Str("booking_id", event.BookingID).Msg("failed to publish booking event")
	}
}
