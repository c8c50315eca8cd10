package service

import (
	"resort/config"
	"resort/infras/kafka"
	"resort/infras/otel"
	"resort/internal/domains/booking/repository"
	roomRepo "resort/internal/domains/room/repository"
	gRepo "resort/shared/repository"
	"time"
)

// NewWithClock builds the service with a fixed notion of now.
func NewWithClock(
	repo repository.Booking,
	detailRepo repository.BookingDetail,
	roomRepo roomRepo.Room,
	transactor gRepo.Transactor,
	kafka kafka.Client,
	cfg *config.Config,
	otel otel.Otel,
	now func() time.Time,
) Booking {
	svc, _ := New(repo, detailRepo, roomRepo, transactor, kafka, cfg, otel).(*serviceImpl)
	svc.now = now

	return svc
}
