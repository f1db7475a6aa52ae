package postgres

import (
	"database/sql"

	"evrental-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BookingRepository
	repository.PenaltyFeeRepository
	repository.RefundRequestRepository
	repository.VehicleRepository
	repository.StationRepository
	repository.UserRepository
	repository.PhotoRepository
	repository.PaymentRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		BookingRepository:       NewBookingRepository(db),
		PenaltyFeeRepository:    NewPenaltyFeeRepository(db),
		RefundRequestRepository: NewRefundRequestRepository(db),
		VehicleRepository:       NewVehicleRepository(db),
		StationRepository:       NewStationRepository(db),
		UserRepository:          NewUserRepository(db),
		PhotoRepository:         NewPhotoRepository(db),
		PaymentRepository:       NewPaymentRepository(db),
		NotificationRepository:  NewNotificationRepository(db),
	}
}
