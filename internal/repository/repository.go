package repository

import (
	"context"
	"errors"

	"evrental-backend/internal/domain"
)

// ErrVersionConflict is returned by BookingRepository.UpdateWithVersion
// when the booking row changed since it was read. The service layer
// maps it to a stale-state domain error.
var ErrVersionConflict = errors.New("booking version conflict")

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	// UpdateWithVersion writes the full mutable state of b, guarded by
	// the version the caller read. On success the version on b is
	// incremented; if the row holds a different version the write is a
	// no-op and ErrVersionConflict is returned.
	UpdateWithVersion(ctx context.Context, b *domain.Booking) error
	ListByStatus(ctx context.Context, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByRenter(ctx context.Context, renterID int32, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByStation(ctx context.Context, stationID int32, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error)
}

type PenaltyFeeRepository interface {
	List(ctx context.Context) ([]domain.PenaltyFee, error)
	GetByID(ctx context.Context, id int32) (*domain.PenaltyFee, error)
}

type RefundRequestRepository interface {
	Create(ctx context.Context, r *domain.RefundRequest) error
	GetByBookingID(ctx context.Context, bookingID int32) (*domain.RefundRequest, error)
	Confirm(ctx context.Context, id, staffID int32) error
	ListPending(ctx context.Context) ([]domain.RefundRequest, error)
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	UpdateStatus(ctx context.Context, id int32, status domain.VehicleStatus) error
	UpdateCondition(ctx context.Context, id, batteryLevel, mileage int32) error
}

type StationRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Station, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type PhotoRepository interface {
	Create(ctx context.Context, p *domain.InspectionPhoto) error
	GetByID(ctx context.Context, id int32) (*domain.InspectionPhoto, error)
	Confirm(ctx context.Context, id int32, fileSize int64) error
	CountConfirmed(ctx context.Context, bookingID int32, stage domain.PhotoStage) (int32, error)
	ListByBooking(ctx context.Context, bookingID int32, stage domain.PhotoStage) ([]domain.InspectionPhoto, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.PaymentRecord) error
	ListByBooking(ctx context.Context, bookingID int32) ([]domain.PaymentRecord, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
