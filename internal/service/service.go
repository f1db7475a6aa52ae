package service

import (
	"context"

	"evrental-backend/internal/domain"
)

// CheckInOffer is returned by InitiateCheckIn: the computed rental
// deposit plus, for online settlement, the gateway invoice to pay it at.
type CheckInOffer struct {
	RentalDepositCents int32  `json:"rental_deposit_cents"`
	InvoiceID          string `json:"invoice_id,omitempty"`
	InvoiceURL         string `json:"invoice_url,omitempty"`
}

// InspectionInput carries the vehicle condition capture required by
// check-in and check-out.
type InspectionInput struct {
	ConditionNote string
	BatteryLevel  int32
	Mileage       int32
}

// TransitionInput is shared by all state-changing calls.
type TransitionInput struct {
	// IdempotencyKey, when set, makes a retried call a no-op instead of
	// a double-applied transition.
	IdempotencyKey string
	PaymentMethod  domain.PaymentMethod
	// PaymentRef is the gateway invoice ID; required when the method is
	// ONLINE and money is due.
	PaymentRef string
}

// CheckoutInput is the full checkout request: inspection capture plus
// the bill selections, resupplied in full on every calculation.
type CheckoutInput struct {
	TransitionInput
	Inspection InspectionInput
	Penalties  []domain.SelectedPenalty
	CustomFee  *domain.CustomFee
}

type BookingService interface {
	CreateBooking(ctx context.Context, renterID, vehicleID int32, startTime, endTime string) (*domain.Booking, error)
	GetBooking(ctx context.Context, bookingID int32) (*domain.Booking, error)
	ListBookings(ctx context.Context, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error)
	ListStationBookings(ctx context.Context, stationID int32, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error)

	ConfirmReservationDeposit(ctx context.Context, staffID, bookingID int32, in TransitionInput) (*domain.Booking, error)
	InitiateCheckIn(ctx context.Context, staffID, bookingID int32) (*CheckInOffer, error)
	CommitCheckIn(ctx context.Context, staffID, bookingID int32, in TransitionInput, insp InspectionInput) (*domain.Booking, error)
	CalculateBill(ctx context.Context, bookingID int32, penalties []domain.SelectedPenalty, customFee *domain.CustomFee) (*domain.BillResult, error)
	CommitCheckout(ctx context.Context, staffID, bookingID int32, in CheckoutInput) (*domain.Booking, error)
	// Cancel closes a PENDING booking outright, or moves a CONFIRMED
	// booking to the refund branch; bank is required exactly when a
	// deposit was already paid.
	Cancel(ctx context.Context, actorID, bookingID int32, reason string, bank *domain.BankAccount, in TransitionInput) (*domain.Booking, error)
	ConfirmRefund(ctx context.Context, staffID, bookingID int32, in TransitionInput) (*domain.Booking, error)
}

type PenaltyCatalogService interface {
	// List returns the full penalty catalog. On backend failure it
	// returns an empty list together with the error so billing callers
	// can still compute base rent and custom fees.
	List(ctx context.Context) ([]domain.PenaltyFee, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (access, refresh string, user *domain.User, err error)
	Refresh(ctx context.Context, refreshToken string) (access string, err error)
}

type PhotoService interface {
	RequestUpload(ctx context.Context, userID, bookingID int32, stage domain.PhotoStage, filename, contentType string) (*domain.InspectionPhoto, string, error)
	ConfirmUpload(ctx context.Context, userID int32, photoID int32, storageKey string) (*domain.InspectionPhoto, error)
	ListPhotos(ctx context.Context, bookingID int32, stage domain.PhotoStage) ([]domain.InspectionPhoto, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendDepositConfirmation(ctx context.Context, email, name string, bookingID int32, amountCents int32) error
	SendCheckInConfirmation(ctx context.Context, email, name string, bookingID int32, depositCents int32) error
	SendCheckoutReceipt(ctx context.Context, email, name string, bookingID int32, finalFeeCents, netCents int32) error
	SendCancellationNotice(ctx context.Context, email, name string, bookingID int32, reason string, refundCents int32) error
	SendRefundConfirmation(ctx context.Context, email, name string, bookingID int32, amountCents int32) error
	SendRefundReminder(ctx context.Context, staffEmail string, bookingID int32, amountCents int32, pendingDays int) error
	SendPickupReminder(ctx context.Context, email, name string, bookingID int32) error
}
