package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/logger"
	"evrental-backend/internal/payment"
	"evrental-backend/internal/repository"
	"evrental-backend/internal/utils"
)

// IdempotencyStore claims and releases transition idempotency keys.
// *cache.RedisCache implements it.
type IdempotencyStore interface {
	ReserveIdempotencyKey(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseIdempotencyKey(ctx context.Context, key string) error
}

// BookingConfig carries the money policy the state machine applies.
type BookingConfig struct {
	ReservationDepositCents int32
	RentalDepositPercent    int32
	IdemKeyTTL              time.Duration
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	vehicleRepo repository.VehicleRepository
	refundRepo  repository.RefundRequestRepository
	photoRepo   repository.PhotoRepository
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
	catalogSvc  PenaltyCatalogService
	emailSvc    EmailService
	gateway     payment.Gateway
	idemStore   IdempotencyStore
	cfg         BookingConfig
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	refundRepo repository.RefundRequestRepository,
	photoRepo repository.PhotoRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	catalogSvc PenaltyCatalogService,
	emailSvc EmailService,
	gateway payment.Gateway,
	idemStore IdempotencyStore,
	cfg BookingConfig,
) BookingService {
	if cfg.IdemKeyTTL <= 0 {
		cfg.IdemKeyTTL = 24 * time.Hour
	}
	return &bookingService{
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		refundRepo:  refundRepo,
		photoRepo:   photoRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		catalogSvc:  catalogSvc,
		emailSvc:    emailSvc,
		gateway:     gateway,
		idemStore:   idemStore,
		cfg:         cfg,
	}
}

const minBookingMinutes = 60

func (s *bookingService) CreateBooking(ctx context.Context, renterID, vehicleID int32, startTime, endTime string) (*domain.Booking, error) {
	start, err := time.Parse(time.RFC3339, startTime)
	if err != nil {
		return nil, domain.ValidationError("start_time", "must be RFC 3339")
	}
	end, err := time.Parse(time.RFC3339, endTime)
	if err != nil {
		return nil, domain.ValidationError("end_time", "must be RFC 3339")
	}
	if !end.After(start) {
		return nil, domain.ValidationError("end_time", "must be after start time")
	}
	if end.Sub(start) < minBookingMinutes*time.Minute {
		return nil, domain.ValidationError("end_time", "booking must span at least one hour")
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError(fmt.Sprintf("vehicle %d not found", vehicleID))
		}
		return nil, err
	}
	if vehicle.Status != domain.VehicleStatusAvailable {
		return nil, domain.ValidationError("vehicle_id", "vehicle is not available")
	}

	booking := &domain.Booking{
		RenterID:                renterID,
		VehicleID:               vehicleID,
		StationID:               vehicle.StationID,
		StartTime:               start,
		EndTime:                 end,
		Status:                  domain.BookingStatusPending,
		ReservationDepositCents: s.cfg.ReservationDepositCents,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	booking.Version = 1
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	return s.getBooking(ctx, bookingID)
}

func (s *bookingService) ListBookings(ctx context.Context, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByStatus(ctx, status, page, pageSize)
}

func (s *bookingService) ListStationBookings(ctx context.Context, stationID int32, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByStation(ctx, stationID, status, page, pageSize)
}

// ConfirmReservationDeposit moves PENDING to CONFIRMED once the
// reservation deposit payment is confirmed.
func (s *bookingService) ConfirmReservationDeposit(ctx context.Context, staffID, bookingID int32, in TransitionInput) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	claimed, err := s.claimIdemKey(ctx, in.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if !claimed {
		// A replay of a request that already went through. The
		// snapshot fetched above carries the committed result.
		return booking, nil
	}

	if booking.Status != domain.BookingStatusPending {
		return nil, s.abort(ctx, in.IdempotencyKey, domain.GuardError(booking.Status, domain.BookingStatusConfirmed, "only a pending booking can have its reservation deposit confirmed"))
	}
	if !in.PaymentMethod.Valid() {
		return nil, s.abort(ctx, in.IdempotencyKey, domain.ValidationError("payment_method", "unknown payment method"))
	}

	if payment.MethodNeedsGateway(in.PaymentMethod) {
		if in.PaymentRef == "" {
			return nil, s.abort(ctx, in.IdempotencyKey, domain.ValidationError("payment_ref", "gateway invoice reference is required for online payment"))
		}
		if err := s.gateway.VerifyPayment(ctx, in.PaymentRef, booking.ReservationDepositCents); err != nil {
			return nil, s.abort(ctx, in.IdempotencyKey, err)
		}
	}

	booking.ReservationDepositPaid = true
	booking.Status = domain.BookingStatusConfirmed
	if err := s.commit(ctx, booking, domain.BookingStatusPending, in.IdempotencyKey); err != nil {
		return nil, err
	}

	s.recordPayment(ctx, booking.ID, booking.ReservationDepositCents, domain.PaymentTypeReservationDeposit, in, "reservation deposit")
	s.notifyRenter(ctx, booking, "Booking Confirmed",
		fmt.Sprintf("Your booking #%d is confirmed. Reservation deposit: %s", booking.ID, utils.FormatCents(int64(booking.ReservationDepositCents))),
		"BOOKING_CONFIRMED",
		func(u *domain.User) error {
			return s.emailSvc.SendDepositConfirmation(ctx, u.Email, u.Name, booking.ID, booking.ReservationDepositCents)
		})
	return booking, nil
}

// InitiateCheckIn computes the rental deposit owed at pickup and, when
// a gateway is configured, opens an invoice for it. It does not change
// booking state; CommitCheckIn does.
func (s *bookingService) InitiateCheckIn(ctx context.Context, staffID, bookingID int32) (*CheckInOffer, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusConfirmed {
		return nil, domain.GuardError(booking.Status, domain.BookingStatusRenting, "check-in requires a confirmed booking")
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID)
	if err != nil {
		return nil, err
	}
	depositCents := utils.PercentOf(vehicle.InitialValueCents, s.cfg.RentalDepositPercent)

	offer := &CheckInOffer{RentalDepositCents: depositCents}
	if s.gateway != nil {
		renter, err := s.userRepo.GetByID(ctx, booking.RenterID)
		if err != nil {
			return nil, err
		}
		inv, err := s.gateway.CreateInvoice(ctx, payment.Invoice{
			ExternalID:  fmt.Sprintf("booking-%d-rental-deposit-%s", booking.ID, uuid.NewString()[:8]),
			AmountCents: depositCents,
			Description: fmt.Sprintf("Rental deposit for booking #%d", booking.ID),
			PayerEmail:  renter.Email,
		})
		if err != nil {
			return nil, err
		}
		offer.InvoiceID = inv.InvoiceID
		offer.InvoiceURL = inv.InvoiceURL
	}
	return offer, nil
}

// CommitCheckIn moves CONFIRMED to RENTING. The full inspection
// capture and a settled rental deposit are hard prerequisites; a
// failed guard leaves the booking untouched.
func (s *bookingService) CommitCheckIn(ctx context.Context, staffID, bookingID int32, in TransitionInput, insp InspectionInput) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	claimed, err := s.claimIdemKey(ctx, in.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return booking, nil
	}

	if booking.Status != domain.BookingStatusConfirmed {
		return nil, s.abort(ctx, in.IdempotencyKey, domain.GuardError(booking.Status, domain.BookingStatusRenting, "check-in requires a confirmed booking"))
	}
	if err := validateInspection(insp); err != nil {
		return nil, s.abort(ctx, in.IdempotencyKey, err)
	}
	if !in.PaymentMethod.Valid() {
		return nil, s.abort(ctx, in.IdempotencyKey, domain.ValidationError("payment_method", "unknown payment method"))
	}
	if err := s.requirePhotos(ctx, booking.ID, domain.PhotoStageCheckIn); err != nil {
		return nil, s.abort(ctx, in.IdempotencyKey, err)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID)
	if err != nil {
		return nil, s.abort(ctx, in.IdempotencyKey, err)
	}
	depositCents := utils.PercentOf(vehicle.InitialValueCents, s.cfg.RentalDepositPercent)

	if payment.MethodNeedsGateway(in.PaymentMethod) {
		if in.PaymentRef == "" {
			return nil, s.abort(ctx, in.IdempotencyKey, domain.ValidationError("payment_ref", "gateway invoice reference is required for online payment"))
		}
		if err := s.gateway.VerifyPayment(ctx, in.PaymentRef, depositCents); err != nil {
			return nil, s.abort(ctx, in.IdempotencyKey, err)
		}
	}

	booking.RentalDepositCents = depositCents
	booking.RentalDepositPaid = true
	booking.CheckInNote = insp.ConditionNote
	booking.CheckInBattery = &insp.BatteryLevel
	booking.CheckInMileage = &insp.Mileage
	booking.Status = domain.BookingStatusRenting
	if err := s.commit(ctx, booking, domain.BookingStatusConfirmed, in.IdempotencyKey); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.UpdateStatus(ctx, booking.VehicleID, domain.VehicleStatusRented); err != nil {
		logger.Error("Failed to mark vehicle rented", "vehicle_id", booking.VehicleID, "error", err)
	}
	if err := s.vehicleRepo.UpdateCondition(ctx, booking.VehicleID, insp.BatteryLevel, insp.Mileage); err != nil {
		logger.Error("Failed to update vehicle condition", "vehicle_id", booking.VehicleID, "error", err)
	}

	s.recordPayment(ctx, booking.ID, depositCents, domain.PaymentTypeRentalDeposit, in, "rental deposit at check-in")
	s.notifyRenter(ctx, booking, "Rental Started",
		fmt.Sprintf("Vehicle handed over for booking #%d. Rental deposit: %s", booking.ID, utils.FormatCents(int64(depositCents))),
		"RENTAL_STARTED",
		func(u *domain.User) error {
			return s.emailSvc.SendCheckInConfirmation(ctx, u.Email, u.Name, booking.ID, depositCents)
		})
	return booking, nil
}

// CalculateBill recomputes the full settlement from scratch for a
// booking mid check-out. It writes nothing; re-invoking it with the
// same selections yields the same result.
func (s *bookingService) CalculateBill(ctx context.Context, bookingID int32, penalties []domain.SelectedPenalty, customFee *domain.CustomFee) (*domain.BillResult, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusRenting {
		return nil, domain.GuardError(booking.Status, domain.BookingStatusCompleted, "bill calculation requires an active rental")
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalogSvc.List(ctx)
	if err != nil && len(penalties) > 0 {
		// Without the catalog we cannot price penalty selections; base
		// rent and custom fee alone are still computable.
		return nil, domain.ExternalError("penalty catalog unavailable", err)
	}

	return ComputeBill(booking, vehicle.PricePerHourCents, catalog, penalties, customFee)
}

// CommitCheckout moves RENTING to COMPLETED: recomputes the bill with
// the supplied selections, settles or refunds the net amount, and
// folds the result into the booking.
func (s *bookingService) CommitCheckout(ctx context.Context, staffID, bookingID int32, in CheckoutInput) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	claimed, err := s.claimIdemKey(ctx, in.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return booking, nil
	}

	if booking.Status != domain.BookingStatusRenting {
		return nil, s.abort(ctx, in.IdempotencyKey, domain.GuardError(booking.Status, domain.BookingStatusCompleted, "checkout requires an active rental"))
	}
	if err := validateInspection(in.Inspection); err != nil {
		return nil, s.abort(ctx, in.IdempotencyKey, err)
	}
	if !in.PaymentMethod.Valid() {
		return nil, s.abort(ctx, in.IdempotencyKey, domain.ValidationError("payment_method", "unknown payment method"))
	}
	if err := s.requirePhotos(ctx, booking.ID, domain.PhotoStageCheckOut); err != nil {
		return nil, s.abort(ctx, in.IdempotencyKey, err)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID)
	if err != nil {
		return nil, s.abort(ctx, in.IdempotencyKey, err)
	}
	catalog, err := s.catalogSvc.List(ctx)
	if err != nil && len(in.Penalties) > 0 {
		return nil, s.abort(ctx, in.IdempotencyKey, domain.ExternalError("penalty catalog unavailable", err))
	}
	bill, err := ComputeBill(booking, vehicle.PricePerHourCents, catalog, in.Penalties, in.CustomFee)
	if err != nil {
		return nil, s.abort(ctx, in.IdempotencyKey, err)
	}

	net := bill.NetSettlementCents
	if net > 0 && payment.MethodNeedsGateway(in.PaymentMethod) {
		if in.PaymentRef == "" {
			return nil, s.abort(ctx, in.IdempotencyKey, domain.ValidationError("payment_ref", "gateway invoice reference is required for online payment"))
		}
		if err := s.gateway.VerifyPayment(ctx, in.PaymentRef, net); err != nil {
			return nil, s.abort(ctx, in.IdempotencyKey, err)
		}
	}

	gross := bill.GrossDueCents
	booking.FinalFeeCents = &gross
	if net < 0 {
		refund := -net
		booking.RefundCents = &refund
	}
	booking.CheckOutNote = in.Inspection.ConditionNote
	booking.CheckOutBattery = &in.Inspection.BatteryLevel
	booking.CheckOutMileage = &in.Inspection.Mileage
	booking.Status = domain.BookingStatusCompleted
	if err := s.commit(ctx, booking, domain.BookingStatusRenting, in.IdempotencyKey); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.UpdateStatus(ctx, booking.VehicleID, domain.VehicleStatusAvailable); err != nil {
		logger.Error("Failed to mark vehicle available", "vehicle_id", booking.VehicleID, "error", err)
	}
	if err := s.vehicleRepo.UpdateCondition(ctx, booking.VehicleID, in.Inspection.BatteryLevel, in.Inspection.Mileage); err != nil {
		logger.Error("Failed to update vehicle condition", "vehicle_id", booking.VehicleID, "error", err)
	}

	switch {
	case net > 0:
		s.recordPayment(ctx, booking.ID, net, domain.PaymentTypeSettlement, in.TransitionInput, "checkout settlement")
	case net < 0:
		s.recordPayment(ctx, booking.ID, net, domain.PaymentTypeRefund, in.TransitionInput, "checkout overpayment refund")
	}

	s.notifyRenter(ctx, booking, "Rental Completed",
		fmt.Sprintf("Booking #%d settled. Total bill: %s", booking.ID, utils.FormatCents(int64(gross))),
		"RENTAL_COMPLETED",
		func(u *domain.User) error {
			return s.emailSvc.SendCheckoutReceipt(ctx, u.Email, u.Name, booking.ID, gross, net)
		})
	return booking, nil
}

// Cancel closes a booking before the rental starts. A PENDING booking
// closes outright; a CONFIRMED one owes its deposit back and moves to
// the refund branch, which requires destination bank details up front.
func (s *bookingService) Cancel(ctx context.Context, actorID, bookingID int32, reason string, bank *domain.BankAccount, in TransitionInput) (*domain.Booking, error) {
	if reason == "" {
		return nil, domain.ValidationError("reason", "a cancellation reason is required")
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	claimed, err := s.claimIdemKey(ctx, in.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return booking, nil
	}

	switch booking.Status {
	case domain.BookingStatusPending:
		booking.CancelReason = reason
		booking.Status = domain.BookingStatusCancelled
		if err := s.commit(ctx, booking, domain.BookingStatusPending, in.IdempotencyKey); err != nil {
			return nil, err
		}
		s.notifyRenter(ctx, booking, "Booking Cancelled",
			fmt.Sprintf("Booking #%d was cancelled: %s", booking.ID, reason),
			"BOOKING_CANCELLED",
			func(u *domain.User) error {
				return s.emailSvc.SendCancellationNotice(ctx, u.Email, u.Name, booking.ID, reason, 0)
			})
		return booking, nil

	case domain.BookingStatusConfirmed:
		if bank == nil || !bank.Complete() {
			return nil, s.abort(ctx, in.IdempotencyKey, domain.ValidationError("bank", "refund destination bank details are required"))
		}

		// The refund request carries the only copy of the payout bank
		// details, so it must be on file before the booking enters the
		// refund branch. ConfirmRefund has no way to re-supply it.
		refund := booking.DepositsPaidCents()
		req := &domain.RefundRequest{
			BookingID:   booking.ID,
			AmountCents: refund,
			Bank:        *bank,
		}
		if err := s.refundRepo.Create(ctx, req); err != nil {
			return nil, s.abort(ctx, in.IdempotencyKey, err)
		}

		booking.CancelReason = reason
		booking.RefundCents = &refund
		booking.Status = domain.BookingStatusCancelledAwaitRefund
		if err := s.commit(ctx, booking, domain.BookingStatusConfirmed, in.IdempotencyKey); err != nil {
			return nil, err
		}

		s.notifyRenter(ctx, booking, "Booking Cancelled",
			fmt.Sprintf("Booking #%d was cancelled. Refund of %s pending staff confirmation.", booking.ID, utils.FormatCents(int64(refund))),
			"BOOKING_CANCELLED",
			func(u *domain.User) error {
				return s.emailSvc.SendCancellationNotice(ctx, u.Email, u.Name, booking.ID, reason, refund)
			})
		return booking, nil

	default:
		return nil, s.abort(ctx, in.IdempotencyKey, domain.GuardError(booking.Status, domain.BookingStatusCancelled, "only a pending or confirmed booking can be cancelled"))
	}
}

// ConfirmRefund is the explicit staff action that closes the refund
// branch. Confirming an already refunded booking is rejected, never
// silently accepted.
func (s *bookingService) ConfirmRefund(ctx context.Context, staffID, bookingID int32, in TransitionInput) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	claimed, err := s.claimIdemKey(ctx, in.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return booking, nil
	}

	if booking.Status != domain.BookingStatusCancelledAwaitRefund {
		return nil, s.abort(ctx, in.IdempotencyKey, domain.GuardError(booking.Status, domain.BookingStatusRefunded, "no refund is awaiting confirmation on this booking"))
	}

	req, err := s.refundRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.abort(ctx, in.IdempotencyKey, domain.ValidationError("bank", "no refund request with bank details on file"))
		}
		return nil, s.abort(ctx, in.IdempotencyKey, err)
	}
	if !req.Bank.Complete() {
		return nil, s.abort(ctx, in.IdempotencyKey, domain.ValidationError("bank", "refund bank details are incomplete"))
	}

	// The version-guarded status write is the once-only gate: of two
	// racing confirmations exactly one commits, the other sees a stale
	// state and retries against REFUNDED. The request row is flipped
	// only after the commit so a failed commit leaves it confirmable.
	booking.Status = domain.BookingStatusRefunded
	if err := s.commit(ctx, booking, domain.BookingStatusCancelledAwaitRefund, in.IdempotencyKey); err != nil {
		return nil, err
	}

	if err := s.refundRepo.Confirm(ctx, req.ID, staffID); err != nil {
		logger.Error("Failed to mark refund request confirmed", "booking_id", booking.ID, "refund_id", req.ID, "error", err)
	}

	s.recordPayment(ctx, booking.ID, -req.AmountCents, domain.PaymentTypeRefund, in, "cancellation refund paid out")
	s.notifyRenter(ctx, booking, "Refund Completed",
		fmt.Sprintf("Refund of %s for booking #%d was paid out.", utils.FormatCents(int64(req.AmountCents)), booking.ID),
		"REFUND_COMPLETED",
		func(u *domain.User) error {
			return s.emailSvc.SendRefundConfirmation(ctx, u.Email, u.Name, booking.ID, req.AmountCents)
		})
	return booking, nil
}

func (s *bookingService) getBooking(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError(fmt.Sprintf("booking %d not found", bookingID))
		}
		return nil, err
	}
	return booking, nil
}

// commit is the single write path for transitions. The transition
// table is re-checked here so no caller can write a move it does not
// declare, and the version check inside the repository turns a lost
// race into a stale-state error with nothing applied.
func (s *bookingService) commit(ctx context.Context, booking *domain.Booking, from domain.BookingStatus, idemKey string) error {
	if !domain.CanTransition(from, booking.Status) {
		s.releaseIdemKey(ctx, idemKey)
		return domain.GuardError(from, booking.Status, "transition is not declared legal")
	}
	if err := s.bookingRepo.UpdateWithVersion(ctx, booking); err != nil {
		s.releaseIdemKey(ctx, idemKey)
		if errors.Is(err, repository.ErrVersionConflict) {
			return domain.StaleStateError(booking.ID)
		}
		return err
	}
	return nil
}

// abort releases a claimed idempotency key on a failed transition so a
// client retry is not refused as a replay.
func (s *bookingService) abort(ctx context.Context, idemKey string, err error) error {
	s.releaseIdemKey(ctx, idemKey)
	return err
}

func (s *bookingService) requirePhotos(ctx context.Context, bookingID int32, stage domain.PhotoStage) error {
	count, err := s.photoRepo.CountConfirmed(ctx, bookingID, stage)
	if err != nil {
		return err
	}
	if count < 1 {
		return domain.ValidationError("photos", "at least one confirmed inspection photo is required")
	}
	return nil
}

func (s *bookingService) claimIdemKey(ctx context.Context, key string) (bool, error) {
	if key == "" || s.idemStore == nil {
		return true, nil
	}
	claimed, err := s.idemStore.ReserveIdempotencyKey(ctx, key, s.cfg.IdemKeyTTL)
	if err != nil {
		return false, domain.ExternalError("idempotency store unavailable", err)
	}
	return claimed, nil
}

func (s *bookingService) releaseIdemKey(ctx context.Context, key string) {
	if key == "" || s.idemStore == nil {
		return
	}
	if err := s.idemStore.ReleaseIdempotencyKey(ctx, key); err != nil {
		logger.Error("Failed to release idempotency key", "key", key, "error", err)
	}
}

func (s *bookingService) recordPayment(ctx context.Context, bookingID, amountCents int32, typ domain.PaymentType, in TransitionInput, desc string) {
	rec := &domain.PaymentRecord{
		BookingID:   bookingID,
		AmountCents: amountCents,
		Type:        typ,
		Method:      in.PaymentMethod,
		ExternalRef: in.PaymentRef,
		Description: desc,
	}
	if err := s.paymentRepo.Create(ctx, rec); err != nil {
		logger.Error("Failed to record payment", "booking_id", bookingID, "type", typ, "error", err)
	}
}

func (s *bookingService) notifyRenter(ctx context.Context, booking *domain.Booking, title, message, noteType string, sendEmail func(*domain.User) error) {
	renter, err := s.userRepo.GetByID(ctx, booking.RenterID)
	if err != nil {
		logger.Error("Failed to load renter for notification", "booking_id", booking.ID, "error", err)
		return
	}
	if err := sendEmail(renter); err != nil {
		logger.Error("Failed to send email", "booking_id", booking.ID, "error", err)
	}
	note := &domain.Notification{
		UserID:  renter.ID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":       noteType,
			"booking_id": fmt.Sprintf("%d", booking.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to create notification", "booking_id", booking.ID, "error", err)
	}
}

func validateInspection(insp InspectionInput) error {
	if insp.ConditionNote == "" {
		return domain.ValidationError("condition_note", "condition note is required")
	}
	if insp.BatteryLevel < 0 || insp.BatteryLevel > 100 {
		return domain.ValidationError("battery_level", "battery level must be between 0 and 100")
	}
	if insp.Mileage < 0 {
		return domain.ValidationError("mileage", "mileage must not be negative")
	}
	return nil
}
