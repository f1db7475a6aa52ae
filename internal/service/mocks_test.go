package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/payment"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) UpdateWithVersion(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByStatus(ctx context.Context, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByRenter(ctx context.Context, renterID int32, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, renterID, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByStation(ctx context.Context, stationID int32, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, stationID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

// MockPenaltyFeeRepo
type MockPenaltyFeeRepo struct {
	mock.Mock
}

func (m *MockPenaltyFeeRepo) List(ctx context.Context) ([]domain.PenaltyFee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PenaltyFee), args.Error(1)
}
func (m *MockPenaltyFeeRepo) GetByID(ctx context.Context, id int32) (*domain.PenaltyFee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PenaltyFee), args.Error(1)
}

// MockRefundRepo
type MockRefundRepo struct {
	mock.Mock
}

func (m *MockRefundRepo) Create(ctx context.Context, r *domain.RefundRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRefundRepo) GetByBookingID(ctx context.Context, bookingID int32) (*domain.RefundRequest, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefundRequest), args.Error(1)
}
func (m *MockRefundRepo) Confirm(ctx context.Context, id, staffID int32) error {
	args := m.Called(ctx, id, staffID)
	return args.Error(0)
}
func (m *MockRefundRepo) ListPending(ctx context.Context) ([]domain.RefundRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RefundRequest), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) UpdateStatus(ctx context.Context, id int32, status domain.VehicleStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockVehicleRepo) UpdateCondition(ctx context.Context, id, batteryLevel, mileage int32) error {
	args := m.Called(ctx, id, batteryLevel, mileage)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockPhotoRepo
type MockPhotoRepo struct {
	mock.Mock
}

func (m *MockPhotoRepo) Create(ctx context.Context, p *domain.InspectionPhoto) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPhotoRepo) GetByID(ctx context.Context, id int32) (*domain.InspectionPhoto, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InspectionPhoto), args.Error(1)
}
func (m *MockPhotoRepo) Confirm(ctx context.Context, id int32, fileSize int64) error {
	args := m.Called(ctx, id, fileSize)
	return args.Error(0)
}
func (m *MockPhotoRepo) CountConfirmed(ctx context.Context, bookingID int32, stage domain.PhotoStage) (int32, error) {
	args := m.Called(ctx, bookingID, stage)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockPhotoRepo) ListByBooking(ctx context.Context, bookingID int32, stage domain.PhotoStage) ([]domain.InspectionPhoto, error) {
	args := m.Called(ctx, bookingID, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InspectionPhoto), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.PaymentRecord) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByBooking(ctx context.Context, bookingID int32) ([]domain.PaymentRecord, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.PaymentRecord), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateInvoice(ctx context.Context, inv payment.Invoice) (*payment.InvoiceResult, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.InvoiceResult), args.Error(1)
}
func (m *MockGateway) VerifyPayment(ctx context.Context, invoiceID string, expectedAmountCents int32) error {
	args := m.Called(ctx, invoiceID, expectedAmountCents)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendDepositConfirmation(ctx context.Context, email, name string, bookingID int32, amountCents int32) error {
	args := m.Called(ctx, email, name, bookingID, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendCheckInConfirmation(ctx context.Context, email, name string, bookingID int32, depositCents int32) error {
	args := m.Called(ctx, email, name, bookingID, depositCents)
	return args.Error(0)
}
func (m *MockEmailService) SendCheckoutReceipt(ctx context.Context, email, name string, bookingID int32, finalFeeCents, netCents int32) error {
	args := m.Called(ctx, email, name, bookingID, finalFeeCents, netCents)
	return args.Error(0)
}
func (m *MockEmailService) SendCancellationNotice(ctx context.Context, email, name string, bookingID int32, reason string, refundCents int32) error {
	args := m.Called(ctx, email, name, bookingID, reason, refundCents)
	return args.Error(0)
}
func (m *MockEmailService) SendRefundConfirmation(ctx context.Context, email, name string, bookingID int32, amountCents int32) error {
	args := m.Called(ctx, email, name, bookingID, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendRefundReminder(ctx context.Context, staffEmail string, bookingID int32, amountCents int32, pendingDays int) error {
	args := m.Called(ctx, staffEmail, bookingID, amountCents, pendingDays)
	return args.Error(0)
}
func (m *MockEmailService) SendPickupReminder(ctx context.Context, email, name string, bookingID int32) error {
	args := m.Called(ctx, email, name, bookingID)
	return args.Error(0)
}

// MockIdemStore
type MockIdemStore struct {
	mock.Mock
}

func (m *MockIdemStore) ReserveIdempotencyKey(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}
func (m *MockIdemStore) ReleaseIdempotencyKey(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockCatalogCache
type MockCatalogCache struct {
	mock.Mock
}

func (m *MockCatalogCache) Get(ctx context.Context, key string, dest any) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}
func (m *MockCatalogCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

// MockCatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) List(ctx context.Context) ([]domain.PenaltyFee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PenaltyFee), args.Error(1)
}
