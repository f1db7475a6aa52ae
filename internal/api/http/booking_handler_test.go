package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/security"
	"evrental-backend/internal/service"
)

// MockBookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, renterID, vehicleID int32, startTime, endTime string) (*domain.Booking, error) {
	args := m.Called(ctx, renterID, vehicleID, startTime, endTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) GetBooking(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListBookings(ctx context.Context, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingService) ListStationBookings(ctx context.Context, stationID int32, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, stationID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingService) ConfirmReservationDeposit(ctx context.Context, staffID, bookingID int32, in service.TransitionInput) (*domain.Booking, error) {
	args := m.Called(ctx, staffID, bookingID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) InitiateCheckIn(ctx context.Context, staffID, bookingID int32) (*service.CheckInOffer, error) {
	args := m.Called(ctx, staffID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CheckInOffer), args.Error(1)
}
func (m *MockBookingService) CommitCheckIn(ctx context.Context, staffID, bookingID int32, in service.TransitionInput, insp service.InspectionInput) (*domain.Booking, error) {
	args := m.Called(ctx, staffID, bookingID, in, insp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) CalculateBill(ctx context.Context, bookingID int32, penalties []domain.SelectedPenalty, customFee *domain.CustomFee) (*domain.BillResult, error) {
	args := m.Called(ctx, bookingID, penalties, customFee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillResult), args.Error(1)
}
func (m *MockBookingService) CommitCheckout(ctx context.Context, staffID, bookingID int32, in service.CheckoutInput) (*domain.Booking, error) {
	args := m.Called(ctx, staffID, bookingID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) Cancel(ctx context.Context, actorID, bookingID int32, reason string, bank *domain.BankAccount, in service.TransitionInput) (*domain.Booking, error) {
	args := m.Called(ctx, actorID, bookingID, reason, bank, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ConfirmRefund(ctx context.Context, staffID, bookingID int32, in service.TransitionInput) (*domain.Booking, error) {
	args := m.Called(ctx, staffID, bookingID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func authedRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	claims := &security.UserClaims{UserID: 9, Role: domain.UserRoleStaff, Type: security.TokenTypeAccess}
	return req.WithContext(context.WithValue(req.Context(), claimsContextKey, claims))
}

func TestConfirmDeposit_GuardViolationMapsToConflict(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("ConfirmReservationDeposit", mock.Anything, int32(9), int32(42), mock.Anything).
		Return(nil, domain.GuardError(domain.BookingStatusRenting, domain.BookingStatusConfirmed, "only a pending booking can have its reservation deposit confirmed"))

	req := authedRequest(t, http.MethodPost, "/api/v1/bookings/42/deposit/confirm",
		map[string]string{"payment_method": "CASH"})
	rec := httptest.NewRecorder()
	NewBookingHandler(svc).ConfirmDeposit(rec, mux.SetURLVars(req, map[string]string{"id": "42"}))

	assert.Equal(t, http.StatusConflict, rec.Code)

	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "GUARD_VIOLATION", body.Kind)
}

func TestConfirmDeposit_PassesIdempotencyKeyHeader(t *testing.T) {
	svc := new(MockBookingService)
	booking := &domain.Booking{ID: 42, Status: domain.BookingStatusConfirmed}
	svc.On("ConfirmReservationDeposit", mock.Anything, int32(9), int32(42),
		service.TransitionInput{IdempotencyKey: "key-1", PaymentMethod: domain.PaymentMethodCash}).
		Return(booking, nil)

	req := authedRequest(t, http.MethodPost, "/api/v1/bookings/42/deposit/confirm",
		map[string]string{"payment_method": "CASH"})
	req.Header.Set(idempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()
	NewBookingHandler(svc).ConfirmDeposit(rec, mux.SetURLVars(req, map[string]string{"id": "42"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestCalculateBill_ValidationMapsToUnprocessable(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("CalculateBill", mock.Anything, int32(42), mock.Anything, mock.Anything).
		Return(nil, domain.ValidationError("penalties", "quantity must be positive"))

	req := authedRequest(t, http.MethodPost, "/api/v1/bookings/42/bill/calculate", map[string]any{})
	rec := httptest.NewRecorder()
	NewBookingHandler(svc).CalculateBill(rec, mux.SetURLVars(req, map[string]string{"id": "42"}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "VALIDATION", body.Kind)
	assert.Equal(t, "penalties", body.Field)
}

func TestGetBooking_NotFoundMapsTo404(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("GetBooking", mock.Anything, int32(42)).
		Return(nil, domain.NotFoundError("booking 42 not found"))

	req := authedRequest(t, http.MethodGet, "/api/v1/bookings/42", nil)
	rec := httptest.NewRecorder()
	NewBookingHandler(svc).Get(rec, mux.SetURLVars(req, map[string]string{"id": "42"}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPathID_RejectsGarbage(t *testing.T) {
	svc := new(MockBookingService)
	req := authedRequest(t, http.MethodGet, "/api/v1/bookings/abc", nil)
	rec := httptest.NewRecorder()
	NewBookingHandler(svc).Get(rec, mux.SetURLVars(req, map[string]string{"id": "abc"}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	svc.AssertNotCalled(t, "GetBooking", mock.Anything, mock.Anything)
}
