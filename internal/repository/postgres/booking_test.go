package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/repository"
)

func newMockRepo(t *testing.T) (repository.BookingRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBookingRepository(db), mock
}

func sampleBooking() *domain.Booking {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:                      42,
		RenterID:                7,
		VehicleID:               3,
		StationID:               1,
		StartTime:               start,
		EndTime:                 start.Add(2 * time.Hour),
		Status:                  domain.BookingStatusConfirmed,
		ReservationDepositCents: 500000,
		ReservationDepositPaid:  true,
		Version:                 2,
	}
}

func TestBookingCreate_SetsID(t *testing.T) {
	repo, mock := newMockRepo(t)
	b := sampleBooking()
	b.ID = 0

	mock.ExpectQuery(`INSERT INTO bookings`).
		WithArgs(b.RenterID, b.VehicleID, b.StationID, b.StartTime, b.EndTime, b.Status,
			b.ReservationDepositCents, b.ReservationDepositPaid, b.RentalDepositCents, b.RentalDepositPaid,
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(42)))

	require.NoError(t, repo.Create(context.Background(), b))
	assert.Equal(t, int32(42), b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWithVersion_IncrementsOnSuccess(t *testing.T) {
	repo, mock := newMockRepo(t)
	b := sampleBooking()

	mock.ExpectExec(`UPDATE bookings SET status=\$1`).
		WithArgs(b.Status,
			b.ReservationDepositPaid, b.RentalDepositCents, b.RentalDepositPaid,
			b.FinalFeeCents, b.RefundCents, b.CancelReason,
			b.CheckInNote, b.CheckInBattery, b.CheckInMileage,
			b.CheckOutNote, b.CheckOutBattery, b.CheckOutMileage,
			sqlmock.AnyArg(), b.ID, int32(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateWithVersion(context.Background(), b))
	assert.Equal(t, int32(3), b.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWithVersion_ZeroRowsIsConflict(t *testing.T) {
	repo, mock := newMockRepo(t)
	b := sampleBooking()

	mock.ExpectExec(`UPDATE bookings SET status=\$1`).
		WithArgs(b.Status,
			b.ReservationDepositPaid, b.RentalDepositCents, b.RentalDepositPaid,
			b.FinalFeeCents, b.RefundCents, b.CancelReason,
			b.CheckInNote, b.CheckInBattery, b.CheckInMileage,
			b.CheckOutNote, b.CheckOutBattery, b.CheckOutMileage,
			sqlmock.AnyArg(), b.ID, int32(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateWithVersion(context.Background(), b)
	assert.ErrorIs(t, err, repository.ErrVersionConflict)
	// The loser's in-memory version must not advance.
	assert.Equal(t, int32(2), b.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_ScansAllColumns(t *testing.T) {
	repo, mock := newMockRepo(t)
	b := sampleBooking()
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "renter_id", "vehicle_id", "station_id", "start_time", "end_time", "status",
		"reservation_deposit_cents", "reservation_deposit_paid", "rental_deposit_cents", "rental_deposit_paid",
		"final_fee_cents", "refund_cents", "cancel_reason",
		"check_in_note", "check_in_battery", "check_in_mileage",
		"check_out_note", "check_out_battery", "check_out_mileage",
		"version", "created_on", "updated_on",
	}).AddRow(
		b.ID, b.RenterID, b.VehicleID, b.StationID, b.StartTime, b.EndTime, b.Status,
		b.ReservationDepositCents, b.ReservationDepositPaid, b.RentalDepositCents, b.RentalDepositPaid,
		nil, nil, "",
		"", nil, nil,
		"", nil, nil,
		b.Version, now, now,
	)
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1`).
		WithArgs(int32(42)).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, got.Status)
	assert.Nil(t, got.FinalFeeCents)
	assert.Equal(t, int32(2), got.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}
