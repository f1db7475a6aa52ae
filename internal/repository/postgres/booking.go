package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, renter_id, vehicle_id, station_id, start_time, end_time, status,
	reservation_deposit_cents, reservation_deposit_paid, rental_deposit_cents, rental_deposit_paid,
	final_fee_cents, refund_cents, cancel_reason,
	check_in_note, check_in_battery, check_in_mileage,
	check_out_note, check_out_battery, check_out_mileage,
	version, created_on, updated_on`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(
		&b.ID, &b.RenterID, &b.VehicleID, &b.StationID, &b.StartTime, &b.EndTime, &b.Status,
		&b.ReservationDepositCents, &b.ReservationDepositPaid, &b.RentalDepositCents, &b.RentalDepositPaid,
		&b.FinalFeeCents, &b.RefundCents, &b.CancelReason,
		&b.CheckInNote, &b.CheckInBattery, &b.CheckInMileage,
		&b.CheckOutNote, &b.CheckOutBattery, &b.CheckOutMileage,
		&b.Version, &b.CreatedOn, &b.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (renter_id, vehicle_id, station_id, start_time, end_time, status,
	          reservation_deposit_cents, reservation_deposit_paid, rental_deposit_cents, rental_deposit_paid,
	          version, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1, $11, $12) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		b.RenterID, b.VehicleID, b.StationID, b.StartTime, b.EndTime, b.Status,
		b.ReservationDepositCents, b.ReservationDepositPaid, b.RentalDepositCents, b.RentalDepositPaid,
		now, now,
	).Scan(&b.ID)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.db.QueryRowContext(ctx, query, id))
}

// UpdateWithVersion is the single write path for booking transitions.
// The WHERE clause carries the version read by the caller: a racing
// transition that committed first leaves zero rows affected here, and
// the loser gets ErrVersionConflict instead of a half-applied state.
func (r *bookingRepository) UpdateWithVersion(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1,
	          reservation_deposit_paid=$2, rental_deposit_cents=$3, rental_deposit_paid=$4,
	          final_fee_cents=$5, refund_cents=$6, cancel_reason=$7,
	          check_in_note=$8, check_in_battery=$9, check_in_mileage=$10,
	          check_out_note=$11, check_out_battery=$12, check_out_mileage=$13,
	          version=version+1, updated_on=$14
	          WHERE id=$15 AND version=$16`
	res, err := r.db.ExecContext(ctx, query,
		b.Status,
		b.ReservationDepositPaid, b.RentalDepositCents, b.RentalDepositPaid,
		b.FinalFeeCents, b.RefundCents, b.CancelReason,
		b.CheckInNote, b.CheckInBattery, b.CheckInMileage,
		b.CheckOutNote, b.CheckOutBattery, b.CheckOutMileage,
		time.Now(), b.ID, b.Version,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrVersionConflict
	}
	b.Version++
	return nil
}

func (r *bookingRepository) ListByStatus(ctx context.Context, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	where := `FROM bookings`
	args := []any{}
	if status != "" {
		where += ` WHERE status = $1`
		args = append(args, status)
	}
	return r.list(ctx, where, args, page, pageSize)
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID int32, page, pageSize int32) ([]domain.Booking, int32, error) {
	where := `FROM bookings WHERE renter_id = $1`
	return r.list(ctx, where, []any{renterID}, page, pageSize)
}

func (r *bookingRepository) ListByStation(ctx context.Context, stationID int32, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	where := `FROM bookings WHERE station_id = $1`
	args := []any{stationID}
	if status != "" {
		where += ` AND status = $2`
		args = append(args, status)
	}
	return r.list(ctx, where, args, page, pageSize)
}

func (r *bookingRepository) list(ctx context.Context, where string, args []any, page, pageSize int32) ([]domain.Booking, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`SELECT %s %s ORDER BY created_on DESC LIMIT $%d OFFSET $%d`,
		bookingColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}
