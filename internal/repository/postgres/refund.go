package postgres

import (
	"context"
	"database/sql"
	"time"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/repository"
)

type refundRequestRepository struct {
	db *sql.DB
}

func NewRefundRequestRepository(db *sql.DB) repository.RefundRequestRepository {
	return &refundRequestRepository{db: db}
}

// Create upserts on booking_id: a cancellation retried after a failed
// status commit re-supplies the same request instead of duplicating it.
// Once the booking is awaiting refund no further cancel can run, so a
// confirmed row is never overwritten.
func (r *refundRequestRepository) Create(ctx context.Context, req *domain.RefundRequest) error {
	query := `INSERT INTO refund_requests (booking_id, amount_cents, bank_name, account_number, holder_name, confirmed, created_on)
	          VALUES ($1, $2, $3, $4, $5, false, $6)
	          ON CONFLICT (booking_id) DO UPDATE
	          SET amount_cents=EXCLUDED.amount_cents, bank_name=EXCLUDED.bank_name,
	              account_number=EXCLUDED.account_number, holder_name=EXCLUDED.holder_name
	          RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		req.BookingID, req.AmountCents, req.Bank.BankName, req.Bank.AccountNumber, req.Bank.HolderName, time.Now(),
	).Scan(&req.ID)
}

func (r *refundRequestRepository) GetByBookingID(ctx context.Context, bookingID int32) (*domain.RefundRequest, error) {
	req := &domain.RefundRequest{}
	query := `SELECT id, booking_id, amount_cents, bank_name, account_number, holder_name, confirmed, confirmed_by, confirmed_on, created_on
	          FROM refund_requests WHERE booking_id = $1`
	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(
		&req.ID, &req.BookingID, &req.AmountCents,
		&req.Bank.BankName, &req.Bank.AccountNumber, &req.Bank.HolderName,
		&req.Confirmed, &req.ConfirmedBy, &req.ConfirmedOn, &req.CreatedOn,
	)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Confirm flips the confirmation flag exactly once; a request already
// confirmed matches zero rows and the caller sees sql.ErrNoRows.
func (r *refundRequestRepository) Confirm(ctx context.Context, id, staffID int32) error {
	query := `UPDATE refund_requests SET confirmed=true, confirmed_by=$1, confirmed_on=$2
	          WHERE id=$3 AND confirmed=false`
	res, err := r.db.ExecContext(ctx, query, staffID, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *refundRequestRepository) ListPending(ctx context.Context) ([]domain.RefundRequest, error) {
	query := `SELECT id, booking_id, amount_cents, bank_name, account_number, holder_name, confirmed, confirmed_by, confirmed_on, created_on
	          FROM refund_requests WHERE confirmed = false ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.RefundRequest
	for rows.Next() {
		var req domain.RefundRequest
		if err := rows.Scan(
			&req.ID, &req.BookingID, &req.AmountCents,
			&req.Bank.BankName, &req.Bank.AccountNumber, &req.Bank.HolderName,
			&req.Confirmed, &req.ConfirmedBy, &req.ConfirmedOn, &req.CreatedOn,
		); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
