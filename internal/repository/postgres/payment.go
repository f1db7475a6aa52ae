package postgres

import (
	"context"
	"database/sql"
	"time"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.PaymentRecord) error {
	query := `INSERT INTO payment_records (booking_id, amount_cents, type, method, external_ref, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		p.BookingID, p.AmountCents, p.Type, p.Method, p.ExternalRef, p.Description, time.Now(),
	).Scan(&p.ID)
}

func (r *paymentRepository) ListByBooking(ctx context.Context, bookingID int32) ([]domain.PaymentRecord, error) {
	query := `SELECT id, booking_id, amount_cents, type, method, external_ref, description, created_on
	          FROM payment_records WHERE booking_id=$1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.PaymentRecord
	for rows.Next() {
		var p domain.PaymentRecord
		if err := rows.Scan(&p.ID, &p.BookingID, &p.AmountCents, &p.Type, &p.Method, &p.ExternalRef, &p.Description, &p.CreatedOn); err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}
