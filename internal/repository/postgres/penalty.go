package postgres

import (
	"context"
	"database/sql"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/repository"
)

type penaltyFeeRepository struct {
	db *sql.DB
}

func NewPenaltyFeeRepository(db *sql.DB) repository.PenaltyFeeRepository {
	return &penaltyFeeRepository{db: db}
}

func (r *penaltyFeeRepository) List(ctx context.Context) ([]domain.PenaltyFee, error) {
	query := `SELECT id, name, amount_cents, description, created_on FROM penalty_fees ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fees []domain.PenaltyFee
	for rows.Next() {
		var f domain.PenaltyFee
		if err := rows.Scan(&f.ID, &f.Name, &f.AmountCents, &f.Description, &f.CreatedOn); err != nil {
			return nil, err
		}
		fees = append(fees, f)
	}
	return fees, rows.Err()
}

func (r *penaltyFeeRepository) GetByID(ctx context.Context, id int32) (*domain.PenaltyFee, error) {
	f := &domain.PenaltyFee{}
	query := `SELECT id, name, amount_cents, description, created_on FROM penalty_fees WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.Name, &f.AmountCents, &f.Description, &f.CreatedOn)
	if err != nil {
		return nil, err
	}
	return f, nil
}
