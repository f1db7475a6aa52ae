package postgres

import (
	"context"
	"database/sql"
	"time"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/repository"
)

type photoRepository struct {
	db *sql.DB
}

func NewPhotoRepository(db *sql.DB) repository.PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, p *domain.InspectionPhoto) error {
	query := `INSERT INTO inspection_photos (booking_id, stage, storage_key, content_type, file_size, status, uploaded_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		p.BookingID, p.Stage, p.StorageKey, p.ContentType, p.FileSize, p.Status, p.UploadedBy, time.Now(),
	).Scan(&p.ID)
}

func (r *photoRepository) GetByID(ctx context.Context, id int32) (*domain.InspectionPhoto, error) {
	query := `SELECT id, booking_id, stage, storage_key, content_type, file_size, status, uploaded_by, created_on
	          FROM inspection_photos WHERE id=$1`
	var p domain.InspectionPhoto
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.BookingID, &p.Stage, &p.StorageKey, &p.ContentType, &p.FileSize, &p.Status, &p.UploadedBy, &p.CreatedOn,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *photoRepository) Confirm(ctx context.Context, id int32, fileSize int64) error {
	query := `UPDATE inspection_photos SET status=$1, file_size=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, domain.PhotoStatusConfirmed, fileSize, id)
	return err
}

func (r *photoRepository) CountConfirmed(ctx context.Context, bookingID int32, stage domain.PhotoStage) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM inspection_photos WHERE booking_id=$1 AND stage=$2 AND status=$3`
	err := r.db.QueryRowContext(ctx, query, bookingID, stage, domain.PhotoStatusConfirmed).Scan(&count)
	return count, err
}

func (r *photoRepository) ListByBooking(ctx context.Context, bookingID int32, stage domain.PhotoStage) ([]domain.InspectionPhoto, error) {
	query := `SELECT id, booking_id, stage, storage_key, content_type, file_size, status, uploaded_by, created_on
	          FROM inspection_photos WHERE booking_id=$1 AND stage=$2 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, bookingID, stage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []domain.InspectionPhoto
	for rows.Next() {
		var p domain.InspectionPhoto
		if err := rows.Scan(&p.ID, &p.BookingID, &p.Stage, &p.StorageKey, &p.ContentType, &p.FileSize, &p.Status, &p.UploadedBy, &p.CreatedOn); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}
