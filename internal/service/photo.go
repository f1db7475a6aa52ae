package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/repository"
	"evrental-backend/internal/storage"
)

const uploadURLExpiry = 15 * time.Minute

var allowedPhotoTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type photoService struct {
	photoRepo   repository.PhotoRepository
	bookingRepo repository.BookingRepository
	store       storage.StorageInterface
}

func NewPhotoService(photoRepo repository.PhotoRepository, bookingRepo repository.BookingRepository, store storage.StorageInterface) PhotoService {
	return &photoService{photoRepo: photoRepo, bookingRepo: bookingRepo, store: store}
}

// RequestUpload registers a pending photo row and returns a presigned
// URL for the bytes. The photo does not count toward transition guards
// until ConfirmUpload verifies it landed in storage.
func (s *photoService) RequestUpload(ctx context.Context, userID, bookingID int32, stage domain.PhotoStage, filename, contentType string) (*domain.InspectionPhoto, string, error) {
	if !stage.Valid() {
		return nil, "", domain.ValidationError("stage", "unknown photo stage")
	}
	ext, ok := allowedPhotoTypes[contentType]
	if !ok {
		return nil, "", domain.ValidationError("content_type", "only jpeg, png and webp photos are accepted")
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", domain.NotFoundError(fmt.Sprintf("booking %d not found", bookingID))
		}
		return nil, "", err
	}
	if booking.Status.IsTerminal() {
		return nil, "", domain.ValidationError("booking_id", "cannot attach photos to a closed booking")
	}

	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	if base == "" || base == "." {
		base = "photo"
	}
	key := fmt.Sprintf("bookings/%d/%s/%s-%s%s", bookingID, strings.ToLower(string(stage)), base, uuid.NewString()[:8], ext)

	photo := &domain.InspectionPhoto{
		BookingID:   bookingID,
		Stage:       stage,
		StorageKey:  key,
		ContentType: contentType,
		Status:      domain.PhotoStatusPending,
		UploadedBy:  userID,
	}
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		return nil, "", err
	}

	uploadURL, err := s.store.GeneratePresignedUploadURL(ctx, key, contentType, uploadURLExpiry)
	if err != nil {
		return nil, "", domain.ExternalError("failed to generate upload URL", err)
	}
	return photo, uploadURL, nil
}

// ConfirmUpload verifies the bytes exist in storage and flips the
// photo to CONFIRMED so transition guards can count it.
func (s *photoService) ConfirmUpload(ctx context.Context, userID int32, photoID int32, storageKey string) (*domain.InspectionPhoto, error) {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError(fmt.Sprintf("photo %d not found", photoID))
		}
		return nil, err
	}
	if photo.StorageKey != storageKey {
		return nil, domain.ValidationError("storage_key", "storage key does not match the requested upload")
	}
	if photo.Status == domain.PhotoStatusConfirmed {
		return photo, nil
	}

	exists, size, err := s.store.FileExists(ctx, photo.StorageKey)
	if err != nil {
		return nil, domain.ExternalError("failed to verify uploaded photo", err)
	}
	if !exists || size == 0 {
		return nil, domain.ValidationError("storage_key", "photo bytes were not uploaded")
	}

	if err := s.photoRepo.Confirm(ctx, photo.ID, size); err != nil {
		return nil, err
	}
	photo.Status = domain.PhotoStatusConfirmed
	photo.FileSize = size
	return photo, nil
}

func (s *photoService) ListPhotos(ctx context.Context, bookingID int32, stage domain.PhotoStage) ([]domain.InspectionPhoto, error) {
	return s.photoRepo.ListByBooking(ctx, bookingID, stage)
}
