package http

import (
	"net/http"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/service"
)

type PhotoHandler struct {
	photos service.PhotoService
}

func NewPhotoHandler(photos service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

type requestUploadRequest struct {
	Stage       domain.PhotoStage `json:"stage"`
	Filename    string            `json:"filename"`
	ContentType string            `json:"content_type"`
}

type requestUploadResponse struct {
	Photo     *domain.InspectionPhoto `json:"photo"`
	UploadURL string                  `json:"upload_url"`
}

func (h *PhotoHandler) RequestUpload(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req requestUploadRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	photo, uploadURL, err := h.photos.RequestUpload(r.Context(), claims.UserID, bookingID, req.Stage, req.Filename, req.ContentType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, requestUploadResponse{Photo: photo, UploadURL: uploadURL})
}

type confirmUploadRequest struct {
	PhotoID    int32  `json:"photo_id"`
	StorageKey string `json:"storage_key"`
}

func (h *PhotoHandler) ConfirmUpload(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	var req confirmUploadRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	photo, err := h.photos.ConfirmUpload(r.Context(), claims.UserID, req.PhotoID, req.StorageKey)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

type photoListResponse struct {
	Photos []domain.InspectionPhoto `json:"photos"`
}

func (h *PhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	stage := domain.PhotoStage(r.URL.Query().Get("stage"))
	if stage != "" && !stage.Valid() {
		writeError(w, domain.ValidationError("stage", "unknown photo stage"))
		return
	}

	photos, err := h.photos.ListPhotos(r.Context(), bookingID, stage)
	if err != nil {
		writeError(w, err)
		return
	}
	if photos == nil {
		photos = []domain.InspectionPhoto{}
	}
	writeJSON(w, http.StatusOK, photoListResponse{Photos: photos})
}
