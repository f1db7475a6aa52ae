package domain

import "time"

type PhotoStage string

const (
	PhotoStageCheckIn  PhotoStage = "CHECK_IN"
	PhotoStageCheckOut PhotoStage = "CHECK_OUT"
	PhotoStageEvidence PhotoStage = "EVIDENCE" // custom-fee supporting photos
)

func (s PhotoStage) Valid() bool {
	switch s {
	case PhotoStageCheckIn, PhotoStageCheckOut, PhotoStageEvidence:
		return true
	}
	return false
}

type PhotoStatus string

const (
	PhotoStatusPending   PhotoStatus = "PENDING"   // upload URL issued, bytes not confirmed
	PhotoStatusConfirmed PhotoStatus = "CONFIRMED" // bytes verified in storage
)

// InspectionPhoto records one vehicle-condition photo attached to a
// booking at check-in or check-out. Transitions that require photo
// evidence count only CONFIRMED rows.
type InspectionPhoto struct {
	ID          int32       `json:"id"`
	BookingID   int32       `json:"booking_id"`
	Stage       PhotoStage  `json:"stage"`
	StorageKey  string      `json:"storage_key"`
	ContentType string      `json:"content_type"`
	FileSize    int64       `json:"file_size"`
	Status      PhotoStatus `json:"status"`
	UploadedBy  int32       `json:"uploaded_by"`
	CreatedOn   time.Time   `json:"created_on"`
}
