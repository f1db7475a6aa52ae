package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/service"
)

const idempotencyKeyHeader = "Idempotency-Key"

type BookingHandler struct {
	bookings service.BookingService
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type createBookingRequest struct {
	VehicleID int32  `json:"vehicle_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	var req createBookingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.CreateBooking(r.Context(), claims.UserID, req.VehicleID, req.StartTime, req.EndTime)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.bookings.GetBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type bookingListResponse struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int32            `json:"total"`
	Page     int32            `json:"page"`
	PageSize int32            `json:"page_size"`
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.BookingStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, domain.ValidationError("status", "unknown booking status"))
		return
	}
	page, pageSize := pagination(r)

	var (
		bookings []domain.Booking
		total    int32
		err      error
	)
	if stationParam := r.URL.Query().Get("station_id"); stationParam != "" {
		stationID, convErr := strconv.ParseInt(stationParam, 10, 32)
		if convErr != nil {
			writeError(w, domain.ValidationError("station_id", "must be an integer"))
			return
		}
		bookings, total, err = h.bookings.ListStationBookings(r.Context(), int32(stationID), status, page, pageSize)
	} else {
		bookings, total, err = h.bookings.ListBookings(r.Context(), status, page, pageSize)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, bookingListResponse{Bookings: bookings, Total: total, Page: page, PageSize: pageSize})
}

type transitionRequest struct {
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	PaymentRef    string               `json:"payment_ref,omitempty"`
}

func (h *BookingHandler) ConfirmDeposit(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req transitionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.ConfirmReservationDeposit(r.Context(), claims.UserID, id, transitionInput(r, req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) InitiateCheckIn(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	offer, err := h.bookings.InitiateCheckIn(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

type inspectionRequest struct {
	ConditionNote string `json:"condition_note"`
	BatteryLevel  int32  `json:"battery_level"`
	Mileage       int32  `json:"mileage"`
}

type commitCheckInRequest struct {
	transitionRequest
	Inspection inspectionRequest `json:"inspection"`
}

func (h *BookingHandler) CommitCheckIn(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req commitCheckInRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.CommitCheckIn(r.Context(), claims.UserID, id,
		transitionInput(r, req.transitionRequest),
		service.InspectionInput{
			ConditionNote: req.Inspection.ConditionNote,
			BatteryLevel:  req.Inspection.BatteryLevel,
			Mileage:       req.Inspection.Mileage,
		})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type billRequest struct {
	Penalties []domain.SelectedPenalty `json:"penalties,omitempty"`
	CustomFee *domain.CustomFee        `json:"custom_fee,omitempty"`
}

func (h *BookingHandler) CalculateBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req billRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	bill, err := h.bookings.CalculateBill(r.Context(), id, req.Penalties, req.CustomFee)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

type commitCheckoutRequest struct {
	transitionRequest
	Inspection inspectionRequest        `json:"inspection"`
	Penalties  []domain.SelectedPenalty `json:"penalties,omitempty"`
	CustomFee  *domain.CustomFee        `json:"custom_fee,omitempty"`
}

func (h *BookingHandler) CommitCheckout(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req commitCheckoutRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.CommitCheckout(r.Context(), claims.UserID, id, service.CheckoutInput{
		TransitionInput: transitionInput(r, req.transitionRequest),
		Inspection: service.InspectionInput{
			ConditionNote: req.Inspection.ConditionNote,
			BatteryLevel:  req.Inspection.BatteryLevel,
			Mileage:       req.Inspection.Mileage,
		},
		Penalties: req.Penalties,
		CustomFee: req.CustomFee,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type cancelRequest struct {
	transitionRequest
	Reason string              `json:"reason"`
	Bank   *domain.BankAccount `json:"bank,omitempty"`
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req cancelRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.Cancel(r.Context(), claims.UserID, id, req.Reason, req.Bank, transitionInput(r, req.transitionRequest))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ConfirmRefund(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req transitionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.ConfirmRefund(r.Context(), claims.UserID, id, transitionInput(r, req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func transitionInput(r *http.Request, req transitionRequest) service.TransitionInput {
	return service.TransitionInput{
		IdempotencyKey: r.Header.Get(idempotencyKeyHeader),
		PaymentMethod:  req.PaymentMethod,
		PaymentRef:     req.PaymentRef,
	}
}

func pathID(r *http.Request) (int32, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.ValidationError("id", "must be a positive integer")
	}
	return int32(id), nil
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
