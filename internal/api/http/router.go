package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/security"
	"evrental-backend/internal/service"
)

// RouterDeps carries everything the API surface needs.
type RouterDeps struct {
	Bookings      service.BookingService
	Catalog       service.PenaltyCatalogService
	Auth          service.AuthService
	Photos        service.PhotoService
	Notifications service.NotificationService
	Tokens        security.TokenManager
}

// NewRouter builds the full API route tree. Transition endpoints are
// staff-only; booking creation and reads are open to any
// authenticated user.
func NewRouter(deps RouterDeps) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	authHandler := NewAuthHandler(deps.Auth)
	r.HandleFunc("/api/v1/auth/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(deps.Tokens))

	bookingHandler := NewBookingHandler(deps.Bookings)
	authed.HandleFunc("/api/v1/bookings", bookingHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/api/v1/bookings/{id:[0-9]+}", bookingHandler.Get).Methods(http.MethodGet)

	catalogHandler := NewCatalogHandler(deps.Catalog)
	authed.HandleFunc("/api/v1/penalties", catalogHandler.List).Methods(http.MethodGet)

	photoHandler := NewPhotoHandler(deps.Photos)
	authed.HandleFunc("/api/v1/bookings/{id:[0-9]+}/photos", photoHandler.RequestUpload).Methods(http.MethodPost)
	authed.HandleFunc("/api/v1/bookings/{id:[0-9]+}/photos", photoHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/api/v1/photos/confirm", photoHandler.ConfirmUpload).Methods(http.MethodPost)

	noteHandler := NewNotificationHandler(deps.Notifications)
	authed.HandleFunc("/api/v1/notifications", noteHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/api/v1/notifications/{id:[0-9]+}/read", noteHandler.MarkAsRead).Methods(http.MethodPost)

	staff := authed.NewRoute().Subrouter()
	staff.Use(RequireRole(domain.UserRoleStaff, domain.UserRoleAdmin))
	staff.HandleFunc("/api/v1/bookings", bookingHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/api/v1/bookings/{id:[0-9]+}/deposit/confirm", bookingHandler.ConfirmDeposit).Methods(http.MethodPost)
	staff.HandleFunc("/api/v1/bookings/{id:[0-9]+}/checkin/initiate", bookingHandler.InitiateCheckIn).Methods(http.MethodPost)
	staff.HandleFunc("/api/v1/bookings/{id:[0-9]+}/checkin/commit", bookingHandler.CommitCheckIn).Methods(http.MethodPost)
	staff.HandleFunc("/api/v1/bookings/{id:[0-9]+}/bill/calculate", bookingHandler.CalculateBill).Methods(http.MethodPost)
	staff.HandleFunc("/api/v1/bookings/{id:[0-9]+}/checkout/commit", bookingHandler.CommitCheckout).Methods(http.MethodPost)
	staff.HandleFunc("/api/v1/bookings/{id:[0-9]+}/refund/confirm", bookingHandler.ConfirmRefund).Methods(http.MethodPost)

	// Cancellation is open to the renter as well as staff.
	authed.HandleFunc("/api/v1/bookings/{id:[0-9]+}/cancel", bookingHandler.Cancel).Methods(http.MethodPost)

	return r
}
