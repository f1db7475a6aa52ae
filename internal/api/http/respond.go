package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/logger"
	"evrental-backend/internal/security"
	"evrental-backend/internal/service"
)

// errorBody is the JSON error envelope. Kind and Field let clients
// distinguish fix-your-input from refetch-and-retry from escalate.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, err error) {
	var domErr *domain.Error
	if errors.As(err, &domErr) {
		writeJSON(w, statusForKind(domErr.Kind), errorBody{
			Error: domErr.Msg,
			Kind:  string(domErr.Kind),
			Field: domErr.Field,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid email or password"})
	case errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrWrongTokenType):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
	default:
		logger.Error("Unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrKindValidation:
		return http.StatusUnprocessableEntity
	case domain.ErrKindGuard:
		return http.StatusConflict
	case domain.ErrKindStaleState:
		return http.StatusConflict
	case domain.ErrKindCatalog:
		return http.StatusConflict
	case domain.ErrKindNotFound:
		return http.StatusNotFound
	case domain.ErrKindExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, dest any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return domain.ValidationError("body", "invalid JSON request body")
	}
	return nil
}
