package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/authsvc/pkg/validator"
)

// Response is the JSON envelope every endpoint returns.
type Response struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Error     string    `json:"error,omitempty"`
	Data      any       `json:"data,omitempty"`
	Errors    any       `json:"errors,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	resp.Timestamp = time.Now().UTC()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondOK(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondError(w http.ResponseWriter, err error) {
	if verrs := validator.Extract(err); verrs != nil {
		fields := make(map[string][]string, len(verrs))
		for _, ve := range verrs {
			fields[ve.Field] = append(fields[ve.Field], ve.Message)
		}
		writeJSON(w, http.StatusBadRequest, Response{
			Message: "Validation failed",
			Error:   "validation_error",
			Errors:  fields,
		})
		return
	}

	status, code, message := mapError(err)
	writeJSON(w, status, Response{
		Message: message,
		Error:   code,
	})
}

// mapError translates domain errors into HTTP statuses in one place.
func mapError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "Invalid email or password"
	case errors.Is(err, ErrEmailTaken):
		return http.StatusConflict, "email_taken", "Email is already registered"
	case errors.Is(err, ErrMissingToken):
		return http.StatusUnauthorized, "missing_token", "Authentication required"
	case errors.Is(err, ErrInvalidRefresh):
		return http.StatusUnauthorized, "invalid_refresh_token", "Invalid or expired refresh token"
	case errors.Is(err, ErrInvalidToken):
		return http.StatusNotFound, "invalid_token", "Invalid or expired token"
	case errors.Is(err, ErrEmailNotVerified):
		return http.StatusUnauthorized, "email_not_verified", "Email address is not verified"
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized", "Authentication required"
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound, "user_not_found", "User not found"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request", "Invalid request payload"
	default:
		return http.StatusInternalServerError, "internal_error", "Something went wrong"
	}
}
