package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authsvc/pkg/jwt"
	"github.com/dmitrymomot/authsvc/pkg/validator"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt input limit
)

// Handler exposes the authentication flows over HTTP.
type Handler struct {
	svc       *Service
	transport *Transport
	guard     *Guard
	log       *slog.Logger
}

// NewHandler wires the HTTP layer.
func NewHandler(svc *Service, transport *Transport, guard *Guard, log *slog.Logger) *Handler {
	return &Handler{
		svc:       svc,
		transport: transport,
		guard:     guard,
		log:       log,
	}
}

// Handle returns the auth router, mounted by the caller under its prefix.
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Post("/refresh-token", h.refresh)
	r.Post("/forgot-password", h.forgotPassword)
	r.Post("/reset-password/{token}", h.resetPassword)
	r.Get("/verify-email/{token}", h.verifyEmail)
	r.Post("/resend-verification", h.resendVerification)

	r.Group(func(protected chi.Router) {
		protected.Use(h.guard.Authenticate)
		protected.Get("/me", h.me)
	})

	return r
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := validator.Apply(
		validator.RequiredString("email", req.Email),
		validator.ValidEmail("email", req.Email),
		validator.RequiredString("password", req.Password),
		validator.MinLenString("password", req.Password, minPasswordLen),
		validator.MaxLenString("password", req.Password, maxPasswordLen),
		validator.EqualStrings("confirmPassword", req.ConfirmPassword, req.Password),
	); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.svc.Register(r.Context(), RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, "Registration successful. Please verify your email.", result)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := validator.Apply(
		validator.RequiredString("email", req.Email),
		validator.ValidEmail("email", req.Email),
		validator.RequiredString("password", req.Password),
	); err != nil {
		respondError(w, err)
		return
	}

	profile, pair, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	// tokens travel as cookies only, the body carries the user
	h.transport.SetSession(w, pair)
	respondOK(w, "Login successful", map[string]any{"user": profile})
}

func (h *Handler) logout(w http.ResponseWriter, _ *http.Request) {
	// idempotent: clearing cookies that are not set is still a success
	h.transport.Clear(w)
	respondOK(w, "Logout successful", nil)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := h.transport.RefreshToken(r)
	if err != nil {
		respondError(w, err)
		return
	}

	pair, err := h.svc.Refresh(r.Context(), refreshToken)
	if err != nil {
		h.transport.Clear(w)
		respondError(w, err)
		return
	}

	h.transport.SetSession(w, pair)
	respondOK(w, "Token refreshed", nil)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, ErrUnauthorized)
		return
	}

	profile, err := h.svc.Profile(r.Context(), claims.Subject)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, "Profile retrieved", map[string]any{"user": profile})
}

type emailRequest struct {
	Email string `json:"email"`
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := validator.Apply(
		validator.RequiredString("email", req.Email),
		validator.ValidEmail("email", req.Email),
	); err != nil {
		respondError(w, err)
		return
	}

	if err := h.svc.ForgotPassword(r.Context(), req.Email); err != nil {
		h.log.Error("forgot password failed", "error", err)
	}

	// generic response regardless of account existence
	respondOK(w, "If the email exists, a reset link has been sent.", nil)
}

type resetPasswordRequest struct {
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	resetToken := chi.URLParam(r, "token")

	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := validator.Apply(
		validator.RequiredString("newPassword", req.NewPassword),
		validator.MinLenString("newPassword", req.NewPassword, minPasswordLen),
		validator.MaxLenString("newPassword", req.NewPassword, maxPasswordLen),
		validator.EqualStrings("confirmPassword", req.ConfirmPassword, req.NewPassword),
	); err != nil {
		respondError(w, err)
		return
	}

	if err := h.svc.ResetPassword(r.Context(), resetToken, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, "Password has been reset. Please sign in.", nil)
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.VerifyEmail(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, "Email verified", map[string]any{"user": profile})
}

func (h *Handler) resendVerification(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := validator.Apply(
		validator.RequiredString("email", req.Email),
		validator.ValidEmail("email", req.Email),
	); err != nil {
		respondError(w, err)
		return
	}

	if err := h.svc.ResendVerification(r.Context(), req.Email); err != nil {
		h.log.Error("resend verification failed", "error", err)
	}

	respondOK(w, "If the account exists and is unverified, a new code has been sent.", nil)
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return ErrBadRequest
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return ErrBadRequest
	}
	return nil
}
