package transport

import (
	"errors"
	"net/http"

	"vintage-atelier/internal/domain"
	"vintage-atelier/internal/middleware"
	"vintage-atelier/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RegisterRequest is the registration payload. Password and its confirmation
// are accepted for form compatibility and discarded: the identity flow is a
// stub and never verifies a credential.
type RegisterRequest struct {
	Name               string `json:"name" validate:"required"`
	Email              string `json:"email" validate:"omitempty,email"`
	Phone              string `json:"phone"`
	Telegram           string `json:"telegram"`
	Password           string `json:"password"`
	ConfirmPassword    string `json:"confirm_password"`
	RegistrationMethod string `json:"registration_method" validate:"omitempty,oneof=email phone telegram"`
}

// LoginRequest is the login payload. The identifier may be an email, a phone
// number or a telegram handle; the password is ignored.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"`
}

// UpdateProfileRequest replaces the editable profile fields.
type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Telegram string `json:"telegram"`
}

// SessionResponse carries the session token and the fabricated profile.
type SessionResponse struct {
	SessionToken string       `json:"session_token"`
	User         *domain.User `json:"user"`
}

// AuthHandler handles HTTP requests for the stub identity flow.
type AuthHandler struct {
	identity service.IdentityService
	logger   *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(identity service.IdentityService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{identity: identity, logger: logger}
}

// RegisterRoutes registers all identity routes.
func (h *AuthHandler) RegisterRoutes(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		// Public routes
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		// Routes that need a session token
		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Post("/logout", h.Logout)
			r.Get("/profile", h.Profile)
			r.Put("/profile", h.UpdateProfile)
		})
	})
}

// Register fabricates a profile from the submitted form.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session not resolved")
		return
	}

	var req RegisterRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Registration validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form := service.RegisterForm{
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Telegram:           req.Telegram,
		RegistrationMethod: req.RegistrationMethod,
	}

	token, user, err := h.identity.Register(r.Context(), sessionID, form)
	if err != nil {
		h.logger.Error("Registration failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, SessionResponse{
		SessionToken: token,
		User:         user,
	})
}

// Login fabricates a profile from the identifier.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session not resolved")
		return
	}

	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.identity.Login(r.Context(), sessionID, req.Identifier)
	if err != nil {
		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, SessionResponse{
		SessionToken: token,
		User:         user,
	})
}

// Logout drops the session's saved profile and order history and empties the
// cart.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session not resolved")
		return
	}

	if err := h.identity.Logout(r.Context(), sessionID); err != nil {
		h.logger.Error("Logout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to logout")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// Profile returns the saved profile.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session not resolved")
		return
	}

	user, err := h.identity.Profile(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrNotLoggedIn) {
			middleware.RespondWithError(w, http.StatusNotFound, "no saved profile")
			return
		}

		h.logger.Error("Failed to load profile", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, user)
}

// UpdateProfile replaces the editable profile fields.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session not resolved")
		return
	}

	var req UpdateProfileRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Profile update validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.identity.UpdateProfile(r.Context(), sessionID, service.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Telegram: req.Telegram,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotLoggedIn) {
			middleware.RespondWithError(w, http.StatusNotFound, "no saved profile")
			return
		}

		h.logger.Error("Profile update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, user)
}
