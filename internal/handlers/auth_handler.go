package handlers

import (
	"encoding/json"
	"net/http"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/middleware"
	"travel-crm/internal/models"
	"travel-crm/internal/services"
	"travel-crm/pkg/utils"

	"github.com/rs/zerolog"
)

type AuthHandler struct {
	service *services.UserService
	log     zerolog.Logger
}

func NewAuthHandler(service *services.UserService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{service: service, log: log}
}

// Login authenticates by email or username. Credential failures come back
// as 401 regardless of whether the account exists.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if apperrors.IsValidation(err) {
			h.log.Info().Str("login", req.Username).Msg("failed login attempt")
			utils.JSON(w, http.StatusUnauthorized, map[string]string{
				"status":  "error",
				"message": "invalid credentials",
			})
			return
		}
		h.log.Error().Err(err).Msg("login")
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.JSON(w, http.StatusUnauthorized, map[string]string{
			"status":  "error",
			"message": "not authenticated",
		})
		return
	}

	user, err := h.service.Get(r.Context(), userID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's own profile.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// ChangePassword changes the authenticated user's own password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, &req); err != nil {
		utils.Error(w, err)
		return
	}
	h.log.Info().Int("user_id", userID).Msg("password changed")
	utils.JSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "password changed",
	})
}

// RefreshToken issues a new token for the authenticated user.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.RefreshToken(r.Context(), requestUserID(r))
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}
