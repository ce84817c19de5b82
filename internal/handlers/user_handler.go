package handlers

import (
	"encoding/json"
	"net/http"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/models"
	"travel-crm/internal/services"
	"travel-crm/pkg/utils"

	"github.com/rs/zerolog"
)

type UserHandler struct {
	service *services.UserService
	log     zerolog.Logger
}

func NewUserHandler(service *services.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{service: service, log: log}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	user, err := h.service.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	h.log.Info().Int("user_id", user.ID).Str("role", user.UserType).Msg("user created")
	utils.JSON(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	user, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	h.log.Info().Int("user_id", id).Msg("user deactivated")
	utils.JSON(w, http.StatusOK, map[string]string{"status": "success", "message": "user deactivated"})
}
