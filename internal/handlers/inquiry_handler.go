package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/middleware"
	"travel-crm/internal/models"
	"travel-crm/internal/services"
	"travel-crm/pkg/utils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type InquiryHandler struct {
	service *services.InquiryService
	log     zerolog.Logger
}

func NewInquiryHandler(service *services.InquiryService, log zerolog.Logger) *InquiryHandler {
	return &InquiryHandler{service: service, log: log}
}

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id < 1 {
		return 0, apperrors.Validation("invalid %s", name)
	}
	return id, nil
}

func requestUserID(r *http.Request) int {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	return userID
}

func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	inq, err := h.service.Create(r.Context(), &req, requestUserID(r))
	if err != nil {
		h.writeError(w, err, "create inquiry")
		return
	}
	utils.JSON(w, http.StatusCreated, inq)
}

func (h *InquiryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	inq, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "get inquiry")
		return
	}
	utils.JSON(w, http.StatusOK, inq)
}

func (h *InquiryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	var req models.UpdateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	inq, err := h.service.Update(r.Context(), id, &req, requestUserID(r))
	if err != nil {
		h.writeError(w, err, "update inquiry")
		return
	}
	utils.JSON(w, http.StatusOK, inq)
}

func (h *InquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id, requestUserID(r)); err != nil {
		h.writeError(w, err, "delete inquiry")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "success", "message": "inquiry deleted"})
}

func (h *InquiryHandler) ChangeStage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	var req models.StageUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	history, err := h.service.ChangeStage(r.Context(), id, &req, requestUserID(r))
	if err != nil {
		h.writeError(w, err, "change stage")
		return
	}
	utils.JSON(w, http.StatusOK, history)
}

func (h *InquiryHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	var req models.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	if err := h.service.Assign(r.Context(), id, &req, requestUserID(r)); err != nil {
		h.writeError(w, err, "assign inquiry")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "success", "message": "inquiry assigned"})
}

func (h *InquiryHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req models.BulkUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	updated, err := h.service.BulkUpdate(r.Context(), &req, requestUserID(r))
	if err != nil {
		h.writeError(w, err, "bulk update")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"status": "success", "updated": updated})
}

func (h *InquiryHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	histories, err := h.service.ListHistory(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "list stage history")
		return
	}
	utils.JSON(w, http.StatusOK, histories)
}

func (h *InquiryHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	var req models.AddPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	payment, err := h.service.AddPayment(r.Context(), id, &req, requestUserID(r))
	if err != nil {
		h.writeError(w, err, "add payment")
		return
	}
	utils.JSON(w, http.StatusCreated, payment)
}

func (h *InquiryHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	list, err := h.service.ListPayments(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "list payments")
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

func (h *InquiryHandler) writeError(w http.ResponseWriter, err error, op string) {
	if apperrors.IsValidation(err) || apperrors.IsNotFound(err) || apperrors.IsConflict(err) {
		utils.Error(w, err)
		return
	}
	h.log.Error().Err(err).Str("op", op).Msg("inquiry handler error")
	utils.Error(w, err)
}
