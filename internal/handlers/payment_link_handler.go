package handlers

import (
	"encoding/json"
	"net/http"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/services"
	"travel-crm/pkg/utils"

	"github.com/rs/zerolog"
)

type PaymentLinkHandler struct {
	service *services.PaymentLinkService
	log     zerolog.Logger
}

func NewPaymentLinkHandler(service *services.PaymentLinkService, log zerolog.Logger) *PaymentLinkHandler {
	return &PaymentLinkHandler{service: service, log: log}
}

// CreateOrder creates a gateway order for an inquiry's outstanding balance.
func (h *PaymentLinkHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	inquiryID, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	var req struct {
		Amount float64 `json:"amount"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	link, err := h.service.CreateOrder(r.Context(), inquiryID, req.Amount)
	if err != nil {
		if !apperrors.IsValidation(err) && !apperrors.IsNotFound(err) {
			h.log.Error().Err(err).Int("inquiry_id", inquiryID).Msg("create payment order")
		}
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, link)
}
