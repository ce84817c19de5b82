package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/models"
	"travel-crm/internal/services"
	"travel-crm/pkg/utils"

	"github.com/rs/zerolog"
)

type InvoiceHandler struct {
	service *services.InvoiceService
	log     zerolog.Logger
}

func NewInvoiceHandler(service *services.InvoiceService, log zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{service: service, log: log}
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	inquiryID, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	var req models.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	inv, err := h.service.Create(r.Context(), inquiryID, &req, requestUserID(r))
	if err != nil {
		if !apperrors.IsValidation(err) && !apperrors.IsNotFound(err) && !apperrors.IsConflict(err) {
			h.log.Error().Err(err).Msg("create invoice")
		}
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, inv)
}

func (h *InvoiceHandler) ListByInquiry(w http.ResponseWriter, r *http.Request) {
	inquiryID, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	invoices, err := h.service.ListByInquiry(r.Context(), inquiryID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "invoiceId")
	if err != nil {
		utils.Error(w, err)
		return
	}

	inv, err := h.service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "invoiceId")
	if err != nil {
		utils.Error(w, err)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "success", "message": "invoice status updated"})
}

// PDF streams the invoice as a generated PDF document.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "invoiceId")
	if err != nil {
		utils.Error(w, err)
		return
	}

	data, err := h.service.GeneratePDF(r.Context(), id)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			h.log.Error().Err(err).Int("invoice_id", id).Msg("generate invoice pdf")
		}
		utils.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"invoice_%d.pdf\"", id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
