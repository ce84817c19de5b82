package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"travel-crm/internal/apperrors"
	"travel-crm/internal/models"
	"travel-crm/internal/services"
	"travel-crm/pkg/utils"

	"github.com/rs/zerolog"
)

// 10 MB cap on attachment uploads
const maxAttachmentSize = 10 << 20

type DetailHandler struct {
	service *services.DetailService
	log     zerolog.Logger
}

func NewDetailHandler(service *services.DetailService, log zerolog.Logger) *DetailHandler {
	return &DetailHandler{service: service, log: log}
}

// Add accepts either a JSON body or a multipart form with an attachment
// file alongside the detail fields.
func (h *DetailHandler) Add(w http.ResponseWriter, r *http.Request) {
	inquiryID, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		h.addWithAttachment(w, r, inquiryID)
		return
	}

	var req models.AddDetailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	detail, err := h.service.Add(r.Context(), inquiryID, &req, requestUserID(r))
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, detail)
}

func (h *DetailHandler) addWithAttachment(w http.ResponseWriter, r *http.Request, inquiryID int) {
	if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
		utils.Error(w, apperrors.Validation("invalid multipart form"))
		return
	}

	req := models.AddDetailRequest{
		Type:  r.FormValue("type"),
		Title: r.FormValue("title"),
	}
	if desc := r.FormValue("description"); desc != "" {
		req.Description = &desc
	}

	file, header, err := r.FormFile("attachment")
	if err != nil {
		utils.Error(w, apperrors.Validation("attachment file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAttachmentSize))
	if err != nil {
		utils.Error(w, apperrors.Internal(err))
		return
	}

	detail, err := h.service.AddWithAttachment(r.Context(), inquiryID, &req,
		requestUserID(r), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		if !apperrors.IsValidation(err) && !apperrors.IsNotFound(err) {
			h.log.Error().Err(err).Msg("upload attachment")
		}
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, detail)
}

func (h *DetailHandler) List(w http.ResponseWriter, r *http.Request) {
	inquiryID, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	q := models.ListDetailsQuery{
		Type:  r.URL.Query().Get("type"),
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	}

	page, err := h.service.List(r.Context(), inquiryID, q)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, page)
}

func (h *DetailHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "detailId")
	if err != nil {
		utils.Error(w, err)
		return
	}

	if err := h.service.Complete(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "success", "message": "detail completed"})
}

// Attachment streams a stored attachment back to the client.
func (h *DetailHandler) Attachment(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" || strings.Contains(key, "..") {
		utils.Error(w, apperrors.Validation("invalid attachment key"))
		return
	}

	data, contentType, err := h.service.DownloadAttachment(r.Context(), key)
	if err != nil {
		utils.Error(w, err)
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
