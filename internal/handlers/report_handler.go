package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"travel-crm/internal/middleware"
	"travel-crm/internal/models"
	"travel-crm/internal/services"
	"travel-crm/internal/timeutil"
	"travel-crm/pkg/utils"

	"github.com/rs/zerolog"
)

type ReportHandler struct {
	service *services.ReportService
	log     zerolog.Logger
}

func NewReportHandler(service *services.ReportService, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{service: service, log: log}
}

func queryInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(name))
	return n
}

func queryDate(r *http.Request, name string) *time.Time {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	t, err := timeutil.ParseDate(raw)
	if err != nil {
		return nil
	}
	return &t
}

// dateRange reads date_from and date_to, widening them to full IST days so a
// filter like date_from=2026-03-01&date_to=2026-03-01 covers the whole day.
func dateRange(r *http.Request) (*time.Time, *time.Time) {
	dateFrom := queryDate(r, "date_from")
	if dateFrom != nil {
		start := timeutil.StartOfDay(*dateFrom)
		dateFrom = &start
	}
	dateTo := queryDate(r, "date_to")
	if dateTo != nil {
		end := timeutil.EndOfDay(*dateTo)
		dateTo = &end
	}
	return dateFrom, dateTo
}

func listQueryFromRequest(r *http.Request) models.ListInquiriesQuery {
	q := r.URL.Query()
	dateFrom, dateTo := dateRange(r)
	return models.ListInquiriesQuery{
		Page:        queryInt(r, "page"),
		Limit:       queryInt(r, "limit"),
		Search:      q.Get("search"),
		Stage:       q.Get("stage"),
		InquiryType: q.Get("inquiry_type"),
		Priority:    q.Get("priority"),
		AssignedTo:  queryInt(r, "assigned_to"),
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		SortBy:      q.Get("sort_by"),
		SortOrder:   q.Get("sort_order"),
	}
}

func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	q := listQueryFromRequest(r)

	// Agents only see their own inquiries
	if role, _ := middleware.GetRoleFromContext(r.Context()); role == models.RoleAgent {
		userID, _ := middleware.GetUserIDFromContext(r.Context())
		q.AssignedTo = userID
	}

	page, err := h.service.List(r.Context(), q)
	if err != nil {
		h.log.Error().Err(err).Msg("list inquiries")
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, page)
}

func (h *ReportHandler) Board(w http.ResponseWriter, r *http.Request) {
	q := models.BoardQuery{
		AssignedTo:  queryInt(r, "assigned_to"),
		InquiryType: r.URL.Query().Get("inquiry_type"),
	}

	columns, err := h.service.Board(r.Context(), q)
	if err != nil {
		h.log.Error().Err(err).Msg("board data")
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, columns)
}

func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dateFrom, dateTo := dateRange(r)
	q := models.StatsQuery{
		AssignedTo: queryInt(r, "assigned_to"),
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	}

	stats, err := h.service.Dashboard(r.Context(), q)
	if err != nil {
		h.log.Error().Err(err).Msg("dashboard stats")
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}

func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := listQueryFromRequest(r)

	if r.URL.Query().Get("format") == "json" {
		exported, err := h.service.ExportRows(r.Context(), q)
		if err != nil {
			h.log.Error().Err(err).Msg("export inquiries")
			utils.Error(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, exported)
		return
	}

	buf, err := h.service.ExportXLSX(r.Context(), q)
	if err != nil {
		h.log.Error().Err(err).Msg("export inquiries")
		utils.Error(w, err)
		return
	}

	filename := fmt.Sprintf("inquiries_%s.xlsx", timeutil.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
