package handlers

import (
	"net/http"

	"travel-crm/internal/health"
	"travel-crm/pkg/utils"
)

type HealthHandler struct {
	checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.checker.CheckBasic()
	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}

// Ready reports whether the service can take traffic. The database must be
// reachable; a missing cache does not fail readiness.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := h.checker.CheckBasic()
	if status.Status != "healthy" {
		utils.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *HealthHandler) HealthDetailed(w http.ResponseWriter, r *http.Request) {
	status := h.checker.CheckDetailed()
	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}
