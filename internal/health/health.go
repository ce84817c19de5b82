package health

import (
	"context"
	"time"

	"travel-crm/internal/cache"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

type HealthChecker struct {
	db *pgxpool.Pool
}

type HealthStatus struct {
	Status   string         `json:"status"`
	Database DatabaseHealth `json:"database"`
}

type DatabaseHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

type DetailedStatus struct {
	Status   string         `json:"status"`
	Database DatabaseHealth `json:"database"`
	Cache    CacheHealth    `json:"cache"`
	System   SystemHealth   `json:"system"`
}

type CacheHealth struct {
	Status string `json:"status"`
}

type SystemHealth struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedMB  uint64  `json:"memory_used_mb"`
	MemoryTotalMB uint64  `json:"memory_total_mb"`
}

func NewHealthChecker(db *pgxpool.Pool) *HealthChecker {
	return &HealthChecker{db: db}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	dbHealth := h.checkDatabase()

	status := "healthy"
	if dbHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
	}
}

// CheckDetailed adds cache reachability and host resource usage.
// Cache being down does not make the service unhealthy.
func (h *HealthChecker) CheckDetailed() DetailedStatus {
	dbHealth := h.checkDatabase()

	status := "healthy"
	if dbHealth.Status != "healthy" {
		status = "unhealthy"
	}

	cacheStatus := "unavailable"
	if cache.IsHealthy() {
		cacheStatus = "healthy"
	}

	return DetailedStatus{
		Status:   status,
		Database: dbHealth,
		Cache:    CacheHealth{Status: cacheStatus},
		System:   collectSystem(),
	}
}

func (h *HealthChecker) checkDatabase() DatabaseHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DatabaseHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return DatabaseHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}

func collectSystem() SystemHealth {
	var sys SystemHealth

	if cpuPercents, err := cpu.Percent(0, false); err == nil && len(cpuPercents) > 0 {
		sys.CPUPercent = cpuPercents[0]
	}

	if memStats, err := mem.VirtualMemory(); err == nil {
		sys.MemoryPercent = memStats.UsedPercent
		sys.MemoryUsedMB = memStats.Used / 1024 / 1024
		sys.MemoryTotalMB = memStats.Total / 1024 / 1024
	}

	return sys
}
