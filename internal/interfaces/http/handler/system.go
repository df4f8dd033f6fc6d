package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentledger/backend/internal/interfaces/http/dto"
)

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context, timeout time.Duration) error
}

// HealthCheckerFunc adapts a function to HealthChecker
type HealthCheckerFunc func(ctx context.Context, timeout time.Duration) error

// HealthCheck calls f
func (f HealthCheckerFunc) HealthCheck(ctx context.Context, timeout time.Duration) error {
	return f(ctx, timeout)
}

const healthCheckTimeout = 2 * time.Second

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
	version   string
	database  HealthChecker
	redis     HealthChecker
}

// NewSystemHandler creates a new SystemHandler. redis may be nil when no
// Redis lock store is configured.
func NewSystemHandler(version string, database, redis HealthChecker) *SystemHandler {
	if version == "" {
		version = "1.0.0"
	}
	return &SystemHandler{
		startTime: time.Now(),
		version:   version,
		database:  database,
		redis:     redis,
	}
}

// SystemInfoResponse represents the system information response
// @name HandlerSystemInfoResponse
type SystemInfoResponse struct {
	Name      string `json:"name" example:"Rentledger API"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// GetSystemInfo godoc
// @Summary      Get system information
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      "Rentledger API",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// PingResponse represents the ping response
// @name HandlerPingResponse
type PingResponse struct {
	Message   string `json:"message" example:"pong"`
	Timestamp string `json:"timestamp" example:"2026-01-23T12:00:00Z"`
}

// Ping godoc
// @Summary      Ping the API
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[PingResponse]
// @Router       /system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// Health godoc
// @Summary      Liveness and dependency check
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[HealthData]
// @Failure      503 {object} APIResponse[HealthData]
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	data := HealthData{Status: "healthy", Database: "ok"}
	healthy := true

	if h.database == nil {
		data.Database = "not configured"
		healthy = false
	} else if err := h.database.HealthCheck(ctx, healthCheckTimeout); err != nil {
		data.Database = "unreachable"
		healthy = false
	}

	// Redis only guards rent runs; losing it degrades but does not fail health.
	if h.redis != nil {
		data.Redis = "ok"
		if err := h.redis.HealthCheck(ctx, healthCheckTimeout); err != nil {
			data.Redis = "unreachable"
		}
	}

	if !healthy {
		data.Status = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, dto.Response{Success: false, Data: data})
		return
	}
	h.Success(c, data)
}
