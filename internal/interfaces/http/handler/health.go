package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// HealthHandler handles health and readiness endpoints
type HealthHandler struct {
	BaseHandler
	db        *persistence.Database
	redis     *redis.Client
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler. The Redis client is
// optional; nil skips the Redis readiness check.
func NewHealthHandler(db *persistence.Database, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:        db,
		redis:     redisClient,
		startTime: time.Now(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	GoVersion string `json:"goVersion"`
	Uptime    string `json:"uptime"`
}

// ReadinessResponse reports the state of each dependency
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health reports process liveness
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(HealthResponse{
		Status:    "ok",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}))
}

// Ready reports whether the service can reach its dependencies
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := make(map[string]string)
	healthy := true

	if err := h.db.Ping(); err != nil {
		checks["database"] = err.Error()
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	state := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}

	c.JSON(status, dto.NewSuccessResponse(ReadinessResponse{
		Status: state,
		Checks: checks,
	}))
}

// RegisterRoutes registers health endpoints
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)
}
