package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/streamnest/streamnest/backend/internal/cache"
	"github.com/streamnest/streamnest/backend/internal/logger"
)

// Handler reports liveness of the process and its backing stores
type Handler struct {
	db     *gorm.DB
	cache  cache.Service
	logger logger.Logger
}

// NewHandler creates a new health handler
func NewHandler(db *gorm.DB, cacheService cache.Service, log logger.Logger) *Handler {
	return &Handler{db: db, cache: cacheService, logger: log}
}

// RegisterRoutes registers the health endpoint
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.HandleHealth)
}

// HandleHealth checks Postgres and Redis connectivity. Degraded dependencies
// flip the status but still return a body so operators can see which check
// failed.
func (h *Handler) HandleHealth(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		checks["database"] = "unreachable"
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	if err := h.cache.Ping(c.Request.Context()); err != nil {
		checks["cache"] = "unreachable"
		healthy = false
	} else {
		checks["cache"] = "ok"
	}

	status := http.StatusOK
	overall := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status": overall,
		"checks": checks,
	})
}
