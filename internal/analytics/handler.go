package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/streamnest/streamnest/backend/internal/auth"
	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
	httpapi "github.com/streamnest/streamnest/backend/internal/http"
	"github.com/streamnest/streamnest/backend/internal/logger"
)

// Handler handles HTTP requests for channel analytics
type Handler struct {
	service  *Service
	response httpapi.ResponseHandler
	logger   logger.Logger
}

// NewHandler creates a new analytics handler
func NewHandler(service *Service, response httpapi.ResponseHandler, log logger.Logger) *Handler {
	return &Handler{service: service, response: response, logger: log}
}

// RegisterRoutes registers the analytics API routes
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authService *auth.Service) {
	authRequired := auth.AuthMiddleware(authService, h.response)

	api.GET("/channels/:id/analytics", authRequired, h.HandleChannelSummary)
	api.GET("/channels/:id/analytics/videos", authRequired, h.HandleVideoBreakdown)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case apperrors.IsAuthorization(err):
		h.response.ForbiddenResponse(c, err.Error())
	case apperrors.IsNotFound(err):
		h.response.NotFoundResponse(c, err.Error())
	default:
		h.response.InternalErrorResponse(c, "Unexpected error", err)
	}
}

// @Summary Channel analytics summary
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id path string true "Channel (user) ID"
// @Success 200 {object} http.Response{data=ChannelSummary}
// @Failure 403 {object} http.Response "Not the channel owner"
// @Router /channels/{id}/analytics [get]
func (h *Handler) HandleChannelSummary(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid channel ID format", err)
		return
	}

	summary, err := h.service.ChannelSummary(c.Request.Context(), channelID, userID, c.GetBool("isAdmin"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, summary, "")
}

// HandleVideoBreakdown returns per-video stats for a channel.
func (h *Handler) HandleVideoBreakdown(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid channel ID format", err)
		return
	}

	stats, err := h.service.VideoBreakdown(c.Request.Context(), channelID, userID, c.GetBool("isAdmin"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, stats, "")
}
