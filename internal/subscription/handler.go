package subscription

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/streamnest/streamnest/backend/internal/auth"
	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
	httpapi "github.com/streamnest/streamnest/backend/internal/http"
	"github.com/streamnest/streamnest/backend/internal/logger"
)

// Handler handles HTTP requests for subscription operations
type Handler struct {
	service  *Service
	response httpapi.ResponseHandler
	logger   logger.Logger
}

// NewHandler creates a new subscription handler
func NewHandler(service *Service, response httpapi.ResponseHandler, log logger.Logger) *Handler {
	return &Handler{service: service, response: response, logger: log}
}

// RegisterRoutes registers the subscription API routes
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authService *auth.Service) {
	authRequired := auth.AuthMiddleware(authService, h.response)
	authOptional := auth.OptionalAuthMiddleware(authService)

	api.POST("/channels/:id/subscribe", authRequired, h.HandleSubscribe)
	api.DELETE("/channels/:id/subscribe", authRequired, h.HandleUnsubscribe)
	api.GET("/channels/:id/subscription", authOptional, h.HandleStatus)
	api.GET("/subscriptions", authRequired, h.HandleChannels)
	api.GET("/subscriptions/feed", authRequired, h.HandleFeed)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error(), nil)
	case apperrors.IsNotFound(err):
		h.response.NotFoundResponse(c, err.Error())
	default:
		h.response.InternalErrorResponse(c, "Unexpected error", err)
	}
}

// @Summary Subscribe to channel
// @Tags subscription
// @Security BearerAuth
// @Param id path string true "Channel (user) ID"
// @Success 200 {object} http.Response
// @Router /channels/{id}/subscribe [post]
func (h *Handler) HandleSubscribe(c *gin.Context) {
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

	if err := h.service.Subscribe(c.Request.Context(), userID, channelID); err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, nil, "Subscribed")
}

// @Summary Unsubscribe from channel
// @Tags subscription
// @Security BearerAuth
// @Param id path string true "Channel (user) ID"
// @Success 200 {object} http.Response
// @Router /channels/{id}/subscribe [delete]
func (h *Handler) HandleUnsubscribe(c *gin.Context) {
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

	if err := h.service.Unsubscribe(c.Request.Context(), userID, channelID); err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, nil, "Unsubscribed")
}

// HandleStatus reports subscriber count and whether the caller follows the
// channel.
func (h *Handler) HandleStatus(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid channel ID format", err)
		return
	}

	var subscriberID *uuid.UUID
	if id, ok := auth.CurrentUserID(c); ok {
		subscriberID = &id
	}

	status, err := h.service.Status(c.Request.Context(), subscriberID, channelID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, status, "")
}

// HandleChannels lists the channels the caller follows.
func (h *Handler) HandleChannels(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	subs, err := h.service.Channels(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, subs, "")
}

// HandleFeed returns recent videos from subscribed channels.
func (h *Handler) HandleFeed(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	feed, err := h.service.Feed(c.Request.Context(), userID, page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, feed, "")
}
