package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/streamnest/streamnest/backend/internal/auth"
	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
	httpapi "github.com/streamnest/streamnest/backend/internal/http"
	"github.com/streamnest/streamnest/backend/internal/logger"
	"github.com/streamnest/streamnest/backend/internal/video"
)

// Handler handles HTTP requests for admin moderation
type Handler struct {
	service  *Service
	response httpapi.ResponseHandler
	logger   logger.Logger
}

// NewHandler creates a new admin handler
func NewHandler(service *Service, response httpapi.ResponseHandler, log logger.Logger) *Handler {
	return &Handler{service: service, response: response, logger: log}
}

// RegisterRoutes registers the admin API routes behind the admin gate
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authService *auth.Service) {
	admin := api.Group("/admin",
		auth.AuthMiddleware(authService, h.response),
		auth.AdminMiddleware(authService, h.response))

	admin.GET("/videos", h.HandleListVideos)
	admin.PUT("/videos/:id/hide", h.HandleHideVideo)
	admin.PUT("/videos/:id/unhide", h.HandleUnhideVideo)
	admin.DELETE("/videos/:id", h.HandleDeleteVideo)
	admin.GET("/users", h.HandleListUsers)
	admin.GET("/stats", h.HandleSiteStats)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		h.response.NotFoundResponse(c, err.Error())
	case apperrors.IsValidation(err):
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error(), nil)
	default:
		h.response.InternalErrorResponse(c, "Unexpected error", err)
	}
}

// HandleListVideos lists every video, including hidden and private ones.
func (h *Handler) HandleListVideos(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	videos, total, err := h.service.ListVideos(c.Request.Context(), video.ListOptions{
		Page:     page,
		Limit:    limit,
		Category: c.Query("category"),
		Query:    c.Query("q"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, gin.H{
		"videos": videos,
		"total":  total,
	}, "")
}

// HandleHideVideo hides a video from all non-owner views.
func (h *Handler) HandleHideVideo(c *gin.Context) {
	h.setHidden(c, true)
}

// HandleUnhideVideo restores a hidden video.
func (h *Handler) HandleUnhideVideo(c *gin.Context) {
	h.setHidden(c, false)
}

func (h *Handler) setHidden(c *gin.Context, hidden bool) {
	adminID, _ := auth.CurrentUserID(c)
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid video ID format", err)
		return
	}

	if err := h.service.SetHidden(c.Request.Context(), videoID, hidden, adminID); err != nil {
		h.writeError(c, err)
		return
	}
	message := "Video hidden"
	if !hidden {
		message = "Video restored"
	}
	h.response.SuccessResponse(c, nil, message)
}

// HandleDeleteVideo removes any video.
func (h *Handler) HandleDeleteVideo(c *gin.Context) {
	adminID, _ := auth.CurrentUserID(c)
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid video ID format", err)
		return
	}

	if err := h.service.DeleteVideo(c.Request.Context(), videoID, adminID); err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, nil, "Video deleted")
}

// HandleListUsers returns a page of registered accounts.
func (h *Handler) HandleListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, total, err := h.service.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, gin.H{
		"users": users,
		"total": total,
	}, "")
}

// HandleSiteStats returns platform-wide totals.
func (h *Handler) HandleSiteStats(c *gin.Context) {
	stats, err := h.service.SiteStats(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, stats, "")
}
