package playlist

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/streamnest/streamnest/backend/internal/auth"
	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
	httpapi "github.com/streamnest/streamnest/backend/internal/http"
	"github.com/streamnest/streamnest/backend/internal/logger"
)

// Handler handles HTTP requests for playlist operations
type Handler struct {
	service  *Service
	response httpapi.ResponseHandler
	logger   logger.Logger
}

// NewHandler creates a new playlist handler
func NewHandler(service *Service, response httpapi.ResponseHandler, log logger.Logger) *Handler {
	return &Handler{service: service, response: response, logger: log}
}

// RegisterRoutes registers the playlist API routes
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authService *auth.Service) {
	authRequired := auth.AuthMiddleware(authService, h.response)
	authOptional := auth.OptionalAuthMiddleware(authService)

	api.POST("/playlists", authRequired, h.HandleCreate)
	api.GET("/playlists/:id", authOptional, h.HandleGet)
	api.PUT("/playlists/:id", authRequired, h.HandleUpdate)
	api.DELETE("/playlists/:id", authRequired, h.HandleDelete)
	api.POST("/playlists/:id/videos", authRequired, h.HandleAddVideo)
	api.DELETE("/playlists/:id/videos/:videoId", authRequired, h.HandleRemoveVideo)
	api.PUT("/playlists/:id/videos", authRequired, h.HandleMoveVideo)
	api.GET("/users/:id/playlists", authOptional, h.HandleListByOwner)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error(), nil)
	case apperrors.IsNotFound(err):
		h.response.NotFoundResponse(c, err.Error())
	case apperrors.IsAuthorization(err):
		h.response.ForbiddenResponse(c, err.Error())
	default:
		h.response.InternalErrorResponse(c, "Unexpected error", err)
	}
}

// @Summary Create playlist
// @Tags playlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRequest true "Playlist payload"
// @Success 201 {object} http.Response{data=Playlist}
// @Router /playlists [post]
func (h *Handler) HandleCreate(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body", err)
		return
	}

	playlist, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.CreatedResponse(c, playlist, "Playlist created")
}

// HandleGet returns a playlist and its items.
func (h *Handler) HandleGet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid playlist ID format", err)
		return
	}

	var viewer *uuid.UUID
	if userID, ok := auth.CurrentUserID(c); ok {
		viewer = &userID
	}

	playlist, err := h.service.Get(c.Request.Context(), id, viewer)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, playlist, "")
}

// HandleUpdate edits playlist metadata.
func (h *Handler) HandleUpdate(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid playlist ID format", err)
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body", err)
		return
	}

	playlist, err := h.service.Update(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, playlist, "Playlist updated")
}

// HandleDelete removes a playlist.
func (h *Handler) HandleDelete(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid playlist ID format", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, nil, "Playlist deleted")
}

// HandleAddVideo appends a video to the playlist.
func (h *Handler) HandleAddVideo(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid playlist ID format", err)
		return
	}

	var req AddVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body", err)
		return
	}
	videoID, err := uuid.Parse(req.VideoID)
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid video ID format", err)
		return
	}

	item, err := h.service.AddVideo(c.Request.Context(), id, userID, videoID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.CreatedResponse(c, item, "Video added to playlist")
}

// HandleRemoveVideo removes a video from the playlist.
func (h *Handler) HandleRemoveVideo(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid playlist ID format", err)
		return
	}
	videoID, err := uuid.Parse(c.Param("videoId"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid video ID format", err)
		return
	}

	if err := h.service.RemoveVideo(c.Request.Context(), id, userID, videoID); err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, nil, "Video removed from playlist")
}

// HandleMoveVideo shifts a video to a new position.
func (h *Handler) HandleMoveVideo(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid playlist ID format", err)
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body", err)
		return
	}
	videoID, err := uuid.Parse(req.VideoID)
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid video ID format", err)
		return
	}

	if err := h.service.MoveVideo(c.Request.Context(), id, userID, videoID, req.Position); err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, nil, "Playlist reordered")
}

// HandleListByOwner lists a user's playlists.
func (h *Handler) HandleListByOwner(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid user ID format", err)
		return
	}

	var viewer *uuid.UUID
	if userID, ok := auth.CurrentUserID(c); ok {
		viewer = &userID
	}

	playlists, err := h.service.ListByOwner(c.Request.Context(), ownerID, viewer)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, playlists, "")
}
