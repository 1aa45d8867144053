package comment

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

// Handler handles HTTP requests for comment operations
type Handler struct {
	service  *Service
	response httpapi.ResponseHandler
	logger   logger.Logger
}

// NewHandler creates a new comment handler
func NewHandler(service *Service, response httpapi.ResponseHandler, log logger.Logger) *Handler {
	return &Handler{service: service, response: response, logger: log}
}

// RegisterRoutes registers the comment API routes
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authService *auth.Service) {
	authRequired := auth.AuthMiddleware(authService, h.response)

	api.GET("/videos/:id/comments", h.HandleList)
	api.POST("/videos/:id/comments", authRequired, h.HandleCreate)
	api.PUT("/comments/:id", authRequired, h.HandleUpdate)
	api.DELETE("/comments/:id", authRequired, h.HandleDelete)
	api.POST("/comments/:id/like", authRequired, h.HandleLike)
	api.POST("/comments/:id/dislike", authRequired, h.HandleDislike)
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

// @Summary Post comment
// @Tags comment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID (UUID)"
// @Param request body CreateRequest true "Comment payload"
// @Success 201 {object} http.Response{data=Comment}
// @Router /videos/{id}/comments [post]
func (h *Handler) HandleCreate(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid video ID format", err)
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body", err)
		return
	}

	comment, err := h.service.Create(c.Request.Context(), videoID, userID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.CreatedResponse(c, comment, "Comment posted")
}

// @Summary List comments
// @Tags comment
// @Produce json
// @Param id path string true "Video ID (UUID)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} http.Response{data=ListResponse}
// @Router /videos/{id}/comments [get]
func (h *Handler) HandleList(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid video ID format", err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	resp, err := h.service.List(c.Request.Context(), videoID, page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, resp, "")
}

// HandleUpdate edits a comment's content.
func (h *Handler) HandleUpdate(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid comment ID format", err)
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body", err)
		return
	}

	comment, err := h.service.Update(c.Request.Context(), commentID, userID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, comment, "Comment updated")
}

// HandleDelete removes a comment and its replies.
func (h *Handler) HandleDelete(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid comment ID format", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), commentID, userID, c.GetBool("isAdmin")); err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, nil, "Comment deleted")
}

// HandleLike toggles the caller's like on a comment.
func (h *Handler) HandleLike(c *gin.Context) {
	h.handleReaction(c, ReactionLike)
}

// HandleDislike toggles the caller's dislike on a comment.
func (h *Handler) HandleDislike(c *gin.Context) {
	h.handleReaction(c, ReactionDislike)
}

func (h *Handler) handleReaction(c *gin.Context, reaction ReactionType) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid comment ID format", err)
		return
	}

	comment, err := h.service.ToggleReaction(c.Request.Context(), commentID, userID, reaction)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, gin.H{
		"likes":    comment.Likes,
		"dislikes": comment.Dislikes,
	}, "")
}
