package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
	httpapi "github.com/streamnest/streamnest/backend/internal/http"
	"github.com/streamnest/streamnest/backend/internal/logger"
)

// Handler handles HTTP requests for authentication and profiles
type Handler struct {
	service  *Service
	response httpapi.ResponseHandler
	logger   logger.Logger
}

// NewHandler creates a new auth handler
func NewHandler(service *Service, response httpapi.ResponseHandler, log logger.Logger) *Handler {
	return &Handler{service: service, response: response, logger: log}
}

// RegisterRoutes registers the auth API routes
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/auth/register", h.HandleRegister)
	api.POST("/auth/login", h.HandleLogin)
	api.POST("/auth/refresh", h.HandleRefresh)

	authRequired := AuthMiddleware(h.service, h.response)
	api.POST("/auth/logout", authRequired, h.HandleLogout)
	api.GET("/users/me", authRequired, h.HandleMe)
	api.PUT("/users/me", authRequired, h.HandleUpdateProfile)
	api.GET("/users/:id", h.HandleGetUser)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		h.response.UnauthorizedResponse(c, "Invalid credentials")
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

// @Summary Register account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} http.Response{data=LoginResponse}
// @Failure 400 {object} http.Response "Validation error"
// @Router /auth/register [post]
func (h *Handler) HandleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body", err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.CreatedResponse(c, resp, "Account created")
}

// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} http.Response{data=LoginResponse}
// @Failure 401 {object} http.Response "Invalid credentials"
// @Router /auth/login [post]
func (h *Handler) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body", err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, resp, "Logged in")
}

// @Summary Refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh payload"
// @Success 200 {object} http.Response{data=LoginResponse}
// @Failure 401 {object} http.Response "Invalid or revoked refresh token"
// @Router /auth/refresh [post]
func (h *Handler) HandleRefresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body", err)
		return
	}

	resp, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, resp, "Token refreshed")
}

// @Summary Logout
// @Tags auth
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *Handler) HandleLogout(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body", err)
		return
	}

	if err := h.service.Logout(c.Request.Context(), userID, req.RefreshToken); err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, nil, "Logged out")
}

// HandleMe returns the authenticated user's profile.
func (h *Handler) HandleMe(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, user, "")
}

// HandleUpdateProfile applies profile edits for the authenticated user.
func (h *Handler) HandleUpdateProfile(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body", err)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, user, "Profile updated")
}

// HandleGetUser returns a public channel profile.
func (h *Handler) HandleGetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid user ID format", err)
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, user, "")
}
