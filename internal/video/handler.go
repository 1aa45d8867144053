package video

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/streamnest/streamnest/backend/internal/auth"
	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
	httpapi "github.com/streamnest/streamnest/backend/internal/http"
	"github.com/streamnest/streamnest/backend/internal/logger"
	"github.com/streamnest/streamnest/backend/internal/metrics"
	"github.com/streamnest/streamnest/backend/internal/storage"
)

// multipartOverhead leaves headroom above the video size cap for the other
// multipart fields before the body reader cuts the request off.
const multipartOverhead = 10 << 20

// Handler handles HTTP requests for video operations
type Handler struct {
	service  *Service
	response httpapi.ResponseHandler
	logger   logger.Logger
	config   *Config
}

// NewHandler creates a new video handler
func NewHandler(service *Service, response httpapi.ResponseHandler, log logger.Logger, config *Config) *Handler {
	return &Handler{service: service, response: response, logger: log, config: config}
}

// RegisterRoutes registers the video API routes
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authService *auth.Service) {
	authRequired := auth.AuthMiddleware(authService, h.response)
	authOptional := auth.OptionalAuthMiddleware(authService)

	api.GET("/videos", h.HandleList)
	api.GET("/videos/trending", h.HandleTrending)
	api.GET("/videos/stream/:filename", h.HandleStream)
	api.GET("/videos/:id", authOptional, h.HandleGet)
	api.POST("/videos/:id/view", authOptional, h.HandleView)
	api.GET("/users/:id/videos", authOptional, h.HandleChannelVideos)

	api.POST("/videos/upload", authRequired, h.HandleUpload)
	api.PUT("/videos/:id", authRequired, h.HandleUpdate)
	api.DELETE("/videos/:id", authRequired, h.HandleDelete)
	api.POST("/videos/:id/like", authRequired, h.HandleLike)
	api.POST("/videos/:id/dislike", authRequired, h.HandleDislike)
}

// writeError maps service errors onto the response taxonomy.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case apperrors.IsPayloadTooLarge(err):
		h.response.PayloadTooLargeResponse(c, err.Error())
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

// @Summary Upload video
// @Description Upload a new video file with optional thumbnail and metadata
// @Tags video
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param video formData file true "Video file"
// @Param thumbnail formData file false "Thumbnail image"
// @Param title formData string true "Video title (1-100 characters)"
// @Success 201 {object} http.Response{data=UploadResponse} "Video created"
// @Failure 400 {object} http.Response "Validation error or payload too large"
// @Failure 500 {object} http.Response "Unexpected error"
// @Router /videos/upload [post]
func (h *Handler) HandleUpload(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.config.MaxFileSize+multipartOverhead)

	videoFile, err := c.FormFile("video")
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.response.PayloadTooLargeResponse(c, apperrors.NewPayloadTooLargeError(h.config.MaxFileSize).Error())
			return
		}
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_NO_FILE", "No video file received", err)
		return
	}

	thumbnail, _ := c.FormFile("thumbnail")

	input := &UploadInput{
		UploaderID:    userID,
		Title:         c.PostForm("title"),
		Description:   c.PostForm("description"),
		Visibility:    c.PostForm("visibility"),
		Category:      c.PostForm("category"),
		Tags:          c.PostFormArray("tags"),
		IsFeatured:    parseBoolField(c.PostForm("isFeatured")),
		IsForKids:     parseBoolField(c.PostForm("isForKids")),
		AgeRestricted: parseBoolField(c.PostForm("ageRestricted")),
		Video:         videoFile,
		Thumbnail:     thumbnail,
	}

	v, err := h.service.Upload(c.Request.Context(), input)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		h.logger.LogInfo("Video upload rejected", map[string]interface{}{
			"request_id": c.GetString("request_id"),
			"error":      err.Error(),
		})
		h.writeError(c, err)
		return
	}

	metrics.UploadsTotal.WithLabelValues("success").Inc()
	h.response.CreatedResponse(c, UploadResponse{
		ID:               v.ID,
		Title:            v.Title,
		Filename:         v.FileName,
		VideoURL:         h.service.StreamURL(v.FileName),
		Thumbnail:        v.ThumbnailPath,
		UploadProgress:   v.UploadProgress,
		ProcessingStatus: string(v.ProcessingStatus),
	}, "Video uploaded")
}

// @Summary Stream video
// @Description Serves stored video bytes, honoring Range requests for seeking
// @Tags video
// @Produce octet-stream
// @Param filename path string true "Stored filename"
// @Param Range header string false "Byte range, e.g. bytes=0-1023"
// @Success 200 "Full content"
// @Success 206 "Partial content"
// @Failure 404 {object} http.Response "Video file not found"
// @Router /videos/stream/{filename} [get]
func (h *Handler) HandleStream(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	ctx := c.Request.Context()

	info, err := h.service.StatBlob(ctx, filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			metrics.StreamRequestsTotal.WithLabelValues("not_found").Inc()
			h.response.NotFoundResponse(c, "Video file not found")
			return
		}
		metrics.StreamRequestsTotal.WithLabelValues("error").Inc()
		h.response.InternalErrorResponse(c, "Failed to read video file", err)
		return
	}

	c.Header("Accept-Ranges", "bytes")
	c.Header("Content-Type", h.config.StreamMimeType)

	rangeHeader := c.GetHeader("Range")
	if rangeHeader == "" {
		reader, err := h.service.OpenBlob(ctx, filename)
		if err != nil {
			metrics.StreamRequestsTotal.WithLabelValues("error").Inc()
			h.response.InternalErrorResponse(c, "Failed to read video file", err)
			return
		}
		defer reader.Close()

		c.Header("Content-Length", strconv.FormatInt(info.Size, 10))
		c.Status(http.StatusOK)
		n, _ := io.Copy(c.Writer, reader)
		metrics.StreamRequestsTotal.WithLabelValues("full").Inc()
		metrics.BytesStreamed.Add(float64(n))
		return
	}

	rng, err := parseRange(rangeHeader, info.Size)
	if err != nil {
		metrics.StreamRequestsTotal.WithLabelValues("bad_range").Inc()
		c.Header("Content-Range", "bytes */"+strconv.FormatInt(info.Size, 10))
		h.response.ErrorResponse(c, http.StatusRequestedRangeNotSatisfiable, "ERR_RANGE", err.Error(), nil)
		return
	}

	reader, err := h.service.OpenBlobRange(ctx, filename, rng.Start, rng.Length())
	if err != nil {
		metrics.StreamRequestsTotal.WithLabelValues("error").Inc()
		h.response.InternalErrorResponse(c, "Failed to read video file", err)
		return
	}
	defer reader.Close()

	c.Header("Content-Range", rng.ContentRange(info.Size))
	c.Header("Content-Length", strconv.FormatInt(rng.Length(), 10))
	c.Status(http.StatusPartialContent)
	n, _ := io.Copy(c.Writer, reader)
	metrics.StreamRequestsTotal.WithLabelValues("partial").Inc()
	metrics.BytesStreamed.Add(float64(n))
}

// @Summary Get video details
// @Tags video
// @Produce json
// @Param id path string true "Video ID (UUID)"
// @Success 200 {object} http.Response{data=Video}
// @Failure 404 {object} http.Response "Video not found"
// @Router /videos/{id} [get]
func (h *Handler) HandleGet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid video ID format", err)
		return
	}

	viewer := optionalUserID(c)
	v, err := h.service.Get(c.Request.Context(), id, viewer, false)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, v, "")
}

// @Summary List public videos
// @Tags video
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param category query string false "Filter by category"
// @Param q query string false "Search in titles"
// @Success 200 {object} http.Response{data=ListResponse}
// @Router /videos [get]
func (h *Handler) HandleList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	resp, err := h.service.List(c.Request.Context(), ListOptions{
		Page:     page,
		Limit:    limit,
		Category: c.Query("category"),
		Query:    c.Query("q"),
	})
	if err != nil {
		h.response.InternalErrorResponse(c, "Failed to list videos", err)
		return
	}
	h.response.SuccessResponse(c, resp, "")
}

// @Summary Trending videos
// @Tags video
// @Produce json
// @Success 200 {object} http.Response{data=[]Video}
// @Router /videos/trending [get]
func (h *Handler) HandleTrending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	videos, err := h.service.Trending(c.Request.Context(), limit)
	if err != nil {
		h.response.InternalErrorResponse(c, "Failed to list trending videos", err)
		return
	}
	h.response.SuccessResponse(c, videos, "")
}

// @Summary List a channel's videos
// @Tags video
// @Produce json
// @Param id path string true "Channel (user) ID"
// @Success 200 {object} http.Response{data=[]Video}
// @Router /users/{id}/videos [get]
func (h *Handler) HandleChannelVideos(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid channel ID format", err)
		return
	}

	viewer := optionalUserID(c)
	videos, err := h.service.ListByChannel(c.Request.Context(), channelID, viewer, false)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, videos, "")
}

// @Summary Update video metadata
// @Tags video
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID (UUID)"
// @Success 200 {object} http.Response{data=Video}
// @Failure 403 {object} http.Response "Not the uploader"
// @Router /videos/{id} [put]
func (h *Handler) HandleUpdate(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid video ID format", err)
		return
	}

	input := &UpdateInput{}
	if v, ok := c.GetPostForm("title"); ok {
		input.Title = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		input.Description = &v
	}
	if v, ok := c.GetPostForm("visibility"); ok {
		input.Visibility = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		input.Category = &v
	}
	if tags, ok := c.GetPostFormArray("tags"); ok {
		input.Tags = normalizeTags(tags)
	}
	if v, ok := c.GetPostForm("isFeatured"); ok {
		b := parseBoolField(v)
		input.IsFeatured = &b
	}
	if v, ok := c.GetPostForm("isForKids"); ok {
		b := parseBoolField(v)
		input.IsForKids = &b
	}
	if v, ok := c.GetPostForm("ageRestricted"); ok {
		b := parseBoolField(v)
		input.AgeRestricted = &b
	}
	if thumb, err := c.FormFile("thumbnail"); err == nil {
		input.Thumbnail = thumb
	}

	v, err := h.service.Update(c.Request.Context(), id, userID, false, input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, v, "Video updated")
}

// @Summary Delete video
// @Tags video
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID (UUID)"
// @Success 200 {object} http.Response
// @Failure 403 {object} http.Response "Not the uploader"
// @Router /videos/{id} [delete]
func (h *Handler) HandleDelete(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid video ID format", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID, false); err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, nil, "Video deleted")
}

// HandleLike toggles the caller's like on a video.
func (h *Handler) HandleLike(c *gin.Context) {
	h.handleReaction(c, ReactionLike)
}

// HandleDislike toggles the caller's dislike on a video.
func (h *Handler) HandleDislike(c *gin.Context) {
	h.handleReaction(c, ReactionDislike)
}

func (h *Handler) handleReaction(c *gin.Context, reaction ReactionType) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.response.UnauthorizedResponse(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid video ID format", err)
		return
	}

	v, err := h.service.ToggleReaction(c.Request.Context(), id, userID, reaction)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, gin.H{
		"likes":    v.Likes,
		"dislikes": v.Dislikes,
		"liked":    v.LikedByUser(userID),
		"disliked": v.DislikedByUser(userID),
	}, "")
}

// HandleView records a deduplicated view for the video.
func (h *Handler) HandleView(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "ERR_INVALID_ID", "Invalid video ID format", err)
		return
	}

	viewerKey := c.ClientIP()
	if userID, ok := auth.CurrentUserID(c); ok {
		viewerKey = userID.String()
	}

	if err := h.service.RecordView(c.Request.Context(), id, viewerKey); err != nil {
		h.writeError(c, err)
		return
	}
	h.response.SuccessResponse(c, nil, "")
}

// optionalUserID returns the authenticated user id, if any.
func optionalUserID(c *gin.Context) *uuid.UUID {
	if id, ok := auth.CurrentUserID(c); ok {
		return &id
	}
	return nil
}

// parseBoolField accepts the literal strings "true"/"false" used by the
// multipart form fields.
func parseBoolField(value string) bool {
	b, err := strconv.ParseBool(value)
	return err == nil && b
}
