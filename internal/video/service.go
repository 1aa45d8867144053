package video

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
	"github.com/streamnest/streamnest/backend/internal/logger"
	"github.com/streamnest/streamnest/backend/internal/storage"
	"github.com/streamnest/streamnest/backend/internal/video/probe"
)

const trendingCacheKey = "videos:trending"

// Service implements the ingest pipeline, the streamer's blob access, and
// the engagement operations. All collaborators are injected so tests can
// substitute in-memory fakes.
type Service struct {
	repo      Repository
	store     storage.Store
	thumbs    storage.Store
	prober    Prober
	scheduler *StatusScheduler
	cache     Cache
	config    *Config
	logger    logger.Logger
}

// NewService creates a new video service instance.
func NewService(repo Repository, store, thumbs storage.Store, prober Prober,
	scheduler *StatusScheduler, cache Cache, config *Config, log logger.Logger) *Service {
	return &Service{
		repo:      repo,
		store:     store,
		thumbs:    thumbs,
		prober:    prober,
		scheduler: scheduler,
		cache:     cache,
		config:    config,
		logger:    log,
	}
}

// StreamURL derives the public stream URL for a stored filename.
func (s *Service) StreamURL(filename string) string {
	return path.Join(s.config.StreamBasePath, filename)
}

// Upload runs the ingest pipeline: validate, write blobs, probe duration,
// persist the record, and schedule the delayed ready transition.
func (s *Service) Upload(ctx context.Context, input *UploadInput) (*Video, error) {
	if err := s.validateUpload(input); err != nil {
		return nil, err
	}

	videoFile, err := input.Video.Open()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open uploaded video", err)
	}
	defer videoFile.Close()

	fileName := storage.NewObjectName(input.Video.Filename)
	filePath, err := s.store.Save(ctx, videoFile, fileName)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to store video blob", err)
	}

	thumbName := ""
	if input.Thumbnail != nil {
		thumbFile, err := input.Thumbnail.Open()
		if err != nil {
			s.cleanupBlobs(ctx, fileName, "")
			return nil, apperrors.NewStorageError("failed to open uploaded thumbnail", err)
		}
		thumbName = storage.NewObjectName(input.Thumbnail.Filename)
		if _, err := s.thumbs.Save(ctx, thumbFile, thumbName); err != nil {
			thumbFile.Close()
			s.cleanupBlobs(ctx, fileName, "")
			return nil, apperrors.NewStorageError("failed to store thumbnail blob", err)
		}
		thumbFile.Close()
	}

	// Probe failures never fail the upload; the duration degrades to 0:00.
	duration := "0:00"
	if seconds, err := s.prober.Duration(ctx, filePath); err != nil {
		s.logger.LogWarn("Duration probe failed, using fallback", map[string]interface{}{
			"file":  fileName,
			"error": err.Error(),
		})
	} else {
		duration = probe.FormatDuration(seconds)
	}

	v := &Video{
		ID:               uuid.New(),
		Title:            input.Title,
		Description:      input.Description,
		FileName:         fileName,
		OriginalName:     input.Video.Filename,
		FilePath:         filePath,
		FileSize:         input.Video.Size,
		MimeType:         input.Video.Header.Get("Content-Type"),
		Duration:         duration,
		ThumbnailPath:    thumbName,
		Visibility:       Visibility(input.Visibility),
		ProcessingStatus: StatusUploading,
		UploadProgress:   100,
		Category:         input.Category,
		Tags:             input.Tags,
		IsFeatured:       input.IsFeatured,
		IsForKids:        input.IsForKids,
		AgeRestricted:    input.AgeRestricted,
		UploaderID:       input.UploaderID,
	}

	if input.IsFeatured {
		err = s.repo.CreateFeatured(ctx, v)
	} else {
		err = s.repo.Create(ctx, v)
	}
	if err != nil {
		s.cleanupBlobs(ctx, fileName, thumbName)
		return nil, apperrors.NewStorageError("failed to create video record", err)
	}

	// The record starts at "uploading" and moves to "processing" as soon as
	// it exists; "ready" follows after the simulated processing delay.
	if err := s.repo.UpdateStatus(ctx, v.ID, StatusProcessing); err != nil {
		s.logger.LogError(err, "failed to mark video as processing")
	}
	v.ProcessingStatus = StatusProcessing

	id := v.ID
	s.scheduler.Schedule(id, s.config.ProcessingDelay, func() {
		if err := s.repo.UpdateStatus(context.Background(), id, StatusReady); err != nil {
			s.logger.LogError(err, "failed to mark video as ready")
			return
		}
		s.logger.LogInfo("Video processing complete", map[string]interface{}{
			"video_id": id.String(),
		})
	})

	s.logger.LogInfo("Video uploaded", map[string]interface{}{
		"video_id": v.ID.String(),
		"filename": fileName,
		"size":     v.FileSize,
		"duration": duration,
	})
	return v, nil
}

// cleanupBlobs removes already-written blob files after a rejected or failed
// upload so no orphaned storage is left behind.
func (s *Service) cleanupBlobs(ctx context.Context, fileName, thumbName string) {
	if fileName != "" {
		if err := s.store.Delete(ctx, fileName); err != nil {
			s.logger.LogError(err, "failed to clean up orphaned video blob")
		}
	}
	if thumbName != "" {
		if err := s.thumbs.Delete(ctx, thumbName); err != nil {
			s.logger.LogError(err, "failed to clean up orphaned thumbnail blob")
		}
	}
}

// Get returns a video, applying visibility rules for the viewer. Private and
// hidden videos resolve as not-found for anyone but the owner (or an admin).
func (s *Service) Get(ctx context.Context, id uuid.UUID, viewer *uuid.UUID, isAdmin bool) (*Video, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isOwner := viewer != nil && *viewer == v.UploaderID
	if (v.Hidden || v.Visibility == VisibilityPrivate) && !isOwner && !isAdmin {
		return nil, apperrors.NewNotFoundError("video")
	}
	return v, nil
}

// List returns the public catalog page described by opts.
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResponse, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 20
	} else if opts.Limit > 100 {
		opts.Limit = 100
	}

	videos, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &ListResponse{Videos: videos, Total: total, Page: opts.Page, Limit: opts.Limit}, nil
}

// Trending returns the most-viewed public videos, cached briefly in Redis.
func (s *Service) Trending(ctx context.Context, limit int) ([]Video, error) {
	if limit < 1 || limit > 50 {
		limit = 20
	}

	if cached, err := s.cache.Get(ctx, trendingCacheKey); err == nil && cached != "" {
		var videos []Video
		if err := json.Unmarshal([]byte(cached), &videos); err == nil {
			return videos, nil
		}
	}

	videos, _, err := s.repo.List(ctx, ListOptions{Page: 1, Limit: limit, SortBy: "views"})
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(videos); err == nil {
		if err := s.cache.Set(ctx, trendingCacheKey, string(payload), s.config.TrendingTTL); err != nil {
			s.logger.LogDebug("Failed to cache trending videos", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return videos, nil
}

// ListByChannel returns a channel's videos; non-owners see public ones only.
func (s *Service) ListByChannel(ctx context.Context, channelID uuid.UUID, viewer *uuid.UUID, isAdmin bool) ([]Video, error) {
	isOwner := viewer != nil && *viewer == channelID
	return s.repo.ListByUploader(ctx, channelID, isOwner || isAdmin)
}

// Update applies a partial metadata edit. Only the owner (or an admin) may
// edit; setting the featured flag clears it on the uploader's other videos.
func (s *Service) Update(ctx context.Context, id uuid.UUID, actor uuid.UUID, isAdmin bool, input *UpdateInput) (*Video, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.UploaderID != actor && !isAdmin {
		return nil, apperrors.NewAuthorizationError("only the uploader may edit this video")
	}

	if input.Title != nil {
		title, err := normalizeTitle(*input.Title, s.config.MaxTitleLength)
		if err != nil {
			return nil, err
		}
		v.Title = title
	}
	if input.Description != nil {
		if len(*input.Description) > s.config.MaxDescLength {
			return nil, apperrors.NewValidationError("description",
				fmt.Sprintf("description must not exceed %d characters", s.config.MaxDescLength))
		}
		v.Description = *input.Description
	}
	if input.Visibility != nil {
		vis := Visibility(*input.Visibility)
		if !vis.IsValid() {
			return nil, apperrors.NewValidationError("visibility", "visibility must be private, unlisted or public")
		}
		v.Visibility = vis
	}
	if input.Category != nil {
		v.Category = *input.Category
	}
	if input.Tags != nil {
		v.Tags = input.Tags
	}
	if input.IsForKids != nil {
		v.IsForKids = *input.IsForKids
	}
	if input.AgeRestricted != nil {
		v.AgeRestricted = *input.AgeRestricted
	}

	if input.Thumbnail != nil {
		thumbFile, err := input.Thumbnail.Open()
		if err != nil {
			return nil, apperrors.NewStorageError("failed to open uploaded thumbnail", err)
		}
		thumbName := storage.NewObjectName(input.Thumbnail.Filename)
		if _, err := s.thumbs.Save(ctx, thumbFile, thumbName); err != nil {
			thumbFile.Close()
			return nil, apperrors.NewStorageError("failed to store thumbnail blob", err)
		}
		thumbFile.Close()

		if v.ThumbnailPath != "" {
			if err := s.thumbs.Delete(ctx, v.ThumbnailPath); err != nil {
				s.logger.LogError(err, "failed to delete replaced thumbnail")
			}
		}
		v.ThumbnailPath = thumbName
	}

	featured := input.IsFeatured != nil && *input.IsFeatured
	if input.IsFeatured != nil {
		v.IsFeatured = *input.IsFeatured
	}

	if featured {
		err = s.repo.SaveFeatured(ctx, v)
	} else {
		err = s.repo.Save(ctx, v)
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to update video record", err)
	}
	return v, nil
}

// Delete removes the blob files and then the record. Owner-only, unless the
// caller is an admin.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID, isAdmin bool) error {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if v.UploaderID != actor && !isAdmin {
		return apperrors.NewAuthorizationError("only the uploader may delete this video")
	}

	s.scheduler.Cancel(id)

	if err := s.store.Delete(ctx, v.FileName); err != nil {
		return apperrors.NewStorageError("failed to delete video blob", err)
	}
	if v.ThumbnailPath != "" {
		if err := s.thumbs.Delete(ctx, v.ThumbnailPath); err != nil {
			s.logger.LogError(err, "failed to delete thumbnail blob")
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.NewStorageError("failed to delete video record", err)
	}

	s.logger.LogInfo("Video deleted", map[string]interface{}{
		"video_id": id.String(),
	})
	return nil
}

// ToggleReaction flips the user's membership in the liked/disliked sets,
// keeping the two sets mutually exclusive and the counters in step. The set
// mutation and counters land in a single record save.
func (s *Service) ToggleReaction(ctx context.Context, id uuid.UUID, userID uuid.UUID, reaction ReactionType) (*Video, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch reaction {
	case ReactionLike:
		if v.LikedByUser(userID) {
			v.LikedBy = removeID(v.LikedBy, userID)
			v.Likes = floorDec(v.Likes)
		} else {
			v.LikedBy = append(v.LikedBy, userID.String())
			v.Likes++
			if v.DislikedByUser(userID) {
				v.DislikedBy = removeID(v.DislikedBy, userID)
				v.Dislikes = floorDec(v.Dislikes)
			}
		}
	case ReactionDislike:
		if v.DislikedByUser(userID) {
			v.DislikedBy = removeID(v.DislikedBy, userID)
			v.Dislikes = floorDec(v.Dislikes)
		} else {
			v.DislikedBy = append(v.DislikedBy, userID.String())
			v.Dislikes++
			if v.LikedByUser(userID) {
				v.LikedBy = removeID(v.LikedBy, userID)
				v.Likes = floorDec(v.Likes)
			}
		}
	default:
		return nil, apperrors.NewValidationError("reaction", "reaction must be like or dislike")
	}

	if err := s.repo.Save(ctx, v); err != nil {
		return nil, apperrors.NewStorageError("failed to save reaction", err)
	}
	return v, nil
}

func floorDec(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return n - 1
}

// RecordView counts a view once per viewer key within the dedup window.
func (s *Service) RecordView(ctx context.Context, id uuid.UUID, viewerKey string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	key := fmt.Sprintf("video:view:%s:%s", id, viewerKey)
	first, err := s.cache.MarkOnce(ctx, key, s.config.ViewDedupWindow)
	if err != nil {
		// Cache trouble should not lose the view.
		s.logger.LogError(err, "view dedup check failed")
		first = true
	}
	if !first {
		return nil
	}
	return s.repo.IncrementViews(ctx, id)
}

// StatBlob reports size and mtime for a stored video blob.
func (s *Service) StatBlob(ctx context.Context, filename string) (storage.FileInfo, error) {
	return s.store.Stat(ctx, filename)
}

// OpenBlob returns a reader over the full video blob.
func (s *Service) OpenBlob(ctx context.Context, filename string) (io.ReadCloser, error) {
	return s.store.Open(ctx, filename)
}

// OpenBlobRange returns a reader over length bytes of the blob from start.
func (s *Service) OpenBlobRange(ctx context.Context, filename string, start, length int64) (io.ReadCloser, error) {
	return s.store.ReadRange(ctx, filename, start, length)
}
