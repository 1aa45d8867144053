package playlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
	"github.com/streamnest/streamnest/backend/internal/logger"
)

// Service implements playlist business logic
type Service struct {
	repo   Repository
	videos VideoLookup
	config *Config
	logger logger.Logger
}

// NewService creates a new playlist service
func NewService(repo Repository, videos VideoLookup, config *Config, log logger.Logger) *Service {
	return &Service{repo: repo, videos: videos, config: config, logger: log}
}

// Create makes a new empty playlist for the owner.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *CreateRequest) (*Playlist, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title", "title is required")
	}
	if len(title) > s.config.MaxTitleLength {
		return nil, apperrors.NewValidationError("title",
			fmt.Sprintf("title must not exceed %d characters", s.config.MaxTitleLength))
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = "private"
	}
	if visibility != "private" && visibility != "public" {
		return nil, apperrors.NewValidationError("visibility", "visibility must be private or public")
	}

	playlist := &Playlist{
		OwnerID:     ownerID,
		Title:       title,
		Description: req.Description,
		Visibility:  visibility,
	}
	if err := s.repo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// Get returns a playlist with its items. Private playlists are only visible
// to their owner.
func (s *Service) Get(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*Playlist, error) {
	playlist, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if playlist.Visibility == "private" && (viewer == nil || *viewer != playlist.OwnerID) {
		return nil, apperrors.NewNotFoundError("playlist")
	}

	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	playlist.Items = items
	return playlist, nil
}

// ListByOwner returns a user's playlists, hiding private ones from other
// viewers.
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID, viewer *uuid.UUID) ([]Playlist, error) {
	includePrivate := viewer != nil && *viewer == ownerID
	return s.repo.ListByOwner(ctx, ownerID, includePrivate)
}

// Update edits playlist metadata. Owner only.
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, req *UpdateRequest) (*Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title", "title is required")
		}
		if len(title) > s.config.MaxTitleLength {
			return nil, apperrors.NewValidationError("title",
				fmt.Sprintf("title must not exceed %d characters", s.config.MaxTitleLength))
		}
		playlist.Title = title
	}
	if req.Description != nil {
		playlist.Description = *req.Description
	}
	if req.Visibility != nil {
		if *req.Visibility != "private" && *req.Visibility != "public" {
			return nil, apperrors.NewValidationError("visibility", "visibility must be private or public")
		}
		playlist.Visibility = *req.Visibility
	}

	if err := s.repo.Save(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// Delete removes a playlist and its items. Owner only.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.ownedPlaylist(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AddVideo appends a video at the end of the playlist. Owner only.
func (s *Service) AddVideo(ctx context.Context, id, userID, videoID uuid.UUID) (*Item, error) {
	if _, err := s.ownedPlaylist(ctx, id, userID); err != nil {
		return nil, err
	}

	exists, err := s.videos.Exists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFoundError("video")
	}

	return s.repo.AddItem(ctx, id, videoID, s.config.MaxItems)
}

// RemoveVideo deletes a video from the playlist, compacting positions.
// Owner only.
func (s *Service) RemoveVideo(ctx context.Context, id, userID, videoID uuid.UUID) error {
	if _, err := s.ownedPlaylist(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.RemoveItem(ctx, id, videoID)
}

// MoveVideo shifts a video to a new position. Owner only.
func (s *Service) MoveVideo(ctx context.Context, id, userID, videoID uuid.UUID, position int) error {
	if _, err := s.ownedPlaylist(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.MoveItem(ctx, id, videoID, position)
}

func (s *Service) ownedPlaylist(ctx context.Context, id, userID uuid.UUID) (*Playlist, error) {
	playlist, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != userID {
		return nil, apperrors.NewAuthorizationError("only the owner can modify this playlist")
	}
	return playlist, nil
}
