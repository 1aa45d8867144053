package video

import (
	"fmt"
	"strings"

	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
)

// validateUpload checks the upload request before any database write.
func (s *Service) validateUpload(input *UploadInput) error {
	if input.Video == nil {
		return apperrors.NewValidationError("video", "no video file provided")
	}

	if input.Video.Size > s.config.MaxFileSize {
		return apperrors.NewPayloadTooLargeError(s.config.MaxFileSize)
	}

	if ct := input.Video.Header.Get("Content-Type"); !strings.HasPrefix(ct, "video/") {
		return apperrors.NewValidationError("video", fmt.Sprintf("unsupported content type %q, expected video/*", ct))
	}

	if input.Thumbnail != nil {
		if ct := input.Thumbnail.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
			return apperrors.NewValidationError("thumbnail", fmt.Sprintf("unsupported content type %q, expected image/*", ct))
		}
	}

	title, err := normalizeTitle(input.Title, s.config.MaxTitleLength)
	if err != nil {
		return err
	}
	input.Title = title

	if len(input.Description) > s.config.MaxDescLength {
		return apperrors.NewValidationError("description",
			fmt.Sprintf("description must not exceed %d characters", s.config.MaxDescLength))
	}

	if input.Visibility == "" {
		input.Visibility = string(VisibilityPrivate)
	}
	if !Visibility(input.Visibility).IsValid() {
		return apperrors.NewValidationError("visibility", "visibility must be private, unlisted or public")
	}

	if input.Category == "" {
		input.Category = s.config.DefaultCategory
	}
	input.Tags = normalizeTags(input.Tags)

	return nil
}

// normalizeTitle trims the title and enforces the length bounds.
func normalizeTitle(title string, maxLen int) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperrors.NewValidationError("title", "title is required")
	}
	if len(title) > maxLen {
		return "", apperrors.NewValidationError("title",
			fmt.Sprintf("title must not exceed %d characters", maxLen))
	}
	return title, nil
}

// normalizeTags splits comma-separated entries, trims whitespace and drops
// empty values.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		for _, part := range strings.Split(tag, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
