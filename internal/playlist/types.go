package playlist

// CreateRequest is the payload for creating a playlist
type CreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Visibility  string `json:"visibility"`
}

// UpdateRequest is the payload for editing playlist metadata
type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Visibility  *string `json:"visibility"`
}

// AddVideoRequest names the video to append
type AddVideoRequest struct {
	VideoID string `json:"videoId" binding:"required"`
}

// ReorderRequest moves a video to a new position
type ReorderRequest struct {
	VideoID  string `json:"videoId" binding:"required"`
	Position int    `json:"position"`
}

// Config represents playlist configuration
type Config struct {
	MaxTitleLength int
	MaxItems       int
}
