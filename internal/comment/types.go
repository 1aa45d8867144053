package comment

// ReactionType enumerates comment reactions
type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

// IsValid reports whether the reaction type is known.
func (r ReactionType) IsValid() bool {
	return r == ReactionLike || r == ReactionDislike
}

// Config represents comment configuration
type Config struct {
	MaxLength int
}

// CreateRequest is the payload for posting a comment or reply
type CreateRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID string `json:"parentId"`
}

// UpdateRequest is the payload for editing a comment
type UpdateRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListResponse is a page of top-level comments with their replies
type ListResponse struct {
	Comments []Comment `json:"comments"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}
