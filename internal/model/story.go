package model

import "time"

// SuccessStory represents a user-submitted success story (a pet that made
// it home or got adopted).
type SuccessStory struct {
	ID          int64
	Title       string
	Description string
	Img         string
	UserID      int64
	OwnerName   string
	OwnerImg    string
	OwnerRole   string
	CreatedAt   time.Time
}

// StoryRequest represents a success story creation payload.
type StoryRequest struct {
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
	Img         string `json:"img"`
}

// StoryResponse represents a success story in API responses.
type StoryResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"titulo"`
	Description string    `json:"descripcion"`
	Img         string    `json:"img"`
	Owner       Owner     `json:"usuario"`
	CreatedAt   time.Time `json:"fechaCreacion"`
}

// StoryListResponse wraps a story listing.
type StoryListResponse struct {
	Total   int64           `json:"total"`
	Stories []StoryResponse `json:"casos"`
}

// ToResponse converts a SuccessStory to its API representation.
func (s *SuccessStory) ToResponse() StoryResponse {
	return StoryResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Img:         s.Img,
		Owner: Owner{
			ID:   s.UserID,
			Name: s.OwnerName,
			Img:  s.OwnerImg,
			Role: s.OwnerRole,
		},
		CreatedAt: s.CreatedAt,
	}
}
