package model

import "time"

// Help post categories.
const (
	HelpCategoryAdvice     = "CONSEJO"
	HelpCategoryQuestion   = "PREGUNTA"
	HelpCategoryExperience = "EXPERIENCIA"
	HelpCategoryOther      = "OTRO"
)

// HelpCase represents a community help post (advice, questions, experiences).
type HelpCase struct {
	ID        int64
	Title     string
	Content   string
	Category  string
	UserID    int64
	OwnerName string
	OwnerImg  string
	OwnerRole string
	CreatedAt time.Time
}

// HelpCaseRequest represents a help post creation payload.
type HelpCaseRequest struct {
	Title    string `json:"titulo"`
	Content  string `json:"contenido"`
	Category string `json:"categoria"`
}

// HelpCaseResponse represents a help post in API responses.
type HelpCaseResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"titulo"`
	Content   string    `json:"contenido"`
	Category  string    `json:"categoria"`
	Owner     Owner     `json:"usuario"`
	CreatedAt time.Time `json:"fechaCreacion"`
}

// HelpCaseListResponse wraps a help post listing.
type HelpCaseListResponse struct {
	Total int64              `json:"total"`
	Cases []HelpCaseResponse `json:"casos"`
}

// ToResponse converts a HelpCase to its API representation.
func (h *HelpCase) ToResponse() HelpCaseResponse {
	return HelpCaseResponse{
		ID:       h.ID,
		Title:    h.Title,
		Content:  h.Content,
		Category: h.Category,
		Owner: Owner{
			ID:   h.UserID,
			Name: h.OwnerName,
			Img:  h.OwnerImg,
			Role: h.OwnerRole,
		},
		CreatedAt: h.CreatedAt,
	}
}
