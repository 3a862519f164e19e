package model

import "time"

// Community article categories.
const (
	CommunityCategoryInfo   = "INFORMACION"
	CommunityCategoryAdvice = "CONSEJO"
	CommunityCategoryStory  = "HISTORIA"
	CommunityCategoryAlert  = "ALERTA"
)

// CommunityArticle represents an admin-authored community article.
type CommunityArticle struct {
	ID        int64
	Title     string
	Content   string
	Category  string
	Img       string
	UserID    int64
	OwnerName string
	OwnerImg  string
	OwnerRole string
	CreatedAt time.Time
}

// CommunityRequest represents an article creation payload.
type CommunityRequest struct {
	Title    string `json:"titulo"`
	Content  string `json:"contenido"`
	Category string `json:"categoria"`
	Img      string `json:"img"`
}

// UpdateCommunityRequest represents a partial article update.
type UpdateCommunityRequest struct {
	Title    *string `json:"titulo"`
	Content  *string `json:"contenido"`
	Category *string `json:"categoria"`
	Img      *string `json:"img"`
}

// CommunityResponse represents an article in API responses.
type CommunityResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"titulo"`
	Content   string    `json:"contenido"`
	Category  string    `json:"categoria"`
	Img       string    `json:"img"`
	Owner     Owner     `json:"usuario"`
	CreatedAt time.Time `json:"fechaCreacion"`
}

// CommunityListResponse wraps an article listing.
type CommunityListResponse struct {
	Articles []CommunityResponse `json:"comunidades"`
}

// ToResponse converts a CommunityArticle to its API representation.
func (a *CommunityArticle) ToResponse() CommunityResponse {
	return CommunityResponse{
		ID:       a.ID,
		Title:    a.Title,
		Content:  a.Content,
		Category: a.Category,
		Img:      a.Img,
		Owner: Owner{
			ID:   a.UserID,
			Name: a.OwnerName,
			Img:  a.OwnerImg,
			Role: a.OwnerRole,
		},
		CreatedAt: a.CreatedAt,
	}
}
