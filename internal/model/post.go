package model

import "time"

// Post types.
const (
	PostTypeLost     = "PERDIDO"
	PostTypeFound    = "ENCONTRADO"
	PostTypeAdoption = "ADOPCION"
)

// Post lifecycle statuses. StatusInactive is the soft-delete marker and is
// excluded from every public listing and lookup.
const (
	PostStatusActive   = "ACTIVO"
	PostStatusFound    = "ENCONTRADO"
	PostStatusSeen     = "VISTO"
	PostStatusAdopted  = "ADOPTADO"
	PostStatusInactive = "INACTIVO"
)

// Post represents a pet ad (lost / found / adoption) in the database.
type Post struct {
	ID          int64
	Type        string
	Status      string
	Title       string
	Description string
	Breed       string
	Place       string
	Date        string
	Sex         string
	Size        string
	Color       string
	Details     string
	Age         string
	Affinity    string
	Energy      string
	Neutered    *bool
	Whatsapp    string
	Img         string
	UserID      int64
	OwnerName   string
	OwnerEmail  string
	OwnerPhone  string
	CreatedAt   time.Time
}

// PostRequest represents a post creation payload. All fields come in as the
// frontend sends them; normalization happens in the service.
type PostRequest struct {
	Type        string `json:"tipo"`
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
	Breed       string `json:"raza"`
	Place       string `json:"lugar"`
	Date        string `json:"fecha"`
	Sex         string `json:"sexo"`
	Size        string `json:"tamanio"`
	Color       string `json:"color"`
	Details     string `json:"detalles"`
	Age         string `json:"edad"`
	Affinity    string `json:"afinidad"`
	Energy      string `json:"energia"`
	Neutered    *bool  `json:"castrado"`
	Whatsapp    string `json:"whatsapp"`
	Img         string `json:"img"`
}

// UpdatePostRequest represents a partial post update. Nil fields are left
// untouched; the owner cannot be changed.
type UpdatePostRequest struct {
	Status      *string `json:"estado"`
	Title       *string `json:"titulo"`
	Description *string `json:"descripcion"`
	Breed       *string `json:"raza"`
	Place       *string `json:"lugar"`
	Date        *string `json:"fecha"`
	Sex         *string `json:"sexo"`
	Size        *string `json:"tamanio"`
	Color       *string `json:"color"`
	Details     *string `json:"detalles"`
	Age         *string `json:"edad"`
	Affinity    *string `json:"afinidad"`
	Energy      *string `json:"energia"`
	Neutered    *bool   `json:"castrado"`
	Whatsapp    *string `json:"whatsapp"`
	Img         *string `json:"img"`
}

// PostResponse represents a post in API responses.
type PostResponse struct {
	ID          int64     `json:"id"`
	Type        string    `json:"tipo"`
	Status      string    `json:"estado"`
	Title       string    `json:"titulo"`
	Description string    `json:"descripcion"`
	Breed       string    `json:"raza"`
	Place       string    `json:"lugar,omitempty"`
	Date        string    `json:"fecha,omitempty"`
	Sex         string    `json:"sexo"`
	Size        string    `json:"tamanio"`
	Color       string    `json:"color"`
	Details     string    `json:"detalles,omitempty"`
	Age         string    `json:"edad"`
	Affinity    string    `json:"afinidad,omitempty"`
	Energy      string    `json:"energia,omitempty"`
	Neutered    *bool     `json:"castrado,omitempty"`
	Whatsapp    string    `json:"whatsapp"`
	Img         string    `json:"img"`
	Owner       Owner     `json:"usuario"`
	CreatedAt   time.Time `json:"fechaCreacion"`
}

// PostListResponse is a paginated post listing.
type PostListResponse struct {
	Total int64          `json:"total"`
	Posts []PostResponse `json:"publicaciones"`
}

// PostFilter narrows post listings. Zero values mean "no filter". Statuses
// listed in ExcludeStatus are dropped from the result set.
type PostFilter struct {
	Type          string
	Status        string
	ExcludeStatus string
	UserID        int64
	Search        string
	Offset        int64
	Limit         int64
}

// ContactResponse is the owner contact projection of a post.
type ContactResponse struct {
	Name     string `json:"nombre"`
	Phone    string `json:"telefono"`
	Email    string `json:"correo"`
	Whatsapp string `json:"whatsapp"`
}

// SearchResult is the reduced projection served to the autocomplete.
type SearchResult struct {
	ID    int64  `json:"id"`
	Type  string `json:"tipo"`
	Title string `json:"titulo"`
	Breed string `json:"raza"`
	Place string `json:"lugar,omitempty"`
	Img   string `json:"img"`
}

// SearchResponse wraps autocomplete results.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// ToResponse converts a Post to its API representation.
func (p *Post) ToResponse() PostResponse {
	return PostResponse{
		ID:          p.ID,
		Type:        p.Type,
		Status:      p.Status,
		Title:       p.Title,
		Description: p.Description,
		Breed:       p.Breed,
		Place:       p.Place,
		Date:        p.Date,
		Sex:         p.Sex,
		Size:        p.Size,
		Color:       p.Color,
		Details:     p.Details,
		Age:         p.Age,
		Affinity:    p.Affinity,
		Energy:      p.Energy,
		Neutered:    p.Neutered,
		Whatsapp:    p.Whatsapp,
		Img:         p.Img,
		Owner:       Owner{ID: p.UserID, Name: p.OwnerName},
		CreatedAt:   p.CreatedAt,
	}
}
