package model

import "time"

// User roles as stored and serialized. The deployed frontend depends on
// these exact values.
const (
	RoleAdmin = "ADMIN_ROLE"
	RoleUser  = "USER_ROLE"
)

// User represents a user account in the database.
type User struct {
	ID            int64
	Name          string
	Email         string
	PasswordHash  string
	Phone         string
	Address       string
	Img           string
	Role          string
	Active        bool
	ResetToken    *string
	ResetTokenExp *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	Name     string `json:"nombre"`
	Email    string `json:"correo"`
	Password string `json:"password"`
	Phone    string `json:"telefono"`
	Address  string `json:"direccion"`
	Img      string `json:"img"`
	Role     string `json:"rol"`
}

// UpdateUserRequest represents a partial user update. Nil fields are left
// untouched. The email is immutable and has no counterpart here.
type UpdateUserRequest struct {
	Name     *string `json:"nombre"`
	Password *string `json:"password"`
	Phone    *string `json:"telefono"`
	Address  *string `json:"direccion"`
	Img      *string `json:"img"`
	Role     *string `json:"rol"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"correo"`
	Password string `json:"password"`
}

// ForgotPasswordRequest carries the email asking for a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"correo"`
}

// ResetPasswordRequest carries the replacement password.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// AuthResponse represents a login response with a signed token and user info.
type AuthResponse struct {
	User  UserResponse `json:"usuario"`
	Token string       `json:"token"`
}

// UserResponse represents user data safe for API responses. The password
// hash and reset-token fields are never serialized.
type UserResponse struct {
	ID      int64  `json:"uid"`
	Name    string `json:"nombre"`
	Email   string `json:"correo"`
	Phone   string `json:"telefono"`
	Address string `json:"direccion,omitempty"`
	Img     string `json:"img,omitempty"`
	Role    string `json:"rol"`
	Active  bool   `json:"estado"`
}

// UserListResponse is a paginated user listing.
type UserListResponse struct {
	Total int64          `json:"total"`
	Users []UserResponse `json:"usuarios"`
}

// ToResponse converts a User to its API representation.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
		Img:     u.Img,
		Role:    u.Role,
		Active:  u.Active,
	}
}

// Owner is the display-only projection of a content owner embedded in
// content responses. Never used for authorization decisions.
type Owner struct {
	ID   int64  `json:"uid"`
	Name string `json:"nombre"`
	Img  string `json:"img,omitempty"`
	Role string `json:"rol,omitempty"`
}
