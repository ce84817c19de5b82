package models

import "time"

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleAgent   = "agent"
)

func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleManager || r == RoleAgent
}

type User struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Username        *string    `json:"username,omitempty"`
	PasswordHash    string     `json:"-"`
	UserType        string     `json:"user_type"` // admin, manager, agent
	Phone           *string    `json:"phone,omitempty"`
	IsEmailVerified bool       `json:"is_email_verified"`
	Status          bool       `json:"status"` // false = deactivated
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	ProfileImage    *string    `json:"profile_image,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// LoginRequest accepts email or username in the username field.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned after successful authentication.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// CreateUserRequest is the payload for creating a staff user.
type CreateUserRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Username *string `json:"username"`
	Password string  `json:"password"`
	UserType string  `json:"user_type"`
	Phone    *string `json:"phone"`
}

// UpdateProfileRequest carries the fields a user may change on their own
// account. Role, email, and status stay admin-only.
type UpdateProfileRequest struct {
	Name         string  `json:"name"`
	Phone        *string `json:"phone"`
	ProfileImage *string `json:"profile_image"`
}

// ChangePasswordRequest is the self-service password change payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdateUserRequest carries partial user updates; empty fields keep their
// current values. A non-empty password is re-hashed.
type UpdateUserRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Username *string `json:"username"`
	Password string  `json:"password,omitempty"`
	UserType string  `json:"user_type"`
	Phone    *string `json:"phone"`
}
