package identity

import (
	"time"

	"github.com/dentalcalc/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// RegisterRequest creates a clinic together with its owner account
type RegisterRequest struct {
	ClinicName  string `json:"clinic_name" binding:"required,max=150"`
	Slug        string `json:"slug" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	DisplayName string `json:"display_name" binding:"max=150"`
}

// LoginRequest carries login credentials. Email is globally unique, so no
// clinic context is needed.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest replaces the caller's password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// UpdateClinicProfileRequest replaces the clinic's contact details
type UpdateClinicProfileRequest struct {
	Name    string `json:"name" binding:"required,max=150"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address" binding:"max=500"`
}

// UserResponse is the API shape of a login account
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	ClinicID    uuid.UUID  `json:"clinic_id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// ClinicResponse is the API shape of the clinic profile
type ClinicResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Slug    string    `json:"slug"`
	Email   string    `json:"email"`
	Phone   string    `json:"phone"`
	Address string    `json:"address"`
	LogoURL string    `json:"logo_url"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// ToUserResponse maps the aggregate to its API shape
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		ClinicID:    u.ClinicID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		LastLoginAt: u.LastLoginAt,
	}
}

// ToClinicResponse maps the aggregate to its API shape
func ToClinicResponse(c *identity.Clinic) *ClinicResponse {
	return &ClinicResponse{
		ID:      c.ID,
		Name:    c.Name,
		Slug:    c.Slug,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
		LogoURL: c.LogoURL,
	}
}
