package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipe-share/backend/internal/models"
)

// Photo references a stored blob. PublicID is the blob key.
type Photo struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// UserSummary is the public shape of a user. It never carries the password
// hash.
type UserSummary struct {
	ID           uuid.UUID `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	ProfilePhoto *Photo    `json:"profilePhoto,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// NewUserSummary converts a persisted user to its public shape.
func NewUserSummary(u *models.User) UserSummary {
	summary := UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
	if u.ProfilePhotoURL != "" {
		summary.ProfilePhoto = &Photo{URL: u.ProfilePhotoURL, PublicID: u.ProfilePhotoKey}
	}
	return summary
}
