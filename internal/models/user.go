package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the persisted credential record. PasswordHash never leaves the
// service layer.
type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Username        string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email           string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash    string    `gorm:"not null" json:"-"`
	ProfilePhotoURL string    `gorm:"size:512" json:"profile_photo_url,omitempty"`
	ProfilePhotoKey string    `gorm:"size:255" json:"profile_photo_key,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an id when the caller did not.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
