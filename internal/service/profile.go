package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/storage"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db    *gorm.DB
	blobs storage.BlobStore
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance. blobs may be nil,
// in which case photo uploads fail as Internal.
func NewProfileService(db *gorm.DB, blobs storage.BlobStore) *ProfileService {
	return &ProfileService{
		db:    db,
		blobs: blobs,
	}
}

// GetProfile returns the user behind an authenticated identity. NotFound
// means the account no longer exists.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return findUser(s.db.WithContext(ctx), userID)
}

// UpdateProfilePhoto stores photo and makes it the user's profile photo. The
// previous photo, if any, is deleted after the change is committed.
func (s *ProfileService) UpdateProfilePhoto(ctx context.Context, userID uuid.UUID, photo *storage.Upload) (*models.User, error) {
	user, err := findUser(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, ErrValidation("photo is required")
	}

	obj, err := storePhoto(ctx, s.blobs, profilePhotoPrefix, photo)
	if err != nil {
		return nil, err
	}

	previousKey := user.ProfilePhotoKey
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"profile_photo_url": obj.URL,
		"profile_photo_key": obj.Key,
	})
	if res.Error != nil || res.RowsAffected == 0 {
		discardPhoto(ctx, s.blobs, obj.Key)
		if res.Error != nil {
			return nil, ErrInternal("failed to update profile photo", res.Error)
		}
		return nil, ErrNotFound("user")
	}

	if previousKey != obj.Key {
		discardPhoto(ctx, s.blobs, previousKey)
	}

	user.ProfilePhotoURL = obj.URL
	user.ProfilePhotoKey = obj.Key
	return user, nil
}
