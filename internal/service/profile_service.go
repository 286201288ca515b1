package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"gymtrack/gym-app/internal/domain"
	"gymtrack/gym-app/internal/repository"
	"gymtrack/gym-app/internal/storage"
)

// --- Error Definitions ---
var (
	ErrNoAvatar           = errors.New("user has no avatar")
	ErrInvalidTheme       = errors.New("theme must be light or dark")
	ErrInvalidContentType = errors.New("avatar must be an image")
)

// AvatarUpload is handed to the client so it can PUT the image bytes
// directly to object storage.
type AvatarUpload struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// ProfileService manages the per-user profile state: the avatar reference
// (an opaque object-storage key persisted verbatim) and the theme preference.
type ProfileService interface {
	RequestAvatarUpload(ctx context.Context, userID, contentType string) (*AvatarUpload, error)
	ConfirmAvatar(ctx context.Context, userID, objectKey string) (*domain.User, error)
	AvatarURL(ctx context.Context, userID string) (string, error)
	SetTheme(ctx context.Context, userID string, theme domain.Theme) (*domain.User, error)
}

// profileService implements the ProfileService interface.
type profileService struct {
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(userRepo repository.UserRepository, fileStorage storage.FileStorage) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

// RequestAvatarUpload generates an object key and a presigned PUT URL for
// the user's new avatar. Nothing is persisted until ConfirmAvatar.
func (s *profileService) RequestAvatarUpload(ctx context.Context, userID, contentType string) (*AvatarUpload, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrInvalidContentType
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	objectKey := fmt.Sprintf("avatars/%s/%s", userID, uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}

	return &AvatarUpload{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmAvatar stores the uploaded object's key on the user record and
// removes the previous avatar object, if any.
func (s *profileService) ConfirmAvatar(ctx context.Context, userID, objectKey string) (*domain.User, error) {
	if objectKey == "" {
		return nil, errors.New("object key is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	previous := user.AvatarKey
	user.AvatarKey = objectKey
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if previous != "" && previous != objectKey {
		// Best effort; a leaked object is not worth failing the request.
		if err := s.fileStorage.DeleteObject(ctx, previous); err != nil {
			log.Printf("WARN: Failed to delete previous avatar '%s': %v", previous, err)
		}
	}

	sanitized := user.Sanitized()
	return &sanitized, nil
}

// AvatarURL returns a presigned GET URL for the user's current avatar.
func (s *profileService) AvatarURL(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if user.AvatarKey == "" {
		return "", ErrNoAvatar
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, user.AvatarKey, storage.DefaultPresignedURLExpiry)
}

// SetTheme persists the user's display preference.
func (s *profileService) SetTheme(ctx context.Context, userID string, theme domain.Theme) (*domain.User, error) {
	if theme != domain.ThemeLight && theme != domain.ThemeDark {
		return nil, ErrInvalidTheme
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Theme = theme
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	sanitized := user.Sanitized()
	return &sanitized, nil
}
