package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymtrack/gym-app/internal/domain"
)

// fakeFileStorage records calls instead of talking to S3.
type fakeFileStorage struct {
	deleted []string
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func TestAvatarUploadFlow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	fs := &fakeFileStorage{}
	profile := NewProfileService(f.userRepo, fs)

	ana := f.registerTrainer(t, "Ana", "ana@x.com")

	_, err := profile.AvatarURL(ctx, ana.ID)
	assert.ErrorIs(t, err, ErrNoAvatar)

	upload, err := profile.RequestAvatarUpload(ctx, ana.ID, "image/jpeg")
	require.NoError(t, err)
	assert.NotEmpty(t, upload.ObjectKey)
	assert.Contains(t, upload.UploadURL, upload.ObjectKey)

	updated, err := profile.ConfirmAvatar(ctx, ana.ID, upload.ObjectKey)
	require.NoError(t, err)
	// The key is persisted exactly as handed out, an opaque string.
	assert.Equal(t, upload.ObjectKey, updated.AvatarKey)

	url, err := profile.AvatarURL(ctx, ana.ID)
	require.NoError(t, err)
	assert.Contains(t, url, upload.ObjectKey)
}

func TestConfirmAvatarDeletesPrevious(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	fs := &fakeFileStorage{}
	profile := NewProfileService(f.userRepo, fs)

	ana := f.registerTrainer(t, "Ana", "ana@x.com")

	_, err := profile.ConfirmAvatar(ctx, ana.ID, "avatars/old")
	require.NoError(t, err)
	assert.Empty(t, fs.deleted)

	_, err = profile.ConfirmAvatar(ctx, ana.ID, "avatars/new")
	require.NoError(t, err)
	assert.Equal(t, []string{"avatars/old"}, fs.deleted)
}

func TestRequestAvatarUploadRejectsNonImage(t *testing.T) {
	f := newFixture()
	profile := NewProfileService(f.userRepo, &fakeFileStorage{})

	ana := f.registerTrainer(t, "Ana", "ana@x.com")

	_, err := profile.RequestAvatarUpload(context.Background(), ana.ID, "application/pdf")
	assert.ErrorIs(t, err, ErrInvalidContentType)
}

func TestSetTheme(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	profile := NewProfileService(f.userRepo, &fakeFileStorage{})

	ana := f.registerTrainer(t, "Ana", "ana@x.com")

	updated, err := profile.SetTheme(ctx, ana.ID, domain.ThemeDark)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, updated.Theme)

	current, err := f.auth.CurrentUser(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, current.Theme)

	_, err = profile.SetTheme(ctx, ana.ID, "sepia")
	assert.ErrorIs(t, err, ErrInvalidTheme)
}

func TestTokenRevokerExpiry(t *testing.T) {
	revoker := NewMemoryTokenRevoker()
	ctx := context.Background()

	require.NoError(t, revoker.Revoke(ctx, "tok-1", 50*time.Millisecond))
	revoked, err := revoker.IsRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	time.Sleep(60 * time.Millisecond)
	revoked, err = revoker.IsRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	// A TTL at or below zero means the token is already expired.
	require.NoError(t, revoker.Revoke(ctx, "tok-2", 0))
	revoked, err = revoker.IsRevoked(ctx, "tok-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}
