package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymtrack/gym-app/internal/domain"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	registered := f.registerTrainer(t, "Ana", "ana@x.com")
	assert.NotEmpty(t, registered.ID)
	assert.Empty(t, registered.PasswordHash, "registration must not echo the password")

	token, user, err := f.auth.Login(ctx, "ana@x.com", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, domain.RoleTrainer, user.Role)
	assert.Empty(t, user.PasswordHash, "login must not echo the password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.registerTrainer(t, "Ana", "ana@x.com")

	_, err := f.auth.Register(ctx, "Impostor", "ana@x.com", "123456", domain.RoleTrainee, "")
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)

	// The users collection is unchanged after the failed attempt.
	trainers, err := f.userRepo.ListByRole(ctx, domain.RoleTrainer)
	require.NoError(t, err)
	trainees, err := f.userRepo.ListByRole(ctx, domain.RoleTrainee)
	require.NoError(t, err)
	assert.Len(t, trainers, 1)
	assert.Empty(t, trainees)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "", "a@x.com", "123456", domain.RoleTrainee, "")
	assert.Error(t, err)

	_, err = f.auth.Register(ctx, "Ana", "a@x.com", "12345", domain.RoleTrainee, "")
	assert.Error(t, err, "password below the minimum length")

	_, err = f.auth.Register(ctx, "Ana", "a@x.com", "123456", "admin", "")
	assert.Error(t, err, "unknown role")

	_, err = f.auth.Register(ctx, "Ana", "a@x.com", "123456", domain.RoleTrainer, "some-trainer")
	assert.Error(t, err, "trainers cannot carry a trainer reference")
}

func TestRegisterTraineeWithTrainer(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ana := f.registerTrainer(t, "Ana", "ana@x.com")
	bruno := f.registerTrainee(t, "Bruno", "bruno@x.com", ana.ID)
	assert.Equal(t, ana.ID, bruno.TrainerID)

	trainees, err := f.trainer.GetManagedTrainees(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, trainees, 1)
	assert.Equal(t, bruno.ID, trainees[0].ID)
}

func TestRegisterTraineeWithUnknownTrainer(t *testing.T) {
	f := newFixture()

	_, err := f.auth.Register(context.Background(), "Bruno", "bruno@x.com", "123456", domain.RoleTrainee, "no-such-trainer")
	assert.ErrorIs(t, err, ErrTrainerNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture()

	f.registerTrainer(t, "Ana", "ana@x.com")

	token, user, err := f.auth.Login(context.Background(), "ana@x.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newFixture()

	_, _, err := f.auth.Login(context.Background(), "nobody@x.com", "123456")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCurrentUserSeesLaterMutations(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ana := f.registerTrainer(t, "Ana", "ana@x.com")
	bruno := f.registerTrainee(t, "Bruno", "bruno@x.com", "")

	// Link after registration; the current-user lookup must observe it
	// because it always re-fetches the live record.
	require.NoError(t, f.trainee.ChooseTrainer(ctx, bruno.ID, ana.ID))

	current, err := f.auth.CurrentUser(ctx, bruno.ID)
	require.NoError(t, err)
	assert.Equal(t, ana.ID, current.TrainerID)
	assert.Empty(t, current.PasswordHash)
}

func TestLoginTokenCarriesUserIDAndRole(t *testing.T) {
	f := newFixture()

	ana := f.registerTrainer(t, "Ana", "ana@x.com")
	token, _, err := f.auth.Login(context.Background(), "ana@x.com", "123456")
	require.NoError(t, err)

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, ana.ID, claims.UserID)
	assert.Equal(t, domain.RoleTrainer, claims.Role)
	assert.NotEmpty(t, claims.ID, "token needs an ID so logout can revoke it")
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	revoker := NewMemoryTokenRevoker()
	auth := NewAuthService(f.userRepo, revoker, testJWTSecret, time.Hour)

	f.registerTrainer(t, "Ana", "ana@x.com")
	token, _, err := auth.Login(ctx, "ana@x.com", "123456")
	require.NoError(t, err)

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)

	revoked, err := revoker.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, auth.Logout(ctx, claims.ID, claims.ExpiresAt.Time))

	revoked, err = revoker.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	// Logout does not touch the users collection.
	_, err = f.userRepo.GetByEmail(ctx, "ana@x.com")
	assert.NoError(t, err)
}
