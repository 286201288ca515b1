package record

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymtrack/gym-app/internal/domain"
	"gymtrack/gym-app/internal/repository"
	"gymtrack/gym-app/internal/store/memory"
)

func newUserRepo() repository.UserRepository {
	return NewUserRepository(memory.New())
}

func mustCreateUser(t *testing.T, repo repository.UserRepository, name, email string, role domain.Role) domain.User {
	t.Helper()
	user := domain.User{Name: name, Email: email, PasswordHash: "hash", Role: role}
	id, err := repo.Create(context.Background(), &user)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	return user
}

func TestCreateAndGetByEmail(t *testing.T) {
	repo := newUserRepo()
	ctx := context.Background()

	created := mustCreateUser(t, repo, "Ana", "ana@x.com", domain.RoleTrainer)

	got, err := repo.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, domain.RoleTrainer, got.Role)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetByEmailIsCaseSensitive(t *testing.T) {
	repo := newUserRepo()
	ctx := context.Background()

	mustCreateUser(t, repo, "Ana", "ana@x.com", domain.RoleTrainer)

	_, err := repo.GetByEmail(ctx, "Ana@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	repo := newUserRepo()
	ctx := context.Background()

	mustCreateUser(t, repo, "Ana", "ana@x.com", domain.RoleTrainer)

	dup := domain.User{Name: "Other Ana", Email: "ana@x.com", PasswordHash: "hash", Role: domain.RoleTrainee}
	_, err := repo.Create(ctx, &dup)
	assert.ErrorIs(t, err, repository.ErrEmailTaken)

	// The collection must be unchanged after the failed attempt.
	trainers, err := repo.ListByRole(ctx, domain.RoleTrainer)
	require.NoError(t, err)
	trainees, err := repo.ListByRole(ctx, domain.RoleTrainee)
	require.NoError(t, err)
	assert.Len(t, trainers, 1)
	assert.Empty(t, trainees)
}

func TestListByRole(t *testing.T) {
	repo := newUserRepo()
	ctx := context.Background()

	ana := mustCreateUser(t, repo, "Ana", "ana@x.com", domain.RoleTrainer)
	mustCreateUser(t, repo, "Bruno", "bruno@x.com", domain.RoleTrainee)
	carla := mustCreateUser(t, repo, "Carla", "carla@x.com", domain.RoleTrainer)

	trainers, err := repo.ListByRole(ctx, domain.RoleTrainer)
	require.NoError(t, err)
	require.Len(t, trainers, 2)
	// Creation order is preserved.
	assert.Equal(t, ana.ID, trainers[0].ID)
	assert.Equal(t, carla.ID, trainers[1].ID)
}

func TestLinkTraineeToTrainer(t *testing.T) {
	repo := newUserRepo()
	ctx := context.Background()

	ana := mustCreateUser(t, repo, "Ana", "ana@x.com", domain.RoleTrainer)
	bruno := mustCreateUser(t, repo, "Bruno", "bruno@x.com", domain.RoleTrainee)

	require.NoError(t, repo.LinkTraineeToTrainer(ctx, bruno.ID, ana.ID))

	trainees, err := repo.ListTraineesOfTrainer(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, trainees, 1)
	assert.Equal(t, bruno.ID, trainees[0].ID)
	assert.Equal(t, ana.ID, trainees[0].TrainerID)
}

func TestLinkTraineeToTrainerUnknownTrainee(t *testing.T) {
	repo := newUserRepo()
	ctx := context.Background()

	ana := mustCreateUser(t, repo, "Ana", "ana@x.com", domain.RoleTrainer)

	err := repo.LinkTraineeToTrainer(ctx, "missing", ana.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLinkTraineeToTrainerRejectsTrainerTarget(t *testing.T) {
	repo := newUserRepo()
	ctx := context.Background()

	ana := mustCreateUser(t, repo, "Ana", "ana@x.com", domain.RoleTrainer)
	carla := mustCreateUser(t, repo, "Carla", "carla@x.com", domain.RoleTrainer)

	// Only trainee records can carry a trainer reference.
	err := repo.LinkTraineeToTrainer(ctx, carla.ID, ana.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetTrainerByID(t *testing.T) {
	repo := newUserRepo()
	ctx := context.Background()

	ana := mustCreateUser(t, repo, "Ana", "ana@x.com", domain.RoleTrainer)
	bruno := mustCreateUser(t, repo, "Bruno", "bruno@x.com", domain.RoleTrainee)

	got, err := repo.GetTrainerByID(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	// A trainee ID is not found through the trainer lookup.
	_, err = repo.GetTrainerByID(ctx, bruno.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	repo := newUserRepo()
	ctx := context.Background()

	bruno := mustCreateUser(t, repo, "Bruno", "bruno@x.com", domain.RoleTrainee)

	bruno.Status = domain.StatusActive
	bruno.LastWorkout = "29/08/2026"
	require.NoError(t, repo.Update(ctx, &bruno))

	got, err := repo.GetByID(ctx, bruno.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, got.Status)
	assert.Equal(t, "29/08/2026", got.LastWorkout)
}

func TestUpdateUnknownUser(t *testing.T) {
	repo := newUserRepo()

	ghost := domain.User{ID: "missing", Name: "Ghost", Email: "ghost@x.com", Role: domain.RoleTrainee}
	err := repo.Update(context.Background(), &ghost)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
