package repository

import (
	"context"

	"gymtrack/gym-app/internal/domain"
)

// Error constants for the repository layer. ErrNotFound is a normal, expected
// outcome for lookups; callers treat it as a branch, not a fault.
var (
	ErrNotFound   = RepositoryError("not found")
	ErrEmailTaken = RepositoryError("email already registered")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	// Create assigns a fresh ID and timestamps, then persists the user.
	// Fails with ErrEmailTaken if the email already exists (exact match).
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	ListTraineesOfTrainer(ctx context.Context, trainerID string) ([]domain.User, error)
	// LinkTraineeToTrainer sets the trainee's trainer reference. The caller
	// is responsible for checking that trainerID names an actual trainer.
	LinkTraineeToTrainer(ctx context.Context, traineeID, trainerID string) error
	GetTrainerByID(ctx context.Context, trainerID string) (*domain.User, error)
	// Update replaces the stored record matching user.ID.
	Update(ctx context.Context, user *domain.User) error
}

// WorkoutRepository defines the interface for interacting with workout data.
type WorkoutRepository interface {
	ListAll(ctx context.Context) ([]domain.Workout, error)
	ListByTrainee(ctx context.Context, traineeID string) ([]domain.Workout, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]domain.Workout, error)
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
	// Create assigns a fresh ID and creation timestamp, then appends the
	// workout to the collection.
	Create(ctx context.Context, workout *domain.Workout) (string, error)
	// MarkExerciseComplete sets the completed flag on one exercise. Fails
	// with ErrNotFound when either ID does not match; the collection is
	// left unchanged in that case.
	MarkExerciseComplete(ctx context.Context, workoutID, exerciseID string) error
	// RecordLoad stores the load value verbatim on one exercise, with the
	// same not-found behavior as MarkExerciseComplete.
	RecordLoad(ctx context.Context, workoutID, exerciseID, load string) error
}
