package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gymtrack/gym-app/internal/domain"
	"gymtrack/gym-app/internal/repository"
	"gymtrack/gym-app/internal/repository/record"
	"gymtrack/gym-app/internal/store/memory"
)

const testJWTSecret = "test-secret"

type fixture struct {
	userRepo    repository.UserRepository
	workoutRepo repository.WorkoutRepository
	auth        AuthService
	trainer     TrainerService
	trainee     TraineeService
}

func newFixture() *fixture {
	s := memory.New()
	userRepo := record.NewUserRepository(s)
	workoutRepo := record.NewWorkoutRepository(s)
	return &fixture{
		userRepo:    userRepo,
		workoutRepo: workoutRepo,
		auth:        NewAuthService(userRepo, NewMemoryTokenRevoker(), testJWTSecret, time.Hour),
		trainer:     NewTrainerService(userRepo, workoutRepo),
		trainee:     NewTraineeService(userRepo, workoutRepo),
	}
}

func (f *fixture) registerTrainer(t *testing.T, name, email string) *domain.User {
	t.Helper()
	user, err := f.auth.Register(context.Background(), name, email, "123456", domain.RoleTrainer, "")
	require.NoError(t, err)
	return user
}

func (f *fixture) registerTrainee(t *testing.T, name, email, trainerID string) *domain.User {
	t.Helper()
	user, err := f.auth.Register(context.Background(), name, email, "123456", domain.RoleTrainee, trainerID)
	require.NoError(t, err)
	return user
}

func (f *fixture) createWorkout(t *testing.T, trainerID, traineeID, day string) *domain.Workout {
	t.Helper()
	workout, err := f.trainer.CreateWorkout(context.Background(), trainerID, CreateWorkoutInput{
		TraineeID: traineeID,
		Name:      fmt.Sprintf("Workout %s", day),
		DayOfWeek: day,
		Duration:  "60 min",
		Level:     domain.LevelIntermediate,
		Exercises: []ExerciseInput{
			{Name: "Squat", Sets: 4, Reps: "8-10", Rest: "90s"},
			{Name: "Leg press", Sets: 3, Reps: "10-12", Rest: "60s"},
			{Name: "Lunge", Sets: 3, Reps: "12", Rest: "60s"},
		},
	})
	require.NoError(t, err)
	return workout
}
