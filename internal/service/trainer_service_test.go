package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymtrack/gym-app/internal/domain"
)

func TestCreateWorkoutSetsTraineeActive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ana := f.registerTrainer(t, "Ana", "ana@x.com")
	bruno := f.registerTrainee(t, "Bruno", "bruno@x.com", ana.ID)

	// A trainee with zero workouts carries no status yet.
	fresh, err := f.userRepo.GetByID(ctx, bruno.ID)
	require.NoError(t, err)
	assert.Empty(t, fresh.Status)

	workout := f.createWorkout(t, ana.ID, bruno.ID, "monday")
	assert.NotEmpty(t, workout.ID)
	assert.Len(t, workout.Exercises, 3)
	for _, e := range workout.Exercises {
		assert.NotEmpty(t, e.ID)
	}

	updated, err := f.userRepo.GetByID(ctx, bruno.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, updated.Status)
	assert.Equal(t, workout.AssignedAt, updated.LastWorkout)
}

func TestCreateWorkoutRejectsDuplicateDay(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ana := f.registerTrainer(t, "Ana", "ana@x.com")
	bruno := f.registerTrainee(t, "Bruno", "bruno@x.com", ana.ID)

	f.createWorkout(t, ana.ID, bruno.ID, "monday")

	_, err := f.trainer.CreateWorkout(ctx, ana.ID, CreateWorkoutInput{
		TraineeID: bruno.ID,
		Name:      "Second monday workout",
		DayOfWeek: "monday",
		Duration:  "45 min",
		Level:     domain.LevelBeginner,
		Exercises: []ExerciseInput{{Name: "Row", Sets: 3, Reps: "10", Rest: "60s"}},
	})
	assert.ErrorIs(t, err, ErrDayAlreadyAssigned)

	workouts, err := f.workoutRepo.ListByTrainee(ctx, bruno.ID)
	require.NoError(t, err)
	assert.Len(t, workouts, 1)
}

func TestCreateWorkoutValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ana := f.registerTrainer(t, "Ana", "ana@x.com")
	bruno := f.registerTrainee(t, "Bruno", "bruno@x.com", ana.ID)

	base := CreateWorkoutInput{
		TraineeID: bruno.ID,
		Name:      "Leg day",
		DayOfWeek: "tuesday",
		Duration:  "60 min",
		Level:     domain.LevelAdvanced,
		Exercises: []ExerciseInput{{Name: "Squat", Sets: 4, Reps: "8", Rest: "90s"}},
	}

	noName := base
	noName.Name = "   "
	_, err := f.trainer.CreateWorkout(ctx, ana.ID, noName)
	assert.ErrorIs(t, err, ErrInvalidWorkout)

	badDay := base
	badDay.DayOfWeek = "someday"
	_, err = f.trainer.CreateWorkout(ctx, ana.ID, badDay)
	assert.ErrorIs(t, err, ErrInvalidWorkout)

	badLevel := base
	badLevel.Level = "expert"
	_, err = f.trainer.CreateWorkout(ctx, ana.ID, badLevel)
	assert.ErrorIs(t, err, ErrInvalidWorkout)

	noExercises := base
	noExercises.Exercises = nil
	_, err = f.trainer.CreateWorkout(ctx, ana.ID, noExercises)
	assert.ErrorIs(t, err, ErrInvalidWorkout)

	unnamedExercise := base
	unnamedExercise.Exercises = []ExerciseInput{{Name: "", Sets: 3, Reps: "10", Rest: "60s"}}
	_, err = f.trainer.CreateWorkout(ctx, ana.ID, unnamedExercise)
	assert.ErrorIs(t, err, ErrInvalidWorkout)
}

func TestCreateWorkoutForUnmanagedTrainee(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ana := f.registerTrainer(t, "Ana", "ana@x.com")
	carla := f.registerTrainer(t, "Carla", "carla@x.com")
	bruno := f.registerTrainee(t, "Bruno", "bruno@x.com", ana.ID)

	_, err := f.trainer.CreateWorkout(ctx, carla.ID, CreateWorkoutInput{
		TraineeID: bruno.ID,
		Name:      "Poached workout",
		DayOfWeek: "friday",
		Duration:  "30 min",
		Level:     domain.LevelBeginner,
		Exercises: []ExerciseInput{{Name: "Row", Sets: 3, Reps: "10", Rest: "60s"}},
	})
	assert.ErrorIs(t, err, ErrTraineeNotManaged)
}

func TestAvailableDays(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ana := f.registerTrainer(t, "Ana", "ana@x.com")
	bruno := f.registerTrainee(t, "Bruno", "bruno@x.com", ana.ID)

	days, err := f.trainer.AvailableDays(ctx, ana.ID, bruno.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DaysOfWeek, days)

	f.createWorkout(t, ana.ID, bruno.ID, "monday")
	f.createWorkout(t, ana.ID, bruno.ID, "thursday")

	days, err = f.trainer.AvailableDays(ctx, ana.ID, bruno.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"tuesday", "wednesday", "friday", "saturday", "sunday"}, days)
}

func TestAddTraineeByEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ana := f.registerTrainer(t, "Ana", "ana@x.com")
	carla := f.registerTrainer(t, "Carla", "carla@x.com")
	bruno := f.registerTrainee(t, "Bruno", "bruno@x.com", "")

	linked, err := f.trainer.AddTraineeByEmail(ctx, ana.ID, "bruno@x.com")
	require.NoError(t, err)
	assert.Equal(t, bruno.ID, linked.ID)
	assert.Equal(t, ana.ID, linked.TrainerID)
	assert.Empty(t, linked.PasswordHash)

	// Linking the same trainee again is a no-op for the same trainer...
	again, err := f.trainer.AddTraineeByEmail(ctx, ana.ID, "bruno@x.com")
	require.NoError(t, err)
	assert.Equal(t, bruno.ID, again.ID)

	// ...but another trainer cannot take over.
	_, err = f.trainer.AddTraineeByEmail(ctx, carla.ID, "bruno@x.com")
	assert.ErrorIs(t, err, ErrTraineeAlreadyAssigned)

	// Nor can a trainer be added as a trainee.
	_, err = f.trainer.AddTraineeByEmail(ctx, ana.ID, "carla@x.com")
	assert.ErrorIs(t, err, ErrTraineeNotRole)

	_, err = f.trainer.AddTraineeByEmail(ctx, ana.ID, "nobody@x.com")
	assert.ErrorIs(t, err, ErrTraineeNotFound)
}

func TestTrainerDashboard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ana := f.registerTrainer(t, "Ana", "ana@x.com")
	bruno := f.registerTrainee(t, "Bruno", "bruno@x.com", ana.ID)
	diego := f.registerTrainee(t, "Diego", "diego@x.com", ana.ID)

	workout := f.createWorkout(t, ana.ID, bruno.ID, "monday")
	require.NoError(t, f.workoutRepo.MarkExerciseComplete(ctx, workout.ID, workout.Exercises[0].ID))

	overviews, err := f.trainer.Dashboard(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, overviews, 2)

	byID := map[string]TraineeOverview{}
	for _, o := range overviews {
		byID[o.User.ID] = o
	}

	assert.Equal(t, 1, byID[bruno.ID].WorkoutCount)
	assert.Equal(t, 33, byID[bruno.ID].ProgressPercent)
	assert.Equal(t, 0, byID[diego.ID].WorkoutCount)
	assert.Equal(t, 0, byID[diego.ID].ProgressPercent)
}
