package record

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"gymtrack/gym-app/internal/domain"
	"gymtrack/gym-app/internal/repository"
	"gymtrack/gym-app/internal/store"
)

const workoutsKey = "gymapp:workouts"

// recordWorkoutRepository implements repository.WorkoutRepository over a
// store.RecordStore, with the same whole-collection read/filter/rewrite
// shape as the user repository.
type recordWorkoutRepository struct {
	mu    sync.Mutex
	store store.RecordStore
}

// NewWorkoutRepository creates a workout repository backed by the given record store.
func NewWorkoutRepository(s store.RecordStore) repository.WorkoutRepository {
	return &recordWorkoutRepository{store: s}
}

func (r *recordWorkoutRepository) readAll(ctx context.Context) ([]domain.Workout, error) {
	data, err := r.store.Read(ctx, workoutsKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []domain.Workout{}, nil
	}
	var workouts []domain.Workout
	if err := json.Unmarshal(data, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *recordWorkoutRepository) writeAll(ctx context.Context, workouts []domain.Workout) error {
	data, err := json.Marshal(workouts)
	if err != nil {
		return err
	}
	return r.store.WriteAll(ctx, workoutsKey, data)
}

// ListAll returns every workout in creation order.
func (r *recordWorkoutRepository) ListAll(ctx context.Context) ([]domain.Workout, error) {
	return r.readAll(ctx)
}

// ListByTrainee returns the workouts assigned to one trainee, preserving
// creation order.
func (r *recordWorkoutRepository) ListByTrainee(ctx context.Context, traineeID string) ([]domain.Workout, error) {
	workouts, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []domain.Workout{}
	for _, w := range workouts {
		if w.TraineeID == traineeID {
			filtered = append(filtered, w)
		}
	}
	return filtered, nil
}

// ListByTrainer returns the workouts authored by one trainer, preserving
// creation order.
func (r *recordWorkoutRepository) ListByTrainer(ctx context.Context, trainerID string) ([]domain.Workout, error) {
	workouts, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []domain.Workout{}
	for _, w := range workouts {
		if w.TrainerID == trainerID {
			filtered = append(filtered, w)
		}
	}
	return filtered, nil
}

// GetByID retrieves a single workout.
func (r *recordWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	workouts, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range workouts {
		if workouts[i].ID == id {
			return &workouts[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

// Create assigns a fresh ID and creation timestamp and appends the workout.
func (r *recordWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	workouts, err := r.readAll(ctx)
	if err != nil {
		return "", err
	}

	workout.ID = uuid.NewString()
	workout.CreatedAt = time.Now().UTC()

	workouts = append(workouts, *workout)
	if err := r.writeAll(ctx, workouts); err != nil {
		return "", err
	}
	return workout.ID, nil
}

// MarkExerciseComplete sets the completed flag on one exercise.
func (r *recordWorkoutRepository) MarkExerciseComplete(ctx context.Context, workoutID, exerciseID string) error {
	return r.mutateExercise(ctx, workoutID, exerciseID, func(e *domain.Exercise) {
		e.Completed = true
	})
}

// RecordLoad stores the load string verbatim on one exercise.
func (r *recordWorkoutRepository) RecordLoad(ctx context.Context, workoutID, exerciseID, load string) error {
	return r.mutateExercise(ctx, workoutID, exerciseID, func(e *domain.Exercise) {
		e.Load = load
	})
}

// mutateExercise locates one exercise inside one workout, applies fn and
// rewrites the collection. When either ID has no match it returns
// ErrNotFound and leaves the collection untouched.
func (r *recordWorkoutRepository) mutateExercise(ctx context.Context, workoutID, exerciseID string, fn func(*domain.Exercise)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	workouts, err := r.readAll(ctx)
	if err != nil {
		return err
	}
	for i := range workouts {
		if workouts[i].ID != workoutID {
			continue
		}
		for j := range workouts[i].Exercises {
			if workouts[i].Exercises[j].ID == exerciseID {
				fn(&workouts[i].Exercises[j])
				return r.writeAll(ctx, workouts)
			}
		}
		return repository.ErrNotFound
	}
	return repository.ErrNotFound
}
