package service

import (
	"context"
	"errors"
	"strings"

	"gymtrack/gym-app/internal/domain"
	"gymtrack/gym-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrExerciseNotFound = errors.New("exercise not found in workout")
	ErrNoTrainer        = errors.New("trainee has no trainer assigned")
	ErrEmptyLoad        = errors.New("load value cannot be empty")
)

// WorkoutDetails is a workout together with its derived progress.
type WorkoutDetails struct {
	Workout         domain.Workout `json:"workout"`
	ProgressPercent int            `json:"progressPercent"`
}

// TraineeSummary is the trainee dashboard: workout and completion counts
// plus the overall progress derived from them.
type TraineeSummary struct {
	WorkoutCount       int                  `json:"workoutCount"`
	TotalExercises     int                  `json:"totalExercises"`
	CompletedExercises int                  `json:"completedExercises"`
	ProgressPercent    int                  `json:"progressPercent"`
	Status             domain.TraineeStatus `json:"status"`
}

// TraineeService covers everything a trainee does: tracking workout
// execution and picking a trainer.
type TraineeService interface {
	GetMyWorkouts(ctx context.Context, traineeID string) ([]WorkoutDetails, error)
	GetWorkout(ctx context.Context, traineeID, workoutID string) (*WorkoutDetails, error)
	CompleteExercise(ctx context.Context, traineeID, workoutID, exerciseID string) (*WorkoutDetails, error)
	SetExerciseLoad(ctx context.Context, traineeID, workoutID, exerciseID, load string) (*WorkoutDetails, error)

	ListTrainers(ctx context.Context) ([]domain.User, error)
	ChooseTrainer(ctx context.Context, traineeID, trainerID string) error
	GetMyTrainer(ctx context.Context, traineeID string) (*domain.User, error)

	Summary(ctx context.Context, traineeID string) (*TraineeSummary, error)
}

// traineeService implements the TraineeService interface.
type traineeService struct {
	userRepo    repository.UserRepository
	workoutRepo repository.WorkoutRepository
}

// NewTraineeService creates a new instance of traineeService.
func NewTraineeService(userRepo repository.UserRepository, workoutRepo repository.WorkoutRepository) TraineeService {
	return &traineeService{
		userRepo:    userRepo,
		workoutRepo: workoutRepo,
	}
}

// GetMyWorkouts lists the trainee's workouts in creation order.
func (s *traineeService) GetMyWorkouts(ctx context.Context, traineeID string) ([]WorkoutDetails, error) {
	workouts, err := s.workoutRepo.ListByTrainee(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	details := make([]WorkoutDetails, 0, len(workouts))
	for _, w := range workouts {
		details = append(details, WorkoutDetails{Workout: w, ProgressPercent: w.ProgressPercent()})
	}
	return details, nil
}

// GetWorkout fetches one workout, checking it belongs to this trainee.
func (s *traineeService) GetWorkout(ctx context.Context, traineeID, workoutID string) (*WorkoutDetails, error) {
	return s.ownedWorkout(ctx, traineeID, workoutID)
}

// CompleteExercise marks one exercise done and returns the refreshed
// workout. Marking an already-completed exercise again changes nothing.
func (s *traineeService) CompleteExercise(ctx context.Context, traineeID, workoutID, exerciseID string) (*WorkoutDetails, error) {
	if _, err := s.ownedWorkout(ctx, traineeID, workoutID); err != nil {
		return nil, err
	}

	if err := s.workoutRepo.MarkExerciseComplete(ctx, workoutID, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	return s.ownedWorkout(ctx, traineeID, workoutID)
}

// SetExerciseLoad records the load the trainee lifted, stored verbatim as a
// string. No numeric validation, no unit normalization.
func (s *traineeService) SetExerciseLoad(ctx context.Context, traineeID, workoutID, exerciseID, load string) (*WorkoutDetails, error) {
	if strings.TrimSpace(load) == "" {
		return nil, ErrEmptyLoad
	}

	if _, err := s.ownedWorkout(ctx, traineeID, workoutID); err != nil {
		return nil, err
	}

	if err := s.workoutRepo.RecordLoad(ctx, workoutID, exerciseID, load); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	return s.ownedWorkout(ctx, traineeID, workoutID)
}

// ListTrainers lists every trainer so a trainee can pick one.
func (s *traineeService) ListTrainers(ctx context.Context) ([]domain.User, error) {
	trainers, err := s.userRepo.ListByRole(ctx, domain.RoleTrainer)
	if err != nil {
		return nil, err
	}
	for i := range trainers {
		trainers[i] = trainers[i].Sanitized()
	}
	return trainers, nil
}

// ChooseTrainer links this trainee to a trainer.
func (s *traineeService) ChooseTrainer(ctx context.Context, traineeID, trainerID string) error {
	if _, err := s.userRepo.GetTrainerByID(ctx, trainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}
	return s.userRepo.LinkTraineeToTrainer(ctx, traineeID, trainerID)
}

// GetMyTrainer returns the trainer this trainee is linked to. Having no
// trainer yet is a normal state, reported as ErrNoTrainer.
func (s *traineeService) GetMyTrainer(ctx context.Context, traineeID string) (*domain.User, error) {
	trainee, err := s.userRepo.GetByID(ctx, traineeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if trainee.TrainerID == "" {
		return nil, ErrNoTrainer
	}

	trainer, err := s.userRepo.GetTrainerByID(ctx, trainee.TrainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	sanitized := trainer.Sanitized()
	return &sanitized, nil
}

// Summary aggregates the trainee's workouts into the dashboard numbers.
// Status is derived from the workout collection at read time rather than
// read from the stored field, so it cannot drift.
func (s *traineeService) Summary(ctx context.Context, traineeID string) (*TraineeSummary, error) {
	workouts, err := s.workoutRepo.ListByTrainee(ctx, traineeID)
	if err != nil {
		return nil, err
	}

	summary := &TraineeSummary{
		WorkoutCount: len(workouts),
		Status:       domain.StatusNoWorkout,
	}
	if len(workouts) > 0 {
		summary.Status = domain.StatusActive
	}
	for _, w := range workouts {
		for _, e := range w.Exercises {
			summary.TotalExercises++
			if e.Completed {
				summary.CompletedExercises++
			}
		}
	}
	summary.ProgressPercent = overallProgress(workouts)
	return summary, nil
}

// ownedWorkout fetches a workout and checks ownership. A workout belonging
// to another trainee is reported as not found, not as forbidden.
func (s *traineeService) ownedWorkout(ctx context.Context, traineeID, workoutID string) (*WorkoutDetails, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.TraineeID != traineeID {
		return nil, ErrWorkoutNotFound
	}
	return &WorkoutDetails{Workout: *workout, ProgressPercent: workout.ProgressPercent()}, nil
}
