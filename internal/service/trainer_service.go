package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"gymtrack/gym-app/internal/domain"
	"gymtrack/gym-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrTraineeNotFound        = errors.New("trainee user not found")
	ErrTraineeNotRole         = errors.New("user found but is not a trainee")
	ErrTraineeAlreadyAssigned = errors.New("trainee is already assigned to a trainer")
	ErrTraineeNotManaged      = errors.New("trainee is not managed by this trainer")
	ErrDayAlreadyAssigned     = errors.New("trainee already has a workout on this day")
	ErrInvalidWorkout         = errors.New("invalid workout")
)

// ExerciseInput describes one exercise of a workout being created.
type ExerciseInput struct {
	Name string
	Sets int
	Reps string
	Rest string
	Note string
}

// CreateWorkoutInput carries everything needed to author a workout for a
// trainee. IDs for the workout and its exercises are generated here, never
// supplied by the caller.
type CreateWorkoutInput struct {
	TraineeID    string
	Name         string
	DayOfWeek    string
	Duration     string
	Level        domain.Level
	TrainerNotes string
	Exercises    []ExerciseInput
}

// TraineeOverview is one row of the trainer dashboard: a managed trainee
// with progress derived from their workouts at read time.
type TraineeOverview struct {
	User            domain.User `json:"user"`
	WorkoutCount    int         `json:"workoutCount"`
	ProgressPercent int         `json:"progressPercent"`
}

// TrainerService covers everything a trainer does: managing trainees and
// authoring workouts.
type TrainerService interface {
	// Trainee management
	AddTraineeByEmail(ctx context.Context, trainerID string, traineeEmail string) (*domain.User, error)
	GetManagedTrainees(ctx context.Context, trainerID string) ([]domain.User, error)
	Dashboard(ctx context.Context, trainerID string) ([]TraineeOverview, error)

	// Workout management
	AvailableDays(ctx context.Context, trainerID, traineeID string) ([]string, error)
	CreateWorkout(ctx context.Context, trainerID string, input CreateWorkoutInput) (*domain.Workout, error)
	GetAuthoredWorkouts(ctx context.Context, trainerID string) ([]domain.Workout, error)
	GetWorkoutsForTrainee(ctx context.Context, trainerID, traineeID string) ([]domain.Workout, error)
}

// trainerService implements the TrainerService interface.
type trainerService struct {
	userRepo    repository.UserRepository
	workoutRepo repository.WorkoutRepository
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(userRepo repository.UserRepository, workoutRepo repository.WorkoutRepository) TrainerService {
	return &trainerService{
		userRepo:    userRepo,
		workoutRepo: workoutRepo,
	}
}

// === Trainee Management ===

// AddTraineeByEmail finds a trainee by email and links them to the trainer.
func (s *trainerService) AddTraineeByEmail(ctx context.Context, trainerID string, traineeEmail string) (*domain.User, error) {
	if trainerID == "" || traineeEmail == "" {
		return nil, errors.New("trainer ID and trainee email are required")
	}

	trainee, err := s.userRepo.GetByEmail(ctx, traineeEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTraineeNotFound
		}
		return nil, err
	}

	if !trainee.IsTrainee() {
		return nil, ErrTraineeNotRole
	}

	if trainee.TrainerID != "" {
		if trainee.TrainerID == trainerID {
			// Already managed by this trainer; nothing to do.
			sanitized := trainee.Sanitized()
			return &sanitized, nil
		}
		return nil, ErrTraineeAlreadyAssigned
	}

	if err := s.userRepo.LinkTraineeToTrainer(ctx, trainee.ID, trainerID); err != nil {
		return nil, err
	}

	trainee.TrainerID = trainerID
	sanitized := trainee.Sanitized()
	return &sanitized, nil
}

// GetManagedTrainees lists the trainees linked to this trainer.
func (s *trainerService) GetManagedTrainees(ctx context.Context, trainerID string) ([]domain.User, error) {
	trainees, err := s.userRepo.ListTraineesOfTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	for i := range trainees {
		trainees[i] = trainees[i].Sanitized()
	}
	return trainees, nil
}

// Dashboard returns the trainer's trainees with progress derived from the
// workout collection at read time, instead of trusting the stored status.
func (s *trainerService) Dashboard(ctx context.Context, trainerID string) ([]TraineeOverview, error) {
	trainees, err := s.userRepo.ListTraineesOfTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	overviews := make([]TraineeOverview, 0, len(trainees))
	for _, trainee := range trainees {
		workouts, err := s.workoutRepo.ListByTrainee(ctx, trainee.ID)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, TraineeOverview{
			User:            trainee.Sanitized(),
			WorkoutCount:    len(workouts),
			ProgressPercent: overallProgress(workouts),
		})
	}
	return overviews, nil
}

// === Workout Management ===

// AvailableDays returns the days of the week the trainee does not yet have a
// workout on, in calendar order.
func (s *trainerService) AvailableDays(ctx context.Context, trainerID, traineeID string) ([]string, error) {
	if _, err := s.managedTrainee(ctx, trainerID, traineeID); err != nil {
		return nil, err
	}

	workouts, err := s.workoutRepo.ListByTrainee(ctx, traineeID)
	if err != nil {
		return nil, err
	}

	used := make(map[string]bool, len(workouts))
	for _, w := range workouts {
		used[w.DayOfWeek] = true
	}

	available := []string{}
	for _, day := range domain.DaysOfWeek {
		if !used[day] {
			available = append(available, day)
		}
	}
	return available, nil
}

// CreateWorkout authors a workout for a managed trainee. As a side effect the
// trainee's status is set to active and their last-workout date is stamped;
// that second write is not atomic with the workout write.
func (s *trainerService) CreateWorkout(ctx context.Context, trainerID string, input CreateWorkoutInput) (*domain.Workout, error) {
	trainee, err := s.managedTrainee(ctx, trainerID, input.TraineeID)
	if err != nil {
		return nil, err
	}

	if err := validateWorkoutInput(input); err != nil {
		return nil, err
	}

	// At most one workout per (trainee, day of week).
	existing, err := s.workoutRepo.ListByTrainee(ctx, input.TraineeID)
	if err != nil {
		return nil, err
	}
	for _, w := range existing {
		if w.DayOfWeek == input.DayOfWeek {
			return nil, ErrDayAlreadyAssigned
		}
	}

	exercises := make([]domain.Exercise, 0, len(input.Exercises))
	for _, e := range input.Exercises {
		exercises = append(exercises, domain.Exercise{
			ID:   uuid.NewString(),
			Name: e.Name,
			Sets: e.Sets,
			Reps: e.Reps,
			Rest: e.Rest,
			Note: e.Note,
		})
	}

	today := time.Now().Format(domain.DisplayDateLayout)
	workout := &domain.Workout{
		TraineeID:    input.TraineeID,
		TrainerID:    trainerID,
		Name:         input.Name,
		DayOfWeek:    input.DayOfWeek,
		Duration:     input.Duration,
		Level:        input.Level,
		TrainerNotes: input.TrainerNotes,
		Exercises:    exercises,
		AssignedAt:   today,
	}

	if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}

	// Second, causally ordered write: mark the trainee active. A crash
	// between the two writes leaves the status stale until the next
	// workout creation; the inconsistency is cosmetic.
	trainee.Status = domain.StatusActive
	trainee.LastWorkout = today
	if err := s.userRepo.Update(ctx, trainee); err != nil {
		return nil, err
	}

	return workout, nil
}

// GetAuthoredWorkouts lists every workout this trainer has created.
func (s *trainerService) GetAuthoredWorkouts(ctx context.Context, trainerID string) ([]domain.Workout, error) {
	return s.workoutRepo.ListByTrainer(ctx, trainerID)
}

// GetWorkoutsForTrainee lists one managed trainee's workouts.
func (s *trainerService) GetWorkoutsForTrainee(ctx context.Context, trainerID, traineeID string) ([]domain.Workout, error) {
	if _, err := s.managedTrainee(ctx, trainerID, traineeID); err != nil {
		return nil, err
	}
	return s.workoutRepo.ListByTrainee(ctx, traineeID)
}

// managedTrainee fetches a trainee and checks they belong to this trainer.
func (s *trainerService) managedTrainee(ctx context.Context, trainerID, traineeID string) (*domain.User, error) {
	trainee, err := s.userRepo.GetByID(ctx, traineeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTraineeNotFound
		}
		return nil, err
	}
	if !trainee.IsTrainee() {
		return nil, ErrTraineeNotRole
	}
	if trainee.TrainerID != trainerID {
		return nil, ErrTraineeNotManaged
	}
	return trainee, nil
}

func validateWorkoutInput(input CreateWorkoutInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrInvalidWorkout
	}
	if !domain.ValidDayOfWeek(input.DayOfWeek) {
		return ErrInvalidWorkout
	}
	if !domain.ValidLevel(input.Level) {
		return ErrInvalidWorkout
	}
	if len(input.Exercises) == 0 {
		return ErrInvalidWorkout
	}
	for _, e := range input.Exercises {
		if strings.TrimSpace(e.Name) == "" || e.Sets <= 0 {
			return ErrInvalidWorkout
		}
	}
	return nil
}

// overallProgress aggregates exercise completion across all of a trainee's
// workouts into one percentage.
func overallProgress(workouts []domain.Workout) int {
	total, completed := 0, 0
	for _, w := range workouts {
		for _, e := range w.Exercises {
			total++
			if e.Completed {
				completed++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
