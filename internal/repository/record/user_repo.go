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

const usersKey = "gymapp:users"

// recordUserRepository implements repository.UserRepository over a
// store.RecordStore. Every operation reads the whole users collection,
// scans it in memory and, when mutating, writes the whole collection back.
//
// The mutex serializes read-modify-write cycles within this process; the
// store itself offers no concurrency control, so writers in other processes
// still race (last writer wins).
type recordUserRepository struct {
	mu    sync.Mutex
	store store.RecordStore
}

// NewUserRepository creates a user repository backed by the given record store.
func NewUserRepository(s store.RecordStore) repository.UserRepository {
	return &recordUserRepository{store: s}
}

func (r *recordUserRepository) readAll(ctx context.Context) ([]domain.User, error) {
	data, err := r.store.Read(ctx, usersKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []domain.User{}, nil
	}
	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *recordUserRepository) writeAll(ctx context.Context, users []domain.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return r.store.WriteAll(ctx, usersKey, data)
}

// Create assigns a fresh ID and timestamps and appends the user.
func (r *recordUserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.readAll(ctx)
	if err != nil {
		return "", err
	}

	// Case-sensitive exact match, same rule GetByEmail uses.
	for _, u := range users {
		if u.Email == user.Email {
			return "", repository.ErrEmailTaken
		}
	}

	user.ID = uuid.NewString()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	users = append(users, *user)
	if err := r.writeAll(ctx, users); err != nil {
		return "", err
	}
	return user.ID, nil
}

// GetByEmail retrieves a user by exact email match.
func (r *recordUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetByID retrieves a user by ID.
func (r *recordUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	users, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

// ListByRole returns all users with the given role, in creation order.
func (r *recordUserRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	users, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []domain.User{}
	for _, u := range users {
		if u.Role == role {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

// ListTraineesOfTrainer returns all trainees linked to the given trainer.
func (r *recordUserRepository) ListTraineesOfTrainer(ctx context.Context, trainerID string) ([]domain.User, error) {
	users, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	trainees := []domain.User{}
	for _, u := range users {
		if u.IsTrainee() && u.TrainerID == trainerID {
			trainees = append(trainees, u)
		}
	}
	return trainees, nil
}

// LinkTraineeToTrainer sets the trainer reference on a trainee record.
func (r *recordUserRepository) LinkTraineeToTrainer(ctx context.Context, traineeID, trainerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.readAll(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == traineeID && users[i].IsTrainee() {
			users[i].TrainerID = trainerID
			users[i].UpdatedAt = time.Now().UTC()
			return r.writeAll(ctx, users)
		}
	}
	return repository.ErrNotFound
}

// GetTrainerByID retrieves a user by ID, restricted to the trainer role.
func (r *recordUserRepository) GetTrainerByID(ctx context.Context, trainerID string) (*domain.User, error) {
	users, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == trainerID && users[i].IsTrainer() {
			return &users[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

// Update replaces the stored record matching user.ID.
func (r *recordUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.readAll(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			user.UpdatedAt = time.Now().UTC()
			users[i] = *user
			return r.writeAll(ctx, users)
		}
	}
	return repository.ErrNotFound
}
