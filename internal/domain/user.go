package domain

import (
	"time"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleTrainer Role = "trainer"
	RoleTrainee Role = "trainee"
)

// TraineeStatus reflects whether a trainee currently has an assigned workout.
// It is written by the workout creation flow, not recomputed on read.
type TraineeStatus string

const (
	StatusActive    TraineeStatus = "active"
	StatusNoWorkout TraineeStatus = "no_workout"
)

// Theme is a client display preference persisted alongside the user record.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// User represents a user in the system (either a Trainer or a Trainee).
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"` // Should be unique
	PasswordHash string `json:"passwordHash,omitempty"`
	Role         Role   `json:"role"`

	// --- Trainee-specific ---
	// ID of the Trainer this Trainee is linked to. Empty until the trainee
	// picks a trainer (or is registered with one).
	TrainerID string `json:"trainerId,omitempty"`

	// Status and LastWorkout are stamped by workout creation as a side
	// effect; a freshly registered trainee has neither.
	Status      TraineeStatus `json:"status,omitempty"`
	LastWorkout string        `json:"lastWorkout,omitempty"` // display format, e.g. "29/08/2026"

	// AvatarKey is an opaque object-storage reference, persisted verbatim.
	AvatarKey string `json:"avatarKey,omitempty"`
	Theme     Theme  `json:"theme,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsTrainee() bool {
	return u.Role == RoleTrainee
}

// Sanitized returns a copy of the user safe to hand back to callers:
// the password hash is never echoed outside the data layer.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
