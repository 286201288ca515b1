package domain

import (
	"math"
	"time"
)

// Level grades the difficulty of a workout.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// ValidLevel reports whether l is one of the known difficulty levels.
func ValidLevel(l Level) bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// DaysOfWeek lists the candidate days a workout can be scheduled on, in
// calendar order. At most one workout may exist per (trainee, day) pair.
var DaysOfWeek = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// ValidDayOfWeek reports whether day is one of DaysOfWeek.
func ValidDayOfWeek(day string) bool {
	for _, d := range DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// Exercise is one movement within a Workout. It is embedded in its parent
// workout, not stored as a top-level record.
type Exercise struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Sets int    `json:"sets"`
	Reps string `json:"reps"` // free-form range, e.g. "10-12"
	Rest string `json:"rest"` // e.g. "60s"
	Note string `json:"note,omitempty"`

	// Load is entered by the trainee during execution and stored verbatim
	// as a string. There is no history, only the latest value.
	Load      string `json:"load,omitempty"`
	Completed bool   `json:"completed,omitempty"`
}

// Workout is a training plan assigned by one trainer to one trainee,
// scoped to a single day of the week.
type Workout struct {
	ID           string     `json:"id"`
	TraineeID    string     `json:"traineeId"`
	TrainerID    string     `json:"trainerId"`
	Name         string     `json:"name"`
	DayOfWeek    string     `json:"dayOfWeek"`
	Duration     string     `json:"duration"` // e.g. "60 min"
	Level        Level      `json:"level"`
	TrainerNotes string     `json:"trainerNotes,omitempty"`
	Exercises    []Exercise `json:"exercises"`
	CreatedAt    time.Time  `json:"createdAt"`
	AssignedAt   string     `json:"assignedAt"` // display format, e.g. "29/08/2026"
}

// DisplayDateLayout is the date format shown to users and stamped on
// AssignedAt and User.LastWorkout.
const DisplayDateLayout = "02/01/2006"

// ProgressPercent returns the share of completed exercises as an integer
// percentage, rounded to nearest. A workout with no exercises is 0%.
func (w *Workout) ProgressPercent() int {
	if len(w.Exercises) == 0 {
		return 0
	}
	completed := 0
	for _, e := range w.Exercises {
		if e.Completed {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(w.Exercises))))
}
