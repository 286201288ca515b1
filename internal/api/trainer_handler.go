package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gymtrack/gym-app/internal/domain"
	"gymtrack/gym-app/internal/metrics"
	"gymtrack/gym-app/internal/service"
)

// TrainerHandler holds the trainer service dependency.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// --- Request/Response Structs ---

type AddTraineeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ExerciseRequest struct {
	Name string `json:"name" binding:"required"`
	Sets int    `json:"sets" binding:"required,min=1"`
	Reps string `json:"reps" binding:"required"`
	Rest string `json:"rest" binding:"required"`
	Note string `json:"note"`
}

type CreateWorkoutRequest struct {
	Name         string            `json:"name" binding:"required"`
	DayOfWeek    string            `json:"dayOfWeek" binding:"required"`
	Duration     string            `json:"duration" binding:"required"`
	Level        domain.Level      `json:"level" binding:"required,oneof=beginner intermediate advanced"`
	TrainerNotes string            `json:"trainerNotes"`
	Exercises    []ExerciseRequest `json:"exercises" binding:"required,min=1,dive"`
}

type ExerciseResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Sets      int    `json:"sets"`
	Reps      string `json:"reps"`
	Rest      string `json:"rest"`
	Note      string `json:"note,omitempty"`
	Load      string `json:"load,omitempty"`
	Completed bool   `json:"completed"`
}

type WorkoutResponse struct {
	ID              string             `json:"id"`
	TraineeID       string             `json:"traineeId"`
	TrainerID       string             `json:"trainerId"`
	Name            string             `json:"name"`
	DayOfWeek       string             `json:"dayOfWeek"`
	Duration        string             `json:"duration"`
	Level           domain.Level       `json:"level"`
	TrainerNotes    string             `json:"trainerNotes,omitempty"`
	Exercises       []ExerciseResponse `json:"exercises"`
	ProgressPercent int                `json:"progressPercent"`
	CreatedAt       time.Time          `json:"createdAt"`
	AssignedAt      string             `json:"assignedAt"`
}

// --- Handler Methods ---

// AddTrainee godoc
// @Summary Link a trainee to the authenticated trainer
// @Tags Trainer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trainee body AddTraineeRequest true "Trainee email"
// @Success 200 {object} UserResponse
// @Router /trainer/trainees [post]
func (h *TrainerHandler) AddTrainee(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req AddTraineeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainee, err := h.trainerService.AddTraineeByEmail(c.Request.Context(), trainerID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTraineeNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTraineeNotRole), errors.Is(err, service.ErrTraineeAlreadyAssigned):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not link trainee")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(trainee))
}

// GetTrainees godoc
// @Summary List the trainees managed by the authenticated trainer
// @Tags Trainer
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserResponse
// @Router /trainer/trainees [get]
func (h *TrainerHandler) GetTrainees(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	trainees, err := h.trainerService.GetManagedTrainees(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not list trainees")
		return
	}

	resp := make([]UserResponse, 0, len(trainees))
	for i := range trainees {
		resp = append(resp, MapUserToResponse(&trainees[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard godoc
// @Summary Trainer dashboard: trainees with derived progress
// @Tags Trainer
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.TraineeOverview
// @Router /trainer/dashboard [get]
func (h *TrainerHandler) Dashboard(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	overviews, err := h.trainerService.Dashboard(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not build dashboard")
		return
	}
	c.JSON(http.StatusOK, overviews)
}

// GetAvailableDays godoc
// @Summary Days of the week a trainee has no workout on yet
// @Tags Trainer
// @Produce json
// @Security BearerAuth
// @Param traineeId path string true "Trainee ID"
// @Success 200 {array} string
// @Router /trainer/trainees/{traineeId}/available-days [get]
func (h *TrainerHandler) GetAvailableDays(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	traineeID := c.Param("traineeId")

	days, err := h.trainerService.AvailableDays(c.Request.Context(), trainerID, traineeID)
	if err != nil {
		h.abortTraineeError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

// CreateWorkout godoc
// @Summary Author a workout for a managed trainee
// @Tags Trainer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param traineeId path string true "Trainee ID"
// @Param workout body CreateWorkoutRequest true "Workout details"
// @Success 201 {object} WorkoutResponse
// @Failure 409 {object} gin.H "Day already has a workout"
// @Router /trainer/trainees/{traineeId}/workouts [post]
func (h *TrainerHandler) CreateWorkout(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	traineeID := c.Param("traineeId")

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	input := service.CreateWorkoutInput{
		TraineeID:    traineeID,
		Name:         req.Name,
		DayOfWeek:    req.DayOfWeek,
		Duration:     req.Duration,
		Level:        req.Level,
		TrainerNotes: req.TrainerNotes,
	}
	for _, e := range req.Exercises {
		input.Exercises = append(input.Exercises, service.ExerciseInput{
			Name: e.Name,
			Sets: e.Sets,
			Reps: e.Reps,
			Rest: e.Rest,
			Note: e.Note,
		})
	}

	workout, err := h.trainerService.CreateWorkout(c.Request.Context(), trainerID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDayAlreadyAssigned):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidWorkout):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			h.abortTraineeError(c, err)
		}
		return
	}

	metrics.WorkoutsCreated.Inc()
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// GetWorkoutsForTrainee godoc
// @Summary List one managed trainee's workouts
// @Tags Trainer
// @Produce json
// @Security BearerAuth
// @Param traineeId path string true "Trainee ID"
// @Success 200 {array} WorkoutResponse
// @Router /trainer/trainees/{traineeId}/workouts [get]
func (h *TrainerHandler) GetWorkoutsForTrainee(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	traineeID := c.Param("traineeId")

	workouts, err := h.trainerService.GetWorkoutsForTrainee(c.Request.Context(), trainerID, traineeID)
	if err != nil {
		h.abortTraineeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapWorkoutsToResponse(workouts))
}

// GetAuthoredWorkouts godoc
// @Summary List every workout the authenticated trainer has created
// @Tags Trainer
// @Produce json
// @Security BearerAuth
// @Success 200 {array} WorkoutResponse
// @Router /trainer/workouts [get]
func (h *TrainerHandler) GetAuthoredWorkouts(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	workouts, err := h.trainerService.GetAuthoredWorkouts(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not list workouts")
		return
	}
	c.JSON(http.StatusOK, mapWorkoutsToResponse(workouts))
}

// abortTraineeError maps the shared trainee-lookup failures to HTTP codes.
func (h *TrainerHandler) abortTraineeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTraineeNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTraineeNotRole), errors.Is(err, service.ErrTraineeNotManaged):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// MapWorkoutToResponse converts a domain Workout to its response DTO,
// attaching the derived progress percentage.
func MapWorkoutToResponse(workout *domain.Workout) WorkoutResponse {
	if workout == nil {
		return WorkoutResponse{}
	}
	exercises := make([]ExerciseResponse, 0, len(workout.Exercises))
	for _, e := range workout.Exercises {
		exercises = append(exercises, ExerciseResponse{
			ID:        e.ID,
			Name:      e.Name,
			Sets:      e.Sets,
			Reps:      e.Reps,
			Rest:      e.Rest,
			Note:      e.Note,
			Load:      e.Load,
			Completed: e.Completed,
		})
	}
	return WorkoutResponse{
		ID:              workout.ID,
		TraineeID:       workout.TraineeID,
		TrainerID:       workout.TrainerID,
		Name:            workout.Name,
		DayOfWeek:       workout.DayOfWeek,
		Duration:        workout.Duration,
		Level:           workout.Level,
		TrainerNotes:    workout.TrainerNotes,
		Exercises:       exercises,
		ProgressPercent: workout.ProgressPercent(),
		CreatedAt:       workout.CreatedAt,
		AssignedAt:      workout.AssignedAt,
	}
}

func mapWorkoutsToResponse(workouts []domain.Workout) []WorkoutResponse {
	resp := make([]WorkoutResponse, 0, len(workouts))
	for i := range workouts {
		resp = append(resp, MapWorkoutToResponse(&workouts[i]))
	}
	return resp
}
