package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gymtrack/gym-app/internal/metrics"
	"gymtrack/gym-app/internal/service"
)

// TraineeHandler holds the trainee service dependency.
type TraineeHandler struct {
	traineeService service.TraineeService
}

// NewTraineeHandler creates a new TraineeHandler.
func NewTraineeHandler(traineeService service.TraineeService) *TraineeHandler {
	return &TraineeHandler{traineeService: traineeService}
}

// --- Request Structs ---

type RecordLoadRequest struct {
	// Stored verbatim; "40", "42.5kg" and "bodyweight" are all fine.
	Load string `json:"load" binding:"required"`
}

type ChooseTrainerRequest struct {
	TrainerID string `json:"trainerId" binding:"required"`
}

// --- Handler Methods ---

// GetMyWorkouts godoc
// @Summary List the authenticated trainee's workouts
// @Tags Trainee
// @Produce json
// @Security BearerAuth
// @Success 200 {array} WorkoutResponse
// @Router /trainee/workouts [get]
func (h *TraineeHandler) GetMyWorkouts(c *gin.Context) {
	traineeID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	details, err := h.traineeService.GetMyWorkouts(c.Request.Context(), traineeID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not list workouts")
		return
	}

	resp := make([]WorkoutResponse, 0, len(details))
	for i := range details {
		resp = append(resp, MapWorkoutToResponse(&details[i].Workout))
	}
	c.JSON(http.StatusOK, resp)
}

// GetWorkout godoc
// @Summary Fetch one of the trainee's workouts
// @Tags Trainee
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Success 200 {object} WorkoutResponse
// @Failure 404 {object} gin.H "Workout not found"
// @Router /trainee/workouts/{workoutId} [get]
func (h *TraineeHandler) GetWorkout(c *gin.Context) {
	traineeID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	detail, err := h.traineeService.GetWorkout(c.Request.Context(), traineeID, c.Param("workoutId"))
	if err != nil {
		h.abortWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(&detail.Workout))
}

// CompleteExercise godoc
// @Summary Mark one exercise of a workout as completed
// @Tags Trainee
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param exerciseId path string true "Exercise ID"
// @Success 200 {object} WorkoutResponse "Workout with refreshed progress"
// @Failure 404 {object} gin.H "Workout or exercise not found"
// @Router /trainee/workouts/{workoutId}/exercises/{exerciseId}/complete [post]
func (h *TraineeHandler) CompleteExercise(c *gin.Context) {
	traineeID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	detail, err := h.traineeService.CompleteExercise(c.Request.Context(), traineeID, c.Param("workoutId"), c.Param("exerciseId"))
	if err != nil {
		h.abortWorkoutError(c, err)
		return
	}

	metrics.ExercisesCompleted.Inc()
	c.JSON(http.StatusOK, MapWorkoutToResponse(&detail.Workout))
}

// RecordLoad godoc
// @Summary Record the load used for one exercise
// @Tags Trainee
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param exerciseId path string true "Exercise ID"
// @Param load body RecordLoadRequest true "Load value, stored verbatim"
// @Success 200 {object} WorkoutResponse
// @Router /trainee/workouts/{workoutId}/exercises/{exerciseId}/load [put]
func (h *TraineeHandler) RecordLoad(c *gin.Context) {
	traineeID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req RecordLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	detail, err := h.traineeService.SetExerciseLoad(c.Request.Context(), traineeID, c.Param("workoutId"), c.Param("exerciseId"), req.Load)
	if err != nil {
		if errors.Is(err, service.ErrEmptyLoad) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.abortWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(&detail.Workout))
}

// GetTrainers godoc
// @Summary List all trainers available to pick from
// @Tags Trainee
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserResponse
// @Router /trainee/trainers [get]
func (h *TraineeHandler) GetTrainers(c *gin.Context) {
	trainers, err := h.traineeService.ListTrainers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not list trainers")
		return
	}

	resp := make([]UserResponse, 0, len(trainers))
	for i := range trainers {
		resp = append(resp, MapUserToResponse(&trainers[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// ChooseTrainer godoc
// @Summary Link the authenticated trainee to a trainer
// @Tags Trainee
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trainer body ChooseTrainerRequest true "Trainer ID"
// @Success 204 "Linked"
// @Router /trainee/trainer [put]
func (h *TraineeHandler) ChooseTrainer(c *gin.Context) {
	traineeID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ChooseTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.traineeService.ChooseTrainer(c.Request.Context(), traineeID, req.TrainerID); err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not link trainer")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMyTrainer godoc
// @Summary The trainer the authenticated trainee is linked to
// @Tags Trainee
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 404 {object} gin.H "No trainer assigned yet"
// @Router /trainee/trainer [get]
func (h *TraineeHandler) GetMyTrainer(c *gin.Context) {
	traineeID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	trainer, err := h.traineeService.GetMyTrainer(c.Request.Context(), traineeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoTrainer), errors.Is(err, service.ErrTrainerNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not load trainer")
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(trainer))
}

// Summary godoc
// @Summary Trainee dashboard numbers
// @Tags Trainee
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.TraineeSummary
// @Router /trainee/summary [get]
func (h *TraineeHandler) Summary(c *gin.Context) {
	traineeID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	summary, err := h.traineeService.Summary(c.Request.Context(), traineeID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not build summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// abortWorkoutError maps the shared workout-lookup failures to HTTP codes.
func (h *TraineeHandler) abortWorkoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkoutNotFound), errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
