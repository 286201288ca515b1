package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymtrack/gym-app/internal/domain"
	"gymtrack/gym-app/internal/metrics"
	"gymtrack/gym-app/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	revoker service.TokenRevoker,
	authService service.AuthService,
	trainerService service.TrainerService,
	traineeService service.TraineeService,
	profileService service.ProfileService,
) {
	authHandler := NewAuthHandler(authService)
	trainerHandler := NewTrainerHandler(trainerService)
	traineeHandler := NewTraineeHandler(traineeService)
	profileHandler := NewProfileHandler(profileService)

	authMiddleware := AuthMiddleware(jwtSecret, revoker)

	router.Use(MetricsMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- Profile (both roles) ---
		profileGroup := protected.Group("/profile")
		{
			profileGroup.POST("/avatar/upload-url", profileHandler.RequestAvatarUpload)
			profileGroup.PUT("/avatar", profileHandler.ConfirmAvatar)
			profileGroup.GET("/avatar/url", profileHandler.GetAvatarURL)
			profileGroup.PUT("/theme", profileHandler.SetTheme)
		}

		// --- Trainer Specific Routes ---
		trainerGroup := protected.Group("/trainer")
		trainerGroup.Use(RoleMiddleware(domain.RoleTrainer))
		{
			trainerGroup.POST("/trainees", trainerHandler.AddTrainee)
			trainerGroup.GET("/trainees", trainerHandler.GetTrainees)
			trainerGroup.GET("/dashboard", trainerHandler.Dashboard)

			trainerGroup.GET("/trainees/:traineeId/available-days", trainerHandler.GetAvailableDays)
			trainerGroup.POST("/trainees/:traineeId/workouts", trainerHandler.CreateWorkout)
			trainerGroup.GET("/trainees/:traineeId/workouts", trainerHandler.GetWorkoutsForTrainee)
			trainerGroup.GET("/workouts", trainerHandler.GetAuthoredWorkouts)
		}

		// --- Trainee Specific Routes ---
		traineeGroup := protected.Group("/trainee")
		traineeGroup.Use(RoleMiddleware(domain.RoleTrainee))
		{
			traineeGroup.GET("/workouts", traineeHandler.GetMyWorkouts)
			traineeGroup.GET("/workouts/:workoutId", traineeHandler.GetWorkout)
			traineeGroup.POST("/workouts/:workoutId/exercises/:exerciseId/complete", traineeHandler.CompleteExercise)
			traineeGroup.PUT("/workouts/:workoutId/exercises/:exerciseId/load", traineeHandler.RecordLoad)

			traineeGroup.GET("/trainers", traineeHandler.GetTrainers)
			traineeGroup.PUT("/trainer", traineeHandler.ChooseTrainer)
			traineeGroup.GET("/trainer", traineeHandler.GetMyTrainer)
			traineeGroup.GET("/summary", traineeHandler.Summary)
		}
	}
}
