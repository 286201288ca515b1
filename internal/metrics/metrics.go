package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Domain events
	UsersRegistered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total successful registrations",
		},
		[]string{"role"}, // trainer|trainee
	)
	WorkoutsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "workouts_created_total",
			Help: "Total workouts authored by trainers",
		},
	)
	ExercisesCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "exercises_completed_total",
			Help: "Total exercises marked complete by trainees",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(UsersRegistered)
	prometheus.MustRegister(WorkoutsCreated)
	prometheus.MustRegister(ExercisesCompleted)
}
