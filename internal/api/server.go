package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/momentum/internal/service"
)

type Server struct {
	mx              *chi.Mux
	startedAt       time.Time
	userService     service.UserServiceI
	profileService  service.ProfileServiceI
	activityService service.ActivityServiceI
	workoutService  service.WorkoutServiceI
	deviceService   service.DeviceServiceI
	jwtService      JWTServiceI
}

type ServicesList struct {
	UserService     service.UserServiceI
	ProfileService  service.ProfileServiceI
	ActivityService service.ActivityServiceI
	WorkoutService  service.WorkoutServiceI
	DeviceService   service.DeviceServiceI
	JwtService      JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:              chi.NewMux(),
		startedAt:       time.Now(),
		userService:     servicesOptions.UserService,
		profileService:  servicesOptions.ProfileService,
		activityService: servicesOptions.ActivityService,
		workoutService:  servicesOptions.WorkoutService,
		deviceService:   servicesOptions.DeviceService,
		jwtService:      servicesOptions.JwtService,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Get("/health", s.Health)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Get("/auth/me", s.Me)
			r.Get("/users/profile", s.GetProfile)
			r.Put("/users/profile", s.UpdateProfile)
			r.Put("/users/me", s.UpdateMe)
			r.Get("/activities/today", s.GetTodayActivity)
			r.Put("/activities/today", s.UpdateTodayActivity)
			r.Get("/activities/weekly", s.GetWeeklyActivity)
			r.Get("/activities/stats", s.GetActivityStats)
			r.Get("/workouts", s.GetWorkouts)
			r.Post("/workouts", s.CreateWorkout)
			r.Get("/workouts/{id}", s.GetWorkout)
			r.Put("/workouts/{id}/complete", s.CompleteWorkout)
			r.Delete("/workouts/{id}", s.DeleteWorkout)
			r.Get("/devices", s.GetDevices)
			r.Post("/devices", s.AddDevice)
			r.Get("/devices/{id}", s.GetDevice)
			r.Put("/devices/{id}", s.UpdateDevice)
			r.Post("/devices/{id}/sync", s.SyncDevice)
			r.Delete("/devices/{id}", s.DeleteDevice)
		})
	})
}

func (s *Server) Run(address string) error {
	return http.ListenAndServe(address, s.mx)
}

// Mux exposes the router for tests.
func (s *Server) Mux() *chi.Mux {
	return s.mx
}
