// @title Momentum API
// @description REST API for fitness-tracking app "Momentum"
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"

	"github.com/limbo/momentum/internal/api"
	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/internal/service"
	"github.com/limbo/momentum/pkg/cleanup"
	"github.com/limbo/momentum/pkg/config"
	jwtservice "github.com/limbo/momentum/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	userService := service.NewUserService(repository.NewUsersRepo(&dbCfg))
	profileService := service.NewProfileService(repository.NewProfilesRepo(&dbCfg))
	activityService := service.NewActivityService(repository.NewActivitiesRepo(&dbCfg))
	workoutService := service.NewWorkoutService(repository.NewWorkoutsRepo(&dbCfg))
	deviceService := service.NewDeviceService(repository.NewDevicesRepo(&dbCfg))
	serv := api.New(&api.ServicesList{
		UserService:     userService,
		ProfileService:  profileService,
		ActivityService: activityService,
		WorkoutService:  workoutService,
		DeviceService:   deviceService,
		JwtService:      jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
