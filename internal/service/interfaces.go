package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/limbo/momentum/pkg/entity"
)

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=100"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Avatar    *string `json:"avatar" validate:"omitempty,url"`
}

type UpdateProfileRequest struct {
	Height        *float64 `json:"height" validate:"omitempty,gte=50,lte=300"`
	Weight        *float64 `json:"weight" validate:"omitempty,gte=20,lte=500"`
	Age           *int     `json:"age" validate:"omitempty,gte=1,lte=150"`
	Gender        *string  `json:"gender" validate:"omitempty,oneof=male female other"`
	DailyStepGoal *int     `json:"daily_step_goal" validate:"omitempty,gte=1000"`
	CalorieGoal   *int     `json:"calorie_goal" validate:"omitempty,gte=500"`
}

type UpdateActivityRequest struct {
	Steps         *int     `json:"steps" validate:"omitempty,gte=0"`
	Calories      *int     `json:"calories" validate:"omitempty,gte=0"`
	Distance      *float64 `json:"distance" validate:"omitempty,gte=0"`
	ActiveMinutes *int     `json:"active_minutes" validate:"omitempty,gte=0"`
	HeartRate     *int     `json:"heart_rate" validate:"omitempty,gte=30,lte=250"`
}

type CreateWorkoutRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Category    string  `json:"category" validate:"required,oneof=cardio strength flexibility balance sports"`
	Level       string  `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Duration    int     `json:"duration" validate:"required,gte=1"`
	Calories    int     `json:"calories" validate:"gte=0"`
	CoverImage  *string `json:"cover_image" validate:"omitempty,url"`
}

type RegisterDeviceRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Type         string `json:"type" validate:"required,oneof=watch band scale tracker"`
	Model        string `json:"model" validate:"required,max=100"`
	SerialNumber string `json:"serial_number" validate:"required,max=100"`
}

type UpdateDeviceRequest struct {
	Name                 *string `json:"name" validate:"omitempty,min=1,max=100"`
	IsConnected          *bool   `json:"is_connected"`
	Battery              *int    `json:"battery" validate:"omitempty,gte=0,lte=100"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
	AutoSyncEnabled      *bool   `json:"auto_sync_enabled"`
}

type UserServiceI interface {
	// Validates credentials, hashes password, creates user and their empty profile.
	// Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, gives back user's data with ID
	Login(ctx context.Context, email, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// Merges provided fields into user's displayed info
	UpdateInfo(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*entity.User, error)
}

type ProfileServiceI interface {
	Get(ctx context.Context, uid uuid.UUID) (*entity.Profile, error)
	// Merges provided fields. Recomputes BMI when height and weight both arrive
	// in the same call
	Update(ctx context.Context, uid uuid.UUID, req *UpdateProfileRequest) (*entity.Profile, error)
}

type ActivityServiceI interface {
	// Returns today's row, creating a zeroed one on first touch
	Today(ctx context.Context, uid uuid.UUID) (*entity.Activity, error)
	// Merges provided fields into today's row
	UpdateToday(ctx context.Context, uid uuid.UUID, req *UpdateActivityRequest) (*entity.Activity, error)
	// Rows for the trailing 7 days inclusive of today, oldest first
	Weekly(ctx context.Context, uid uuid.UUID) ([]*entity.Activity, error)
	// Rollup over the trailing windowDays days
	Stats(ctx context.Context, uid uuid.UUID, windowDays int) (*entity.ActivityStats, error)
	// Adds calorie/minute deltas onto today's row
	ApplyWorkoutCompletion(ctx context.Context, uid uuid.UUID, calories, minutes int) (*entity.Activity, error)
}

type WorkoutServiceI interface {
	Create(ctx context.Context, uid uuid.UUID, req *CreateWorkoutRequest) (*entity.Workout, error)
	Get(ctx context.Context, workoutID, uid uuid.UUID) (*entity.Workout, error)
	List(ctx context.Context, uid uuid.UUID, filter entity.WorkoutFilter) ([]*entity.Workout, error)
	// Marks workout completed and folds its calories/duration into today's
	// activity row transactionally
	Complete(ctx context.Context, workoutID, uid uuid.UUID) (*entity.Workout, error)
	// Removes the workout. Activity increments it produced earlier stay as they are
	Delete(ctx context.Context, workoutID, uid uuid.UUID) error
}

type DeviceServiceI interface {
	Register(ctx context.Context, uid uuid.UUID, req *RegisterDeviceRequest) (*entity.Device, error)
	Get(ctx context.Context, deviceID, uid uuid.UUID) (*entity.Device, error)
	List(ctx context.Context, uid uuid.UUID) ([]*entity.Device, error)
	Update(ctx context.Context, deviceID, uid uuid.UUID, req *UpdateDeviceRequest) (*entity.Device, error)
	Sync(ctx context.Context, deviceID, uid uuid.UUID) (*entity.Device, error)
	Delete(ctx context.Context, deviceID, uid uuid.UUID) error
}
