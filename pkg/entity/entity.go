package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Avatar       *string   `json:"avatar,omitempty"`
	IsPremium    bool      `json:"is_premium"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Profile struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"uid"`
	Height        *float64  `json:"height,omitempty"`
	Weight        *float64  `json:"weight,omitempty"`
	Age           *int      `json:"age,omitempty"`
	Gender        *string   `json:"gender,omitempty"`
	DailyStepGoal int       `json:"daily_step_goal"`
	CalorieGoal   int       `json:"calorie_goal"`
	BMI           *float64  `json:"bmi,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Activity is the per-day aggregate row. At most one exists per (UserID, Date).
type Activity struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"uid"`
	Date          time.Time `json:"date"`
	Steps         int       `json:"steps"`
	Calories      int       `json:"calories"`
	Distance      float64   `json:"distance"`
	ActiveMinutes int       `json:"active_minutes"`
	HeartRate     *int      `json:"heart_rate,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ActivityStats struct {
	TotalSteps         int     `json:"total_steps"`
	TotalCalories      int     `json:"total_calories"`
	TotalDistance      float64 `json:"total_distance"`
	TotalActiveMinutes int     `json:"total_active_minutes"`
	AverageSteps       int     `json:"average_steps"`
	DaysActive         int     `json:"days_active"`
}

type Workout struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"uid"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Category    string     `json:"category"`
	Level       string     `json:"level"`
	Duration    int        `json:"duration"`
	Calories    int        `json:"calories"`
	CoverImage  *string    `json:"cover_image,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Device struct {
	ID                   uuid.UUID  `json:"id"`
	UserID               uuid.UUID  `json:"uid"`
	Name                 string     `json:"name"`
	Type                 string     `json:"type"`
	Model                string     `json:"model"`
	SerialNumber         string     `json:"serial_number"`
	IsConnected          bool       `json:"is_connected"`
	Battery              int        `json:"battery"`
	NotificationsEnabled bool       `json:"notifications_enabled"`
	AutoSyncEnabled      bool       `json:"auto_sync_enabled"`
	LastSyncAt           *time.Time `json:"last_sync_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}
