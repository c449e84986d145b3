package entity

// Patch types carry partial updates. A nil field means "leave unchanged";
// handlers never fill a field the client didn't send.

type UserPatch struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Avatar    *string `json:"avatar"`
}

type ProfilePatch struct {
	Height        *float64 `json:"height"`
	Weight        *float64 `json:"weight"`
	Age           *int     `json:"age"`
	Gender        *string  `json:"gender"`
	DailyStepGoal *int     `json:"daily_step_goal"`
	CalorieGoal   *int     `json:"calorie_goal"`
}

type ActivityPatch struct {
	Steps         *int     `json:"steps"`
	Calories      *int     `json:"calories"`
	Distance      *float64 `json:"distance"`
	ActiveMinutes *int     `json:"active_minutes"`
	HeartRate     *int     `json:"heart_rate"`
}

type DevicePatch struct {
	Name                 *string `json:"name"`
	IsConnected          *bool   `json:"is_connected"`
	Battery              *int    `json:"battery"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
	AutoSyncEnabled      *bool   `json:"auto_sync_enabled"`
}

// WorkoutFilter narrows workout listings. Nil fields don't filter.
type WorkoutFilter struct {
	Category    *string
	Level       *string
	IsCompleted *bool
}
