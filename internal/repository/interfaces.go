package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/momentum/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user with an empty profile row in a single transaction
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	// Looks up user by email. Can be used for login
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Merges non-nil patch fields into user's info
	UpdateInfo(ctx context.Context, uid uuid.UUID, patch *entity.UserPatch) (*entity.User, error)
}

type ProfilesRepositoryI interface {
	// Searches profile owned by user with uid
	GetByUserID(ctx context.Context, uid uuid.UUID) (*entity.Profile, error)
	// Merges non-nil patch fields into profile. bmi is stored only when non-nil
	Update(ctx context.Context, uid uuid.UUID, patch *entity.ProfilePatch, bmi *float64) (*entity.Profile, error)
}

type ActivitiesRepositoryI interface {
	// Finds the row keyed by (uid, day), inserting a zeroed one if absent.
	// Single atomic upsert, so concurrent calls cannot double-insert
	GetOrCreate(ctx context.Context, uid uuid.UUID, day time.Time) (*entity.Activity, error)
	// Merges non-nil patch fields into the (uid, day) row, creating it with
	// zero defaults first if absent. Absent fields stay untouched on update
	Upsert(ctx context.Context, uid uuid.UUID, day time.Time, patch *entity.ActivityPatch) (*entity.Activity, error)
	// Adds calorie/minute deltas onto the (uid, day) row, creating it from
	// the deltas if absent
	AddDeltas(ctx context.Context, uid uuid.UUID, day time.Time, calories, minutes int) (*entity.Activity, error)
	// Provides rows for [from, to] ordered oldest to newest
	GetByDateRange(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]*entity.Activity, error)
	// Sums steps/calories/distance/minutes and counts rows from `from` onward
	AggregateSince(ctx context.Context, uid uuid.UUID, from time.Time) (*entity.ActivityStats, error)
}

type WorkoutsRepositoryI interface {
	// Creates new workout. Returns id of inserted row
	Create(ctx context.Context, workout *entity.Workout) (uuid.UUID, error)
	// Searches workout with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Workout, error)
	// Lists workouts owned by user with uid, newest first. Nil filter fields don't narrow
	GetByUserID(ctx context.Context, uid uuid.UUID, filter entity.WorkoutFilter) ([]*entity.Workout, error)
	// Marks workout completed and applies its calories/duration onto today's
	// activity row in one transaction
	Complete(ctx context.Context, id, uid uuid.UUID, day time.Time) (*entity.Workout, error)
	// Deletes workout with id
	Delete(ctx context.Context, id uuid.UUID) error
}

type DevicesRepositoryI interface {
	// Registers new device. Serial number is unique across all users
	Create(ctx context.Context, device *entity.Device) (*entity.Device, error)
	// Searches device with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Device, error)
	// Lists devices owned by user with uid, newest first
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Device, error)
	// Merges non-nil patch fields into device. Setting IsConnected true also
	// bumps last_sync_at
	Update(ctx context.Context, id uuid.UUID, patch *entity.DevicePatch) (*entity.Device, error)
	// Bumps device's last_sync_at
	Sync(ctx context.Context, id uuid.UUID) (*entity.Device, error)
	// Deletes device with id
	Delete(ctx context.Context, id uuid.UUID) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
