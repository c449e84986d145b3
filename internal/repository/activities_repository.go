package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/limbo/momentum/pkg/cleanup"
	"github.com/limbo/momentum/pkg/entity"
)

type ActivitiesRepository struct {
	conn PgConnection
}

func NewActivitiesRepo(cfg DBConfig) *ActivitiesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for activitiesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for activitiesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &ActivitiesRepository{
		conn: pool,
	}
}

func NewActivitiesRepoWithConn(conn PgConnection) *ActivitiesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for activitiesRepo: " + err.Error())
	}
	return &ActivitiesRepository{
		conn: conn,
	}
}

const activityColumns = `id, user_id, activity_date, steps, calories, distance, active_minutes, heart_rate, created_at, updated_at`

// The no-op DO UPDATE makes the existing row visible to RETURNING, so both
// branches of the upsert come back in one round trip.
const queryGetOrCreateActivity = `INSERT INTO activities (user_id, activity_date) VALUES ($1, $2)
	ON CONFLICT (user_id, activity_date) DO UPDATE SET user_id = activities.user_id
	RETURNING ` + activityColumns + `;`

const queryUpsertActivity = `INSERT INTO activities (user_id, activity_date, steps, calories, distance, active_minutes, heart_rate)
	VALUES ($1, $2, COALESCE($3::int, 0), COALESCE($4::int, 0), COALESCE($5::double precision, 0), COALESCE($6::int, 0), $7::int)
	ON CONFLICT (user_id, activity_date) DO UPDATE SET
		steps = COALESCE($3::int, activities.steps),
		calories = COALESCE($4::int, activities.calories),
		distance = COALESCE($5::double precision, activities.distance),
		active_minutes = COALESCE($6::int, activities.active_minutes),
		heart_rate = COALESCE($7::int, activities.heart_rate),
		updated_at = NOW()
	RETURNING ` + activityColumns + `;`

const queryAddActivityDeltas = `INSERT INTO activities (user_id, activity_date, calories, active_minutes)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id, activity_date) DO UPDATE SET
		calories = activities.calories + EXCLUDED.calories,
		active_minutes = activities.active_minutes + EXCLUDED.active_minutes,
		updated_at = NOW()
	RETURNING ` + activityColumns + `;`

func scanActivity(row pgx.Row) (*entity.Activity, error) {
	var activity entity.Activity
	err := row.Scan(
		&activity.ID,
		&activity.UserID,
		&activity.Date,
		&activity.Steps,
		&activity.Calories,
		&activity.Distance,
		&activity.ActiveMinutes,
		&activity.HeartRate,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (ar *ActivitiesRepository) GetOrCreate(ctx context.Context, uid uuid.UUID, day time.Time) (*entity.Activity, error) {
	row := ar.conn.QueryRow(ctx, queryGetOrCreateActivity, uid, day)
	activity, err := scanActivity(row)
	if err != nil {
		return nil, errors.New("get or create activity error: " + err.Error())
	}
	return activity, nil
}

func (ar *ActivitiesRepository) Upsert(ctx context.Context, uid uuid.UUID, day time.Time, patch *entity.ActivityPatch) (*entity.Activity, error) {
	if patch == nil {
		return nil, errors.New("patch is nil")
	}
	row := ar.conn.QueryRow(ctx, queryUpsertActivity,
		uid,
		day,
		patch.Steps,
		patch.Calories,
		patch.Distance,
		patch.ActiveMinutes,
		patch.HeartRate,
	)
	activity, err := scanActivity(row)
	if err != nil {
		return nil, errors.New("upserting activity error: " + err.Error())
	}
	return activity, nil
}

func (ar *ActivitiesRepository) AddDeltas(ctx context.Context, uid uuid.UUID, day time.Time, calories, minutes int) (*entity.Activity, error) {
	row := ar.conn.QueryRow(ctx, queryAddActivityDeltas, uid, day, calories, minutes)
	activity, err := scanActivity(row)
	if err != nil {
		return nil, errors.New("incrementing activity error: " + err.Error())
	}
	return activity, nil
}

func (ar *ActivitiesRepository) GetByDateRange(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]*entity.Activity, error) {
	rows, err := ar.conn.Query(ctx, `SELECT `+activityColumns+` FROM activities
		WHERE user_id = $1 AND activity_date >= $2 AND activity_date <= $3 ORDER BY activity_date ASC;`,
		uid, from, to,
	)
	if err != nil {
		return nil, errors.New("getting activities by date range error: " + err.Error())
	}
	defer rows.Close()
	activities := make([]*entity.Activity, 0)
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, errors.New("activity row parsing error: " + err.Error())
		}
		activities = append(activities, activity)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected activity rows error: " + rows.Err().Error())
	}
	return activities, nil
}

func (ar *ActivitiesRepository) AggregateSince(ctx context.Context, uid uuid.UUID, from time.Time) (*entity.ActivityStats, error) {
	row := ar.conn.QueryRow(ctx, `SELECT
		COALESCE(SUM(steps), 0),
		COALESCE(SUM(calories), 0),
		COALESCE(SUM(distance), 0),
		COALESCE(SUM(active_minutes), 0),
		COUNT(*)
		FROM activities WHERE user_id = $1 AND activity_date >= $2;`,
		uid, from,
	)
	var stats entity.ActivityStats
	err := row.Scan(
		&stats.TotalSteps,
		&stats.TotalCalories,
		&stats.TotalDistance,
		&stats.TotalActiveMinutes,
		&stats.DaysActive,
	)
	if err != nil {
		return nil, errors.New("aggregating activities error: " + err.Error())
	}
	return &stats, nil
}
