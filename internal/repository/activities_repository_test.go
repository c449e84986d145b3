package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

var activityColumns = []string{
	"id", "user_id", "activity_date", "steps", "calories", "distance",
	"active_minutes", "heart_rate", "created_at", "updated_at",
}

func activityRow(a *entity.Activity) *pgxmock.Rows {
	return pgxmock.NewRows(activityColumns).AddRow(
		a.ID, a.UserID, a.Date, a.Steps, a.Calories, a.Distance,
		a.ActiveMinutes, a.HeartRate, a.CreatedAt, a.UpdatedAt,
	)
}

func TestGetOrCreateActivity(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewActivitiesRepoWithConn(conn)
	uid := uuid.New()
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	activity := entity.Activity{
		ID:        uuid.New(),
		UserID:    uid,
		Date:      day,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	query := regexp.QuoteMeta(`INSERT INTO activities (user_id, activity_date) VALUES ($1, $2)`)
	t.Run("created or found", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(uid, day).WillReturnRows(activityRow(&activity))
		result, err := repo.GetOrCreate(ctx, uid, day)
		assert.NoError(t, err)
		assert.Equal(t, activity, *result)
	})
	t.Run("idempotent second read", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(uid, day).WillReturnRows(activityRow(&activity))
		conn.ExpectQuery(query).WithArgs(uid, day).WillReturnRows(activityRow(&activity))
		first, err := repo.GetOrCreate(ctx, uid, day)
		assert.NoError(t, err)
		second, err := repo.GetOrCreate(ctx, uid, day)
		assert.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(uid, day).WillReturnError(errors.New("db error"))
		_, err := repo.GetOrCreate(ctx, uid, day)
		assert.Error(t, err)
	})
}

func TestUpsertActivity(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewActivitiesRepoWithConn(conn)
	uid := uuid.New()
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	steps := 4200
	activity := entity.Activity{
		ID:     uuid.New(),
		UserID: uid,
		Date:   day,
		Steps:  steps,
	}
	query := regexp.QuoteMeta(`INSERT INTO activities (user_id, activity_date, steps, calories, distance, active_minutes, heart_rate)`)
	t.Run("merges provided fields", func(t *testing.T) {
		patch := entity.ActivityPatch{Steps: &steps}
		conn.ExpectQuery(query).
			WithArgs(uid, day, &steps, (*int)(nil), (*float64)(nil), (*int)(nil), (*int)(nil)).
			WillReturnRows(activityRow(&activity))
		result, err := repo.Upsert(ctx, uid, day, &patch)
		assert.NoError(t, err)
		assert.Equal(t, steps, result.Steps)
	})
	t.Run("empty patch sends only nils", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid, day, (*int)(nil), (*int)(nil), (*float64)(nil), (*int)(nil), (*int)(nil)).
			WillReturnRows(activityRow(&activity))
		_, err := repo.Upsert(ctx, uid, day, &entity.ActivityPatch{})
		assert.NoError(t, err)
	})
	t.Run("nil patch", func(t *testing.T) {
		_, err := repo.Upsert(ctx, uid, day, nil)
		assert.Error(t, err)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid, day, (*int)(nil), (*int)(nil), (*float64)(nil), (*int)(nil), (*int)(nil)).
			WillReturnError(errors.New("db error"))
		_, err := repo.Upsert(ctx, uid, day, &entity.ActivityPatch{})
		assert.Error(t, err)
	})
}

func TestAddActivityDeltas(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewActivitiesRepoWithConn(conn)
	uid := uuid.New()
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	activity := entity.Activity{
		ID:            uuid.New(),
		UserID:        uid,
		Date:          day,
		Calories:      300,
		ActiveMinutes: 45,
	}
	query := regexp.QuoteMeta(`INSERT INTO activities (user_id, activity_date, calories, active_minutes)`)
	t.Run("applies increments", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(uid, day, 300, 45).WillReturnRows(activityRow(&activity))
		result, err := repo.AddDeltas(ctx, uid, day, 300, 45)
		assert.NoError(t, err)
		assert.Equal(t, 300, result.Calories)
		assert.Equal(t, 45, result.ActiveMinutes)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(uid, day, 300, 45).WillReturnError(errors.New("db error"))
		_, err := repo.AddDeltas(ctx, uid, day, 300, 45)
		assert.Error(t, err)
	})
}

func TestGetActivitiesByDateRange(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewActivitiesRepoWithConn(conn)
	uid := uuid.New()
	to := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -6)
	query := regexp.QuoteMeta(`FROM activities
		WHERE user_id = $1 AND activity_date >= $2 AND activity_date <= $3 ORDER BY activity_date ASC;`)
	t.Run("rows provided", func(t *testing.T) {
		first := entity.Activity{ID: uuid.New(), UserID: uid, Date: from, Steps: 100}
		second := entity.Activity{ID: uuid.New(), UserID: uid, Date: to, Steps: 200}
		rows := pgxmock.NewRows(activityColumns).
			AddRow(first.ID, first.UserID, first.Date, first.Steps, first.Calories, first.Distance,
				first.ActiveMinutes, first.HeartRate, first.CreatedAt, first.UpdatedAt).
			AddRow(second.ID, second.UserID, second.Date, second.Steps, second.Calories, second.Distance,
				second.ActiveMinutes, second.HeartRate, second.CreatedAt, second.UpdatedAt)
		conn.ExpectQuery(query).WithArgs(uid, from, to).WillReturnRows(rows)
		result, err := repo.GetByDateRange(ctx, uid, from, to)
		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, first.ID, result[0].ID)
	})
	t.Run("no rows", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(uid, from, to).WillReturnRows(pgxmock.NewRows(activityColumns))
		result, err := repo.GetByDateRange(ctx, uid, from, to)
		assert.NoError(t, err)
		assert.Empty(t, result)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(uid, from, to).WillReturnError(errors.New("db error"))
		_, err := repo.GetByDateRange(ctx, uid, from, to)
		assert.Error(t, err)
	})
}

func TestAggregateActivitiesSince(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewActivitiesRepoWithConn(conn)
	uid := uuid.New()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(`COUNT(*)
		FROM activities WHERE user_id = $1 AND activity_date >= $2;`)
	statsColumns := []string{"sum_steps", "sum_calories", "sum_distance", "sum_minutes", "count"}
	t.Run("sums provided", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(uid, from).
			WillReturnRows(pgxmock.NewRows(statsColumns).AddRow(12000, 800, 9.5, 120, 3))
		stats, err := repo.AggregateSince(ctx, uid, from)
		assert.NoError(t, err)
		assert.Equal(t, 12000, stats.TotalSteps)
		assert.Equal(t, 3, stats.DaysActive)
	})
	t.Run("zero rows keep zero totals", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(uid, from).
			WillReturnRows(pgxmock.NewRows(statsColumns).AddRow(0, 0, 0.0, 0, 0))
		stats, err := repo.AggregateSince(ctx, uid, from)
		assert.NoError(t, err)
		assert.Zero(t, stats.TotalSteps)
		assert.Zero(t, stats.DaysActive)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).WithArgs(uid, from).WillReturnError(errors.New("db error"))
		_, err := repo.AggregateSince(ctx, uid, from)
		assert.Error(t, err)
	})
}
