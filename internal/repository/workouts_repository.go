package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/pkg/cleanup"
	"github.com/limbo/momentum/pkg/entity"
)

type WorkoutsRepository struct {
	conn PgConnection
}

func NewWorkoutsRepo(cfg DBConfig) *WorkoutsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for workoutsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for workoutsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &WorkoutsRepository{
		conn: pool,
	}
}

func NewWorkoutsRepoWithConn(conn PgConnection) *WorkoutsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for workoutsRepo: " + err.Error())
	}
	return &WorkoutsRepository{
		conn: conn,
	}
}

const workoutColumns = `id, user_id, title, description, category, level, duration, calories, cover_image, is_completed, completed_at, created_at, updated_at`

func scanWorkout(row pgx.Row) (*entity.Workout, error) {
	var workout entity.Workout
	err := row.Scan(
		&workout.ID,
		&workout.UserID,
		&workout.Title,
		&workout.Description,
		&workout.Category,
		&workout.Level,
		&workout.Duration,
		&workout.Calories,
		&workout.CoverImage,
		&workout.IsCompleted,
		&workout.CompletedAt,
		&workout.CreatedAt,
		&workout.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (wr *WorkoutsRepository) Create(ctx context.Context, workout *entity.Workout) (uuid.UUID, error) {
	if workout == nil {
		return uuid.UUID{}, errors.New("workout is nil")
	}
	var id uuid.UUID
	row := wr.conn.QueryRow(ctx, `INSERT INTO workouts (user_id, title, description, category, level, duration, calories, cover_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id;`,
		workout.UserID,
		workout.Title,
		workout.Description,
		workout.Category,
		workout.Level,
		workout.Duration,
		workout.Calories,
		workout.CoverImage,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrOwnerNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating workout db error: " + err.Error())
	}
	return id, nil
}

func (wr *WorkoutsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Workout, error) {
	row := wr.conn.QueryRow(ctx, `SELECT `+workoutColumns+` FROM workouts WHERE id = $1;`, id)
	workout, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrWorkoutNotFound
		}
		return nil, errors.New("getting workout by id error: " + err.Error())
	}
	return workout, nil
}

func (wr *WorkoutsRepository) GetByUserID(ctx context.Context, uid uuid.UUID, filter entity.WorkoutFilter) ([]*entity.Workout, error) {
	rows, err := wr.conn.Query(ctx, `SELECT `+workoutColumns+` FROM workouts
		WHERE user_id = $1
		AND ($2::text IS NULL OR category = $2)
		AND ($3::text IS NULL OR level = $3)
		AND ($4::boolean IS NULL OR is_completed = $4)
		ORDER BY created_at DESC;`,
		uid,
		filter.Category,
		filter.Level,
		filter.IsCompleted,
	)
	if err != nil {
		return nil, errors.New("getting workouts by uid error: " + err.Error())
	}
	defer rows.Close()
	workouts := make([]*entity.Workout, 0)
	for rows.Next() {
		workout, err := scanWorkout(rows)
		if err != nil {
			return nil, errors.New("workout row parsing error: " + err.Error())
		}
		workouts = append(workouts, workout)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected workout rows error: " + rows.Err().Error())
	}
	return workouts, nil
}

// Complete marks the workout done and folds its calories/duration into the
// day's activity row. Both writes share one transaction, so a marked-complete
// workout with a lost activity increment cannot be observed.
func (wr *WorkoutsRepository) Complete(ctx context.Context, id, uid uuid.UUID, day time.Time) (*entity.Workout, error) {
	tx, err := wr.conn.Begin(ctx)
	if err != nil {
		return nil, errors.New("starting completion tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	row := tx.QueryRow(ctx, `UPDATE workouts SET is_completed = TRUE, completed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND user_id = $2 RETURNING `+workoutColumns+`;`,
		id, uid,
	)
	workout, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrWorkoutNotFound
		}
		return nil, errors.New("completing workout error: " + err.Error())
	}
	_, err = tx.Exec(ctx, queryAddActivityDeltas, uid, day, workout.Calories, workout.Duration)
	if err != nil {
		return nil, errors.New("applying workout deltas error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, errors.New("committing completion tx error: " + err.Error())
	}
	return workout, nil
}

func (wr *WorkoutsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := wr.conn.Exec(ctx, `DELETE FROM workouts WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting workout: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrWorkoutNotFound
	}
	return nil
}
