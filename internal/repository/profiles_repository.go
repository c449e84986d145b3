package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/pkg/cleanup"
	"github.com/limbo/momentum/pkg/entity"
)

type ProfilesRepository struct {
	conn PgConnection
}

func NewProfilesRepo(cfg DBConfig) *ProfilesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for profilesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for profilesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &ProfilesRepository{
		conn: pool,
	}
}

func NewProfilesRepoWithConn(conn PgConnection) *ProfilesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for profilesRepo: " + err.Error())
	}
	return &ProfilesRepository{
		conn: conn,
	}
}

const profileColumns = `id, user_id, height, weight, age, gender, daily_step_goal, calorie_goal, bmi, updated_at`

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	var profile entity.Profile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Height,
		&profile.Weight,
		&profile.Age,
		&profile.Gender,
		&profile.DailyStepGoal,
		&profile.CalorieGoal,
		&profile.BMI,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (pr *ProfilesRepository) GetByUserID(ctx context.Context, uid uuid.UUID) (*entity.Profile, error) {
	row := pr.conn.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1;`, uid)
	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrProfileNotFound
		}
		return nil, errors.New("searching profile by uid error: " + err.Error())
	}
	return profile, nil
}

// Update merges only the non-nil patch fields. bmi is passed separately
// because the service derives it rather than taking it from the client.
func (pr *ProfilesRepository) Update(ctx context.Context, uid uuid.UUID, patch *entity.ProfilePatch, bmi *float64) (*entity.Profile, error) {
	if patch == nil {
		return nil, errors.New("patch is nil")
	}
	row := pr.conn.QueryRow(ctx, `UPDATE profiles SET
		height = COALESCE($2, height),
		weight = COALESCE($3, weight),
		age = COALESCE($4, age),
		gender = COALESCE($5, gender),
		daily_step_goal = COALESCE($6, daily_step_goal),
		calorie_goal = COALESCE($7, calorie_goal),
		bmi = COALESCE($8, bmi),
		updated_at = NOW()
		WHERE user_id = $1 RETURNING `+profileColumns+`;`,
		uid,
		patch.Height,
		patch.Weight,
		patch.Age,
		patch.Gender,
		patch.DailyStepGoal,
		patch.CalorieGoal,
		bmi,
	)
	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrProfileNotFound
		}
		return nil, errors.New("updating profile error: " + err.Error())
	}
	return profile, nil
}
