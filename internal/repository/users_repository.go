package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/pkg/cleanup"
	"github.com/limbo/momentum/pkg/entity"
)

type UsersRepository struct {
	conn PgConnection
}

func NewUsersRepo(cfg DBConfig) *UsersRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for usersRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for usersRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &UsersRepository{
		conn: pool,
	}
}

func NewUsersRepoWithConn(conn PgConnection) *UsersRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for usersRepo: " + err.Error())
	}
	return &UsersRepository{
		conn: conn,
	}
}

const userColumns = `id, email, password_hash, first_name, last_name, avatar, is_premium, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Avatar,
		&user.IsPremium,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts the user row and its one-to-one profile row in a single
// transaction, so a user can never exist without a profile.
func (ur *UsersRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	tx, err := ur.conn.Begin(ctx)
	if err != nil {
		return nil, errors.New("starting registration tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	row := tx.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name) VALUES ($1, $2, $3, $4) RETURNING `+userColumns+`;`,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
	)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return nil, errorvalues.ErrUserExists
			}
		}
		return nil, errors.New("creating user db error: " + err.Error())
	}
	_, err = tx.Exec(ctx, `INSERT INTO profiles (user_id) VALUES ($1);`, created.ID)
	if err != nil {
		return nil, errors.New("creating profile db error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, errors.New("committing registration tx error: " + err.Error())
	}
	return created, nil
}

func (ur *UsersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := ur.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1;`, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user by email error: " + err.Error())
	}
	return user, nil
}

func (ur *UsersRepository) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	row := ur.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1;`, uid)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user by id error: " + err.Error())
	}
	return user, nil
}

func (ur *UsersRepository) UpdateInfo(ctx context.Context, uid uuid.UUID, patch *entity.UserPatch) (*entity.User, error) {
	if patch == nil {
		return nil, errors.New("patch is nil")
	}
	row := ur.conn.QueryRow(ctx, `UPDATE users SET
		first_name = COALESCE($2, first_name),
		last_name = COALESCE($3, last_name),
		avatar = COALESCE($4, avatar),
		updated_at = NOW()
		WHERE id = $1 RETURNING `+userColumns+`;`,
		uid,
		patch.FirstName,
		patch.LastName,
		patch.Avatar,
	)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("updating user error: " + err.Error())
	}
	return user, nil
}
