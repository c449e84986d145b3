package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/service"
	"github.com/limbo/momentum/pkg/entity"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

type mockState int

const (
	stateSuccess = iota
	stateDBError
	stateNotFound
	stateConflict
	stateWrongOwner
	stateOwnerNotFound
)

// Variables for tests
var (
	userID       = uuid.New()
	userEmail    = "test@example.com"
	userPassword = "test_password"
	testUser     = entity.User{
		ID:        userID,
		Email:     userEmail,
		FirstName: "Test",
		LastName:  "User",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
)

type usersRepoMock struct {
	state   mockState
	created *entity.User
}

func (urmock *usersRepoMock) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	switch urmock.state {
	case stateConflict:
		return nil, errorvalues.ErrUserExists
	case stateDBError:
		return nil, errors.New("db error")
	default:
		urmock.created = user
		created := *user
		created.ID = userID
		return &created, nil
	}
}

func (urmock *usersRepoMock) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	switch urmock.state {
	case stateNotFound:
		return nil, errorvalues.ErrUserNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		hash, _ := bcrypt.GenerateFromPassword([]byte(userPassword), bcrypt.MinCost)
		user := testUser
		user.PasswordHash = string(hash)
		return &user, nil
	}
}

func (urmock *usersRepoMock) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	switch urmock.state {
	case stateNotFound:
		return nil, errorvalues.ErrUserNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		user := testUser
		return &user, nil
	}
}

func (urmock *usersRepoMock) UpdateInfo(ctx context.Context, uid uuid.UUID, patch *entity.UserPatch) (*entity.User, error) {
	switch urmock.state {
	case stateNotFound:
		return nil, errorvalues.ErrUserNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		user := testUser
		if patch.FirstName != nil {
			user.FirstName = *patch.FirstName
		}
		if patch.LastName != nil {
			user.LastName = *patch.LastName
		}
		if patch.Avatar != nil {
			user.Avatar = patch.Avatar
		}
		return &user, nil
	}
}

func TestRegister(t *testing.T) {
	mock := &usersRepoMock{state: stateSuccess}
	us := service.NewUserService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		user, err := us.Register(ctx, &service.RegisterRequest{
			Email:     userEmail,
			Password:  userPassword,
			FirstName: testUser.FirstName,
			LastName:  testUser.LastName,
		})
		assert.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, userEmail, user.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(mock.created.PasswordHash), []byte(userPassword)))
	})
	t.Run("invalid email", func(t *testing.T) {
		_, err := us.Register(ctx, &service.RegisterRequest{
			Email:     "not-an-email",
			Password:  userPassword,
			FirstName: testUser.FirstName,
			LastName:  testUser.LastName,
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("short password", func(t *testing.T) {
		_, err := us.Register(ctx, &service.RegisterRequest{
			Email:     userEmail,
			Password:  "abc",
			FirstName: testUser.FirstName,
			LastName:  testUser.LastName,
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("email taken", func(t *testing.T) {
		mock.state = stateConflict
		_, err := us.Register(ctx, &service.RegisterRequest{
			Email:     userEmail,
			Password:  userPassword,
			FirstName: testUser.FirstName,
			LastName:  testUser.LastName,
		})
		assert.ErrorIs(t, err, errorvalues.ErrUserExists)
	})
	t.Run("db error", func(t *testing.T) {
		mock.state = stateDBError
		_, err := us.Register(ctx, &service.RegisterRequest{
			Email:     userEmail,
			Password:  userPassword,
			FirstName: testUser.FirstName,
			LastName:  testUser.LastName,
		})
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	mock := &usersRepoMock{state: stateSuccess}
	us := service.NewUserService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		user, err := us.Login(ctx, userEmail, userPassword)
		assert.NoError(t, err)
		assert.Equal(t, userID, user.ID)
	})
	t.Run("wrong password", func(t *testing.T) {
		_, err := us.Login(ctx, userEmail, "wrong_password")
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("user not found", func(t *testing.T) {
		mock.state = stateNotFound
		_, err := us.Login(ctx, "other@example.com", userPassword)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.state = stateDBError
		_, err := us.Login(ctx, userEmail, userPassword)
		assert.Error(t, err)
	})
}

func TestGetUserByID(t *testing.T) {
	mock := &usersRepoMock{state: stateSuccess}
	us := service.NewUserService(mock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		user, err := us.GetByID(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, testUser, *user)
	})
	t.Run("not found", func(t *testing.T) {
		mock.state = stateNotFound
		_, err := us.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestUpdateUserInfo(t *testing.T) {
	mock := &usersRepoMock{state: stateSuccess}
	us := service.NewUserService(mock)
	ctx := context.Background()
	t.Run("merges provided fields", func(t *testing.T) {
		firstName := "Updated"
		user, err := us.UpdateInfo(ctx, userID, &service.UpdateUserRequest{
			FirstName: &firstName,
		})
		assert.NoError(t, err)
		assert.Equal(t, firstName, user.FirstName)
		assert.Equal(t, testUser.LastName, user.LastName)
	})
	t.Run("invalid avatar url", func(t *testing.T) {
		avatar := "not a url"
		_, err := us.UpdateInfo(ctx, userID, &service.UpdateUserRequest{
			Avatar: &avatar,
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("not found", func(t *testing.T) {
		mock.state = stateNotFound
		_, err := us.UpdateInfo(ctx, uuid.New(), &service.UpdateUserRequest{})
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}
