package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/pkg/entity"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo repository.UsersRepositoryI
}

func NewUserService(usersRepo repository.UsersRepositoryI) *UserService {
	if usersRepo == nil {
		log.Fatal("provided nil usersRepo")
	}
	return &UserService{
		repo: usersRepo,
	}
}

func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (us *UserService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	passwordHash, err := Hash(req.Password)
	if err != nil {
		return nil, errors.New("hashing password error: " + err.Error())
	}
	user, err := us.repo.Create(ctx, &entity.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserExists) {
			return nil, err
		}
		return nil, errors.New("repository creating error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := us.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errorvalues.ErrWrongCredentials
	}
	return user, nil
}

func (us *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) UpdateInfo(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*entity.User, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	user, err := us.repo.UpdateInfo(ctx, id, &entity.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Avatar:    req.Avatar,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository updating error: " + err.Error())
	}
	return user, nil
}
