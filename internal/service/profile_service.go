package service

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/pkg/entity"
)

type ProfileService struct {
	repo repository.ProfilesRepositoryI
}

func NewProfileService(profilesRepo repository.ProfilesRepositoryI) *ProfileService {
	if profilesRepo == nil {
		log.Fatal("provided nil profilesRepo")
	}
	return &ProfileService{
		repo: profilesRepo,
	}
}

func (ps *ProfileService) Get(ctx context.Context, uid uuid.UUID) (*entity.Profile, error) {
	profile, err := ps.repo.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrProfileNotFound) {
			return nil, err
		}
		return nil, errors.New("profiles repository error: " + err.Error())
	}
	return profile, nil
}

// Update merges the provided fields. BMI is derived server-side and only when
// both height and weight arrive in the same call; changing either one alone
// leaves the stored BMI as is.
func (ps *ProfileService) Update(ctx context.Context, uid uuid.UUID, req *UpdateProfileRequest) (*entity.Profile, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	var bmi *float64
	if req.Height != nil && req.Weight != nil {
		value := ComputeBMI(*req.Height, *req.Weight)
		bmi = &value
	}
	profile, err := ps.repo.Update(ctx, uid, &entity.ProfilePatch{
		Height:        req.Height,
		Weight:        req.Weight,
		Age:           req.Age,
		Gender:        req.Gender,
		DailyStepGoal: req.DailyStepGoal,
		CalorieGoal:   req.CalorieGoal,
	}, bmi)
	if err != nil {
		if errors.Is(err, errorvalues.ErrProfileNotFound) {
			return nil, err
		}
		return nil, errors.New("profiles repository error: " + err.Error())
	}
	return profile, nil
}

// ComputeBMI takes height in centimeters and weight in kilograms, rounded to
// one decimal place.
func ComputeBMI(heightCm, weightKg float64) float64 {
	heightM := heightCm / 100
	return math.Round(weightKg/(heightM*heightM)*10) / 10
}
