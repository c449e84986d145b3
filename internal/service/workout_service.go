package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/pkg/entity"
)

type WorkoutService struct {
	repo repository.WorkoutsRepositoryI
	now  func() time.Time
}

func NewWorkoutService(workoutsRepo repository.WorkoutsRepositoryI) *WorkoutService {
	if workoutsRepo == nil {
		log.Fatal("provided nil workoutsRepo")
	}
	return &WorkoutService{
		repo: workoutsRepo,
		now:  time.Now,
	}
}

func (ws *WorkoutService) Create(ctx context.Context, uid uuid.UUID, req *CreateWorkoutRequest) (*entity.Workout, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	id, err := ws.repo.Create(ctx, &entity.Workout{
		UserID:      uid,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Level:       req.Level,
		Duration:    req.Duration,
		Calories:    req.Calories,
		CoverImage:  req.CoverImage,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("workouts repository error: " + err.Error())
	}
	workout, err := ws.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrWorkoutNotFound) {
			return nil, err
		}
		return nil, errors.New("workouts repository error: " + err.Error())
	}
	return workout, nil
}

func (ws *WorkoutService) Get(ctx context.Context, workoutID, uid uuid.UUID) (*entity.Workout, error) {
	workout, err := ws.repo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrWorkoutNotFound) {
			return nil, err
		}
		return nil, errors.New("workouts repository error: " + err.Error())
	}
	if workout.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	return workout, nil
}

func (ws *WorkoutService) List(ctx context.Context, uid uuid.UUID, filter entity.WorkoutFilter) ([]*entity.Workout, error) {
	workouts, err := ws.repo.GetByUserID(ctx, uid, filter)
	if err != nil {
		return nil, errors.New("workouts repository error: " + err.Error())
	}
	return workouts, nil
}

// Complete transitions the workout to its terminal completed state and credits
// today's activity with the workout's calories and duration. Completing an
// already completed workout credits the activity again.
func (ws *WorkoutService) Complete(ctx context.Context, workoutID, uid uuid.UUID) (*entity.Workout, error) {
	workout, err := ws.repo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrWorkoutNotFound) {
			return nil, err
		}
		return nil, errors.New("workouts repository error: " + err.Error())
	}
	if workout.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	completed, err := ws.repo.Complete(ctx, workoutID, uid, startOfDay(ws.now()))
	if err != nil {
		if errors.Is(err, errorvalues.ErrWorkoutNotFound) {
			return nil, err
		}
		return nil, errors.New("workouts repository error: " + err.Error())
	}
	return completed, nil
}

// Delete removes the workout row only. Activity credited by an earlier
// completion is kept.
func (ws *WorkoutService) Delete(ctx context.Context, workoutID, uid uuid.UUID) error {
	workout, err := ws.repo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrWorkoutNotFound) {
			return err
		}
		return errors.New("workouts repository error: " + err.Error())
	}
	if workout.UserID != uid {
		return errorvalues.ErrWrongOwner
	}
	err = ws.repo.Delete(ctx, workoutID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrWorkoutNotFound) {
			return err
		}
		return errors.New("workouts repository error: " + err.Error())
	}
	return nil
}
