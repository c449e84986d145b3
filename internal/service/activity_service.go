package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/pkg/entity"
)

const defaultStatsWindowDays = 30

type ActivityService struct {
	repo repository.ActivitiesRepositoryI
	now  func() time.Time
}

func NewActivityService(activitiesRepo repository.ActivitiesRepositoryI) *ActivityService {
	if activitiesRepo == nil {
		log.Fatal("provided nil activitiesRepo")
	}
	return &ActivityService{
		repo: activitiesRepo,
		now:  time.Now,
	}
}

// startOfDay truncates to the local calendar day, the key of an activity row.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (as *ActivityService) Today(ctx context.Context, uid uuid.UUID) (*entity.Activity, error) {
	activity, err := as.repo.GetOrCreate(ctx, uid, startOfDay(as.now()))
	if err != nil {
		return nil, errors.New("activities repository error: " + err.Error())
	}
	return activity, nil
}

func (as *ActivityService) UpdateToday(ctx context.Context, uid uuid.UUID, req *UpdateActivityRequest) (*entity.Activity, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	activity, err := as.repo.Upsert(ctx, uid, startOfDay(as.now()), &entity.ActivityPatch{
		Steps:         req.Steps,
		Calories:      req.Calories,
		Distance:      req.Distance,
		ActiveMinutes: req.ActiveMinutes,
		HeartRate:     req.HeartRate,
	})
	if err != nil {
		return nil, errors.New("activities repository error: " + err.Error())
	}
	return activity, nil
}

func (as *ActivityService) Weekly(ctx context.Context, uid uuid.UUID) ([]*entity.Activity, error) {
	today := startOfDay(as.now())
	from := today.AddDate(0, 0, -6)
	activities, err := as.repo.GetByDateRange(ctx, uid, from, today)
	if err != nil {
		return nil, errors.New("activities repository error: " + err.Error())
	}
	return activities, nil
}

// Stats sums the trailing window. Average steps is divided by the number of
// rows actually present, not by the window length, and is 0 with no rows.
func (as *ActivityService) Stats(ctx context.Context, uid uuid.UUID, windowDays int) (*entity.ActivityStats, error) {
	if windowDays < 1 {
		windowDays = defaultStatsWindowDays
	}
	from := startOfDay(as.now()).AddDate(0, 0, -(windowDays - 1))
	stats, err := as.repo.AggregateSince(ctx, uid, from)
	if err != nil {
		return nil, errors.New("activities repository error: " + err.Error())
	}
	if stats.DaysActive > 0 {
		stats.AverageSteps = (stats.TotalSteps + stats.DaysActive/2) / stats.DaysActive
	}
	return stats, nil
}

func (as *ActivityService) ApplyWorkoutCompletion(ctx context.Context, uid uuid.UUID, calories, minutes int) (*entity.Activity, error) {
	activity, err := as.repo.AddDeltas(ctx, uid, startOfDay(as.now()), calories, minutes)
	if err != nil {
		return nil, errors.New("activities repository error: " + err.Error())
	}
	return activity, nil
}
