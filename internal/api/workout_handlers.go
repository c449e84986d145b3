package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/service"
	"github.com/limbo/momentum/pkg/entity"
	"github.com/limbo/momentum/pkg/httputil"
)

func (s *Server) GetWorkouts(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get workouts error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var filter entity.WorkoutFilter
	if category := r.URL.Query().Get("category"); category != "" {
		filter.Category = &category
	}
	if level := r.URL.Query().Get("level"); level != "" {
		filter.Level = &level
	}
	if isCompleted := r.URL.Query().Get("isCompleted"); isCompleted != "" {
		completed, err := strconv.ParseBool(isCompleted)
		if err != nil {
			logger.Error("get workouts error: invalid isCompleted query param")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "isCompleted must be a boolean", nil)
			return
		}
		filter.IsCompleted = &completed
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	workouts, err := s.workoutService.List(ctx, uid, filter)
	if err != nil {
		logger.Error("getting workouts list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to fetch workouts", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, workouts)
}

func (s *Server) GetWorkout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get workout error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error("get workout error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid workout id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	workout, err := s.workoutService.Get(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrWorkoutNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("get workout error: unexist workout")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "workout doesn't exist", nil)
		default:
			logger.Error("get workout error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to fetch workout", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, workout)
}

func (s *Server) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create workout error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req service.CreateWorkoutRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create workout error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	workout, err := s.workoutService.Create(ctx, uid, &req)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("create workout error: invalid fields", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid workout fields", err)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("create workout error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't create workout: user doesn't exists", nil)
		default:
			logger.Error("create workout error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to create workout", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, workout)
	logger.Info("workout created")
}

func (s *Server) CompleteWorkout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("complete workout error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error("complete workout error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid workout id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	workout, err := s.workoutService.Complete(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrWorkoutNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("complete workout error: unexist workout")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "workout doesn't exist", nil)
		default:
			logger.Error("complete workout error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to complete workout", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, workout)
	logger.Info("workout completed")
}

func (s *Server) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("workout deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error("workout deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid workout id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.workoutService.Delete(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrWorkoutNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("workout deletion error: unexist workout")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "workout doesn't exist", nil)
		default:
			logger.Error("workout deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to delete workout", nil)
		}
		return
	}
	httputil.WriteMessageResponse(w, http.StatusOK, "workout deleted successfully")
	logger.Info("workout deleted")
}
