package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/service"
	"github.com/limbo/momentum/pkg/httputil"
)

func (s *Server) GetTodayActivity(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get today activity error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	activity, err := s.activityService.Today(ctx, uid)
	if err != nil {
		logger.Error("get today activity error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to fetch activity", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, activity)
}

func (s *Server) UpdateTodayActivity(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update activity error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req service.UpdateActivityRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update activity error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	activity, err := s.activityService.UpdateToday(ctx, uid, &req)
	if err != nil {
		if errors.Is(err, errorvalues.ErrValidation) {
			logger.Error("update activity error: invalid fields", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid activity fields", err)
			return
		}
		logger.Error("update activity error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to update activity", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, activity)
	logger.Info("activity updated")
}

func (s *Server) GetWeeklyActivity(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get weekly activity error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	activities, err := s.activityService.Weekly(ctx, uid)
	if err != nil {
		logger.Error("get weekly activity error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to fetch weekly activity", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, activities)
}

func (s *Server) GetActivityStats(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get activity stats error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days < 1 || days > 365 {
		days = 30
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	stats, err := s.activityService.Stats(ctx, uid, days)
	if err != nil {
		logger.Error("get activity stats error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to fetch activity stats", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, stats)
}
