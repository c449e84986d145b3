package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/service"
	"github.com/limbo/momentum/pkg/httputil"
)

func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get profile error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	profile, err := s.profileService.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrProfileNotFound) {
			logger.Error("get profile error: unexist profile")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "profile doesn't exist", nil)
			return
		}
		logger.Error("get profile error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to fetch profile", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, profile)
}

func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update profile error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req service.UpdateProfileRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update profile error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	profile, err := s.profileService.Update(ctx, uid, &req)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("update profile error: invalid fields", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid profile fields", err)
		case errors.Is(err, errorvalues.ErrProfileNotFound):
			logger.Error("update profile error: unexist profile")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "profile doesn't exist", nil)
		default:
			logger.Error("update profile error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to update profile", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, profile)
	logger.Info("profile updated")
}

func (s *Server) UpdateMe(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update user error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req service.UpdateUserRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update user error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.UpdateInfo(ctx, uid, &req)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("update user error: invalid fields", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid user fields", err)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("update user error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		default:
			logger.Error("update user error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to update user", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, user)
	logger.Info("user info updated")
}
