package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/service"
	"github.com/limbo/momentum/pkg/httputil"
)

func (s *Server) GetDevices(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get devices error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	devices, err := s.deviceService.List(ctx, uid)
	if err != nil {
		logger.Error("getting devices list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to fetch devices", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, devices)
}

func (s *Server) GetDevice(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get device error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error("get device error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid device id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	device, err := s.deviceService.Get(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrDeviceNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("get device error: unexist device")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "device doesn't exist", nil)
		default:
			logger.Error("get device error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to fetch device", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, device)
}

func (s *Server) AddDevice(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("add device error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req service.RegisterDeviceRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("add device error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	device, err := s.deviceService.Register(ctx, uid, &req)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("add device error: invalid fields", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid device fields", err)
		case errors.Is(err, errorvalues.ErrDeviceExists):
			logger.Error("add device error: serial number already registered")
			httputil.WriteErrorResponse(w, http.StatusConflict, "device already registered", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("add device error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't add device: user doesn't exists", nil)
		default:
			logger.Error("add device error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to add device", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, device)
	logger.Info("device registered")
}

func (s *Server) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update device error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error("update device error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid device id in path value", nil)
		return
	}
	var req service.UpdateDeviceRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update device error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	device, err := s.deviceService.Update(ctx, id, uid, &req)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("update device error: invalid fields", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid device fields", err)
		case errors.Is(err, errorvalues.ErrDeviceNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("update device error: unexist device")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "device doesn't exist", nil)
		default:
			logger.Error("update device error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to update device", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, device)
	logger.Info("device updated")
}

func (s *Server) SyncDevice(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("sync device error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error("sync device error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid device id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	device, err := s.deviceService.Sync(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrDeviceNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("sync device error: unexist device")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "device doesn't exist", nil)
		default:
			logger.Error("sync device error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to sync device", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"message": "device synced successfully",
		"device":  device,
	})
	logger.Info("device synced")
}

func (s *Server) DeleteDevice(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("device deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error("device deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid device id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.deviceService.Delete(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrDeviceNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("device deletion error: unexist device")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "device doesn't exist", nil)
		default:
			logger.Error("device deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "failed to remove device", nil)
		}
		return
	}
	httputil.WriteMessageResponse(w, http.StatusOK, "device removed successfully")
	logger.Info("device removed")
}
