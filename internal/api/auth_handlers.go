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

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Register(ctx, &service.RegisterRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("registering error: invalid fields", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid registration fields", err)
		case errors.Is(err, errorvalues.ErrUserExists):
			logger.Error("registering error: existed user")
			httputil.WriteErrorResponse(w, http.StatusConflict, "user with such email already exists", nil)
		default:
			logger.Error("registering error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during registration", nil)
		}
		return
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("registering error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"token": token,
		"user":  user,
	})
	logger.Info("successful registration")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("login error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user with such email doesn't exist", nil)
			return
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("login error: wrong password")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "invalid email or password", nil)
			return
		default:
			logger.Error("login error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login", nil)
			return
		}
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
	logger.Info("successful login")
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get me error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Error("get me error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
			return
		}
		logger.Error("get me error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting user", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, user)
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).Seconds(),
	})
}
