package handlers

import (
	"Vibes/internal/config"
	"Vibes/internal/middleware"
	"Vibes/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// AuthHandler обрабатывает вход по e-mail + OTP.
type AuthHandler struct {
	AuthService *service.AuthService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewAuthHandler создаёт хендлер аутентификации
func NewAuthHandler(authService *service.AuthService, logger *zap.SugaredLogger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{AuthService: authService, Logger: logger, Config: cfg}
}

type otpRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type verifyResponse struct {
	Token  string `json:"token"`
	AuthID string `json:"auth_id"`
}

// RequestOTP выдаёт одноразовый код для e-mail.
func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !strings.Contains(req.Email, "@") {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.AuthService.RequestOTP(r.Context(), req.Email); err != nil {
		h.Logger.Errorw("RequestOTP failed", "email", req.Email, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// VerifyOTP проверяет код, ставит auth cookie и возвращает токен.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Code == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	token, authID, err := h.AuthService.VerifyOTP(r.Context(), req.Email, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOTP) {
			http.Error(w, "invalid code", http.StatusUnauthorized)
			return
		}
		h.Logger.Errorw("VerifyOTP failed", "email", req.Email, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if err := middleware.SetAuthCookie(w, authID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("failed to set auth cookie", "error", err)
	}
	writeJSON(w, http.StatusOK, verifyResponse{Token: token, AuthID: authID})
}

type currentUserResponse struct {
	ID string `json:"id"`
}

// CurrentUser возвращает identity текущей сессии.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	authID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, currentUserResponse{ID: authID})
}
