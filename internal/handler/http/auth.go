package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/vacay-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	RegisterAdmin(w http.ResponseWriter, r *http.Request)
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{authService: authService}
}

// RegisterAdmin implements AuthHandler.
func (a *AuthHandlerImpl) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterAdminRequest
	if !decodeJSON(w, r, &req, "RegisterAdmin") {
		return
	}

	tokenResponse, err := a.authService.RegisterAdmin(r.Context(), req)
	if err != nil {
		slog.Warn("RegisterAdmin service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Company registered successfully", tokenResponse)
}

// Register implements AuthHandler.
func (a *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if !decodeJSON(w, r, &req, "Register") {
		return
	}

	tokenResponse, err := a.authService.Register(r.Context(), req)
	if err != nil {
		slog.Warn("Register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User registered successfully", tokenResponse)
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if !decodeJSON(w, r, &req, "Login") {
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), req)
	if err != nil {
		slog.Warn("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User logged in successfully", tokenResponse)
}
