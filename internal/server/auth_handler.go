package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

// Auth response messages
const (
	MsgSignupOK           = "signup successfully"
	MsgSigninOK           = "signin successfully"
	MsgInvalidCredentials = "email is invalid or password is wrong"
	MsgEmailExists        = "email already exists"
	MsgPasswordUpdated    = "password updated successfully"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
}

// NewAuthHandler creates a new AuthHandler. A nil userService makes every
// route answer 503, which is how the server runs without a database.
func NewAuthHandler(userService *UserService, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

func (h *AuthHandler) available(w http.ResponseWriter) bool {
	if h.userService == nil || h.jwtService == nil {
		authFailure(w, http.StatusServiceUnavailable, ErrAuthUnavailable.Error(), "")
		return false
	}
	return true
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	var req types.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		authFailure(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		authFailure(w, http.StatusBadRequest, validationMessage(err), "validation_failed")
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		var exists *ErrEmailAlreadyExists
		if errors.As(err, &exists) {
			authFailure(w, http.StatusConflict, MsgEmailExists, "email_exists")
			return
		}
		log.Printf("[auth] signup failed: %v", err)
		authFailure(w, HTTPStatus(err), "Internal server error", "")
		return
	}

	h.issueToken(w, http.StatusCreated, MsgSignupOK, user)
}

// Signin handles POST /api/auth/signin.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	var req types.SigninRequest
	if err := decodeJSON(w, r, &req); err != nil {
		authFailure(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		authFailure(w, http.StatusBadRequest, validationMessage(err), "validation_failed")
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		var bad *ErrInvalidCredentials
		if errors.As(err, &bad) {
			authFailure(w, http.StatusUnauthorized, MsgInvalidCredentials, "invalid_credentials")
			return
		}
		log.Printf("[auth] signin failed: %v", err)
		authFailure(w, HTTPStatus(err), "Internal server error", "")
		return
	}

	h.issueToken(w, http.StatusOK, MsgSigninOK, user)
}

// Me handles GET /api/auth/me. The route is behind AuthMiddleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	userID, err := middleware.GetUserID(r)
	if err != nil {
		authFailure(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		authFailure(w, HTTPStatus(err), PublicMessage(err), "")
		return
	}
	writeJSON(w, http.StatusOK, types.AuthResponse{Success: true, Message: "ok", User: user})
}

// UpdatePassword handles PUT /api/auth/password. The route is behind AuthMiddleware.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	userID, err := middleware.GetUserID(r)
	if err != nil {
		authFailure(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	var req types.UpdatePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		authFailure(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		authFailure(w, http.StatusBadRequest, validationMessage(err), "validation_failed")
		return
	}

	if err := h.userService.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		authFailure(w, HTTPStatus(err), PublicMessage(err), "")
		return
	}
	writeJSON(w, http.StatusOK, types.AuthResponse{Success: true, Message: MsgPasswordUpdated})
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, status int, message string, user *types.User) {
	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		log.Printf("[auth] token generation failed: %v", err)
		authFailure(w, http.StatusInternalServerError, "Failed to generate token", "")
		return
	}
	writeJSON(w, status, types.AuthResponse{
		Success: true,
		Message: message,
		Token:   token,
		User:    user,
	})
}

func authFailure(w http.ResponseWriter, status int, message, detail string) {
	writeJSON(w, status, types.AuthResponse{Success: false, Message: message, Error: detail})
}

// validationMessage turns the first validator failure into a sentence.
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "validation error: invalid request"
	}
	fe := errs[0]
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
