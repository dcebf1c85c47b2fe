package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jdavril/brocante/internal/models"
	"github.com/jdavril/brocante/internal/service"
)

// UserService defines the account operations required by the HTTP handlers.
type UserService interface {
	// Signup registers a new user and returns its public projection.
	Signup(ctx context.Context, in service.SignupInput) (*models.PublicUser, error)
	// Login verifies credentials and returns a welcome message.
	Login(ctx context.Context, email, password string) (string, error)
}

// UserHandler handles HTTP requests for signup and login.
type UserHandler struct {
	UserService UserService
}

// SignupRequest represents the JSON payload for user signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// Signup handles POST /user/signup.
// It decodes the JSON body, registers the user and responds with the
// public projection: id, token and account. Email, salt and hash are
// never part of the response.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.UserService.Signup(r.Context(), service.SignupInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// LoginRequest represents the JSON payload for user login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /user/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, message)
}
