package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/nexgen/taskbuddy/internal/domain"
	"github.com/nexgen/taskbuddy/internal/infrastructure/json"
	"github.com/nexgen/taskbuddy/internal/infrastructure/security"
	"github.com/nexgen/taskbuddy/internal/presentation/utils"
)

type Handler struct {
	userRepository domain.UserRepository
	tokenManager   *security.TokenManager
}

func NewHandler(userRepository domain.UserRepository, tokenManager *security.TokenManager) *Handler {
	return &Handler{
		userRepository: userRepository,
		tokenManager:   tokenManager,
	}
}

// RegisterHandler godoc
// @Summary      Register a new account
// @Description  Creates a user account and starts a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body registerRequest true "Registration parameters"
// @Success      201 {object} authResponse "Account created"
// @Failure      400 {object} map[string]interface{} "Bad request - validation error"
// @Failure      409 {object} map[string]interface{} "Conflict - email already registered"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /auth/register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if len(req.Password) < 8 {
		json.WriteValidationError(w, errors.New("password must be at least 8 characters"))
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		json.WriteInternalError(w, err)
		return
	}

	user, err := domain.NewUser(req.Fullname, req.Email, hash)
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if err := h.userRepository.Create(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			json.WriteError(w, http.StatusConflict, err, "Email is already registered")
		default:
			log.Printf("Repository error creating user: %v", err)
			json.WriteInternalError(w, err)
		}
		return
	}

	token, err := h.tokenManager.Issue(user.ID, user.Fullname, user.Email)
	if err != nil {
		log.Printf("Failed to issue session token: %v", err)
		json.WriteInternalError(w, err)
		return
	}

	utils.SetSessionCookie(w, token)

	json.Write(w, http.StatusCreated, authResponse{
		User: userResponse{
			ID:       user.ID,
			Fullname: user.Fullname,
			Email:    user.Email,
		},
	})
}

// LoginHandler godoc
// @Summary      Log in
// @Description  Verifies credentials and starts a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Login credentials"
// @Success      200 {object} authResponse "Logged in"
// @Failure      400 {object} map[string]interface{} "Bad request - validation error"
// @Failure      401 {object} map[string]interface{} "Unauthorized - wrong credentials"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /auth/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	user, err := h.userRepository.GetByEmail(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			json.WriteError(w, http.StatusUnauthorized, err, "Invalid email or password")
		default:
			log.Printf("Repository error fetching user: %v", err)
			json.WriteInternalError(w, err)
		}
		return
	}

	if !security.ComparePassword(user.Password, req.Password) {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Invalid email or password")
		return
	}

	token, err := h.tokenManager.Issue(user.ID, user.Fullname, user.Email)
	if err != nil {
		log.Printf("Failed to issue session token: %v", err)
		json.WriteInternalError(w, err)
		return
	}

	utils.SetSessionCookie(w, token)

	json.Write(w, http.StatusOK, authResponse{
		User: userResponse{
			ID:       user.ID,
			Fullname: user.Fullname,
			Email:    user.Email,
		},
	})
}

// LogoutHandler godoc
// @Summary      Log out
// @Description  Clears the session cookie
// @Tags         auth
// @Produce      json
// @Success      204 "Logged out"
// @Router       /auth/logout [post]
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	utils.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// MeHandler godoc
// @Summary      Current user
// @Description  Returns the authenticated user's profile
// @Tags         auth
// @Produce      json
// @Success      200 {object} authResponse "Current user"
// @Failure      401 {object} map[string]interface{} "Unauthorized"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Security     SessionAuth
// @Router       /auth/me [get]
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims := utils.SessionFromContext(r.Context())
	if claims == nil {
		json.WriteError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Missing or invalid authentication")
		return
	}

	user, err := h.userRepository.GetByID(r.Context(), claims.Subject)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			json.WriteError(w, http.StatusUnauthorized, err, "Account no longer exists")
		default:
			log.Printf("Repository error fetching user: %v", err)
			json.WriteInternalError(w, err)
		}
		return
	}

	json.Write(w, http.StatusOK, authResponse{
		User: userResponse{
			ID:       user.ID,
			Fullname: user.Fullname,
			Email:    user.Email,
		},
	})
}
