package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/ecomdemo/shop-service/internal/user"
)

type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AuthHandler handles registration and login. Session management is the
// caller's concern: the response carries the user identity, nothing more.
type AuthHandler struct {
	service  user.Service
	validate *validator.Validate
}

func NewAuthHandler(service user.Service) *AuthHandler {
	return &AuthHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *AuthHandler) RegisterRoutes(router chi.Router) {
	router.Post("/auth/register", h.handleRegister)
	router.Post("/auth/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	registered, err := h.service.Register(r.Context(), payload.Username, payload.Password)
	if err != nil {
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to register user via service")

		clientMessage := "Failed to register user"
		if errors.Is(err, user.ErrDuplicateUser) {
			clientMessage = "User already exists"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusCreated, UserResponse{ID: registered.ID, Username: registered.Username})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	authenticated, err := h.service.Authenticate(r.Context(), payload.Username, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed to authenticate user via service")

		clientMessage := "Failed to log in"
		if errors.Is(err, user.ErrInvalidCredentials) {
			clientMessage = "Invalid username or password"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, UserResponse{ID: authenticated.ID, Username: authenticated.Username})
}

func (h *AuthHandler) decodeCredentials(w http.ResponseWriter, r *http.Request) (CredentialsRequest, bool) {
	var payload CredentialsRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&payload); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return payload, false
	}

	if err := h.validate.Struct(payload); err != nil {
		respondWithValidationErrors(w, err)
		return payload, false
	}

	return payload, true
}
