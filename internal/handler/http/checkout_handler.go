package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/ecomdemo/shop-service/internal/checkout"
	"github.com/ecomdemo/shop-service/internal/user"
)

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

type CheckoutHandler struct {
	service  checkout.Service
	users    user.Service
	validate *validator.Validate
}

func NewCheckoutHandler(service checkout.Service, users user.Service) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		users:    users,
		validate: validator.New(),
	}
}

func (h *CheckoutHandler) RegisterRoutes(router chi.Router) {
	router.Post("/users/{userID}/checkout", h.handleCheckout)
	router.Get("/users/{userID}/orders", h.handleOrderHistory)
}

func (h *CheckoutHandler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var payload CheckoutRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&payload); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		respondWithValidationErrors(w, err)
		return
	}

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		clientMessage := "Failed to check out"
		if errors.Is(err, user.ErrUserNotFound) {
			clientMessage = "User not found"
		} else {
			log.Error().Err(err).Int64("user_id", userID).Msg("Failed to fetch user for checkout")
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	rec, err := h.service.Checkout(r.Context(), u, payload.PaymentMethod)
	if err != nil {
		var clientMessage string
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			clientMessage = "Cart is empty"
		case errors.Is(err, checkout.ErrPaymentDeclined):
			clientMessage = "Payment failed"
		default:
			log.Error().Err(err).Int64("user_id", userID).Msg("Failed to check out via service")
			clientMessage = "Failed to check out"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusCreated, rec)
}

func (h *CheckoutHandler) handleOrderHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	records, err := h.service.OrderHistory(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to fetch order history via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch order history")
		return
	}

	respondWithJSON(w, http.StatusOK, records)
}
