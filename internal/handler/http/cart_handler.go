package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/ecomdemo/shop-service/internal/cart"
	"github.com/ecomdemo/shop-service/internal/product"
)

type AddCartItemRequest struct {
	ProductName string `json:"product_name" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
}

type CartResponse struct {
	Items map[string]cart.Line `json:"items"`
}

type CartHandler struct {
	carts    *cart.Registry
	catalog  product.Service
	validate *validator.Validate
}

func NewCartHandler(carts *cart.Registry, catalog product.Service) *CartHandler {
	return &CartHandler{
		carts:    carts,
		catalog:  catalog,
		validate: validator.New(),
	}
}

func (h *CartHandler) RegisterRoutes(router chi.Router) {
	router.Get("/users/{userID}/cart", h.handleViewCart)
	router.Post("/users/{userID}/cart/items", h.handleAddItem)
	router.Delete("/users/{userID}/cart/items/{name}", h.handleRemoveItem)
}

func (h *CartHandler) handleViewCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	respondWithJSON(w, http.StatusOK, CartResponse{Items: h.carts.ForUser(userID).Items()})
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var payload AddCartItemRequest

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

	p, err := h.catalog.GetByName(r.Context(), payload.ProductName)
	if err != nil {
		clientMessage := "Failed to add item to cart"
		if errors.Is(err, product.ErrProductNotFound) {
			clientMessage = "Product not found"
		} else {
			log.Error().Err(err).Str("product_name", payload.ProductName).Msg("Failed to look up product for cart")
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	if err := h.carts.ForUser(userID).AddItem(*p, payload.Quantity); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, CartResponse{Items: h.carts.ForUser(userID).Items()})
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	name := chi.URLParam(r, "name")
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "Product name is required")
		return
	}

	h.carts.ForUser(userID).RemoveItem(product.Product{Name: name})

	w.WriteHeader(http.StatusNoContent)
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idParam := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		log.Warn().Err(err).Str("user_id", idParam).Msg("Failed to parse userID parameter from URL")
		respondWithError(w, http.StatusBadRequest, "Invalid userID parameter")
		return 0, false
	}

	return userID, true
}
