package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/ecomdemo/shop-service/internal/product"
)

type AddProductRequest struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Category string  `json:"category" validate:"required"`
}

type CatalogHandler struct {
	service  product.Service
	validate *validator.Validate
}

func NewCatalogHandler(service product.Service) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *CatalogHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.handleListProducts)
	router.Post("/products", h.handleAddProduct)
	router.Get("/products/{name}", h.handleGetProduct)
}

func (h *CatalogHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var payload AddProductRequest

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

	p := product.Product{
		Name:     payload.Name,
		Price:    payload.Price,
		Category: payload.Category,
	}

	if err := h.service.Add(r.Context(), p); err != nil {
		log.Error().Err(err).Str("product_name", p.Name).Msg("Failed to add product via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to add product")
		return
	}

	respondWithJSON(w, http.StatusCreated, p)
}

func (h *CatalogHandler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "Product name is required")
		return
	}

	p, err := h.service.GetByName(r.Context(), name)
	if err != nil {
		clientMessage := "Failed to get product"
		if errors.Is(err, product.ErrProductNotFound) {
			clientMessage = "Product not found"
		} else {
			log.Error().Err(err).Str("product_name", name).Msg("Failed to get product via service")
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}
