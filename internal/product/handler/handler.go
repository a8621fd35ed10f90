// Package handler provides HTTP handlers for product-related operations.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/catalog/internal/platform/web"
	producterrors "github.com/abgdnv/catalog/internal/product/errors"
	"github.com/abgdnv/catalog/internal/product/model"
	"github.com/abgdnv/catalog/internal/product/service"
	"github.com/go-chi/chi/v5"
)

const (
	basePath       = "/api/v1/products"
	jsonMediaType  = "application/json"
	maxRequestBody = 1 << 20
)

type Handler struct {
	service service.ProductService
	logger  *slog.Logger
}

// NewHandler creates a new Handler with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the product catalog.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route(basePath, func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Read)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// List returns all products, or the products matching one of the query
// parameters name, category, available or price, checked in that order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var (
		list []model.Product
		err  error
	)
	switch {
	case query.Has("name"):
		name := query.Get("name")
		h.logger.DebugContext(ctx, "Received request to find products by name", "name", name)
		list, err = h.service.FindByName(ctx, name)
	case query.Has("category"):
		value := query.Get("category")
		category, ok := model.ParseCategory(value)
		if !ok {
			h.logger.WarnContext(ctx, "Unknown category requested", "category", value)
			web.RespondError(w, h.logger, http.StatusBadRequest, fmt.Sprintf("Invalid attribute: %s", value))
			return
		}
		h.logger.DebugContext(ctx, "Received request to find products by category", "category", category)
		list, err = h.service.FindByCategory(ctx, category)
	case query.Has("available"):
		available, ok := web.ParseBool(w, r, h.logger, "available")
		if !ok {
			return
		}
		h.logger.DebugContext(ctx, "Received request to find products by availability", "available", available)
		list, err = h.service.FindByAvailability(ctx, available)
	case query.Has("price"):
		price := query.Get("price")
		h.logger.DebugContext(ctx, "Received request to find products by price", "price", price)
		list, err = h.service.FindByPrice(ctx, price)
	default:
		h.logger.DebugContext(ctx, "Received request to list all products")
		list, err = h.service.All(ctx)
	}
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to fetch products")
		return
	}
	if list == nil {
		list = []model.Product{}
	}
	h.logger.DebugContext(ctx, "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// Create adds a product from a JSON mapping of its fields.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.RequireContentType(w, r, h.logger, jsonMediaType) {
		return
	}
	data, ok := h.decodeBody(w, r)
	if !ok {
		return
	}

	var product model.Product
	if err := product.Deserialize(data); err != nil {
		h.respondServiceError(w, r, err, "Failed to create product")
		return
	}
	h.logger.DebugContext(ctx, "Received request to create product", "product", product.String())
	if err := h.service.Create(ctx, &product); err != nil {
		h.respondServiceError(w, r, err, "Failed to create product")
		return
	}

	h.logger.InfoContext(ctx, "Product created successfully", "ID", *product.ID, "Name", product.Name)
	w.Header().Set("Location", fmt.Sprintf("%s/%d", basePath, *product.ID))
	web.RespondJSON(w, h.logger, http.StatusCreated, product)
}

// Read retrieves a product by its ID.
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	h.logger.DebugContext(ctx, "Received request to find product by ID", "ID", id)
	found, err := h.service.Find(ctx, id)
	if err != nil {
		h.respondServiceError(w, r, err, fmt.Sprintf("Failed to retrieve product with ID %d", id))
		return
	}
	h.logger.DebugContext(ctx, "Successfully retrieved product", "ID", id, "Name", found.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

// Update replaces every field of an existing product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	if !web.RequireContentType(w, r, h.logger, jsonMediaType) {
		return
	}
	data, ok := h.decodeBody(w, r)
	if !ok {
		return
	}

	h.logger.DebugContext(ctx, "Received request to update product", "ID", id)
	product, err := h.service.Find(ctx, id)
	if err != nil {
		h.respondServiceError(w, r, err, fmt.Sprintf("Failed to update product with ID %d", id))
		return
	}
	if err := product.Deserialize(data); err != nil {
		h.respondServiceError(w, r, err, fmt.Sprintf("Failed to update product with ID %d", id))
		return
	}
	if err := h.service.Update(ctx, product); err != nil {
		h.respondServiceError(w, r, err, fmt.Sprintf("Failed to update product with ID %d", id))
		return
	}
	h.logger.InfoContext(ctx, "Product updated successfully", "ID", id, "Name", product.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, product)
}

// Delete removes a product by its ID. Deleting an absent product succeeds.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	h.logger.DebugContext(ctx, "Received request to delete product", "ID", id)
	err := h.service.DeleteByID(ctx, id)
	switch {
	case errors.Is(err, producterrors.ErrProductNotFound):
		h.logger.DebugContext(ctx, "Product already absent", "ID", id)
	case err != nil:
		h.respondServiceError(w, r, err, fmt.Sprintf("Failed to delete product with ID %d", id))
		return
	default:
		h.logger.InfoContext(ctx, "Product deleted successfully", "ID", id)
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "OK"})
}

// decodeBody reads a JSON object keeping numbers as json.Number so that prices are not
// converted through float64.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	decoder.UseNumber()
	var data map[string]any
	if err := decoder.Decode(&data); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid product: body of request contained bad or no data")
		return nil, false
	}
	return data, true
}

// respondServiceError maps validation errors to 400, missing products to 404 and anything else to 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, failure string) {
	ctx := r.Context()
	var validationErr *model.DataValidationError
	switch {
	case errors.As(err, &validationErr):
		h.logger.WarnContext(ctx, "Validation failed", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, producterrors.ErrProductNotFound):
		h.logger.WarnContext(ctx, "Product not found", "path", r.URL.Path)
		web.RespondError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Product with id '%s' was not found", r.PathValue("id")))
	default:
		h.logger.ErrorContext(ctx, failure, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, failure)
	}
}
