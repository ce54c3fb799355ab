package product_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio-admin/internal/i18n"
	"studio-admin/internal/listing"
	"studio-admin/internal/logger"
	"studio-admin/internal/models"
	"studio-admin/internal/products"
)

type Handler struct {
	Service *products.Service
	Logger  *logger.Logger
}

func NewHandler(service *products.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		// The dashboard fetches a single product at /product/{id}; the
		// shorter path is kept as an alias.
		r.Get("/product/{productId}", h.Get)
		r.Get("/{productId}", h.Get)
		r.Get("/category/{categoryId}", h.ListByCategory)
		r.Post("/", h.Create)
		r.Put("/{productId}", h.Update)
		r.Delete("/{productId}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := listing.FromRequest(r)

	page, err := h.Service.ListPage(r.Context(), params)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListProducts: %v", err))
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	msgs := i18n.T(i18n.FromRequest(r))

	product, err := h.Service.Get(r.Context(), productID)
	if err != nil {
		writeMessage(w, http.StatusNotFound, msgs.NotFound)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")

	rows, err := h.Service.ListByCategory(r.Context(), categoryID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListProductsByCategory: %v", err))
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	msgs := i18n.T(i18n.FromRequest(r))

	var in models.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, msgs.InvalidBody)
		return
	}

	product, err := h.Service.Create(r.Context(), in)
	if err != nil {
		h.writeValidationError(w, r, "CreateProduct", err)
		return
	}
	h.Logger.Info("API", fmt.Sprintf("CreateProduct: created %s", product.ID))

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": msgs.ProductCreated,
		"product": product,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	msgs := i18n.T(i18n.FromRequest(r))

	var in models.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, msgs.InvalidBody)
		return
	}

	product, err := h.Service.Update(r.Context(), productID, in)
	if err != nil {
		h.writeValidationError(w, r, "UpdateProduct", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": msgs.ProductUpdated,
		"product": product,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	msgs := i18n.T(i18n.FromRequest(r))

	if err := h.Service.Delete(r.Context(), productID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("DeleteProduct: %v", err))
		writeMessage(w, http.StatusInternalServerError, msgs.ProductDeleteFailed)
		return
	}
	writeMessage(w, http.StatusOK, msgs.ProductDeleted)
}

func (h *Handler) writeValidationError(w http.ResponseWriter, r *http.Request, op string, err error) {
	msgs := i18n.T(i18n.FromRequest(r))
	switch {
	case errors.Is(err, products.ErrFieldsRequired):
		writeMessage(w, http.StatusBadRequest, msgs.AllFieldsRequired)
	case errors.Is(err, products.ErrCategoryNotFound):
		writeMessage(w, http.StatusBadRequest, msgs.CategoryNotFound)
	default:
		h.Logger.Error("API", fmt.Sprintf("%s: %v", op, err))
		writeMessage(w, http.StatusInternalServerError, msgs.ProductSaveFailed)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
