package category_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"studio-admin/internal/category"
	"studio-admin/internal/i18n"
	"studio-admin/internal/listing"
	"studio-admin/internal/logger"
	"studio-admin/internal/models"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Service *category.Service
	Logger  *logger.Logger
}

func NewHandler(service *category.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/category", func(r chi.Router) {
		r.Get("/", h.ListPage)
		r.Get("/all", h.ListAll)
		r.Get("/tree", h.Tree)
		r.Get("/options", h.Options)
		r.Post("/", h.Create)
		r.Put("/{categoryId}", h.Update)
		r.Delete("/{categoryId}", h.Delete)
	})
}

func (h *Handler) ListPage(w http.ResponseWriter, r *http.Request) {
	params := listing.FromRequest(r)
	rows, total, err := h.Service.ListPage(r.Context(), params)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListCategories: %v", err))
		http.Error(w, "Failed to load categories", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"categories": rows,
		"pages":      listing.PageCount(total),
		"total":      total,
	})
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.ListAll(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListAllCategories: %v", err))
		http.Error(w, "Failed to load categories", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) Tree(w http.ResponseWriter, r *http.Request) {
	forest, err := h.Service.Tree(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CategoryTree: %v", err))
		http.Error(w, "Failed to load category tree", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, forest)
}

func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	opts, err := h.Service.Options(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CategoryOptions: %v", err))
		http.Error(w, "Failed to load category options", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	msgs := i18n.T(i18n.FromRequest(r))

	var in models.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, msgs.InvalidBody)
		return
	}

	row, err := h.Service.Create(r.Context(), in)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateCategory: %v", err))
		writeMessage(w, http.StatusBadRequest, msgs.CategorySaveFailed)
		return
	}
	h.Logger.Info("API", fmt.Sprintf("CreateCategory: created %s", row.ID))
	writeJSON(w, http.StatusCreated, row)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryId")
	msgs := i18n.T(i18n.FromRequest(r))

	var in models.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, msgs.InvalidBody)
		return
	}

	row, err := h.Service.Update(r.Context(), id, in)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateCategory: %v", err))
		writeMessage(w, http.StatusBadRequest, msgs.CategorySaveFailed)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryId")
	msgs := i18n.T(i18n.FromRequest(r))

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.Logger.Error("API", fmt.Sprintf("DeleteCategory: %v", err))
		writeMessage(w, http.StatusInternalServerError, msgs.CategoryDeleteFailed)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
