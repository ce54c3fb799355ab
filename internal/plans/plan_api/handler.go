package plan_api

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
	"studio-admin/internal/plans"
)

type Handler struct {
	Service *plans.Service
	Logger  *logger.Logger
}

func NewHandler(service *plans.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/plans", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{planId}", h.Get)
		r.Get("/category/{categoryId}", h.ListByCategory)
		r.Post("/", h.Create)
		r.Put("/{planId}", h.Update)
		r.Delete("/{planId}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := listing.FromRequest(r)

	page, err := h.Service.ListPage(r.Context(), params)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListPlans: %v", err))
		http.Error(w, "Failed to load plans", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planId")
	msgs := i18n.T(i18n.FromRequest(r))

	plan, err := h.Service.Get(r.Context(), planID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetPlan: plan not found: %v", err))
		writeMessage(w, http.StatusNotFound, msgs.NotFound)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")

	rows, err := h.Service.ListByCategory(r.Context(), categoryID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListPlansByCategory: %v", err))
		http.Error(w, "Failed to load plans", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	msgs := i18n.T(i18n.FromRequest(r))

	var in models.PlanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, msgs.InvalidBody)
		return
	}

	plan, err := h.Service.Create(r.Context(), in)
	if err != nil {
		h.writeValidationError(w, r, "CreatePlan", err)
		return
	}
	h.Logger.Info("API", fmt.Sprintf("CreatePlan: created %s", plan.ID))

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": msgs.PlanCreated,
		"plan":    plan,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planId")
	msgs := i18n.T(i18n.FromRequest(r))

	var in models.PlanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, msgs.InvalidBody)
		return
	}

	plan, err := h.Service.Update(r.Context(), planID, in)
	if err != nil {
		h.writeValidationError(w, r, "UpdatePlan", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": msgs.PlanUpdated,
		"plan":    plan,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planId")
	msgs := i18n.T(i18n.FromRequest(r))

	if err := h.Service.Delete(r.Context(), planID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("DeletePlan: %v", err))
		writeMessage(w, http.StatusInternalServerError, msgs.PlanDeleteFailed)
		return
	}
	writeMessage(w, http.StatusOK, msgs.PlanDeleted)
}

func (h *Handler) writeValidationError(w http.ResponseWriter, r *http.Request, op string, err error) {
	msgs := i18n.T(i18n.FromRequest(r))
	switch {
	case errors.Is(err, plans.ErrFieldsRequired):
		writeMessage(w, http.StatusBadRequest, msgs.AllFieldsRequired)
	case errors.Is(err, plans.ErrInvalidDiscount):
		writeMessage(w, http.StatusBadRequest, msgs.InvalidDiscount)
	case errors.Is(err, plans.ErrCategoryNotFound):
		writeMessage(w, http.StatusBadRequest, msgs.CategoryNotFound)
	case errors.Is(err, plans.ErrNegativePrice),
		errors.Is(err, plans.ErrAddOnNameRequired),
		errors.Is(err, plans.ErrAddOnNegativePrice):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		h.Logger.Error("API", fmt.Sprintf("%s: %v", op, err))
		writeMessage(w, http.StatusInternalServerError, msgs.PlanSaveFailed)
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
