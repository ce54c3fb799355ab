package timeslot_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio-admin/internal/i18n"
	"studio-admin/internal/logger"
	"studio-admin/internal/models"
	"studio-admin/internal/timeslots"
)

type Handler struct {
	Service *timeslots.Service
	Logger  *logger.Logger
}

func NewHandler(service *timeslots.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/time", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{timeId}", h.Update)
		r.Delete("/{timeId}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.ListAll(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListTimeSlots: %v", err))
		http.Error(w, "Failed to load time slots", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	msgs := i18n.T(i18n.FromRequest(r))

	var in models.TimeSlotGroupInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, msgs.InvalidBody)
		return
	}

	group, err := h.Service.Create(r.Context(), in)
	if err != nil {
		h.writeValidationError(w, r, "CreateTimeSlots", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":   msgs.TimeSlotsSaved,
		"timeSlots": group,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	timeID := chi.URLParam(r, "timeId")
	msgs := i18n.T(i18n.FromRequest(r))

	var in models.TimeSlotGroupInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, msgs.InvalidBody)
		return
	}

	group, err := h.Service.Update(r.Context(), timeID, in)
	if err != nil {
		h.writeValidationError(w, r, "UpdateTimeSlots", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   msgs.TimeSlotsSaved,
		"timeSlots": group,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	timeID := chi.URLParam(r, "timeId")
	msgs := i18n.T(i18n.FromRequest(r))

	if err := h.Service.Delete(r.Context(), timeID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("DeleteTimeSlots: %v", err))
		writeMessage(w, http.StatusInternalServerError, msgs.TimeSlotsSaveFailed)
		return
	}
	writeMessage(w, http.StatusOK, msgs.TimeSlotsDeleted)
}

func (h *Handler) writeValidationError(w http.ResponseWriter, r *http.Request, op string, err error) {
	msgs := i18n.T(i18n.FromRequest(r))
	switch {
	case errors.Is(err, timeslots.ErrDateRequired),
		errors.Is(err, timeslots.ErrSlotsRequired),
		errors.Is(err, timeslots.ErrSlotIncomplete):
		writeMessage(w, http.StatusBadRequest, msgs.TimeSlotRequired)
	default:
		h.Logger.Error("API", fmt.Sprintf("%s: %v", op, err))
		writeMessage(w, http.StatusInternalServerError, msgs.TimeSlotsSaveFailed)
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
