package order_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio-admin/internal/auth"
	"studio-admin/internal/i18n"
	"studio-admin/internal/listing"
	"studio-admin/internal/logger"
	"studio-admin/internal/orders"
	"studio-admin/internal/orders/qr"
)

type Handler struct {
	Service *orders.Service
	QR      *qr.QRGenerator
	Logger  *logger.Logger
}

func NewHandler(service *orders.Service, qrGen *qr.QRGenerator, log *logger.Logger) *Handler {
	return &Handler{Service: service, QR: qrGen, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{orderId}", h.Get)
		r.Get("/{orderId}/checkin-code", h.CheckInCode)
		r.Put("/{orderId}/complete", h.Complete)
		r.Put("/{orderId}/cancel", h.Cancel)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := listing.FromRequest(r)

	page, err := h.Service.List(r.Context(), params)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListOrders: %v", err))
		http.Error(w, "Failed to load orders", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	msgs := i18n.T(i18n.FromRequest(r))

	order, err := h.Service.Get(r.Context(), orderID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetOrder: order not found: %v", err))
		writeMessage(w, http.StatusNotFound, msgs.NotFound)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	msgs := i18n.T(i18n.FromRequest(r))
	actorID := auth.UserID(r.Context())
	h.Logger.LogOrder("COMPLETE", orderID, fmt.Sprintf("requested by %s", actorID))

	order, err := h.Service.MarkCompleted(r.Context(), orderID, actorID)
	if err != nil {
		h.writeTransitionError(w, r, "CompleteOrder", orderID, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": msgs.OrderCompleted,
		"order":   order,
	})
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	msgs := i18n.T(i18n.FromRequest(r))
	actorID := auth.UserID(r.Context())
	h.Logger.LogOrder("CANCEL", orderID, fmt.Sprintf("requested by %s", actorID))

	order, err := h.Service.MarkCanceled(r.Context(), orderID, actorID)
	if err != nil {
		h.writeTransitionError(w, r, "CancelOrder", orderID, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": msgs.OrderCanceled,
		"order":   order,
	})
}

// CheckInCode renders the encrypted check-in QR for the door scanner.
func (h *Handler) CheckInCode(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	msgs := i18n.T(i18n.FromRequest(r))

	order, err := h.Service.Get(r.Context(), orderID)
	if err != nil {
		writeMessage(w, http.StatusNotFound, msgs.NotFound)
		return
	}

	png, err := h.QR.GenerateCheckInCode(*order)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CheckInCode: %v", err))
		http.Error(w, "Failed to generate check-in code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *Handler) writeTransitionError(w http.ResponseWriter, r *http.Request, op, orderID string, err error) {
	msgs := i18n.T(i18n.FromRequest(r))
	switch {
	case errors.Is(err, orders.ErrAlreadyFinal):
		writeMessage(w, http.StatusConflict, msgs.OrderAlreadyFinal)
	case errors.Is(err, orders.ErrActionInFlight):
		writeMessage(w, http.StatusConflict, msgs.OrderActionInFlight)
	default:
		h.Logger.Error("API", fmt.Sprintf("%s: %s: %v", op, orderID, err))
		writeMessage(w, http.StatusInternalServerError, msgs.OrderUpdateFailed)
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
