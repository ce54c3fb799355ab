package order_api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-admin/internal/auth"
	"studio-admin/internal/listing"
	"studio-admin/internal/logger"
	"studio-admin/internal/models"
	"studio-admin/internal/orders"
	"studio-admin/internal/orders/order_api"
	"studio-admin/internal/orders/qr"
)

// fakeOrderDB simulates the db layer with an in-memory map.
type fakeOrderDB struct {
	orders map[string]*models.Order
}

func newFakeOrderDB() *fakeOrderDB {
	return &fakeOrderDB{orders: make(map[string]*models.Order)}
}

func (f *fakeOrderDB) ListOrders(ctx context.Context, params listing.Params) ([]models.Order, int, float64, error) {
	var rows []models.Order
	var revenue float64
	for _, o := range f.orders {
		rows = append(rows, *o)
		if !o.IsCanceled {
			revenue += o.Price
		}
	}
	return rows, len(rows), revenue, nil
}

func (f *fakeOrderDB) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s not found", id)
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderDB) UpdateOrderFlags(ctx context.Context, order models.Order) error {
	f.orders[order.ID] = &order
	return nil
}

// fakeLock grants or denies every acquire.
type fakeLock struct {
	busy bool
}

func (f *fakeLock) Acquire(ctx context.Context, orderID string) (bool, error) {
	return !f.busy, nil
}

func (f *fakeLock) Release(ctx context.Context, orderID string) error { return nil }

type noopPublisher struct{}

func (noopPublisher) PublishOrderCompleted(models.Order) error { return nil }
func (noopPublisher) PublishOrderCanceled(models.Order) error  { return nil }

type noopRefunder struct{}

func (noopRefunder) RefundDownPayment(context.Context, models.Order) error { return nil }

func setupRouter(db *fakeOrderDB, lock *fakeLock) chi.Router {
	svc := orders.NewService(db, lock, noopPublisher{}, noopRefunder{})
	h := order_api.NewHandler(svc, qr.NewQRGenerator("test-secret"), logger.NewLogger())

	r := chi.NewRouter()
	// Stand-in for the OIDC middleware
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), "admin-1")))
		})
	})
	h.RegisterRoutes(r)
	return r
}

func TestListOrdersEndpoint(t *testing.T) {
	db := newFakeOrderDB()
	db.orders["o1"] = &models.Order{ID: "o1", Price: 100, IsPaid: true}
	db.orders["o2"] = &models.Order{ID: "o2", Price: 50, IsCanceled: true}
	router := setupRouter(db, &fakeLock{})

	req := httptest.NewRequest(http.MethodGet, "/orders?pageNumber=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var page models.OrderPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.Pages)
	assert.Equal(t, 100.0, page.TotalRevenue)
	for _, o := range page.Orders {
		assert.NotEmpty(t, o.Status)
	}
}

func TestCompleteOrderEndpoint(t *testing.T) {
	db := newFakeOrderDB()
	db.orders["o1"] = &models.Order{ID: "o1", Price: 100, IsPaid: true}
	router := setupRouter(db, &fakeLock{})

	req := httptest.NewRequest(http.MethodPut, "/orders/o1/complete", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message string       `json:"message"`
		Order   models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Order marked as completed", body.Message)
	assert.True(t, body.Order.IsCompleted)
	assert.Equal(t, "admin-1", body.Order.CompletedBy)
	assert.Equal(t, orders.StatusCompleted, body.Order.Status)

	// Persisted, not just echoed
	stored := db.orders["o1"]
	assert.True(t, stored.IsCompleted)
}

func TestCompleteOrderLocalizedMessage(t *testing.T) {
	db := newFakeOrderDB()
	db.orders["o1"] = &models.Order{ID: "o1"}
	router := setupRouter(db, &fakeLock{})

	req := httptest.NewRequest(http.MethodPut, "/orders/o1/complete?lang=ar", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	var msg string
	require.NoError(t, json.Unmarshal(body["message"], &msg))
	assert.NotEqual(t, "Order marked as completed", msg)
	assert.NotEmpty(t, msg)
}

func TestCompleteFinalOrderConflict(t *testing.T) {
	db := newFakeOrderDB()
	db.orders["o1"] = &models.Order{ID: "o1", IsCanceled: true}
	router := setupRouter(db, &fakeLock{})

	req := httptest.NewRequest(http.MethodPut, "/orders/o1/complete", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, db.orders["o1"].IsCompleted)
}

func TestCancelWhileActionInFlight(t *testing.T) {
	db := newFakeOrderDB()
	db.orders["o1"] = &models.Order{ID: "o1"}
	router := setupRouter(db, &fakeLock{busy: true})

	req := httptest.NewRequest(http.MethodPut, "/orders/o1/cancel", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, db.orders["o1"].IsCanceled)
}

func TestGetOrderNotFound(t *testing.T) {
	router := setupRouter(newFakeOrderDB(), &fakeLock{})

	req := httptest.NewRequest(http.MethodGet, "/orders/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckInCodeEndpoint(t *testing.T) {
	db := newFakeOrderDB()
	db.orders["o1"] = &models.Order{ID: "o1", User: models.OrderUser{Name: "Sara"}}
	router := setupRouter(db, &fakeLock{})

	req := httptest.NewRequest(http.MethodGet, "/orders/o1/checkin-code", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}
