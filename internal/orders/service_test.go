package orders_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"studio-admin/internal/listing"
	"studio-admin/internal/models"
	"studio-admin/internal/orders"
)

// Mock implementations
type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) ListOrders(ctx context.Context, params listing.Params) ([]models.Order, int, float64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, 0, args.Error(3)
	}
	return args.Get(0).([]models.Order), args.Int(1), args.Get(2).(float64), args.Error(3)
}

func (m *MockDBLayer) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockDBLayer) UpdateOrderFlags(ctx context.Context, order models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type MockActionLock struct {
	mock.Mock
}

func (m *MockActionLock) Acquire(ctx context.Context, orderID string) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockActionLock) Release(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderCompleted(order models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockPublisher) PublishOrderCanceled(order models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

type MockRefunder struct {
	mock.Mock
}

func (m *MockRefunder) RefundDownPayment(ctx context.Context, order models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func newTestService() (*orders.Service, *MockDBLayer, *MockActionLock, *MockPublisher, *MockRefunder) {
	mockDB := new(MockDBLayer)
	mockLock := new(MockActionLock)
	mockEvents := new(MockPublisher)
	mockRefund := new(MockRefunder)
	svc := orders.NewService(mockDB, mockLock, mockEvents, mockRefund)
	return svc, mockDB, mockLock, mockEvents, mockRefund
}

func TestListProjectsStatus(t *testing.T) {
	svc, mockDB, _, _, _ := newTestService()
	ctx := context.Background()

	rows := []models.Order{
		{ID: "o1", IsCanceled: true, IsCompleted: true},
		{ID: "o2", IsCompleted: true},
		{ID: "o3", IsPaid: true},
		{ID: "o4"},
	}
	params := listing.Params{Page: 1, Keyword: "ali"}
	mockDB.On("ListOrders", ctx, params).Return(rows, 14, 350.5, nil)

	page, err := svc.List(ctx, params)

	assert.NoError(t, err)
	assert.Equal(t, 2, page.Pages)
	assert.Equal(t, 14, page.Total)
	assert.Equal(t, 350.5, page.TotalRevenue)
	assert.Equal(t, orders.StatusCanceled, page.Orders[0].Status)
	assert.Equal(t, orders.StatusCompleted, page.Orders[1].Status)
	assert.Equal(t, orders.StatusPaid, page.Orders[2].Status)
	assert.Equal(t, orders.StatusProcessing, page.Orders[3].Status)
	mockDB.AssertExpectations(t)
}

func TestGetOrder(t *testing.T) {
	svc, mockDB, _, _, _ := newTestService()
	ctx := context.Background()

	testOrder := &models.Order{ID: uuid.New().String(), IsConfirmed: true}
	mockDB.On("GetOrderByID", ctx, testOrder.ID).Return(testOrder, nil)

	result, err := svc.Get(ctx, testOrder.ID)
	assert.NoError(t, err)
	assert.Equal(t, orders.StatusPaid, result.Status)

	mockDB.On("GetOrderByID", ctx, "non-existent").Return(nil, errors.New("order not found"))

	result, err = svc.Get(ctx, "non-existent")
	assert.Error(t, err)
	assert.Nil(t, result)

	mockDB.AssertExpectations(t)
}

func TestMarkCompleted(t *testing.T) {
	svc, mockDB, mockLock, mockEvents, _ := newTestService()
	ctx := context.Background()

	testOrder := &models.Order{ID: "o1", IsPaid: true, Price: 120}
	mockLock.On("Acquire", ctx, "o1").Return(true, nil)
	mockLock.On("Release", ctx, "o1").Return(nil)
	mockDB.On("GetOrderByID", ctx, "o1").Return(testOrder, nil)
	mockDB.On("UpdateOrderFlags", ctx, mock.MatchedBy(func(o models.Order) bool {
		return o.IsCompleted && o.CompletedBy == "admin-1"
	})).Return(nil)
	mockEvents.On("PublishOrderCompleted", mock.AnythingOfType("models.Order")).Return(nil)

	result, err := svc.MarkCompleted(ctx, "o1", "admin-1")

	assert.NoError(t, err)
	assert.True(t, result.IsCompleted)
	assert.Equal(t, "admin-1", result.CompletedBy)
	assert.Equal(t, orders.StatusCompleted, result.Status)
	mockDB.AssertExpectations(t)
	mockLock.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestMarkCompletedOnFinalOrderRejected(t *testing.T) {
	svc, mockDB, mockLock, _, _ := newTestService()
	ctx := context.Background()

	canceled := &models.Order{ID: "o2", IsCanceled: true}
	mockLock.On("Acquire", ctx, "o2").Return(true, nil)
	mockLock.On("Release", ctx, "o2").Return(nil)
	mockDB.On("GetOrderByID", ctx, "o2").Return(canceled, nil)

	result, err := svc.MarkCompleted(ctx, "o2", "admin-1")

	assert.ErrorIs(t, err, orders.ErrAlreadyFinal)
	assert.Nil(t, result)
	mockDB.AssertNotCalled(t, "UpdateOrderFlags", mock.Anything, mock.Anything)
	mockLock.AssertExpectations(t)
}

func TestMarkCompletedLockBusy(t *testing.T) {
	svc, mockDB, mockLock, _, _ := newTestService()
	ctx := context.Background()

	mockLock.On("Acquire", ctx, "o3").Return(false, nil)

	result, err := svc.MarkCompleted(ctx, "o3", "admin-1")

	assert.ErrorIs(t, err, orders.ErrActionInFlight)
	assert.Nil(t, result)
	mockDB.AssertNotCalled(t, "GetOrderByID", mock.Anything, mock.Anything)
	mockLock.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestMarkCanceledRefundsDownPayment(t *testing.T) {
	svc, mockDB, mockLock, mockEvents, mockRefund := newTestService()
	ctx := context.Background()

	paid := &models.Order{ID: "o4", IsPaid: true, DownPayment: 30, PaymentIntentID: "pi_123"}
	mockLock.On("Acquire", ctx, "o4").Return(true, nil)
	mockLock.On("Release", ctx, "o4").Return(nil)
	mockDB.On("GetOrderByID", ctx, "o4").Return(paid, nil)
	mockRefund.On("RefundDownPayment", ctx, mock.AnythingOfType("models.Order")).Return(nil)
	mockDB.On("UpdateOrderFlags", ctx, mock.MatchedBy(func(o models.Order) bool {
		return o.IsCanceled && o.CanceledBy == "admin-2"
	})).Return(nil)
	mockEvents.On("PublishOrderCanceled", mock.AnythingOfType("models.Order")).Return(nil)

	result, err := svc.MarkCanceled(ctx, "o4", "admin-2")

	assert.NoError(t, err)
	assert.True(t, result.IsCanceled)
	assert.Equal(t, orders.StatusCanceled, result.Status)
	mockRefund.AssertExpectations(t)
	mockDB.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestMarkCanceledRefundFailureAborts(t *testing.T) {
	svc, mockDB, mockLock, mockEvents, mockRefund := newTestService()
	ctx := context.Background()

	paid := &models.Order{ID: "o5", IsPaid: true, PaymentIntentID: "pi_456"}
	mockLock.On("Acquire", ctx, "o5").Return(true, nil)
	mockLock.On("Release", ctx, "o5").Return(nil)
	mockDB.On("GetOrderByID", ctx, "o5").Return(paid, nil)
	mockRefund.On("RefundDownPayment", ctx, mock.AnythingOfType("models.Order")).Return(errors.New("stripe unavailable"))

	result, err := svc.MarkCanceled(ctx, "o5", "admin-2")

	assert.Error(t, err)
	assert.Nil(t, result)
	mockDB.AssertNotCalled(t, "UpdateOrderFlags", mock.Anything, mock.Anything)
	mockEvents.AssertNotCalled(t, "PublishOrderCanceled", mock.Anything)
}

func TestMarkCanceledWithoutPaymentIntentSkipsRefund(t *testing.T) {
	svc, mockDB, mockLock, mockEvents, mockRefund := newTestService()
	ctx := context.Background()

	unpaid := &models.Order{ID: "o6"}
	mockLock.On("Acquire", ctx, "o6").Return(true, nil)
	mockLock.On("Release", ctx, "o6").Return(nil)
	mockDB.On("GetOrderByID", ctx, "o6").Return(unpaid, nil)
	mockDB.On("UpdateOrderFlags", ctx, mock.AnythingOfType("models.Order")).Return(nil)
	mockEvents.On("PublishOrderCanceled", mock.AnythingOfType("models.Order")).Return(nil)

	result, err := svc.MarkCanceled(ctx, "o6", "admin-2")

	assert.NoError(t, err)
	assert.True(t, result.IsCanceled)
	mockRefund.AssertNotCalled(t, "RefundDownPayment", mock.Anything, mock.Anything)
}
