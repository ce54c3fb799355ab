package orders

import (
	"context"
	"errors"
	"fmt"

	"studio-admin/internal/listing"
	"studio-admin/internal/logger"
	"studio-admin/internal/models"
)

var (
	// ErrAlreadyFinal guards the two terminal transitions: once an order
	// is completed or canceled, neither transition is permitted again.
	ErrAlreadyFinal = errors.New("order is already completed or canceled")
	// ErrActionInFlight means another transition for the same order holds
	// the action lock.
	ErrActionInFlight = errors.New("order action already in progress")
)

type DBLayer interface {
	ListOrders(ctx context.Context, params listing.Params) ([]models.Order, int, float64, error)
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	UpdateOrderFlags(ctx context.Context, order models.Order) error
}

// ActionLock serializes transitions per order id.
type ActionLock interface {
	Acquire(ctx context.Context, orderID string) (bool, error)
	Release(ctx context.Context, orderID string) error
}

type EventPublisher interface {
	PublishOrderCompleted(order models.Order) error
	PublishOrderCanceled(order models.Order) error
}

// Refunder returns the down payment of a canceled order. Implementations
// may be a no-op when payments are settled outside this service.
type Refunder interface {
	RefundDownPayment(ctx context.Context, order models.Order) error
}

type Service struct {
	DB     DBLayer
	Lock   ActionLock
	Events EventPublisher
	Refund Refunder
	Logger *logger.Logger
}

func NewService(db DBLayer, lock ActionLock, events EventPublisher, refund Refunder) *Service {
	return &Service{DB: db, Lock: lock, Events: events, Refund: refund, Logger: logger.NewLogger()}
}

// List returns one page of orders with the page count, total matching
// order count and the revenue aggregate. Status labels are projected onto
// the returned orders.
func (s *Service) List(ctx context.Context, params listing.Params) (*models.OrderPage, error) {
	rows, total, revenue, err := s.DB.ListOrders(ctx, params)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Status = StatusLabel(rows[i])
	}
	return &models.OrderPage{
		Orders:       rows,
		Pages:        listing.PageCount(total),
		Total:        total,
		TotalRevenue: revenue,
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.DB.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Status = StatusLabel(*order)
	return order, nil
}

// MarkCompleted runs the completed transition. actorID is the admin
// subject recorded on the order.
func (s *Service) MarkCompleted(ctx context.Context, id, actorID string) (*models.Order, error) {
	return s.transition(ctx, id, func(order *models.Order) {
		order.IsCompleted = true
		order.CompletedBy = actorID
	}, func(order models.Order) error {
		return s.Events.PublishOrderCompleted(order)
	})
}

// MarkCanceled runs the canceled transition and, when a down payment was
// captured through a payment intent, refunds it. A refund failure aborts
// the transition so the order never reads canceled while the customer was
// charged.
func (s *Service) MarkCanceled(ctx context.Context, id, actorID string) (*models.Order, error) {
	ok, err := s.Lock.Acquire(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("action lock: %w", err)
	}
	if !ok {
		return nil, ErrActionInFlight
	}
	defer func() { _ = s.Lock.Release(ctx, id) }()

	order, err := s.DB.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.IsCompleted || order.IsCanceled {
		return nil, ErrAlreadyFinal
	}

	if s.Refund != nil && order.PaymentIntentID != "" {
		if err := s.Refund.RefundDownPayment(ctx, *order); err != nil {
			return nil, fmt.Errorf("refund down payment: %w", err)
		}
	}

	order.IsCanceled = true
	order.CanceledBy = actorID
	if err := s.DB.UpdateOrderFlags(ctx, *order); err != nil {
		return nil, fmt.Errorf("failed to cancel order %s: %w", id, err)
	}

	if err := s.Events.PublishOrderCanceled(*order); err != nil {
		// Event delivery is best effort, the transition already happened.
		s.Logger.Error("KAFKA", fmt.Sprintf("Failed to publish cancel event for order %s: %v", id, err))
	}

	order.Status = StatusLabel(*order)
	return order, nil
}

// transition is the shared guard-then-mutate flow for terminal actions.
func (s *Service) transition(ctx context.Context, id string, apply func(*models.Order), publish func(models.Order) error) (*models.Order, error) {
	ok, err := s.Lock.Acquire(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("action lock: %w", err)
	}
	if !ok {
		return nil, ErrActionInFlight
	}
	defer func() { _ = s.Lock.Release(ctx, id) }()

	order, err := s.DB.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.IsCompleted || order.IsCanceled {
		return nil, ErrAlreadyFinal
	}

	apply(order)
	if err := s.DB.UpdateOrderFlags(ctx, *order); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}

	if err := publish(*order); err != nil {
		// Event delivery is best effort, the transition already happened.
		s.Logger.Error("KAFKA", fmt.Sprintf("Failed to publish transition event for order %s: %v", id, err))
	}

	order.Status = StatusLabel(*order)
	return order, nil
}
