package db

import (
	"context"
	"strings"

	"studio-admin/internal/listing"
	"studio-admin/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

// ListOrders returns one page of orders, newest first, with the total
// matching count and the revenue aggregate over the same filter. Revenue
// sums the full price of every matching non-canceled order.
func (d *DB) ListOrders(ctx context.Context, params listing.Params) ([]models.Order, int, float64, error) {
	rows := []models.Order{}
	q := d.Bun.NewSelect().
		Model(&rows).
		Relation("Plan")
	q = applyKeyword(q, params.Keyword)

	total, err := q.Order("orders.created_at DESC").
		Limit(listing.PageSize).
		Offset(params.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, 0, err
	}

	revenue, err := d.totalRevenue(ctx, params.Keyword)
	if err != nil {
		return nil, 0, 0, err
	}
	return rows, total, revenue, nil
}

func applyKeyword(q *bun.SelectQuery, keyword string) *bun.SelectQuery {
	if keyword == "" {
		return q
	}
	pattern := "%" + strings.ToLower(keyword) + "%"
	return q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			WhereOr("LOWER(orders.id) LIKE ?", pattern).
			WhereOr("LOWER(orders.user_name) LIKE ?", pattern).
			WhereOr("LOWER(orders.payment_method) LIKE ?", pattern)
	})
}

func (d *DB) totalRevenue(ctx context.Context, keyword string) (float64, error) {
	var revenue float64
	q := d.Bun.NewSelect().
		Model((*models.Order)(nil)).
		ColumnExpr("COALESCE(SUM(price), 0.0)").
		Where("is_canceled = ?", false)
	q = applyKeyword(q, keyword)
	err := q.Scan(ctx, &revenue)
	return revenue, err
}

func (d *DB) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := d.Bun.NewSelect().
		Model(&order).
		Relation("Plan").
		Where("orders.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderFlags persists the transition flags and actor columns. All
// other order fields belong to the booking flow and are never written
// from here.
func (d *DB) UpdateOrderFlags(ctx context.Context, order models.Order) error {
	_, err := d.Bun.NewUpdate().
		Model(&order).
		Column("is_canceled", "is_completed", "is_paid", "is_confirmed", "completed_by", "canceled_by").
		Where("id = ?", order.ID).
		Exec(ctx)
	return err
}
