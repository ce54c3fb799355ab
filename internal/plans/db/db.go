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

// ListPage returns one page of plans, newest first, with a keyword filter
// on the plan name.
func (d *DB) ListPage(ctx context.Context, params listing.Params) ([]models.Plan, int, error) {
	rows := []models.Plan{}
	q := d.Bun.NewSelect().
		Model(&rows).
		Relation("Category")
	if params.Keyword != "" {
		q = q.Where("LOWER(plans.name) LIKE ?", "%"+strings.ToLower(params.Keyword)+"%")
	}
	total, err := q.Order("plans.created_at DESC").
		Limit(listing.PageSize).
		Offset(params.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (d *DB) ListByCategory(ctx context.Context, categoryID string) ([]models.Plan, error) {
	rows := []models.Plan{}
	err := d.Bun.NewSelect().
		Model(&rows).
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (d *DB) GetByID(ctx context.Context, id string) (*models.Plan, error) {
	var plan models.Plan
	err := d.Bun.NewSelect().
		Model(&plan).
		Relation("Category").
		Where("plans.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (d *DB) Create(ctx context.Context, plan models.Plan) error {
	_, err := d.Bun.NewInsert().Model(&plan).Exec(ctx)
	return err
}

func (d *DB) Update(ctx context.Context, plan models.Plan) error {
	_, err := d.Bun.NewUpdate().
		Model(&plan).
		Column("name", "description", "duration", "price", "category_id",
			"features", "add_ons", "images", "is_featured", "published",
			"has_discount", "discount_by", "discounted_price").
		Where("id = ?", plan.ID).
		Exec(ctx)
	return err
}

func (d *DB) Delete(ctx context.Context, id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Plan)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
