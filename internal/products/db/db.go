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

// ListPage returns one page of products with a keyword filter on name.
func (d *DB) ListPage(ctx context.Context, params listing.Params) ([]models.Product, int, error) {
	rows := []models.Product{}
	q := d.Bun.NewSelect().
		Model(&rows).
		Relation("Category")
	if params.Keyword != "" {
		q = q.Where("LOWER(products.name) LIKE ?", "%"+strings.ToLower(params.Keyword)+"%")
	}
	total, err := q.Order("products.created_at DESC").
		Limit(listing.PageSize).
		Offset(params.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (d *DB) ListByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	rows := []models.Product{}
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

func (d *DB) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := d.Bun.NewSelect().
		Model(&product).
		Relation("Category").
		Where("products.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (d *DB) Create(ctx context.Context, product models.Product) error {
	_, err := d.Bun.NewInsert().Model(&product).Exec(ctx)
	return err
}

func (d *DB) Update(ctx context.Context, product models.Product) error {
	_, err := d.Bun.NewUpdate().
		Model(&product).
		Column("name", "description", "category_id", "images").
		Where("id = ?", product.ID).
		Exec(ctx)
	return err
}

func (d *DB) Delete(ctx context.Context, id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Product)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
