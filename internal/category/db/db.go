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

// ListAll returns every category row, the input for the tree builder.
func (d *DB) ListAll(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := d.Bun.NewSelect().
		Model(&rows).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListPage returns one page of categories with a keyword filter on name.
func (d *DB) ListPage(ctx context.Context, params listing.Params) ([]models.Category, int, error) {
	var rows []models.Category
	q := d.Bun.NewSelect().Model(&rows)
	if params.Keyword != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(params.Keyword)+"%")
	}
	total, err := q.Order("name ASC").
		Limit(listing.PageSize).
		Offset(params.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (d *DB) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var row models.Category
	err := d.Bun.NewSelect().
		Model(&row).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (d *DB) Create(ctx context.Context, row models.Category) error {
	_, err := d.Bun.NewInsert().Model(&row).Exec(ctx)
	return err
}

func (d *DB) Update(ctx context.Context, row models.Category) error {
	_, err := d.Bun.NewUpdate().
		Model(&row).
		Column("name", "parent_id").
		Where("id = ?", row.ID).
		Exec(ctx)
	return err
}

// Delete removes a category and reparents its children to the deleted
// node's parent so the forest stays connected.
func (d *DB) Delete(ctx context.Context, id string) error {
	row, err := d.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().
			Model((*models.Category)(nil)).
			Set("parent_id = ?", row.ParentID).
			Where("parent_id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		_, err = tx.NewDelete().
			Model((*models.Category)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
}
