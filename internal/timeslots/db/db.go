package db

import (
	"context"
	"time"

	"studio-admin/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) ListAll(ctx context.Context) ([]models.TimeSlotGroup, error) {
	rows := []models.TimeSlotGroup{}
	err := d.Bun.NewSelect().
		Model(&rows).
		Order("date ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (d *DB) GetByID(ctx context.Context, id string) (*models.TimeSlotGroup, error) {
	var group models.TimeSlotGroup
	err := d.Bun.NewSelect().
		Model(&group).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (d *DB) GetByDate(ctx context.Context, date time.Time) (*models.TimeSlotGroup, error) {
	var group models.TimeSlotGroup
	err := d.Bun.NewSelect().
		Model(&group).
		Where("date = ?", date).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (d *DB) Create(ctx context.Context, group models.TimeSlotGroup) error {
	_, err := d.Bun.NewInsert().Model(&group).Exec(ctx)
	return err
}

func (d *DB) Update(ctx context.Context, group models.TimeSlotGroup) error {
	_, err := d.Bun.NewUpdate().
		Model(&group).
		Column("date", "times").
		Where("id = ?", group.ID).
		Exec(ctx)
	return err
}

func (d *DB) Delete(ctx context.Context, id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.TimeSlotGroup)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
