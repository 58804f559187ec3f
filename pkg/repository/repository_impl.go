package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type store[T any] struct{}

func ProvideStore[T any]() Repository[T] {
	return &store[T]{}
}

func (r *store[T]) Insert(ctx context.Context, db *gorm.DB, resource *T) error {
	return db.WithContext(ctx).Create(resource).Error
}

func (r *store[T]) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*T, error) {
	var result T
	err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *store[T]) ListActive(ctx context.Context, db *gorm.DB) ([]*T, error) {
	var result []*T
	err := db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("created_at desc, id desc").
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *store[T]) Updates(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields).Error
}

func (r *store[T]) SoftDelete(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Model(new(T)).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{"deleted_at": at, "updated_at": at})
	return res.RowsAffected, res.Error
}

func (r *store[T]) HardDelete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	return res.RowsAffected, res.Error
}
