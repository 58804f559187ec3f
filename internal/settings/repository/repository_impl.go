package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/hynox/internal/settings/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Get(ctx context.Context, db *gorm.DB) (*domain.Settings, error) {
	var settings domain.Settings
	err := db.WithContext(ctx).Where("id = ?", domain.SingletonID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *repo) InsertIfAbsent(ctx context.Context, db *gorm.DB, settings *domain.Settings) error {
	settings.ID = domain.SingletonID
	return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(settings).Error
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, settings *domain.Settings) error {
	settings.ID = domain.SingletonID
	return db.WithContext(ctx).Save(settings).Error
}
