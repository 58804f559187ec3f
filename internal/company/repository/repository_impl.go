package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/hynox/internal/company/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Get(ctx context.Context, db *gorm.DB) (*domain.CompanyInfo, error) {
	var info domain.CompanyInfo
	err := db.WithContext(ctx).Where("id = ?", domain.SingletonID).First(&info).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

func (r *repo) InsertIfAbsent(ctx context.Context, db *gorm.DB, info *domain.CompanyInfo) error {
	info.ID = domain.SingletonID
	return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(info).Error
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, info *domain.CompanyInfo) error {
	info.ID = domain.SingletonID
	return db.WithContext(ctx).Save(info).Error
}
