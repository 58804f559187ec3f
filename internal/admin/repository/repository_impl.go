package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/hynox/internal/admin/domain"
	"github.com/smallbiznis/hynox/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	repository.Repository[domain.Admin]
}

func Provide() domain.Repository {
	return &repo{Repository: repository.ProvideStore[domain.Admin]()}
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Admin, error) {
	var admin domain.Admin
	err := db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}
