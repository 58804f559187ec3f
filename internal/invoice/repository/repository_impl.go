package repository

import (
	"context"

	"github.com/smallbiznis/hynox/internal/invoice/domain"
	"github.com/smallbiznis/hynox/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	repository.Repository[domain.Invoice]
}

func Provide() domain.Repository {
	return &repo{Repository: repository.ProvideStore[domain.Invoice]()}
}

func (r *repo) NumbersIssuedBetween(ctx context.Context, db *gorm.DB, from, to string) ([]string, error) {
	var numbers []string
	err := db.WithContext(ctx).
		Unscoped().
		Model(&domain.Invoice{}).
		Where("issue_date >= ? AND issue_date < ?", from, to).
		Pluck("number", &numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}
