package repository

import (
	"context"

	"github.com/smallbiznis/hynox/internal/quotation/domain"
	"github.com/smallbiznis/hynox/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	repository.Repository[domain.Quotation]
}

func Provide() domain.Repository {
	return &repo{Repository: repository.ProvideStore[domain.Quotation]()}
}

func (r *repo) NumbersIssuedBetween(ctx context.Context, db *gorm.DB, from, to string) ([]string, error) {
	var numbers []string
	err := db.WithContext(ctx).
		Unscoped().
		Model(&domain.Quotation{}).
		Where("issue_date >= ? AND issue_date < ?", from, to).
		Pluck("number", &numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}
