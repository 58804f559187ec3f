package domain

import (
	"context"

	"github.com/smallbiznis/hynox/pkg/repository"
	"gorm.io/gorm"
)

type Repository interface {
	repository.Repository[Invoice]
	// NumbersIssuedBetween returns the numbers of invoices, soft-deleted
	// included, whose issue date falls in [from, to).
	NumbersIssuedBetween(ctx context.Context, db *gorm.DB, from, to string) ([]string, error)
}
