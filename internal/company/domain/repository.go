package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// Get returns nil when the row has not been seeded yet.
	Get(ctx context.Context, db *gorm.DB) (*CompanyInfo, error)
	// InsertIfAbsent leaves an existing row untouched.
	InsertIfAbsent(ctx context.Context, db *gorm.DB, info *CompanyInfo) error
	Save(ctx context.Context, db *gorm.DB, info *CompanyInfo) error
}
