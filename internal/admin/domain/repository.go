package domain

import (
	"context"

	"github.com/smallbiznis/hynox/pkg/repository"
	"gorm.io/gorm"
)

type Repository interface {
	repository.Repository[Admin]
	// FindByEmail matches the normalized email, soft-deleted rows included.
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*Admin, error)
}
