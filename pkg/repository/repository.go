package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is the lifecycle store shared by every soft-deletable entity.
// Implementations take the *gorm.DB per call so callers can pass a transaction.
type Repository[T any] interface {
	Insert(ctx context.Context, db *gorm.DB, resource *T) error
	// FindByID returns soft-deleted rows too; nil when the id is unknown.
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*T, error)
	// ListActive returns rows without deleted_at, newest first.
	ListActive(ctx context.Context, db *gorm.DB) ([]*T, error)
	Updates(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	SoftDelete(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) (int64, error)
	HardDelete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}
