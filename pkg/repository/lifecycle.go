package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type DeleteOutcome string

const (
	SoftDeleted DeleteOutcome = "soft_deleted"
	HardDeleted DeleteOutcome = "hard_deleted"
)

var ErrNotFound = errors.New("not_found")

// Delete moves a record to SoftDeleted, or removes it when hard is set.
// Soft-deleting an already soft-deleted record succeeds without touching it.
func Delete[T any](ctx context.Context, db *gorm.DB, repo Repository[T], id snowflake.ID, hard bool, now time.Time) (DeleteOutcome, error) {
	existing, err := repo.FindByID(ctx, db, id)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return "", ErrNotFound
	}

	if hard {
		rows, err := repo.HardDelete(ctx, db, id)
		if err != nil {
			return "", err
		}
		if rows == 0 {
			return "", ErrNotFound
		}
		return HardDeleted, nil
	}

	if _, err := repo.SoftDelete(ctx, db, id, now); err != nil {
		return "", err
	}
	return SoftDeleted, nil
}
