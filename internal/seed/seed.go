package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	admindomain "github.com/smallbiznis/hynox/internal/admin/domain"
	"github.com/smallbiznis/hynox/internal/auth/password"
	"github.com/smallbiznis/hynox/internal/clock"
	"github.com/smallbiznis/hynox/internal/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnsureBootstrapAdmin creates the configured admin when no admin with that
// email exists. It is a no-op when either credential is unset.
func EnsureBootstrapAdmin(ctx context.Context, db *gorm.DB, node *snowflake.Node, clk clock.Clock, cfg config.BootstrapConfig, log *zap.Logger) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	log = log.Named("seed")

	if strings.TrimSpace(cfg.AdminEmail) == "" || cfg.AdminPassword == "" {
		log.Debug("bootstrap admin not configured")
		return nil
	}
	email, err := admindomain.NormalizeEmail(cfg.AdminEmail)
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&admindomain.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hashed, err := password.Hash(cfg.AdminPassword)
		if err != nil {
			return err
		}
		now := clk.Now()
		admin := admindomain.Admin{
			ID:           node.Generate(),
			Email:        email,
			PasswordHash: hashed,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&admin)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			log.Info("bootstrap admin created", zap.String("email", email))
		}
		return nil
	})
}
