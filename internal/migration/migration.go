package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	admindomain "github.com/smallbiznis/hynox/internal/admin/domain"
	catalogdomain "github.com/smallbiznis/hynox/internal/catalog/domain"
	clientdomain "github.com/smallbiznis/hynox/internal/client/domain"
	companydomain "github.com/smallbiznis/hynox/internal/company/domain"
	invoicedomain "github.com/smallbiznis/hynox/internal/invoice/domain"
	quotationdomain "github.com/smallbiznis/hynox/internal/quotation/domain"
	settingsdomain "github.com/smallbiznis/hynox/internal/settings/domain"
	"gorm.io/gorm"
)

// Models lists every persisted type, in table creation order.
func Models() []any {
	return []any{
		&clientdomain.Client{},
		&catalogdomain.ServiceItem{},
		&invoicedomain.Invoice{},
		&quotationdomain.Quotation{},
		&admindomain.Admin{},
		&companydomain.CompanyInfo{},
		&settingsdomain.Settings{},
	}
}

// Migrate brings the schema up to date. Postgres runs the embedded SQL
// files; other dialects fall back to AutoMigrate.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}
	if conn.Dialector.Name() != "postgres" {
		if err := conn.AutoMigrate(Models()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return RunMigrations(sqlDB)
}

func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Closing the migrator would close the shared *sql.DB.

	return nil
}
