package db

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/smallbiznis/hynox/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	TypePostgres = "postgres"
	TypeMySQL    = "mysql"
	TypeSQLite   = "sqlite"
)

// NormalizeType maps DATABASE_TYPE spellings onto a supported dialect name.
func NormalizeType(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "postgresql", "pg":
		return TypePostgres, nil
	case "mysql", "mariadb":
		return TypeMySQL, nil
	case "sqlite", "sqlite3":
		return TypeSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database type %q", raw)
	}
}

// DSN builds the driver connection string for cfg.
func DSN(cfg config.Config) (string, error) {
	kind, err := NormalizeType(cfg.DBType)
	if err != nil {
		return "", err
	}

	switch kind {
	case TypeMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName), nil
	case TypePostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(cfg.DBUser, cfg.DBPassword),
			Host:   cfg.DBHost + ":" + cfg.DBPort,
			Path:   "/" + cfg.DBName,
		}
		q := url.Values{}
		q.Set("sslmode", cfg.DBSSLMode)
		q.Set("TimeZone", "UTC")
		u.RawQuery = q.Encode()
		return u.String(), nil
	default:
		return cfg.DBPath, nil
	}
}

// Dialect returns the gorm dialector for the configured database.
func Dialect(cfg config.Config) (gorm.Dialector, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	kind, _ := NormalizeType(cfg.DBType)

	switch kind {
	case TypeMySQL:
		return mysql.Open(dsn), nil
	case TypePostgres:
		return postgres.Open(dsn), nil
	default:
		return sqlite.Open(dsn), nil
	}
}
