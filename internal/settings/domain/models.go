package domain

import (
	"time"

	"gorm.io/datatypes"
)

const SingletonID = 1

// Well-known keys seeded from configuration.
const (
	KeyDefaultTax      = "defaultTax"
	KeyDefaultCurrency = "defaultCurrency"
)

// Settings is a free-form key/value document; only Values is exposed.
type Settings struct {
	ID        int               `gorm:"primaryKey;autoIncrement:false"`
	Values    datatypes.JSONMap `gorm:"column:data;not null"`
	UpdatedAt time.Time         `gorm:"not null"`
}

func (Settings) TableName() string { return "settings" }
