package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ServiceItem is a billable service offered to clients.
type ServiceItem struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"not null" json:"name"`
	Description string       `json:"description,omitempty"`
	Price       float64      `gorm:"not null;default:0" json:"price"`
	CreatedAt   time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updatedAt"`
	DeletedAt   *time.Time   `gorm:"index" json:"deletedAt,omitempty"`
}

func (ServiceItem) TableName() string { return "services" }
