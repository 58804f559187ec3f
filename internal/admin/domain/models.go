package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Admin is a dashboard operator. PasswordHash never leaves the server.
type Admin struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Email        string       `gorm:"not null;uniqueIndex:ux_admins_email" json:"email"`
	PasswordHash string       `gorm:"column:password;not null" json:"-"`
	CreatedAt    time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time    `gorm:"not null" json:"updatedAt"`
	DeletedAt    *time.Time   `gorm:"index" json:"deletedAt,omitempty"`
}

func (Admin) TableName() string { return "admins" }
