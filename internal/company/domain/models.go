package domain

import "time"

// SingletonID is the primary key of the only company row.
const SingletonID = 1

type CompanyInfo struct {
	ID            int       `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Name          string    `gorm:"not null" json:"name"`
	Address       string    `json:"address"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	GSTNumber     string    `gorm:"column:gst_number" json:"gstNumber"`
	BankName      string    `json:"bankName"`
	AccountName   string    `json:"accountName"`
	AccountNumber string    `json:"accountNumber"`
	IFSC          string    `gorm:"column:ifsc" json:"ifsc"`
	Branch        string    `json:"branch"`
	UPI           string    `gorm:"column:upi" json:"upi"`
	UpdatedAt     time.Time `gorm:"not null" json:"updatedAt"`
}

func (CompanyInfo) TableName() string { return "company_info" }
