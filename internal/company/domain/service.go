package domain

import (
	"context"
	"errors"
)

// UpsertRequest carries the fields to change; nil fields keep their value.
type UpsertRequest struct {
	Name          *string `json:"name"`
	Address       *string `json:"address"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	GSTNumber     *string `json:"gstNumber"`
	BankName      *string `json:"bankName"`
	AccountName   *string `json:"accountName"`
	AccountNumber *string `json:"accountNumber"`
	IFSC          *string `json:"ifsc"`
	Branch        *string `json:"branch"`
	UPI           *string `json:"upi"`
}

type Service interface {
	Get(ctx context.Context) (CompanyInfo, error)
	Upsert(ctx context.Context, req UpsertRequest) (CompanyInfo, error)
}

var ErrInvalidName = errors.New("invalid_company_name")
