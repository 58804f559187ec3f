package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/hynox/internal/document"
	"github.com/smallbiznis/hynox/pkg/repository"
)

type CreateInvoiceRequest struct {
	document.Input
	DueDate *string `json:"dueDate"`
	Status  *string `json:"status"`
}

// UpdateInvoiceRequest is a partial merge: absent fields keep their value.
type UpdateInvoiceRequest struct {
	ID string `json:"-"`
	document.Input
	DueDate *string `json:"dueDate"`
	Status  *string `json:"status"`
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

type DeleteInvoiceRequest struct {
	ID   string
	Hard bool
}

type Service interface {
	Create(context.Context, CreateInvoiceRequest) (Invoice, error)
	List(context.Context) ([]Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	Update(context.Context, UpdateInvoiceRequest) (Invoice, error)
	UpdateStatus(context.Context, UpdateStatusRequest) (Invoice, error)
	Delete(context.Context, DeleteInvoiceRequest) (repository.DeleteOutcome, error)
}

var (
	ErrInvalidInvoiceID = errors.New("invalid_invoice_id")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrInvoiceNotFound  = errors.New("invoice_not_found")
)
