package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/hynox/internal/document"
	"github.com/smallbiznis/hynox/pkg/repository"
)

type CreateQuotationRequest struct {
	document.Input
	ValidUntil *string `json:"validUntil"`
	Status     *string `json:"status"`
}

type UpdateQuotationRequest struct {
	ID string `json:"-"`
	document.Input
	ValidUntil *string `json:"validUntil"`
	Status     *string `json:"status"`
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

type DeleteQuotationRequest struct {
	ID   string
	Hard bool
}

type Service interface {
	Create(context.Context, CreateQuotationRequest) (Quotation, error)
	List(context.Context) ([]Quotation, error)
	GetByID(ctx context.Context, id string) (Quotation, error)
	Update(context.Context, UpdateQuotationRequest) (Quotation, error)
	UpdateStatus(context.Context, UpdateStatusRequest) (Quotation, error)
	Delete(context.Context, DeleteQuotationRequest) (repository.DeleteOutcome, error)
}

var (
	ErrInvalidQuotationID = errors.New("invalid_quotation_id")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrQuotationNotFound  = errors.New("quotation_not_found")
)
