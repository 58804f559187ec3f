package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/hynox/internal/document"
	"github.com/smallbiznis/hynox/pkg/repository"
)

type CreateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       document.Number `json:"price"`
}

type UpdateRequest struct {
	ID          string           `json:"-"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *document.Number `json:"price"`
}

type DeleteRequest struct {
	ID   string
	Hard bool
}

type Service interface {
	Create(context.Context, CreateRequest) (*ServiceItem, error)
	List(context.Context) ([]ServiceItem, error)
	Get(context.Context, string) (*ServiceItem, error)
	Update(context.Context, UpdateRequest) (*ServiceItem, error)
	Delete(context.Context, DeleteRequest) (repository.DeleteOutcome, error)
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidPrice = errors.New("invalid_price")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)
