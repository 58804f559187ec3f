package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/hynox/pkg/repository"
)

type CreateClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// UpdateClientRequest carries a partial update; nil fields are left as stored.
type UpdateClientRequest struct {
	ID      string  `json:"-"`
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

type DeleteClientRequest struct {
	ID   string
	Hard bool
}

type Service interface {
	Create(context.Context, CreateClientRequest) (Client, error)
	List(context.Context) ([]Client, error)
	GetByID(context.Context, string) (Client, error)
	Update(context.Context, UpdateClientRequest) (Client, error)
	Delete(context.Context, DeleteClientRequest) (repository.DeleteOutcome, error)
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)
