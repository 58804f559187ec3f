package domain

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/smallbiznis/hynox/pkg/repository"
)

type CreateAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateAdminRequest struct {
	ID       string  `json:"-"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type DeleteAdminRequest struct {
	ID   string
	Hard bool
}

//go:generate mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks
type Service interface {
	Create(ctx context.Context, req CreateAdminRequest) (*Admin, error)
	List(ctx context.Context) ([]Admin, error)
	GetByID(ctx context.Context, id string) (*Admin, error)
	Update(ctx context.Context, req UpdateAdminRequest) (*Admin, error)
	Delete(ctx context.Context, req DeleteAdminRequest) (repository.DeleteOutcome, error)
}

var (
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidPassword = errors.New("invalid_password")
	ErrInvalidID       = errors.New("invalid_id")
	ErrEmailTaken      = errors.New("email_taken")
	ErrNotFound        = errors.New("not_found")
)

// NormalizeEmail lower-cases and validates an admin email.
func NormalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(strings.TrimSpace(addr.Address)), nil
}
