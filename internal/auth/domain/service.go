package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"-"`
}

// Principal is the admin behind a verified token.
type Principal struct {
	AdminID snowflake.ID
	Email   string
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Authenticate(ctx context.Context, token string) (*Principal, error)
	TokenTTL() time.Duration
}
