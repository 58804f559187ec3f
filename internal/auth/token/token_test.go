package token

import (
	"errors"
	"testing"
	"time"

	"github.com/smallbiznis/hynox/internal/clock"
	"github.com/smallbiznis/hynox/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newIssuer(t *testing.T, clk clock.Clock) *Issuer {
	t.Helper()
	issuer, err := NewIssuer(config.Config{
		Environment:   "production",
		AuthJWTSecret: "test-secret",
		AuthTokenTTL:  time.Hour,
	}, clk, zap.NewNop())
	require.NoError(t, err)
	return issuer
}

func TestIssueAndParse(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	issuer := newIssuer(t, clk)

	raw, expiresAt, err := issuer.Issue("42", "owner@example.com")
	require.NoError(t, err)
	assert.True(t, expiresAt.Equal(clk.Now().Add(time.Hour)))

	claims, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.ID)
	assert.Equal(t, "owner@example.com", claims.Email)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	issuer := newIssuer(t, clk)

	raw, _, err := issuer.Issue("42", "owner@example.com")
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)
	_, err = issuer.Parse(raw)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestParseRejectsForeignSignature(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	issuer := newIssuer(t, clk)

	other, err := NewIssuer(config.Config{
		Environment:   "production",
		AuthJWTSecret: "another-secret",
	}, clk, zap.NewNop())
	require.NoError(t, err)

	raw, _, err := other.Issue("42", "owner@example.com")
	require.NoError(t, err)

	_, err = issuer.Parse(raw)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = issuer.Parse("not-a-token")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestNewIssuerSecretRequirement(t *testing.T) {
	_, err := NewIssuer(config.Config{Environment: "production"}, clock.NewSystemClock(), zap.NewNop())
	assert.Error(t, err)

	issuer, err := NewIssuer(config.Config{Environment: "development"}, clock.NewSystemClock(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, time.Hour, issuer.TTL())
}
