package domain

import (
	"context"
	"strings"

	"github.com/smallbiznis/hynox/internal/totals"
)

// ResolveCurrency returns the stored defaultCurrency when svc has one and
// fallback otherwise. The error from reading settings is returned alongside
// the fallback so callers can log it.
func ResolveCurrency(ctx context.Context, svc Service, fallback string) (string, error) {
	if svc == nil {
		return totals.NormalizeCurrency(fallback), nil
	}
	values, err := svc.Get(ctx)
	if err != nil {
		return totals.NormalizeCurrency(fallback), err
	}
	if code, ok := values[KeyDefaultCurrency].(string); ok && strings.TrimSpace(code) != "" {
		return totals.NormalizeCurrency(code), nil
	}
	return totals.NormalizeCurrency(fallback), nil
}
