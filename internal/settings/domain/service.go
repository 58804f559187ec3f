package domain

import "context"

type Service interface {
	Get(ctx context.Context) (map[string]any, error)
	// Merge writes the given keys over the stored map. A null value removes
	// the key.
	Merge(ctx context.Context, values map[string]any) (map[string]any, error)
}
