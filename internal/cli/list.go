package cli

import (
	"context"
	"errors"

	"github.com/vietdv277/cirrus/pkg/provider"
)

// fetchAll fetches the detail record of every id in order. Items whose
// fetch fails with a not-found error are dropped; any other error aborts
// the whole listing.
func fetchAll[T any](ctx context.Context, ids []string, fetch func(context.Context, string) (*T, error)) ([]T, error) {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		item, err := fetch(ctx, id)
		if err != nil {
			if errors.Is(err, provider.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if item == nil {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}
