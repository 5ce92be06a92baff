package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pantryscan/backend/internal/domain"
)

// ProductResolver turns a confirmed barcode into a suggested item name by
// querying the external product-search API and normalizing the top listing's
// title.
type ProductResolver struct {
	search     domain.ProductSearchClient
	normalizer *Normalizer
}

// NewProductResolver creates a new product resolver
func NewProductResolver(search domain.ProductSearchClient, normalizer *Normalizer) *ProductResolver {
	return &ProductResolver{
		search:     search,
		normalizer: normalizer,
	}
}

// Resolve looks up the code and returns a suggested item name.
// Zero listings map to domain.ErrProductNotFound; transport and parse
// failures are wrapped with domain.ErrSearchAPIFailure. If normalization
// strips the whole title, the raw title is returned instead so the caller
// still gets something editable.
func (r *ProductResolver) Resolve(ctx context.Context, code string) (string, error) {
	resp, err := r.search.SearchItems(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, domain.ErrSearchAPIFailure) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", domain.ErrSearchAPIFailure, err)
	}

	if resp == nil || len(resp.Items) == 0 {
		return "", domain.ErrProductNotFound
	}

	raw := resp.Items[0].Item.ItemName
	name := r.normalizer.Normalize(raw)
	if name == "" {
		name = strings.TrimSpace(raw)
	}
	return name, nil
}
