package domain

import "context"

// KeyValueStore is the persistence capability the inventory requires: a
// synchronous read/write of one serialized blob per key.
type KeyValueStore interface {
	// Get returns the stored value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// ProductSearchClient defines the interface for the external product-search API
type ProductSearchClient interface {
	SearchItems(ctx context.Context, keyword string) (*IchibaSearchResponse, error)
}
