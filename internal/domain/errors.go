package domain

import "errors"

var (
	// ErrProductNotFound is returned when the search API has no listing for a code
	ErrProductNotFound = errors.New("product not found")

	// ErrSearchAPIFailure is returned when the product-search request fails in transport or parsing
	ErrSearchAPIFailure = errors.New("product search request failed")

	// ErrEmptyItemName is returned when an item is added with a blank name
	ErrEmptyItemName = errors.New("item name must not be empty")

	// ErrIndexOutOfRange is returned when a delete targets an index outside the collection
	ErrIndexOutOfRange = errors.New("item index out of range")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrSessionNotFound is returned when a scan session id is unknown or expired
	ErrSessionNotFound = errors.New("scan session not found")
)
