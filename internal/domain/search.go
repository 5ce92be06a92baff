package domain

// IchibaItem represents a single product listing from the Rakuten Ichiba
// item-search API. Only the fields the resolver consumes are mapped.
type IchibaItem struct {
	ItemName string `json:"itemName"`
	ItemCode string `json:"itemCode,omitempty"`
	ItemURL  string `json:"itemUrl,omitempty"`
}

// IchibaItemWrapper mirrors the API's one-level wrapping of each listing
type IchibaItemWrapper struct {
	Item IchibaItem `json:"Item"`
}

// IchibaSearchResponse represents the response from the Ichiba search API.
// A missing or empty Items array is the "not found" case.
type IchibaSearchResponse struct {
	Items []IchibaItemWrapper `json:"Items"`
	Count int                 `json:"count,omitempty"`
	Hits  int                 `json:"hits,omitempty"`
}
