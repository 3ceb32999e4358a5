package pagination

// Envelope is the page-number pagination envelope returned by the API.
// T is the item type (e.g. entity.Recipe).
type Envelope[T any] struct {
	Count    int64   `json:"count"`    // Total number of items across all pages
	Next     *string `json:"next"`     // URL of the next page, null on the last page
	Previous *string `json:"previous"` // URL of the previous page, null on the first page
	Results  []T     `json:"results"`  // Items of the current page
}
