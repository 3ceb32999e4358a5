package pagination

// Metadata describes the position of the current page inside the collection.
type Metadata struct {
	Total      int64 `json:"total"`       // Total number of items across all pages
	Page       int   `json:"page"`        // Current page number (1-based)
	Limit      int   `json:"limit"`       // Items per page
	TotalPages int   `json:"total_pages"` // Calculated total number of pages
}

// NewMetadata builds Metadata for params and a server-reported total.
func NewMetadata(params Params, total int64) Metadata {
	return Metadata{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: CalculateTotalPages(total, params.Limit),
	}
}

// HasNext reports whether a page follows the current one.
func (m Metadata) HasNext() bool {
	return m.Page < m.TotalPages
}

// HasPrevious reports whether a page precedes the current one.
func (m Metadata) HasPrevious() bool {
	return m.Page > 1
}
