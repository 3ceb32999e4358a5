package pagination

// CalculateTotalPages calculates the total number of pages based on total items and limit.
// Uses ceiling division; an empty collection still has one page.
//
// Examples:
//   - Total 0, Limit 6 -> 1 page
//   - Total 6, Limit 6 -> 1 page
//   - Total 7, Limit 6 -> 2 pages
func CalculateTotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// ClampPage keeps page inside [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}
