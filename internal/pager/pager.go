// Package pager computes limit/offset page metadata for list responses.
package pager

// PageInfo describes one page of a list result.
type PageInfo struct {
	Limit           int  `json:"limit"`
	Offset          int  `json:"offset"`
	TotalCount      int  `json:"total_count"`
	TotalPages      int  `json:"total_pages"`
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
}

// Clamp normalizes a requested limit/offset pair against a default and a
// maximum. A non-positive limit falls back to the default; the maximum caps
// both. A negative offset becomes zero.
func Clamp(limit, offset, defaultLimit, maxLimit int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Paginate computes page metadata for a total row count.
func Paginate(limit, offset, total int) PageInfo {
	if limit <= 0 {
		limit = 1
	}
	if offset < 0 {
		offset = 0
	}
	if total < 0 {
		total = 0
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return PageInfo{
		Limit:           limit,
		Offset:          offset,
		TotalCount:      total,
		TotalPages:      totalPages,
		HasNextPage:     offset+limit < total,
		HasPreviousPage: offset > 0,
	}
}
