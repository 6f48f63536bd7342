package domain

const (
	DefaultPageSize = 10
	MinPageSize     = 1
	MaxPageSize     = 50
)

// Pagination describes one page of a collection.
// HasNext == Page < TotalPages and HasPrev == Page > 1 always hold for values built
// through NewPagination or Normalize.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	TotalItems int  `json:"total_items"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ClampPage normalizes the page request parameters.
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	pageSize = max(MinPageSize, min(pageSize, MaxPageSize))
	return page, pageSize
}

// NewPagination derives TotalPages and the navigation flags from the item count.
func NewPagination(page, pageSize, totalItems int) Pagination {
	page, pageSize = ClampPage(page, pageSize)
	totalItems = max(totalItems, 0)
	totalPages := (totalItems + pageSize - 1) / pageSize
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: totalItems,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// EmptyPagination is the zeroed block used when a collection could not be loaded.
func EmptyPagination(page, pageSize int) Pagination {
	return NewPagination(page, pageSize, 0)
}

// Normalize trusts the server's counters but recomputes the navigation flags.
func (p Pagination) Normalize() Pagination {
	p.Page, p.PageSize = ClampPage(p.Page, p.PageSize)
	p.TotalItems = max(p.TotalItems, 0)
	p.TotalPages = max(p.TotalPages, 0)
	if p.TotalPages == 0 && p.TotalItems > 0 {
		p.TotalPages = (p.TotalItems + p.PageSize - 1) / p.PageSize
	}
	p.HasNext = p.Page < p.TotalPages
	p.HasPrev = p.Page > 1
	return p
}
