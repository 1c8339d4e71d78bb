package shared

import (
	"math"
	"net/url"
	"strconv"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
	// maxPage keeps (page-1)*limit inside an int32 offset.
	maxPage = math.MaxInt32 / maxPageLimit
)

// PageRequest is the page/limit pair read from a list request.
type PageRequest struct {
	Page  int
	Limit int
}

// ParsePageRequest reads page and limit from query values, falling back to
// defaults for missing or invalid values and clamping page and limit.
func ParsePageRequest(q url.Values) PageRequest {
	req := PageRequest{Page: 1, Limit: defaultPageLimit}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		req.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		req.Limit = v
	}
	if req.Limit > maxPageLimit {
		req.Limit = maxPageLimit
	}
	if req.Page > maxPage {
		req.Page = maxPage
	}
	return req
}

// Offset returns the row offset for the page.
func (p PageRequest) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	page, limit := min(p.Page, maxPage), min(p.Limit, maxPageLimit)
	return (page - 1) * limit
}

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes pagination metadata.
func NewPagination(req PageRequest, total int) Pagination {
	if req.Limit <= 0 {
		req.Limit = defaultPageLimit
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(req.Limit)))
	return Pagination{Page: req.Page, Limit: req.Limit, Total: total, TotalPages: totalPages}
}

// ListResponse is the envelope returned by paginated list endpoints.
type ListResponse[T any] struct {
	Data []T `json:"data"`
	Pagination
}

// NewListResponse builds the envelope, never encoding a null data array.
func NewListResponse[T any](rows []T, req PageRequest, total int) ListResponse[T] {
	if rows == nil {
		rows = []T{}
	}
	return ListResponse[T]{Data: rows, Pagination: NewPagination(req, total)}
}
