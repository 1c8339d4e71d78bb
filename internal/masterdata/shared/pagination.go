package shared

import (
	"net/url"
	"strings"

	root "github.com/ledgerdesk/backoffice/internal/shared"
)

// ListFilters represents standard directory list filters.
type ListFilters struct {
	root.PageRequest
	Search  string
	SortBy  string
	SortDir string
}

// ParseListFilters reads page, limit, search, sort and dir from q.
func ParseListFilters(q url.Values) ListFilters {
	return ListFilters{
		PageRequest: root.ParsePageRequest(q),
		Search:      strings.TrimSpace(q.Get("search")),
		SortBy:      q.Get("sort"),
		SortDir:     q.Get("dir"),
	}
}

// SearchPattern is the ILIKE argument for Search.
func (f ListFilters) SearchPattern() string {
	return "%" + f.Search + "%"
}

// OrderBy maps SortBy through the allowed column set. Unknown columns fall
// back to fallback so user input never reaches the SQL text.
func (f ListFilters) OrderBy(allowed []string, fallback string) string {
	dir := "ASC"
	if f.SortDir == SortDesc {
		dir = "DESC"
	}
	column := fallback
	for _, c := range allowed {
		if c == f.SortBy {
			column = c
			break
		}
	}
	return column + " " + dir + ", id " + dir
}
