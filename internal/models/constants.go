package models

const (
	// SharerHeader carries the caller's user id, trusted as-is.
	SharerHeader = "X-Sharer-User-Id"

	DefaultPageFrom = 0
	DefaultPageSize = 10

	// DefaultQuotaLimit requests per sharer inside DefaultQuotaWindow seconds.
	DefaultQuotaLimit  = 120
	DefaultQuotaWindow = 60
)

// Page is an offset/limit slice of an ordered result.
type Page struct {
	Offset int
	Limit  int
}

// Valid reports whether the page has a non-negative offset and positive limit.
func (p Page) Valid() bool {
	return p.Offset >= 0 && p.Limit > 0
}
