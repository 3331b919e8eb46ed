package models

// Pagination limits and defaults
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a clamped page request
type Page struct {
	Page     int
	PageSize int
}

// Offset is the number of rows to skip
func (p Page) Offset() int {
	return (p.Page - 1) * p.PageSize
}
