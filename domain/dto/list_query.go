package dto

import "strconv"

const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 10
	MaxLimit     int64 = 100
)

// ListQuery carries the raw list parameters of a read request. Page and Limit
// are already normalised; SortBy is validated later against the allow-list of
// the collection being read.
type ListQuery struct {
	Page     int64
	Limit    int64
	Query    string
	SortBy   string
	SortType string
	UserID   string
}

// NewListQuery parses page and limit, falling back to defaults for missing,
// malformed or non-positive values.
func NewListQuery(page, limit string) ListQuery {
	return ListQuery{
		Page:  parsePositive(page, DefaultPage, 0),
		Limit: parsePositive(limit, DefaultLimit, MaxLimit),
	}
}

// Skip is the number of matches before the current page.
func (q ListQuery) Skip() int64 {
	return (q.Page - 1) * q.Limit
}

func parsePositive(raw string, def, max int64) int64 {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return def
	}
	if max > 0 && v > max {
		return max
	}
	return v
}
