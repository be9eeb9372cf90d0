package aggregation

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	Ascending  = 1
	Descending = -1

	DefaultSortField = "createdAt"
)

// SortSpec orders by Field, breaking ties on _id in the same direction so
// that skip/limit windows are stable.
type SortSpec struct {
	Field     string
	Direction int
}

// DefaultSort is newest first.
var DefaultSort = SortSpec{Field: DefaultSortField, Direction: Descending}

func (s SortSpec) Document() bson.D {
	doc := bson.D{{Key: s.Field, Value: s.Direction}}
	if s.Field != "_id" {
		doc = append(doc, bson.E{Key: "_id", Value: s.Direction})
	}
	return doc
}

// ResolveSort validates a client-supplied sort against allowed. An unknown or
// empty field yields DefaultSort regardless of sortType.
func ResolveSort(sortBy, sortType string, allowed ...string) SortSpec {
	field := strings.TrimSpace(sortBy)
	if field == "" || !contains(allowed, field) {
		return DefaultSort
	}
	return SortSpec{Field: field, Direction: parseDirection(sortType)}
}

func parseDirection(raw string) int {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "asc", "ascending":
		return Ascending
	default:
		return Descending
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
