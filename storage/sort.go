package storage

import (
	"fmt"
	"strings"
	"unicode"
)

// sortableColumns whitelists the columns a sort spec may reference. The
// normalized column name is interpolated into ORDER BY, so anything outside
// this set is rejected rather than quoted.
var sortableColumns = map[string]struct{}{
	"id":             {},
	"amount":         {},
	"description":    {},
	"type":           {},
	"account_number": {},
	"timestamp":      {},
	"created_at":     {},
	"updated_at":     {},
}

// Sort is a normalized sort spec: a whitelisted snake_case column plus a
// direction. Equivalent textual specs ("Timestamp,DESC", "timestamp,desc")
// normalize to the same value, so paginated cache keys built from it
// collapse to one entry.
type Sort struct {
	Field string
	Desc  bool
}

// DefaultSort orders by timestamp, newest first.
func DefaultSort() Sort {
	return Sort{Field: "timestamp", Desc: true}
}

// ParseSort parses a "field,direction" spec. The field is snake_cased, the
// direction defaults to ascending unless it equals "desc" case-insensitively,
// and an empty spec yields DefaultSort. Unknown fields are an error.
func ParseSort(spec string) (Sort, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return DefaultSort(), nil
	}

	parts := strings.SplitN(spec, ",", 2)
	field := toSnake(strings.TrimSpace(parts[0]))
	if _, ok := sortableColumns[field]; !ok {
		return Sort{}, fmt.Errorf("storage: cannot sort by %q", parts[0])
	}

	desc := false
	if len(parts) > 1 {
		desc = strings.EqualFold(strings.TrimSpace(parts[1]), "desc")
	}

	return Sort{Field: field, Desc: desc}, nil
}

// String returns the normalized "field,direction" form used in cache keys.
func (s Sort) String() string {
	field := s.Field
	if field == "" {
		field = "timestamp"
	}
	dir := "asc"
	if s.Desc {
		dir = "desc"
	}
	return field + "," + dir
}

// OrderExpr returns the ORDER BY expression for the sort. The field is
// whitelisted by ParseSort; a zero Sort falls back to DefaultSort.
func (s Sort) OrderExpr() string {
	field := s.Field
	if field == "" {
		s = DefaultSort()
		field = s.Field
	}
	if s.Desc {
		return field + " DESC"
	}
	return field + " ASC"
}

// toSnake converts the provided string to snake_case using ASCII-aware
// rules. Punctuation is stripped aggressively: sort specs arrive from API
// query strings and anything beyond letters, digits, and separators would
// otherwise leak into the cache namespace and the column whitelist lookup.
func toSnake(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(runes) + len(runes)/2)

	lastUnderscore := false

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch {
		case unicode.IsUpper(r):
			if b.Len() > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if (unicode.IsLower(prev) || unicode.IsDigit(prev) || nextLower) && !lastUnderscore {
					b.WriteByte('_')
					lastUnderscore = true
				}
			}
			b.WriteRune(unicode.ToLower(r))
			lastUnderscore = false

		case unicode.IsLower(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false

		case r == '_' || r == '-' || unicode.IsSpace(r):
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}

		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	return strings.Trim(b.String(), "_")
}
