package cache

import "fmt"

// PageKey is the composite cache key for paginated lookups. Two requests
// with identical page number, page size, and normalized sort spec must hit
// the same entry, so Sort is expected to be a normalized "field,direction"
// string (see storage.ParseSort).
type PageKey struct {
	Page int
	Size int
	Sort string
}

// String formats the key as "page:<n>:size:<s>:sort:<spec>".
func (k PageKey) String() string {
	return fmt.Sprintf("page:%d:size:%d:sort:%s", k.Page, k.Size, k.Sort)
}
