package domain

// Page is one page of a cursor-paginated result set.
//
// NextCursor is the cursor-field value of the last item, or nil when the
// page is empty. Total is the unconditional count of the whole collection,
// not the count matching the active filters or date range.
type Page[T any] struct {
	Result     []T
	Total      int64
	NextCursor *string
}
