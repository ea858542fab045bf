package api

// Pagination describes one page of a cursor-paginated listing. The
// cursor is opaque; clients pass it back verbatim.
type Pagination struct {
	HasNextPage bool    `json:"has_next_page"`
	NextCursor  *string `json:"next_cursor,omitempty"`
	Limit       int     `json:"limit"`
}
