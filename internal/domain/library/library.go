package library

import (
	"context"

	"quotenest/internal/domain/quote"
)

// Page is one listing page with its quotes fully resolved.
type Page struct {
	Index   int
	HasNext bool
	Records []quote.Record
}

// PageSource fetches listing pages by 1-based index.
type PageSource interface {
	FetchPage(ctx context.Context, index int) (Page, error)
}
