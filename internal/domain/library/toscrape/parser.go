package toscrape

import (
	"fmt"
	"strings"

	"quotenest/internal/domain/quote"
)

// Selectors for the quotes.toscrape.com page structure.
const (
	quoteSelector        = ".quote"
	textSelector         = ".text"
	authorSelector       = ".author"
	authorLinkSelector   = "a"
	nextSelector         = ".next"
	bornLocationSelector = ".author-born-location"
	bornDateSelector     = ".author-born-date"
)

// ListingQuote is a quote block as it appears on a listing page, before the
// author's detail page has been fetched.
type ListingQuote struct {
	Text       string
	Author     string
	AuthorHref string
}

// Listing is the parsed content of one listing page.
type Listing struct {
	HasNext bool
	Quotes  []ListingQuote
}

// ParseListing extracts the pagination flag and every quote block from a listing page.
func ParseListing(doc Element) (Listing, error) {
	var listing Listing
	_, listing.HasNext = doc.First(nextSelector)

	for i, block := range doc.Find(quoteSelector) {
		q, err := parseQuoteBlock(block)
		if err != nil {
			return Listing{}, fmt.Errorf("quote block %d: %w", i+1, err)
		}
		listing.Quotes = append(listing.Quotes, q)
	}

	return listing, nil
}

func parseQuoteBlock(block Element) (ListingQuote, error) {
	text, err := firstText(block, textSelector)
	if err != nil {
		return ListingQuote{}, err
	}

	author, ok := block.First(authorSelector)
	if !ok {
		return ListingQuote{}, quote.NewParseError(authorSelector)
	}
	name := strings.TrimSpace(author.Text())
	if name == "" {
		return ListingQuote{}, quote.NewParseErrorWithReason(authorSelector, "empty text")
	}

	link, ok := author.Following(authorLinkSelector)
	if !ok {
		return ListingQuote{}, quote.NewParseError(authorLinkSelector)
	}
	href, _ := link.Attr("href")
	href = strings.TrimSpace(href)
	if href == "" {
		return ListingQuote{}, quote.NewParseErrorWithReason(authorLinkSelector, "missing href")
	}

	return ListingQuote{Text: text, Author: name, AuthorHref: href}, nil
}

// ParseAuthor extracts the birthplace and birth date from an author detail page.
func ParseAuthor(doc Element) (place, date string, err error) {
	if place, err = firstText(doc, bornLocationSelector); err != nil {
		return "", "", err
	}
	if date, err = firstText(doc, bornDateSelector); err != nil {
		return "", "", err
	}
	return place, date, nil
}

func firstText(scope Element, selector string) (string, error) {
	el, ok := scope.First(selector)
	if !ok {
		return "", quote.NewParseError(selector)
	}
	text := strings.TrimSpace(el.Text())
	if text == "" {
		return "", quote.NewParseErrorWithReason(selector, "empty text")
	}
	return text, nil
}
