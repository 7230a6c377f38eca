package toscrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"quotenest/internal/domain/library"
	"quotenest/internal/domain/quote"

	"github.com/sirupsen/logrus"
)

// DefaultOrigin is the site the quotes are scraped from.
const DefaultOrigin = "http://quotes.toscrape.com"

// PageFetcher turns a listing page index into fully resolved quote records.
// Every quote costs one extra request for its author's detail page.
type PageFetcher struct {
	origin *url.URL
	client Fetcher
	log    logrus.FieldLogger
}

// NewPageFetcher creates a PageFetcher for the site at origin.
func NewPageFetcher(origin string, client Fetcher, log logrus.FieldLogger) (*PageFetcher, error) {
	u, err := url.Parse(strings.TrimSpace(origin))
	if err != nil {
		return nil, fmt.Errorf("invalid origin %q: %w", origin, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid origin %q: scheme and host are required", origin)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""

	return &PageFetcher{
		origin: u,
		client: client,
		log:    log,
	}, nil
}

// ListingURL returns the URL of the listing page with the given index.
func (p *PageFetcher) ListingURL(index int) string {
	return fmt.Sprintf("%s/page/%d/", p.origin.String(), index)
}

// FetchPage fetches listing page index and the detail page of every author on it.
func (p *PageFetcher) FetchPage(ctx context.Context, index int) (library.Page, error) {
	if index < 1 {
		return library.Page{}, fmt.Errorf("page index must be positive, got %d", index)
	}

	pageURL := p.ListingURL(index)
	doc, err := p.fetchDocument(ctx, pageURL)
	if err != nil {
		return library.Page{}, err
	}

	listing, err := ParseListing(doc)
	if err != nil {
		return library.Page{}, withURL(err, pageURL)
	}

	records := make([]quote.Record, 0, len(listing.Quotes))
	for _, q := range listing.Quotes {
		authorURL, err := p.resolve(q.AuthorHref)
		if err != nil {
			return library.Page{}, withURL(err, pageURL)
		}

		detail, err := p.fetchDocument(ctx, authorURL)
		if err != nil {
			return library.Page{}, err
		}

		place, date, err := ParseAuthor(detail)
		if err != nil {
			return library.Page{}, withURL(err, authorURL)
		}

		records = append(records, quote.Record{
			Text:        q.Text,
			Author:      q.Author,
			BirthDetail: quote.BirthDetail(place, date),
		})
	}

	p.log.WithFields(logrus.Fields{
		"page":     index,
		"quotes":   len(records),
		"has_next": listing.HasNext,
	}).Info("Scraped listing page")

	return library.Page{
		Index:   index,
		HasNext: listing.HasNext,
		Records: records,
	}, nil
}

func (p *PageFetcher) fetchDocument(ctx context.Context, target string) (Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := p.client.Get(ctx, target)
	if err != nil {
		return nil, quote.NewFetchError(target, err)
	}

	doc, err := ParseHTML(bytes.NewReader(body))
	if err != nil {
		return nil, &quote.ParseError{URL: target, Selector: "html", Reason: err.Error()}
	}
	return doc, nil
}

// resolve turns an author href into an absolute URL on the origin. Links that
// leave the origin are rejected.
func (p *PageFetcher) resolve(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", quote.NewParseErrorWithReason(authorLinkSelector, "malformed author link "+href)
	}

	if ref.Scheme != "" || ref.Host != "" {
		if ref.Scheme != p.origin.Scheme || ref.Host != p.origin.Host {
			return "", quote.NewParseErrorWithReason(authorLinkSelector, "author link points off origin: "+href)
		}
		return ref.String(), nil
	}

	return p.origin.String() + "/" + strings.TrimPrefix(href, "/"), nil
}

func withURL(err error, target string) error {
	var pe *quote.ParseError
	if errors.As(err, &pe) && pe.URL == "" {
		pe.URL = target
	}
	return err
}
