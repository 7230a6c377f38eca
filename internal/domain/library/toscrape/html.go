package toscrape

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// Element is the lookup surface the parsers need from an HTML document.
// Lookups are CSS selectors and results come back in document order.
type Element interface {
	// Find returns every descendant matching selector.
	Find(selector string) []Element
	// First returns the first descendant matching selector.
	First(selector string) (Element, bool)
	// Following returns the first element after this one in document order,
	// descendants included, that matches selector. The search stays inside the
	// element this one was found from.
	Following(selector string) (Element, bool)
	Text() string
	Attr(name string) (string, bool)
}

// ParseHTML parses r into a goquery backed Element rooted at the document.
func ParseHTML(r io.Reader) (Element, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &selection{sel: doc.Selection, scope: doc.Selection}, nil
}

type selection struct {
	sel   *goquery.Selection
	scope *goquery.Selection
}

func (s *selection) Find(selector string) []Element {
	found := s.sel.Find(selector)
	out := make([]Element, 0, found.Length())
	found.Each(func(_ int, m *goquery.Selection) {
		out = append(out, &selection{sel: m, scope: s.sel})
	})
	return out
}

func (s *selection) First(selector string) (Element, bool) {
	found := s.sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, false
	}
	return &selection{sel: found, scope: s.sel}, true
}

func (s *selection) Following(selector string) (Element, bool) {
	self := s.sel.Get(0)
	passed := false
	var match *goquery.Selection

	s.scope.Find("*").EachWithBreak(func(_ int, m *goquery.Selection) bool {
		if !passed {
			passed = m.Get(0) == self
			return true
		}
		if m.Is(selector) {
			match = m
			return false
		}
		return true
	})

	if match == nil {
		return nil, false
	}
	return &selection{sel: match, scope: s.scope}, true
}

func (s *selection) Text() string {
	return s.sel.Text()
}

func (s *selection) Attr(name string) (string, bool) {
	return s.sel.Attr(name)
}
