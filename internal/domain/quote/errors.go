package quote

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrFetch indicates a transport or HTTP level failure against the quote site.
	ErrFetch = errors.New("fetch failed")

	// ErrParse indicates a page did not have the expected structure.
	ErrParse = errors.New("parse failed")

	// ErrStorageAbsent indicates no cached dataset exists yet.
	ErrStorageAbsent = errors.New("storage absent")
)

// FetchError provides context for fetch failures.
type FetchError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap exposes both the sentinel and the transport cause.
func (e *FetchError) Unwrap() []error {
	return []error{ErrFetch, e.Err}
}

// NewFetchError creates a fetch error for url.
func NewFetchError(url string, err error) error {
	return &FetchError{URL: url, Err: err}
}

// ParseError provides context for failed structural lookups.
type ParseError struct {
	URL      string
	Selector string
	Reason   string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "no matching element"
	}
	if e.URL != "" {
		return fmt.Sprintf("parse %s: %s: %s", e.URL, e.Selector, reason)
	}
	return fmt.Sprintf("parse: %s: %s", e.Selector, reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ParseError) Unwrap() error {
	return ErrParse
}

// NewParseError creates a parse error for a selector with no match.
func NewParseError(selector string) error {
	return &ParseError{Selector: selector}
}

// NewParseErrorWithReason creates a parse error carrying a reason other than a missing match.
func NewParseErrorWithReason(selector, reason string) error {
	return &ParseError{Selector: selector, Reason: reason}
}

// IsFetch checks if an error is a fetch error.
func IsFetch(err error) bool {
	return errors.Is(err, ErrFetch)
}

// IsParse checks if an error is a parse error.
func IsParse(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsStorageAbsent checks if an error reports a missing cache.
func IsStorageAbsent(err error) bool {
	return errors.Is(err, ErrStorageAbsent)
}
