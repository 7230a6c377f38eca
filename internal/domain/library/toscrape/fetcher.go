package toscrape

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

// Fetcher retrieves the raw body behind a URL.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// CollyFetcher implements Fetcher with a synchronous colly collector.
type CollyFetcher struct {
	collector *colly.Collector
	log       logrus.FieldLogger
}

// NewCollyFetcher creates a collector that may revisit URLs and treats any
// non-2xx response as an error.
func NewCollyFetcher(userAgent string, timeout time.Duration, log logrus.FieldLogger) *CollyFetcher {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(timeout)

	return &CollyFetcher{
		collector: c,
		log:       log,
	}
}

// Get visits url and blocks until the response has been received.
func (cf *CollyFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Clone shares the HTTP backend but not the callbacks, so each Get
	// captures only its own response.
	c := cf.collector.Clone()

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnError(func(r *colly.Response, err error) {
		cf.log.WithFields(logrus.Fields{
			"url":    r.Request.URL.String(),
			"status": r.StatusCode,
		}).WithError(err).Debug("Request failed")
	})

	if err := c.Visit(url); err != nil {
		return nil, fmt.Errorf("failed to visit URL: %w", err)
	}

	cf.log.WithFields(logrus.Fields{
		"url":   url,
		"bytes": len(body),
	}).Debug("Fetched page")

	return body, nil
}
