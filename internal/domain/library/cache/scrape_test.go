package cache

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"quotenest/internal/domain/library/toscrape"
	"quotenest/internal/domain/quote"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quoteBlock = `<div class="quote"><span class="text">%s</span>
<span>by <small class="author">%s</small> <a href="/author/%s">(about)</a></span></div>`

const authorPage = `<html><body><span class="author-born-date">%s</span>
<span class="author-born-location">%s</span></body></html>`

// quoteSite is a two page copy of the quote site served over HTTP.
type quoteSite struct {
	server   *httptest.Server
	requests atomic.Int32
}

func newQuoteSite(t *testing.T, pageOne string) *quoteSite {
	t.Helper()
	site := &quoteSite{}

	pages := map[string]string{
		"/page/1/": pageOne,
		"/page/2/": "<html><body>" +
			fmt.Sprintf(quoteBlock, "“Try not to become a man of success.”", "Albert Einstein", "Albert-Einstein") +
			"</body></html>",
		"/author/Albert-Einstein": fmt.Sprintf(authorPage, "March 14, 1879", "in Ulm, Germany"),
		"/author/Jane-Austen":     fmt.Sprintf(authorPage, "December 16, 1775", "in Steventon Rectory, Hampshire, The United Kingdom"),
	}

	site.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		site.requests.Add(1)
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(site.server.Close)

	return site
}

func validPageOne() string {
	return "<html><body>" +
		fmt.Sprintf(quoteBlock, "“The world as we have created it is a process of our thinking.”", "Albert Einstein", "Albert-Einstein") +
		fmt.Sprintf(quoteBlock, "“The person, be it gentleman or lady, who has not pleasure in a good novel, must be intolerably stupid.”", "Jane Austen", "Jane-Austen") +
		`<ul class="pager"><li class="next"><a href="/page/2/">Next</a></li></ul></body></html>`
}

func newSiteCache(t *testing.T, site *quoteSite) *Cache {
	t.Helper()
	logger, _ := test.NewNullLogger()
	fetcher := toscrape.NewCollyFetcher("quotenest-test", 5*time.Second, logger)
	pages, err := toscrape.NewPageFetcher(site.server.URL, fetcher, logger)
	require.NoError(t, err)
	return New(t.TempDir(), pages, logger)
}

func TestLoadOrBuild_EndToEnd(t *testing.T) {
	site := newQuoteSite(t, validPageOne())
	c := newSiteCache(t, site)

	ds, err := c.LoadOrBuild(context.Background())
	require.NoError(t, err)

	require.Equal(t, 3, ds.Len())
	assert.Equal(t, "Albert Einstein", ds.At(0).Author)
	assert.Equal(t, "Jane Austen", ds.At(1).Author)
	assert.Equal(t, "“Try not to become a man of success.”", ds.At(2).Text)
	assert.Equal(t, "Author was born in Steventon Rectory, Hampshire, The United Kingdom on December 16, 1775.", ds.At(1).BirthDetail)

	// two listing pages plus one author page per quote
	assert.Equal(t, int32(5), site.requests.Load())

	raw, err := os.ReadFile(c.Path())
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimRight(string(raw), "\n"), "\n"), 4)

	again, err := c.LoadOrBuild(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ds.Records(), again.Records())
	assert.Equal(t, int32(5), site.requests.Load(), "a cached load must not touch the network")
}

func TestLoadOrBuild_EndToEndMissingAuthor(t *testing.T) {
	broken := "<html><body>" +
		`<div class="quote"><span class="text">“orphan”</span><span>by <a href="/author/Albert-Einstein">(about)</a></span></div>` +
		`<ul class="pager"><li class="next"><a href="/page/2/">Next</a></li></ul></body></html>`
	site := newQuoteSite(t, broken)
	c := newSiteCache(t, site)

	_, err := c.LoadOrBuild(context.Background())
	require.Error(t, err)
	assert.True(t, quote.IsParse(err))

	info, err := c.Info()
	require.NoError(t, err)
	assert.False(t, info.Exists)
}
