package toscrape

import (
	"fmt"
	"strings"
)

type fixtureQuote struct {
	text   string
	author string
	href   string
}

func listingHTML(hasNext bool, quotes ...fixtureQuote) string {
	var b strings.Builder
	b.WriteString(`<html><head><title>Quotes to Scrape</title></head><body><div class="container"><div class="col-md-8">`)
	for _, q := range quotes {
		fmt.Fprintf(&b, `<div class="quote" itemscope itemtype="http://schema.org/CreativeWork">
<span class="text" itemprop="text">%s</span>
<span>by <small class="author" itemprop="author">%s</small>
<a href="%s">(about)</a></span>
<div class="tags">Tags: <a class="tag" href="/tag/life/page/1/">life</a></div>
</div>`, q.text, q.author, q.href)
	}
	b.WriteString(`<nav><ul class="pager">`)
	if hasNext {
		b.WriteString(`<li class="next"><a href="/page/2/">Next <span aria-hidden="true">&rarr;</span></a></li>`)
	}
	b.WriteString(`</ul></nav></div></div></body></html>`)
	return b.String()
}

func authorHTML(place, date string) string {
	return fmt.Sprintf(`<html><body><div class="container"><div class="author-details">
<h3 class="author-title">Someone</h3>
<p><strong>Born:</strong> <span class="author-born-date">%s</span> <span class="author-born-location">%s</span></p>
<div class="author-description">A description.</div>
</div></div></body></html>`, date, place)
}
