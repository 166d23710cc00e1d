package chromedp

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	goreadability "github.com/go-shiori/go-readability"
	"github.com/mohammad-safakhou/briefer/tools/web_fetch/models"
)

// Fetch renders a page in headless Chrome before extraction. Slower than the
// readability fetcher but handles JS-heavy sites.
type Fetch struct {
	Timeout  time.Duration
	MaxChars int
}

func (f *Fetch) Scrape(ctx context.Context, rawURL string) (models.Page, error) {
	if strings.TrimSpace(rawURL) == "" {
		return models.Page{}, errors.New("invalid url")
	}

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()
	t0 := time.Now()

	html, err := fetchHTML(ctx, rawURL)
	if err != nil {
		return models.Page{URL: rawURL, Title: rawURL, Status: 599, RenderMS: int(time.Since(t0) / time.Millisecond)}, nil
	}

	article, err := goreadability.FromReader(strings.NewReader(html), mustParseURL(rawURL))
	if err != nil {
		return models.Page{URL: rawURL, Title: rawURL, Status: 200, RenderMS: int(time.Since(t0) / time.Millisecond)}, nil
	}
	text := strings.TrimSpace(article.TextContent)
	if f.MaxChars > 0 && len(text) > f.MaxChars {
		text = text[:f.MaxChars]
	}
	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = rawURL
	}

	return models.Page{
		URL:      rawURL,
		Title:    title,
		Text:     text,
		Status:   200,
		RenderMS: int(time.Since(t0) / time.Millisecond),
	}, nil
}

func fetchHTML(ctx context.Context, url string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.UserAgent("briefer/1.0 (+contact@example.com)"),
	)
	actx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	bctx, cancelBrowser := chromedp.NewContext(actx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(bctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	return html, err
}

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}
