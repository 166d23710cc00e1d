package readability

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	goreadability "github.com/go-shiori/go-readability"
	"github.com/mohammad-safakhou/briefer/tools/web_fetch/models"
)

// Fetch pulls a page over plain HTTP and extracts the readable article text.
// The default scraper; cheap and good enough for server-rendered pages.
type Fetch struct {
	Timeout  time.Duration
	MaxChars int
	Client   *http.Client
}

func (f *Fetch) Scrape(ctx context.Context, rawURL string) (models.Page, error) {
	if strings.TrimSpace(rawURL) == "" {
		return models.Page{}, errors.New("invalid url")
	}

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()
	t0 := time.Now()

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return degraded(rawURL, 0, t0), nil
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; briefer/1.0)")

	resp, err := client.Do(req)
	if err != nil {
		return degraded(rawURL, 599, t0), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return degraded(rawURL, resp.StatusCode, t0), nil
	}

	article, err := goreadability.FromReader(strings.NewReader(string(body)), mustParseURL(rawURL))
	if err != nil {
		return degraded(rawURL, resp.StatusCode, t0), nil
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
		Status:   resp.StatusCode,
		RenderMS: int(time.Since(t0) / time.Millisecond),
	}, nil
}

func degraded(url string, status int, t0 time.Time) models.Page {
	return models.Page{URL: url, Title: url, Status: status, RenderMS: int(time.Since(t0) / time.Millisecond)}
}

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}
