package web_fetch

import (
	"context"
	"errors"
	"time"

	cdpfetch "github.com/mohammad-safakhou/briefer/tools/web_fetch/chromedp"
	"github.com/mohammad-safakhou/briefer/tools/web_fetch/models"
	"github.com/mohammad-safakhou/briefer/tools/web_fetch/readability"
)

const (
	DefaultTimeout  = 15 * time.Second
	MaxCharsDefault = 20000
)

// Scraper fetches a URL and returns a title/text record. Implementations must
// not panic; a failed fetch returns the degraded Page, not an error, unless
// the URL itself is unusable.
type Scraper interface {
	Scrape(ctx context.Context, url string) (models.Page, error)
}

type FetcherType string

const (
	ReadabilityFetcherType FetcherType = "readability"
	ChromedpFetcherType    FetcherType = "chromedp"
)

var ErrUnsupportedFetcher = errors.New("unsupported fetcher type")

func NewScraper(fetcherType FetcherType, timeout time.Duration, maxChars int) (Scraper, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxChars <= 0 {
		maxChars = MaxCharsDefault
	}

	switch fetcherType {
	case ReadabilityFetcherType:
		return &readability.Fetch{Timeout: timeout, MaxChars: maxChars}, nil
	case ChromedpFetcherType:
		return &cdpfetch.Fetch{Timeout: timeout, MaxChars: maxChars}, nil
	default:
		return nil, ErrUnsupportedFetcher
	}
}
