package readability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const articleHTML = `<!DOCTYPE html>
<html><head><title>Coffee Study</title></head>
<body><article>
<h1>Coffee Study</h1>
<p>A large cohort study found that moderate coffee consumption is not associated with increased mortality.
Researchers followed participants for ten years and adjusted for smoking and diet.</p>
<p>The effect held across age groups, although heavy consumption showed mixed results in some subgroups.</p>
</article></body></html>`

func TestScrapeExtractsArticle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	f := &Fetch{Timeout: 5 * time.Second, MaxChars: 20000}
	page, err := f.Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", page.Status)
	}
	if !strings.Contains(page.Text, "cohort study") {
		t.Fatalf("article text not extracted: %q", page.Text)
	}
	if page.Title == "" {
		t.Fatalf("expected a title")
	}
}

func TestScrapeCapsText(t *testing.T) {
	long := `<html><head><title>Long</title></head><body><article><p>` +
		strings.Repeat("Sentence with words. ", 500) + `</p></article></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(long))
	}))
	defer srv.Close()

	f := &Fetch{Timeout: 5 * time.Second, MaxChars: 100}
	page, err := f.Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Text) > 100 {
		t.Fatalf("text not capped: %d chars", len(page.Text))
	}
}

func TestScrapeUnreachableHostDegrades(t *testing.T) {
	f := &Fetch{Timeout: time.Second, MaxChars: 1000}
	page, err := f.Scrape(context.Background(), "http://127.0.0.1:1/missing")
	if err != nil {
		t.Fatalf("unreachable host must degrade, not fail: %v", err)
	}
	if page.Text != "" {
		t.Fatalf("degraded page must have empty text, got %q", page.Text)
	}
	if page.Title != "http://127.0.0.1:1/missing" {
		t.Fatalf("degraded page title must echo the url, got %q", page.Title)
	}
}

func TestScrapeEmptyURL(t *testing.T) {
	f := &Fetch{Timeout: time.Second}
	if _, err := f.Scrape(context.Background(), "  "); err == nil {
		t.Fatalf("expected an error for an empty url")
	}
}
