package models

// Page is the flat record a fetcher returns for a scraped URL. A failed fetch
// yields {Title: url, Text: ""} so callers never need to branch on errors.
type Page struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Status   int    `json:"status"`
	RenderMS int    `json:"render_ms"`
}
