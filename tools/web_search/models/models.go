package models

// Hit is a single search result candidate handed to the evidence collector.
type Hit struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Snippet string  `json:"snippet"`
	Domain  string  `json:"domain"`
	Score   float64 `json:"score"`
}
