package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mohammad-safakhou/briefer/utils"
)

// Collector executes one plan task and produces raw, unscored evidence. Every
// external failure is absorbed: the worst case is an empty list, never an
// error.
type Collector struct {
	search         Searcher
	scraper        Scraper
	analyst        *Analyst
	domainFilter   []string
	maxTaskResults int
	logger         *log.Logger
}

func NewCollector(search Searcher, scraper Scraper, analyst *Analyst, domainFilter []string, maxTaskResults int) *Collector {
	if maxTaskResults <= 0 {
		maxTaskResults = 4
	}
	return &Collector{
		search:         search,
		scraper:        scraper,
		analyst:        analyst,
		domainFilter:   domainFilter,
		maxTaskResults: maxTaskResults,
		logger:         log.New(log.Writer(), "[COLLECT] ", log.LstdFlags),
	}
}

// Collect gathers raw evidence for the task. Search tasks run
// search -> scrape; non-search tasks run the analyst over a synthetic article
// built from the run query and the task prompt.
func (c *Collector) Collect(ctx context.Context, task Task, query string, topN int) []EvidenceItem {
	if task.RequiresSearch {
		return c.searchAndScrape(ctx, task.Prompt, topN)
	}
	return c.analyzePrompt(ctx, task, query)
}

func (c *Collector) searchAndScrape(ctx context.Context, prompt string, topN int) []EvidenceItem {
	hits, err := c.search.Search(ctx, prompt, topN, c.domainFilter)
	if err != nil {
		c.logger.Printf("search failed for %q: %v", prompt, err)
		return nil
	}

	var out []EvidenceItem
	seen := make(map[string]bool, len(hits))
	for _, hit := range hits {
		url := strings.TrimSpace(hit.URL)
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true

		page, err := c.scraper.Scrape(ctx, url)
		if err != nil {
			c.logger.Printf("scrape failed for %s: %v", url, err)
			continue
		}

		snippet := hit.Snippet
		if snippet == "" {
			snippet = page.Text
			if len(snippet) > snippetBudget {
				snippet = snippet[:snippetBudget]
			}
		}

		sourceID := hit.ID
		if sourceID == "" {
			sourceID = hashText(url)
		}
		title := hit.Title
		if title == "" {
			title = page.Title
		}
		domain := hit.Domain
		if domain == "" {
			domain = utils.Domain(url)
		}
		score := hit.Score
		if score == 0 {
			score = 1.0
		}

		out = append(out, EvidenceItem{
			SourceID: sourceID,
			URL:      url,
			Title:    title,
			Snippet:  normText(snippet, snippetBudget),
			Text:     page.Text,
			Domain:   domain,
			Score:    score,
		})
	}
	return out
}

// analyzePrompt turns analyst snippets into internally-sourced evidence with a
// fixed retrieval score.
func (c *Collector) analyzePrompt(ctx context.Context, task Task, query string) []EvidenceItem {
	analysis := c.analyst.Analyze(ctx, Article{Title: query, Text: task.Prompt})

	var out []EvidenceItem
	for i, sn := range analysis.Snippets {
		if i >= c.maxTaskResults {
			break
		}
		out = append(out, EvidenceItem{
			SourceID: fmt.Sprintf("internal-%s-%d", task.ID, i),
			URL:      "",
			Title:    task.Prompt,
			Snippet:  normText(sn, snippetBudget),
			Text:     sn,
			Domain:   "internal",
			Score:    0.8,
		})
	}
	return out
}
