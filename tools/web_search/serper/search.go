package serper

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mohammad-safakhou/briefer/tools/web_search/models"
	"github.com/mohammad-safakhou/briefer/utils"
)

type Search struct {
	ApiKey string
}

func (s Search) Search(ctx context.Context, q string, k int, domains []string) ([]models.Hit, error) {
	// https://serper.dev/ docs
	payload := map[string]any{"q": q, "num": k}
	if len(domains) > 0 {
		sites := make([]string, 0, len(domains))
		for _, d := range domains {
			sites = append(sites, "site:"+d)
		}
		payload["q"] = q + " " + strings.Join(sites, " OR ")
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", "https://google.serper.dev/search", strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", s.ApiKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	var out []models.Hit
	if items, ok := raw["organic"].([]any); ok {
		for i, it := range items {
			if i >= k {
				break
			}
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			link := utils.Str(m["link"])
			out = append(out, models.Hit{
				ID:      hitID(link),
				Title:   utils.Str(m["title"]),
				URL:     link,
				Snippet: utils.Str(m["snippet"]),
				Domain:  utils.Domain(link),
				Score:   1.0 - float64(i)*0.05,
			})
		}
	}
	return out, nil
}

func hitID(url string) string {
	sum := sha1.Sum([]byte(url))
	return hex.EncodeToString(sum[:])[:12]
}
