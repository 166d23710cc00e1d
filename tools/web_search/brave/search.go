package brave

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mohammad-safakhou/briefer/tools/web_search/models"
	"github.com/mohammad-safakhou/briefer/utils"
)

type Search struct {
	ApiKey string
}

func (s Search) Search(ctx context.Context, q string, k int, domains []string) ([]models.Hit, error) {
	// https://api.search.brave.com/app/documentation/web-search
	query := q
	if len(domains) > 0 {
		sites := make([]string, 0, len(domains))
		for _, d := range domains {
			sites = append(sites, "site:"+d)
		}
		query = q + " " + strings.Join(sites, " OR ")
	}
	url := fmt.Sprintf("https://api.search.brave.com/res/v1/web/search?q=%s&count=%d", utils.UrlQuery(query), k)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", s.ApiKey)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var raw struct {
		Web struct {
			Results []struct {
				Title   string `json:"title"`
				URL     string `json:"url"`
				Snippet string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	var out []models.Hit
	for i, r := range raw.Web.Results {
		if i >= k {
			break
		}
		sum := sha1.Sum([]byte(r.URL))
		out = append(out, models.Hit{
			ID:      hex.EncodeToString(sum[:])[:12],
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Snippet,
			Domain:  utils.Domain(r.URL),
			Score:   1.0 - float64(i)*0.05,
		})
	}
	return out, nil
}
