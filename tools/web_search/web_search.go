package web_search

import (
	"context"
	"errors"

	"github.com/mohammad-safakhou/briefer/tools/web_search/brave"
	"github.com/mohammad-safakhou/briefer/tools/web_search/local"
	"github.com/mohammad-safakhou/briefer/tools/web_search/models"
	"github.com/mohammad-safakhou/briefer/tools/web_search/serper"
)

// Searcher is the web search capability used by the evidence collector.
// Implementations return at most k hits; a provider that is completely down
// returns an error the caller absorbs into an empty evidence list.
type Searcher interface {
	Search(ctx context.Context, q string, k int, domains []string) ([]models.Hit, error)
}

type Provider string

const (
	SerperProvider Provider = "serper"
	BraveProvider  Provider = "brave"
	LocalProvider  Provider = "local"
)

var ErrUnsupportedProvider = errors.New("unsupported search provider")

// NewSearcher builds a searcher for the configured provider. corpusPath is
// only consulted by the local provider.
func NewSearcher(provider Provider, apiKey, corpusPath string) (Searcher, error) {
	switch provider {
	case SerperProvider:
		return serper.Search{ApiKey: apiKey}, nil
	case BraveProvider:
		return brave.Search{ApiKey: apiKey}, nil
	case LocalProvider:
		return local.New(corpusPath)
	default:
		return nil, ErrUnsupportedProvider
	}
}
