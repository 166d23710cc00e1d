package provider

import (
	"context"
	"errors"

	"github.com/mohammad-safakhou/briefer/config"
	openai_provider "github.com/mohammad-safakhou/briefer/provider/openai"
)

// Stance is a claim-vs-evidence judgment produced by the claim analysis
// capability.
type Stance struct {
	Support float64 `json:"support"` // 0.0 - 1.0
	Stance  string  `json:"stance"`  // supports, contradicts, mixed
	Note    string  `json:"note"`
}

// LLM is the generative capability the pipeline depends on. Implementations
// never panic; when no real provider is configured the mock returns
// deterministic output so the pipeline keeps working offline.
type LLM interface {
	// Available reports whether a real provider backs this client.
	Available() bool

	// Summarize produces a short free-form completion for the prompt.
	Summarize(ctx context.Context, prompt string, maxTokens int) (string, error)

	// AnalyzeClaims judges how well the evidence snippets support the claim.
	AnalyzeClaims(ctx context.Context, claim string, snippets []string) (Stance, error)
}

// ErrUnavailable signals that no real provider is configured. Callers treat it
// as a cue to degrade, never as a fatal error.
var ErrUnavailable = errors.New("llm provider not available")

// NewLLM builds the configured LLM client, falling back to the deterministic
// mock when no API key is present.
func NewLLM(cfg config.LLMConfig) LLM {
	if cfg.APIKey == "" {
		return Mock{}
	}
	return openaiClient{inner: openai_provider.NewClient(cfg.APIKey, cfg.Model, cfg.Temperature, cfg.Timeout)}
}

// openaiClient adapts the openai package to the LLM interface, converting its
// stance record into the shared Stance type.
type openaiClient struct {
	inner *openai_provider.Client
}

func (c openaiClient) Available() bool { return true }

func (c openaiClient) Summarize(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return c.inner.Complete(ctx, prompt, maxTokens)
}

func (c openaiClient) AnalyzeClaims(ctx context.Context, claim string, snippets []string) (Stance, error) {
	res, err := c.inner.AnalyzeClaims(ctx, claim, snippets)
	if err != nil {
		return Stance{}, err
	}
	return Stance{Support: res.Support, Stance: res.Stance, Note: res.Note}, nil
}
