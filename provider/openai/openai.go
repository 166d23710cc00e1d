package openai_provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const openaiAPIURL = "https://api.openai.com/v1/chat/completions"

// Client talks to the OpenAI chat completions API. It exposes exactly one
// response shape to callers: a plain string or an error.
type Client struct {
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
}

// Message represents a message in a conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// StanceResult is the parsed output of AnalyzeClaims.
type StanceResult struct {
	Support float64 `json:"support"`
	Stance  string  `json:"stance"`
	Note    string  `json:"note"`
}

// NewClient creates a new OpenAI client
func NewClient(apiKey, model string, temperature float64, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Complete sends a single-user-message completion request and returns the
// model's text.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	messages := []Message{{Role: "user", Content: prompt}}
	return c.sendRequest(ctx, messages, maxTokens)
}

// AnalyzeClaims asks the model whether the evidence supports the claim and
// parses the JSON verdict. A reply without parseable JSON degrades to a mixed
// stance carrying the raw reply as the note.
func (c *Client) AnalyzeClaims(ctx context.Context, claim string, snippets []string) (StanceResult, error) {
	system := "You are an evidence synthesizer. Given a brief Claim and several evidence snippets, " +
		"decide how well the evidence supports the claim. RETURN A JSON OBJECT with keys: " +
		"\"support\" (0.0-1.0), \"stance\" (one of 'supports','contradicts','mixed'), and \"note\" (a one-sentence explanation)."

	var sb strings.Builder
	fmt.Fprintf(&sb, "Claim: %s\n\nEvidence:\n", claim)
	for i, s := range snippets {
		if i >= 8 {
			break
		}
		if len(s) > 800 {
			s = s[:800]
		}
		fmt.Fprintf(&sb, "- %s\n", s)
	}
	sb.WriteString("\nReturn JSON only.")

	messages := []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: sb.String()},
	}
	raw, err := c.sendRequest(ctx, messages, 200)
	if err != nil {
		return StanceResult{}, err
	}

	jsonStr := extractJSONObject(raw)
	if jsonStr == "" {
		return StanceResult{Support: 0.5, Stance: "mixed", Note: strings.TrimSpace(raw)}, nil
	}
	var out StanceResult
	if err := json.Unmarshal([]byte(jsonStr), &out); err != nil {
		return StanceResult{Support: 0.5, Stance: "mixed", Note: strings.TrimSpace(raw)}, nil
	}
	if out.Support < 0 {
		out.Support = 0
	}
	if out.Support > 1 {
		out.Support = 1
	}
	if out.Stance == "" {
		out.Stance = "mixed"
	}
	return out, nil
}

// sendRequest sends a request to the OpenAI API
func (c *Client) sendRequest(ctx context.Context, messages []Message, maxTokens int) (string, error) {
	requestBody := request{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   maxTokens,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", openaiAPIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status: %d", resp.StatusCode)
	}

	var openaiResp response
	if err := json.NewDecoder(resp.Body).Decode(&openaiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(openaiResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(openaiResp.Choices[0].Message.Content), nil
}

// extractJSONObject returns the first balanced brace-delimited substring, or
// "" when the text contains none.
func extractJSONObject(text string) string {
	start := -1
	depth := 0
	for i, ch := range text {
		if ch == '{' {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == '}' {
			if depth > 0 {
				depth--
			}
			if depth == 0 && start != -1 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
