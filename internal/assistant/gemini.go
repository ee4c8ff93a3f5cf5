package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

var (
	ErrNoAPIKey = errors.New("assistant api key not configured")
	ErrNoReply  = errors.New("assistant returned no candidates")
	ErrRejected = errors.New("assistant request rejected")
)

type Part struct {
	Text string `json:"text"`
}

// Content is one turn of a conversation in the generateContent wire format.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

func textContent(role, text string) Content {
	return Content{Role: role, Parts: []Part{{Text: text}}}
}

type generateRequest struct {
	SystemInstruction *Content  `json:"systemInstruction,omitempty"`
	Contents          []Content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content Content `json:"content"`
	} `json:"candidates"`
}

// Generator produces one model reply for a conversation.
type Generator interface {
	Generate(ctx context.Context, system string, contents []Content) (string, error)
}

// Doer is the slice of httpclient.Client the Gemini client needs.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

type GeminiConfig struct {
	BaseURL string
	Model   string
	APIKey  string
	// RPS bounds outbound calls across all sessions.
	RPS float64
}

// Gemini calls the generateContent REST endpoint.
type Gemini struct {
	cfg     GeminiConfig
	http    Doer
	limiter *rate.Limiter
}

func NewGemini(cfg GeminiConfig, d Doer) *Gemini {
	burst := int(cfg.RPS)
	if burst < 1 {
		burst = 1
	}
	return &Gemini{cfg: cfg, http: d, limiter: rate.NewLimiter(rate.Limit(cfg.RPS), burst)}
}

func (g *Gemini) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", strings.TrimRight(g.cfg.BaseURL, "/"), g.cfg.Model)
}

func (g *Gemini) Generate(ctx context.Context, system string, contents []Content) (string, error) {
	if g.cfg.APIKey == "" {
		return "", ErrNoAPIKey
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("assistant throttle: %w", err)
	}

	body := generateRequest{Contents: contents}
	if system != "" {
		sys := textContent("", system)
		body.SystemInstruction = &sys
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.cfg.APIKey)

	resp, err := g.http.Do(ctx, req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: %d %s", ErrRejected, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	if len(out.Candidates) == 0 {
		return "", ErrNoReply
	}
	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}
