package narrative

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// GenAIOption applies a configuration option to the GenAIGenerator.
type GenAIOption func(*genaiSettings)

type genaiSettings struct {
	model     string
	baseURL   string
	perMinute int
}

// WithModel selects the generative model.
func WithModel(model string) GenAIOption {
	return func(s *genaiSettings) {
		if model != "" {
			s.model = model
		}
	}
}

// WithBaseURL points the client at a different endpoint, e.g. a proxy.
func WithBaseURL(url string) GenAIOption {
	return func(s *genaiSettings) {
		s.baseURL = url
	}
}

// WithRatePerMinute caps outbound calls. Zero or less means unlimited.
func WithRatePerMinute(n int) GenAIOption {
	return func(s *genaiSettings) {
		s.perMinute = n
	}
}

// GenAIGenerator implements Generator on the Gemini API.
type GenAIGenerator struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
}

// NewGenAIGenerator creates a Gemini-backed generator.
func NewGenAIGenerator(ctx context.Context, apiKey string, opts ...GenAIOption) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	s := genaiSettings{model: DefaultModel}
	for _, opt := range opts {
		opt(&s)
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if s.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: s.baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if s.perMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMinute)), s.perMinute)
	}
	return &GenAIGenerator{client: client, model: s.model, limiter: limiter}, nil
}

// Model returns the configured model name.
func (g *GenAIGenerator) Model() string { return g.model }

// Generate sends one prompt, with an optional inline image, and returns the response text.
func (g *GenAIGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	parts := make([]*genai.Part, 0, 2)
	if len(req.Image) > 0 {
		parts = append(parts, genai.NewPartFromBytes(req.Image, req.ImageMIME))
	}
	parts = append(parts, genai.NewPartFromText(req.Prompt))
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var cfg *genai.GenerateContentConfig
	if req.JSON {
		cfg = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("genai %s: %w", req.Kind, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
