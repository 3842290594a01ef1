package narrative

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/pkg/logger"
	"github.com/okian/stride/pkg/metrics"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultImageMIME = "image/jpeg"
	// recentSessions is how many logs the dashboard and injury prompts carry.
	recentSessions = 3
)

// Option applies a configuration option to the Gateway.
type Option func(*Gateway)

// WithTimeout bounds each generator call.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithLogger sets the logger fallbacks are reported to.
func WithLogger(l logger.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.log = l.Named("narrative")
		}
	}
}

// Gateway wraps a Generator with prompts, strict decoding and fallbacks.
type Gateway struct {
	gen     Generator
	timeout time.Duration
	log     logger.Logger
}

// NewGateway creates a Gateway. A nil generator always falls back.
func NewGateway(gen Generator, opts ...Option) *Gateway {
	g := &Gateway{
		gen:     gen,
		timeout: defaultTimeout,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Offline returns a Gateway without a generator.
func Offline(opts ...Option) *Gateway {
	return NewGateway(nil, opts...)
}

// Online reports whether a generator is configured.
func (g *Gateway) Online() bool {
	return g.gen != nil
}

// DashboardInsight narrates the last three sessions for the athlete.
func (g *Gateway) DashboardInsight(ctx context.Context, athlete string, logs []model.PerformanceLog) Insight {
	req := Request{Kind: KindDashboard, Prompt: dashboardPrompt(athlete, tail(logs)), JSON: true}
	v, err := call(ctx, g, req, decodeInsight)
	if err != nil {
		return FallbackInsight()
	}
	return v
}

// ExplainInjuryRisk explains a risk score and suggests three recovery tips.
func (g *Gateway) ExplainInjuryRisk(ctx context.Context, score float64, factors []string, logs []model.PerformanceLog) RiskExplanation {
	req := Request{Kind: KindInjury, Prompt: injuryPrompt(score, factors, tail(logs)), JSON: true}
	v, err := call(ctx, g, req, decodeRiskExplanation)
	if err != nil {
		return FallbackRiskExplanation()
	}
	return v
}

// AnalyzeDiet classifies the day's meals.
func (g *Gateway) AnalyzeDiet(ctx context.Context, logs []model.DietLog) model.DietAnalysis {
	req := Request{Kind: KindDiet, Prompt: dietPrompt(logs), JSON: true}
	v, err := call(ctx, g, req, decodeDietAnalysis)
	if err != nil {
		return FallbackDietAnalysis()
	}
	return v
}

// AdviseFinances summarizes spending and suggests savings.
func (g *Gateway) AdviseFinances(ctx context.Context, records []model.FinancialRecord) string {
	req := Request{Kind: KindFinance, Prompt: financePrompt(records)}
	v, err := call(ctx, g, req, decodeText)
	if err != nil {
		return FallbackFinanceAdvice
	}
	return v
}

// CritiquePracticeFrame critiques one camera frame. image is raw base64 or a data URL.
func (g *Gateway) CritiquePracticeFrame(ctx context.Context, image string) string {
	data, mime, err := DecodeImage(image)
	if err != nil {
		g.fallback(ctx, KindPractice, 0, err)
		return FallbackPracticeCritique
	}
	req := Request{Kind: KindPractice, Prompt: practicePrompt, Image: data, ImageMIME: mime}
	v, err := call(ctx, g, req, decodeText)
	if err != nil {
		return FallbackPracticeCritique
	}
	return v
}

// DecodeImage strips an optional data URL prefix and decodes the base64 payload.
// The MIME type comes from the prefix when it names an image, else image/jpeg.
func DecodeImage(image string) ([]byte, string, error) {
	image = strings.TrimSpace(image)
	mime := defaultImageMIME
	if header, payload, ok := strings.Cut(image, ","); ok {
		if m, found := strings.CutPrefix(header, "data:"); found {
			m, _, _ = strings.Cut(m, ";")
			if strings.HasPrefix(m, "image/") {
				mime = m
			}
		}
		image = payload
	}
	if image == "" {
		return nil, "", fmt.Errorf("%w: empty", ErrInvalidImage)
	}
	data, err := base64.StdEncoding.DecodeString(image)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	return data, mime, nil
}

// call runs one bounded generator call and decodes it. Any error means the
// caller must use its fallback; the error never travels further.
func call[T any](ctx context.Context, g *Gateway, req Request, decode func(string) (T, error)) (T, error) {
	var zero T
	start := time.Now()
	if g.gen == nil {
		g.fallback(ctx, req.Kind, 0, errors.New("no generator configured"))
		return zero, ErrNarrativeUnavailable
	}

	cctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.generate(cctx, req)
	if err == nil {
		var v T
		if v, err = decode(raw); err == nil {
			metrics.RecordNarrative(req.Kind, metrics.OutcomeOK, ms(time.Since(start)))
			return v, nil
		}
	}
	g.fallback(ctx, req.Kind, time.Since(start), err)
	return zero, fmt.Errorf("%w: %w", ErrNarrativeUnavailable, err)
}

// generate turns a generator panic into an error so the fallback applies.
func (g *Gateway) generate(ctx context.Context, req Request) (raw string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrGeneratorPanic, r)
		}
	}()
	return g.gen.Generate(ctx, req)
}

func (g *Gateway) fallback(ctx context.Context, kind string, elapsed time.Duration, cause error) {
	metrics.RecordNarrative(kind, metrics.OutcomeFallback, ms(elapsed))
	if g.gen == nil {
		g.log.Debug(ctx, "narrative offline, using fallback", logger.String("kind", kind))
		return
	}
	g.log.Warn(ctx, "narrative failed, using fallback",
		logger.String("kind", kind),
		logger.Duration("elapsed", elapsed),
		logger.Error(cause),
	)
}

func tail(logs []model.PerformanceLog) []model.PerformanceLog {
	if len(logs) > recentSessions {
		return logs[len(logs)-recentSessions:]
	}
	return logs
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

// decodeStrict decodes exactly one JSON value; trailing data is malformed.
func decodeStrict[T any](raw string) (T, error) {
	var v T
	dec := json.NewDecoder(strings.NewReader(raw))
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return v, fmt.Errorf("%w: trailing data", ErrMalformedResponse)
	}
	return v, nil
}

func decodeInsight(raw string) (Insight, error) {
	v, err := decodeStrict[Insight](raw)
	if err != nil {
		return Insight{}, err
	}
	if blank(v.Motivation) || blank(v.FocusArea) {
		return Insight{}, fmt.Errorf("%w: missing motivation or focusArea", ErrMalformedResponse)
	}
	return v, nil
}

func decodeRiskExplanation(raw string) (RiskExplanation, error) {
	v, err := decodeStrict[RiskExplanation](raw)
	if err != nil {
		return RiskExplanation{}, err
	}
	if blank(v.Explanation) || !allSet(v.Tips) {
		return RiskExplanation{}, fmt.Errorf("%w: missing explanation or tips", ErrMalformedResponse)
	}
	return v, nil
}

func decodeDietAnalysis(raw string) (model.DietAnalysis, error) {
	v, err := decodeStrict[model.DietAnalysis](raw)
	if err != nil {
		return model.DietAnalysis{}, err
	}
	if !v.Status.Valid() {
		return model.DietAnalysis{}, fmt.Errorf("%w: unknown diet status %q", ErrMalformedResponse, v.Status)
	}
	if blank(v.MacroBalance) || !allSet(v.Recommendations) {
		return model.DietAnalysis{}, fmt.Errorf("%w: missing macroBalance or recommendations", ErrMalformedResponse)
	}
	return v, nil
}

func decodeText(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyResponse
	}
	return raw, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func allSet(items []string) bool {
	if len(items) == 0 {
		return false
	}
	for _, s := range items {
		if blank(s) {
			return false
		}
	}
	return true
}

