// Package narrative turns structured summaries into coaching text through an
// external generative model.
//
// The Gateway is the only entry point used by the rest of the service. It never
// returns an error: any failure of the underlying Generator degrades to a fixed
// fallback value.
package narrative

import (
	"context"
)

// Request kinds, used for metrics and logs.
const (
	KindDashboard = "dashboard"
	KindInjury    = "injury"
	KindDiet      = "diet"
	KindFinance   = "finance"
	KindPractice  = "practice"
)

// Request is one call to the generative model.
type Request struct {
	Kind   string
	Prompt string
	// JSON asks the model for an application/json response.
	JSON bool
	// Image is an optional inline image sent before the prompt.
	Image     []byte
	ImageMIME string
}

// Generator is the opaque text/vision collaborator.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
