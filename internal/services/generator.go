package services

import (
	"context"
	"time"
)

// TextGenerator is the AI text function: a system instruction and a user
// document in, one blob of text out. ai.Client satisfies it.
type TextGenerator interface {
	Configured() bool
	Generate(ctx context.Context, system, user string) (string, error)
}

func generatorReady(g TextGenerator) bool {
	return g != nil && g.Configured()
}

// generate calls g under timeout. A timeout surfaces as the context error.
func generate(ctx context.Context, g TextGenerator, timeout time.Duration, system, user string) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return g.Generate(ctx, system, user)
}
