package imagegen

import "context"

// Generator produces a single derived image for a prompt and returns the
// URL of the generated artifact.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
