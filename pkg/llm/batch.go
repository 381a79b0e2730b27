package llm

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// GenerateAll runs GenerateText for every prompt against the same model, with
// at most limit calls in flight. Results are returned in prompt order. The
// first failure cancels the remaining calls and is returned.
func GenerateAll(ctx context.Context, model LanguageModel, prompts []string, limit int) ([]string, error) {
	results := make([]string, len(prompts))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, prompt := range prompts {
		g.Go(func() error {
			text, err := model.GenerateText(ctx, prompt)
			if err != nil {
				return fmt.Errorf("prompt %d: %w", i+1, err)
			}
			results[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
