package search

import (
	"context"
	"fmt"

	"github.com/delimatsuo/headhunter/internal/trajectory"
)

// SpecialtyClassifier guesses the engineering specialty a query targets.
// It is auxiliary: the pipeline runs without it and a failure only costs
// ranking quality on the specialty-match signal.
type SpecialtyClassifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// KeywordClassifier reuses the trajectory function buckets over the raw
// query text. Local and deterministic; an LLM classifier can be swapped in
// behind the same interface without touching the executor.
type KeywordClassifier struct{}

func (KeywordClassifier) Classify(_ context.Context, text string) (string, error) {
	bucket := trajectory.ClassifyFunction(text)
	if bucket == trajectory.FunctionGeneral {
		return "", fmt.Errorf("no specialty keywords in query")
	}
	return string(bucket), nil
}
