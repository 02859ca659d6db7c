package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// EmbeddingProvider produces the query vector for semantic retrieval.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// PreSearchResult carries everything the pipeline needs before retrieval
// can start. Specialty is empty when classification failed or found
// nothing; the embedding is always present on success.
type PreSearchResult struct {
	Embedding []float32
	Specialty string
}

// PreSearchExecutor runs the pre-retrieval tasks concurrently: query
// embedding (required) and specialty classification (best-effort). The
// join waits for every task so no goroutine outlives the request, and
// each outcome is recorded before the verdict is decided.
type PreSearchExecutor struct {
	embedder   EmbeddingProvider
	classifier SpecialtyClassifier
}

func NewPreSearchExecutor(embedder EmbeddingProvider, classifier SpecialtyClassifier) *PreSearchExecutor {
	return &PreSearchExecutor{embedder: embedder, classifier: classifier}
}

// Run executes both tasks and joins. Embedding failure fails the whole
// pre-search; classifier failure degrades to an empty specialty.
func (e *PreSearchExecutor) Run(ctx context.Context, queryText string) (PreSearchResult, error) {
	start := time.Now()

	type embedOutcome struct {
		vector []float32
		err    error
	}
	type classifyOutcome struct {
		specialty string
		err       error
	}

	embedCh := make(chan embedOutcome, 1)
	classifyCh := make(chan classifyOutcome, 1)

	go func() {
		vector, err := e.embedder.Embed(ctx, queryText)
		embedCh <- embedOutcome{vector: vector, err: err}
	}()
	go func() {
		if e.classifier == nil {
			classifyCh <- classifyOutcome{}
			return
		}
		specialty, err := e.classifier.Classify(ctx, queryText)
		classifyCh <- classifyOutcome{specialty: specialty, err: err}
	}()

	embed := <-embedCh
	classify := <-classifyCh

	if classify.err != nil {
		slog.DebugContext(ctx, "specialty classification unavailable", "error", classify.err)
	}

	if embed.err != nil {
		return PreSearchResult{}, fmt.Errorf("query embedding: %w", embed.err)
	}

	slog.DebugContext(ctx, "pre-search completed",
		"duration_ms", time.Since(start).Milliseconds(),
		"specialty", classify.specialty,
		"embedding_dims", len(embed.vector))

	return PreSearchResult{Embedding: embed.vector, Specialty: classify.specialty}, nil
}
