package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/delimatsuo/headhunter/internal/model"
)

// Retrieval methods. Each produces an independently ranked list which
// fusion later combines; neither method sees the other's scores.
const (
	MethodLexical = "lexical"
	MethodVector  = "vector"
)

// Hit is one ranked result from a single retrieval method. Rank is
// 1-based within that method's list. Similarity is only set for vector
// hits; lexical match scores are not comparable across methods and are
// deliberately not surfaced past fusion.
type Hit struct {
	CandidateID int64
	Rank        int
	Method      string
	Similarity  float64
	HasSim      bool
}

// Searcher is the search-backend surface the engine fans out over.
type Searcher interface {
	SearchLexical(ctx context.Context, query model.QueryContext, limit int) ([]Hit, error)
	SearchVector(ctx context.Context, vector []float32, filters map[string]string, limit int) ([]Hit, error)
}

// Engine runs both retrieval methods in parallel and fuses the ranked
// lists. One method failing degrades to single-method results; both
// failing is a hard error.
type Engine struct {
	searcher       Searcher
	perMethodLimit int
	rrfK           int
}

// NewEngine builds a retrieval engine. perMethodLimit caps each method's
// candidate list before fusion; rrfK is the rank-smoothing constant.
func NewEngine(searcher Searcher, perMethodLimit, rrfK int) *Engine {
	if perMethodLimit < 1 {
		perMethodLimit = 300
	}
	if rrfK < 1 {
		rrfK = 60
	}
	return &Engine{searcher: searcher, perMethodLimit: perMethodLimit, rrfK: rrfK}
}

// Retrieve fans out to lexical and vector search concurrently, then fuses
// the two ranked lists with reciprocal rank fusion. A nil vector skips the
// vector method entirely (embedding generation is a hard prerequisite
// upstream, but callers may run lexical-only searches).
func (e *Engine) Retrieve(ctx context.Context, query model.QueryContext, vector []float32) ([]FusedHit, error) {
	type methodResult struct {
		method string
		hits   []Hit
		err    error
	}

	methods := 1
	results := make(chan methodResult, 2)

	go func() {
		hits, err := e.searcher.SearchLexical(ctx, query, e.perMethodLimit)
		results <- methodResult{method: MethodLexical, hits: hits, err: err}
	}()

	if vector != nil {
		methods++
		go func() {
			hits, err := e.searcher.SearchVector(ctx, vector, query.Filters, e.perMethodLimit)
			results <- methodResult{method: MethodVector, hits: hits, err: err}
		}()
	}

	lists := make([][]Hit, 0, methods)
	var errs []error
	for i := 0; i < methods; i++ {
		select {
		case res := <-results:
			if res.err != nil {
				slog.WarnContext(ctx, "retrieval method failed, degrading",
					"method", res.method, "error", res.err)
				errs = append(errs, fmt.Errorf("%s: %w", res.method, res.err))
				continue
			}
			slog.DebugContext(ctx, "retrieval method completed",
				"method", res.method, "hits", len(res.hits))
			lists = append(lists, res.hits)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if len(lists) == 0 {
		return nil, fmt.Errorf("all retrieval methods failed: %v", errs)
	}

	return FuseRRF(e.rrfK, lists...), nil
}
