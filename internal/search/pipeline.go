package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/delimatsuo/headhunter/common/id"
	"github.com/delimatsuo/headhunter/internal/model"
	"github.com/delimatsuo/headhunter/internal/retrieval"
	"github.com/delimatsuo/headhunter/internal/scoring"
	"github.com/delimatsuo/headhunter/internal/store"
	"github.com/delimatsuo/headhunter/internal/trajectory"
)

// ErrInvalidQuery marks client-side input problems; the HTTP layer maps it
// to a 400 instead of a 500.
var ErrInvalidQuery = errors.New("invalid query")

// Config holds the funnel shape. Zero values fall back to defaults.
type Config struct {
	RetrievalLimit int           // post-fusion cap, default 500
	ScoringLimit   int           // stage-2 cutoff, default 100
	RerankLimit    int           // stage-3 cutoff, default 50
	RerankEnabled  bool          //
	RerankTimeout  time.Duration //
	StageLogging   bool          // emit the funnel summary line
}

func (c Config) withDefaults() Config {
	if c.RetrievalLimit < 1 {
		c.RetrievalLimit = 500
	}
	if c.ScoringLimit < 1 {
		c.ScoringLimit = 100
	}
	if c.RerankLimit < 1 {
		c.RerankLimit = 50
	}
	return c
}

// Retriever is the stage-1 surface; satisfied by *retrieval.Engine.
type Retriever interface {
	Retrieve(ctx context.Context, query model.QueryContext, vector []float32) ([]retrieval.FusedHit, error)
}

// Options are per-request flags, distinct from the deployment Config.
type Options struct {
	Debug            bool
	IncludeRationale bool
}

// Pipeline is the three-stage search funnel: fused retrieval, signal
// scoring, optional LLM rerank. Stages only ever narrow and reorder; no
// stage adds candidates, so counts are monotonically non-increasing
// through the funnel.
type Pipeline struct {
	presearch  *PreSearchExecutor
	retriever  Retriever
	candidates store.CandidateStore
	scorer     *scoring.Scorer
	reranker   *Reranker           // nil disables stage 3
	rationale  *RationaleGenerator // nil disables annotation
	cfg        Config
}

func NewPipeline(
	presearch *PreSearchExecutor,
	retriever Retriever,
	candidates store.CandidateStore,
	scorer *scoring.Scorer,
	reranker *Reranker,
	rationale *RationaleGenerator,
	cfg Config,
) *Pipeline {
	return &Pipeline{
		presearch:  presearch,
		retriever:  retriever,
		candidates: candidates,
		scorer:     scorer,
		reranker:   reranker,
		rationale:  rationale,
		cfg:        cfg.withDefaults(),
	}
}

// Search runs the full funnel for one query.
func (p *Pipeline) Search(ctx context.Context, query model.QueryContext, opts Options) (*model.SearchResponse, error) {
	if query.Text == "" {
		return nil, fmt.Errorf("%w: query text is required", ErrInvalidQuery)
	}

	weights, err := scoring.ResolveWeights(query.RoleType, query.WeightOverrides)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	searchID := id.New()
	metrics := &model.PipelineStageMetrics{}

	pre, err := p.presearch.Run(ctx, query.Text)
	if err != nil {
		return nil, fmt.Errorf("pre-search: %w", err)
	}
	if query.TargetSpecialty == "" {
		query.TargetSpecialty = pre.Specialty
	}

	// Stage 1: fused retrieval.
	stageStart := time.Now()
	fused, err := p.retriever.Retrieve(ctx, query, pre.Embedding)
	if err != nil {
		return nil, fmt.Errorf("retrieval: %w", err)
	}
	retrieved := fused
	if len(retrieved) > p.cfg.RetrievalLimit {
		retrieved = retrieved[:p.cfg.RetrievalLimit]
	}
	metrics.Retrieval = model.StageMetrics{
		InputCount:  len(fused),
		OutputCount: len(retrieved),
		CutoffLimit: p.cfg.RetrievalLimit,
		LatencyMs:   time.Since(stageStart).Milliseconds(),
	}

	// Nothing retrieved is a valid empty result, not an error.
	if len(retrieved) == 0 {
		p.logFunnel(ctx, searchID, metrics)
		return p.respond(searchID, nil, weights, metrics, opts), nil
	}

	// Stage 2: signal scoring.
	stageStart = time.Now()
	scored, err := p.scoreStage(ctx, query, weights, retrieved)
	if err != nil {
		return nil, err
	}
	if len(scored) > p.cfg.ScoringLimit {
		scored = scored[:p.cfg.ScoringLimit]
	}
	metrics.Scoring = model.StageMetrics{
		InputCount:  len(retrieved),
		OutputCount: len(scored),
		CutoffLimit: p.cfg.ScoringLimit,
		LatencyMs:   time.Since(stageStart).Milliseconds(),
	}

	// Stage 3: rerank cutoff. The truncation binds whether or not the LLM
	// pass runs; a disabled or failed rerank degrades ordering, never the
	// result count.
	stageStart = time.Now()
	results := scored
	if len(results) > p.cfg.RerankLimit {
		results = results[:p.cfg.RerankLimit]
	}
	applied := false
	if p.reranker != nil && p.cfg.RerankEnabled {
		results, applied = p.reranker.Rerank(ctx, query, results)
	}
	metrics.Reranking = model.StageMetrics{
		InputCount:  len(scored),
		OutputCount: len(results),
		CutoffLimit: p.cfg.RerankLimit,
		LatencyMs:   time.Since(stageStart).Milliseconds(),
	}
	metrics.RerankApplied = applied

	if opts.IncludeRationale && p.rationale != nil {
		p.rationale.Annotate(ctx, query, results)
	}

	p.logFunnel(ctx, searchID, metrics)
	return p.respond(searchID, results, weights, metrics, opts), nil
}

// scoreStage hydrates full profiles for the retrieved IDs and scores each
// against the query. Ordering is total score descending with retrieval
// rank, then candidate ID, as deterministic tie-breakers.
func (p *Pipeline) scoreStage(ctx context.Context, query model.QueryContext, weights model.SignalWeights, hits []retrieval.FusedHit) ([]model.ScoredCandidate, error) {
	ids := make([]int64, len(hits))
	byID := make(map[int64]retrieval.FusedHit, len(hits))
	rank := make(map[int64]int, len(hits))
	for i, h := range hits {
		ids[i] = h.CandidateID
		byID[h.CandidateID] = h
		rank[h.CandidateID] = i + 1
	}

	candidates, err := p.candidates.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate candidates: %w", err)
	}

	scored := make([]model.ScoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		hit := byID[candidate.ID]
		scored = append(scored, p.scorer.Score(scoring.Input{
			Candidate:           candidate,
			Hints:               model.EnrichmentHints{Level: trajectory.LevelUnknown},
			VectorSimilarity:    hit.Similarity,
			HasVectorSimilarity: hit.HasSim,
			RetrievalRank:       rank[candidate.ID],
		}, query, weights))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Total != scored[j].Total {
			return scored[i].Total > scored[j].Total
		}
		if scored[i].RetrievalRank != scored[j].RetrievalRank {
			return scored[i].RetrievalRank < scored[j].RetrievalRank
		}
		return scored[i].Candidate.ID < scored[j].Candidate.ID
	})
	return scored, nil
}

func (p *Pipeline) respond(searchID int64, results []model.ScoredCandidate, weights model.SignalWeights, metrics *model.PipelineStageMetrics, opts Options) *model.SearchResponse {
	resp := &model.SearchResponse{
		SearchID: searchID,
		Results:  results,
		Weights:  weights,
	}
	if opts.Debug {
		resp.StageMetrics = metrics
		resp.Debug = debugBreakdown(results)
	}
	return resp
}

func debugBreakdown(results []model.ScoredCandidate) *model.DebugBreakdown {
	n := len(results)
	if n > 10 {
		n = 10
	}
	top := make([]model.CandidateSignals, 0, n)
	for _, r := range results[:n] {
		top = append(top, model.CandidateSignals{
			CandidateID: r.Candidate.ID,
			Total:       r.Total,
			Signals:     r.Signals,
		})
	}
	return &model.DebugBreakdown{TopSignals: top}
}

func (p *Pipeline) logFunnel(ctx context.Context, searchID int64, m *model.PipelineStageMetrics) {
	if !p.cfg.StageLogging {
		return
	}
	slog.InfoContext(ctx, "search funnel",
		"search_id", searchID,
		"retrieved", m.Retrieval.OutputCount,
		"scored", m.Scoring.OutputCount,
		"reranked", m.Reranking.OutputCount,
		"rerank_applied", m.RerankApplied,
		"retrieval_ms", m.Retrieval.LatencyMs,
		"scoring_ms", m.Scoring.LatencyMs,
		"rerank_ms", m.Reranking.LatencyMs)
}
