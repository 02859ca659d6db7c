package model

// StageMetrics records the funnel shape of one pipeline stage.
type StageMetrics struct {
	InputCount  int   `json:"input_count"`
	OutputCount int   `json:"output_count"`
	CutoffLimit int   `json:"cutoff_limit"`
	LatencyMs   int64 `json:"latency_ms"`
}

// PipelineStageMetrics is produced once per request and attached to the
// response; it is never persisted.
type PipelineStageMetrics struct {
	Retrieval     StageMetrics `json:"retrieval"`
	Scoring       StageMetrics `json:"scoring"`
	Reranking     StageMetrics `json:"reranking"`
	RerankApplied bool         `json:"rerank_applied"`
}

// SearchResponse is the conceptual response contract: every result carries
// the total score, the full signal breakdown, and the weight vector that
// was actually applied. Stage metrics and the raw top-N breakdown appear
// only when the request asked for debug output.
type SearchResponse struct {
	SearchID     int64                 `json:"search_id"`
	Results      []ScoredCandidate     `json:"results"`
	Weights      SignalWeights         `json:"weights"`
	StageMetrics *PipelineStageMetrics `json:"stage_metrics,omitempty"`
	Debug        *DebugBreakdown       `json:"debug,omitempty"`
}

// DebugBreakdown surfaces raw signal values for the top scored candidates.
type DebugBreakdown struct {
	TopSignals []CandidateSignals `json:"top_signals"`
}

// CandidateSignals is one row of the debug breakdown.
type CandidateSignals struct {
	CandidateID int64        `json:"candidate_id"`
	Total       float64      `json:"total"`
	Signals     SignalScores `json:"signals"`
}
