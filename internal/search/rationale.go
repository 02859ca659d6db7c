package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/delimatsuo/headhunter/common/llm"
	"github.com/delimatsuo/headhunter/internal/model"
)

const rationaleSystemPrompt = `You explain candidate-search results to a
recruiter. For each candidate, write one or two sentences on why they
surfaced for this role, grounded in the strongest ranking signals you are
given. Be concrete; never invent facts not present in the input.`

type candidateRationale struct {
	CandidateID int64  `json:"candidate_id" jsonschema_description:"ID of the candidate"`
	Rationale   string `json:"rationale" jsonschema_description:"Why this candidate matched, one or two sentences"`
}

type rationaleResponse struct {
	Rationales []candidateRationale `json:"rationales" jsonschema_description:"One rationale per candidate"`
}

// RationaleGenerator annotates top results with a human-readable match
// explanation. Purely presentational: it runs after ranking is final and
// a failure leaves results unannotated.
type RationaleGenerator struct {
	client  llm.Client
	timeout time.Duration
	topN    int
	schema  any
}

func NewRationaleGenerator(client llm.Client, timeout time.Duration, topN int) *RationaleGenerator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if topN < 1 {
		topN = 5
	}
	return &RationaleGenerator{
		client:  client,
		timeout: timeout,
		topN:    topN,
		schema:  llm.GenerateSchema[rationaleResponse](),
	}
}

// Annotate fills Rationale on the first topN results in place.
func (g *RationaleGenerator) Annotate(ctx context.Context, query model.QueryContext, results []model.ScoredCandidate) {
	n := g.topN
	if n > len(results) {
		n = len(results)
	}
	if n == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var resp rationaleResponse
	_, err := g.client.Chat(ctx, llm.Request{
		SystemPrompt: rationaleSystemPrompt,
		UserPrompt:   rationalePrompt(query, results[:n]),
		SchemaName:   "match_rationales",
		Schema:       g.schema,
		MaxTokens:    1500,
		Temperature:  llm.Temp(0.3),
	}, &resp)
	if err != nil {
		slog.WarnContext(ctx, "rationale generation failed", "error", err)
		return
	}

	byID := make(map[int64]string, len(resp.Rationales))
	for _, r := range resp.Rationales {
		byID[r.CandidateID] = r.Rationale
	}
	for i := range results[:n] {
		if rationale, ok := byID[results[i].Candidate.ID]; ok {
			results[i].Rationale = rationale
		}
	}
}

func rationalePrompt(query model.QueryContext, results []model.ScoredCandidate) string {
	var b strings.Builder
	b.WriteString("Role: ")
	b.WriteString(query.Text)
	b.WriteString("\n\n")
	for _, r := range results {
		b.WriteString(candidateSummary(r.Candidate))
		b.WriteString("    top signals: ")
		b.WriteString(topSignals(r.Signals, 3))
		b.WriteString("\n")
	}
	return b.String()
}

// topSignals names the strongest-scoring signals for prompt grounding.
func topSignals(signals model.SignalScores, n int) string {
	type namedScore struct {
		name  string
		score float64
	}
	all := make([]namedScore, 0, len(model.SignalNames))
	for name, score := range signals.Map() {
		all = append(all, namedScore{name: name, score: score})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].name < all[j].name
	})
	if n > len(all) {
		n = len(all)
	}
	parts := make([]string, 0, n)
	for _, s := range all[:n] {
		parts = append(parts, s.name)
	}
	return strings.Join(parts, ", ")
}
