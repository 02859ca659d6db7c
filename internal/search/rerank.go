package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/delimatsuo/headhunter/common/llm"
	"github.com/delimatsuo/headhunter/internal/model"
)

const rerankSystemPrompt = `You are ranking candidates for a job search.
Given the role description and a numbered list of candidate summaries,
return the candidates ordered from best to worst fit. Judge holistically:
skills, seniority, trajectory, and domain. Give a one-sentence reason per
candidate. Include every candidate exactly once.`

type rerankRanking struct {
	CandidateID int64  `json:"candidate_id" jsonschema_description:"ID of the candidate being ranked"`
	Reason      string `json:"reason" jsonschema_description:"One-sentence justification for this position"`
}

type rerankResponse struct {
	Rankings []rerankRanking `json:"rankings" jsonschema_description:"Candidates ordered best fit first"`
}

// Reranker refines the scored head of the funnel with an LLM pass. It is
// strictly best-effort: any error or timeout returns the input ordering
// untouched, and the caller's cutoff applies either way so rerank failure
// never changes how many results a request yields.
type Reranker struct {
	client  llm.Client
	timeout time.Duration
	schema  any
}

func NewReranker(client llm.Client, timeout time.Duration) *Reranker {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Reranker{
		client:  client,
		timeout: timeout,
		schema:  llm.GenerateSchema[rerankResponse](),
	}
}

// Rerank reorders candidates by LLM judgment. The returned bool reports
// whether the reranked order was actually applied.
func (r *Reranker) Rerank(ctx context.Context, query model.QueryContext, candidates []model.ScoredCandidate) ([]model.ScoredCandidate, bool) {
	if len(candidates) < 2 {
		return candidates, false
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var resp rerankResponse
	_, err := r.client.Chat(ctx, llm.Request{
		SystemPrompt: rerankSystemPrompt,
		UserPrompt:   rerankPrompt(query, candidates),
		SchemaName:   "candidate_rankings",
		Schema:       r.schema,
		MaxTokens:    2000,
		Temperature:  llm.Temp(0),
	}, &resp)
	if err != nil {
		slog.WarnContext(ctx, "rerank failed, keeping score order", "error", err)
		return candidates, false
	}

	reordered := applyRanking(candidates, resp.Rankings)
	if reordered == nil {
		slog.WarnContext(ctx, "rerank response unusable, keeping score order")
		return candidates, false
	}
	return reordered, true
}

// applyRanking reorders by the LLM's list. Unknown IDs are ignored and
// candidates the model omitted keep their relative score order at the
// tail, so the output is always a permutation of the input.
func applyRanking(candidates []model.ScoredCandidate, rankings []rerankRanking) []model.ScoredCandidate {
	byID := make(map[int64]int, len(candidates))
	for i, c := range candidates {
		byID[c.Candidate.ID] = i
	}

	out := make([]model.ScoredCandidate, 0, len(candidates))
	taken := make(map[int64]bool, len(candidates))
	for _, ranking := range rankings {
		idx, ok := byID[ranking.CandidateID]
		if !ok || taken[ranking.CandidateID] {
			continue
		}
		taken[ranking.CandidateID] = true
		c := candidates[idx]
		c.RerankReason = ranking.Reason
		out = append(out, c)
	}

	if len(out) == 0 {
		return nil
	}
	for _, c := range candidates {
		if !taken[c.Candidate.ID] {
			out = append(out, c)
		}
	}
	return out
}

func rerankPrompt(query model.QueryContext, candidates []model.ScoredCandidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Role: %s\n", query.Text)
	if len(query.RequiredSkills) > 0 {
		fmt.Fprintf(&b, "Required skills: %s\n", strings.Join(query.RequiredSkills, ", "))
	}
	if query.TargetSpecialty != "" {
		fmt.Fprintf(&b, "Specialty: %s\n", query.TargetSpecialty)
	}
	b.WriteString("\nCandidates:\n")
	for _, c := range candidates {
		b.WriteString(candidateSummary(c.Candidate))
	}
	return b.String()
}

func candidateSummary(c *model.Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s", c.ID, c.Name)
	if c.CurrentTitle != "" {
		fmt.Fprintf(&b, " - %s", c.CurrentTitle)
	}
	if c.CurrentCompany != "" {
		fmt.Fprintf(&b, " at %s", c.CurrentCompany)
	}
	b.WriteByte('\n')
	if len(c.Skills) > 0 {
		names := make([]string, 0, len(c.Skills))
		for _, s := range c.Skills {
			names = append(names, s.Name)
		}
		if len(names) > 15 {
			names = names[:15]
		}
		fmt.Fprintf(&b, "    skills: %s\n", strings.Join(names, ", "))
	}
	if n := len(c.Experience); n > 0 {
		titles := make([]string, 0, n)
		for _, e := range c.Experience {
			titles = append(titles, e.Title)
		}
		fmt.Fprintf(&b, "    history: %s\n", strings.Join(titles, " -> "))
	}
	return b.String()
}
