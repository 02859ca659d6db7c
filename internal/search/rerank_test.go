package search

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/delimatsuo/headhunter/common/llm"
	"github.com/delimatsuo/headhunter/internal/model"
)

func scoredFixture(ids ...int64) []model.ScoredCandidate {
	out := make([]model.ScoredCandidate, len(ids))
	for i, id := range ids {
		out[i] = model.ScoredCandidate{
			Candidate: &model.Candidate{ID: id, Name: "c"},
			Total:     1.0 - float64(i)*0.1,
		}
	}
	return out
}

func candidateIDs(candidates []model.ScoredCandidate) []int64 {
	ids := make([]int64, len(candidates))
	for i, c := range candidates {
		ids[i] = c.Candidate.ID
	}
	return ids
}

var _ = Describe("Reranker", func() {
	query := model.QueryContext{Text: "backend engineer"}

	It("passes through fewer than two candidates without calling the model", func() {
		client := &mockLLM{chatFunc: func(context.Context, llm.Request, any) (*llm.Response, error) {
			Fail("model must not be called for a single candidate")
			return nil, nil
		}}
		reranker := NewReranker(client, time.Second)

		single := scoredFixture(1)
		out, applied := reranker.Rerank(context.Background(), query, single)
		Expect(applied).To(BeFalse())
		Expect(out).To(Equal(single))
	})

	It("applies the model ordering with reasons", func() {
		client := &mockLLM{chatFunc: func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
			resp := result.(*rerankResponse)
			resp.Rankings = []rerankRanking{
				{CandidateID: 3, Reason: "strongest domain fit"},
				{CandidateID: 1, Reason: "solid generalist"},
				{CandidateID: 2, Reason: "adjacent stack"},
			}
			return &llm.Response{}, nil
		}}
		reranker := NewReranker(client, time.Second)

		out, applied := reranker.Rerank(context.Background(), query, scoredFixture(1, 2, 3))
		Expect(applied).To(BeTrue())
		Expect(candidateIDs(out)).To(Equal([]int64{3, 1, 2}))
		Expect(out[0].RerankReason).To(Equal("strongest domain fit"))
	})

	It("keeps the score order on model failure", func() {
		client := &mockLLM{chatFunc: func(context.Context, llm.Request, any) (*llm.Response, error) {
			return nil, errors.New("rate limited")
		}}
		reranker := NewReranker(client, time.Second)

		in := scoredFixture(1, 2, 3)
		out, applied := reranker.Rerank(context.Background(), query, in)
		Expect(applied).To(BeFalse())
		Expect(out).To(Equal(in))
	})

	It("keeps the score order when the model ranks nothing recognizable", func() {
		client := &mockLLM{chatFunc: func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
			resp := result.(*rerankResponse)
			resp.Rankings = []rerankRanking{{CandidateID: 999}}
			return &llm.Response{}, nil
		}}
		reranker := NewReranker(client, time.Second)

		in := scoredFixture(1, 2)
		out, applied := reranker.Rerank(context.Background(), query, in)
		Expect(applied).To(BeFalse())
		Expect(out).To(Equal(in))
	})

	It("bounds the model call with its timeout", func() {
		var deadlineSet bool
		client := &mockLLM{chatFunc: func(ctx context.Context, _ llm.Request, _ any) (*llm.Response, error) {
			_, deadlineSet = ctx.Deadline()
			return nil, errors.New("give up")
		}}
		reranker := NewReranker(client, 50*time.Millisecond)

		reranker.Rerank(context.Background(), query, scoredFixture(1, 2))
		Expect(deadlineSet).To(BeTrue())
	})
})

var _ = Describe("applyRanking", func() {
	It("always yields a permutation of the input", func() {
		in := scoredFixture(1, 2, 3, 4)
		out := applyRanking(in, []rerankRanking{
			{CandidateID: 4},
			{CandidateID: 4}, // duplicate, ignored
			{CandidateID: 99},
			{CandidateID: 2},
		})
		Expect(candidateIDs(out)).To(Equal([]int64{4, 2, 1, 3}))
	})

	It("appends omitted candidates in their score order", func() {
		in := scoredFixture(1, 2, 3)
		out := applyRanking(in, []rerankRanking{{CandidateID: 2}})
		Expect(candidateIDs(out)).To(Equal([]int64{2, 1, 3}))
	})

	It("returns nil when nothing matched", func() {
		Expect(applyRanking(scoredFixture(1, 2), []rerankRanking{{CandidateID: 7}})).To(BeNil())
	})
})

var _ = Describe("RationaleGenerator", func() {
	query := model.QueryContext{Text: "backend engineer"}

	It("annotates only the top N results", func() {
		client := &mockLLM{chatFunc: func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
			resp := result.(*rationaleResponse)
			resp.Rationales = []candidateRationale{
				{CandidateID: 1, Rationale: "matches the stack"},
				{CandidateID: 2, Rationale: "strong trajectory"},
			}
			return &llm.Response{}, nil
		}}
		gen := NewRationaleGenerator(client, time.Second, 2)

		results := scoredFixture(1, 2, 3)
		gen.Annotate(context.Background(), query, results)
		Expect(results[0].Rationale).To(Equal("matches the stack"))
		Expect(results[1].Rationale).To(Equal("strong trajectory"))
		Expect(results[2].Rationale).To(BeEmpty())
	})

	It("leaves results unannotated on model failure", func() {
		client := &mockLLM{chatFunc: func(context.Context, llm.Request, any) (*llm.Response, error) {
			return nil, errors.New("timeout")
		}}
		gen := NewRationaleGenerator(client, time.Second, 5)

		results := scoredFixture(1, 2)
		gen.Annotate(context.Background(), query, results)
		for _, r := range results {
			Expect(r.Rationale).To(BeEmpty())
		}
	})

	It("does nothing for empty results", func() {
		client := &mockLLM{chatFunc: func(context.Context, llm.Request, any) (*llm.Response, error) {
			Fail("model must not be called without results")
			return nil, nil
		}}
		gen := NewRationaleGenerator(client, time.Second, 5)
		gen.Annotate(context.Background(), query, nil)
	})
})
