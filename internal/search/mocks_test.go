package search

import (
	"context"

	"github.com/delimatsuo/headhunter/common/llm"
	"github.com/delimatsuo/headhunter/internal/model"
	"github.com/delimatsuo/headhunter/internal/retrieval"
)

type mockEmbedder struct {
	embedFunc func(ctx context.Context, text string) ([]float32, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return m.embedFunc(ctx, text)
}

type mockClassifier struct {
	classifyFunc func(ctx context.Context, text string) (string, error)
}

func (m *mockClassifier) Classify(ctx context.Context, text string) (string, error) {
	return m.classifyFunc(ctx, text)
}

type mockRetriever struct {
	retrieveFunc func(ctx context.Context, query model.QueryContext, vector []float32) ([]retrieval.FusedHit, error)
}

func (m *mockRetriever) Retrieve(ctx context.Context, query model.QueryContext, vector []float32) ([]retrieval.FusedHit, error) {
	return m.retrieveFunc(ctx, query, vector)
}

type mockCandidateStore struct {
	getByIDFunc  func(ctx context.Context, id int64) (*model.Candidate, error)
	getByIDsFunc func(ctx context.Context, ids []int64) ([]*model.Candidate, error)
}

func (m *mockCandidateStore) GetByID(ctx context.Context, id int64) (*model.Candidate, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockCandidateStore) GetByIDs(ctx context.Context, ids []int64) ([]*model.Candidate, error) {
	return m.getByIDsFunc(ctx, ids)
}

type mockLLM struct {
	chatFunc func(ctx context.Context, req llm.Request, result any) (*llm.Response, error)
}

func (m *mockLLM) Chat(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
	return m.chatFunc(ctx, req, result)
}

func (m *mockLLM) Embed(context.Context, string) ([]float32, error) {
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *mockLLM) Model() string { return "test-model" }

func (m *mockLLM) EmbeddingModel() string { return "test-embedding-model" }
