package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/typesense/typesense-go/v4/typesense"
	"github.com/typesense/typesense-go/v4/typesense/api"
	"github.com/typesense/typesense-go/v4/typesense/api/pointer"

	"github.com/delimatsuo/headhunter/internal/model"
)

// Fields queried by lexical search, weighted roughly by how strongly a
// match indicates relevance.
const lexicalQueryBy = "name,headline,current_title,skills,experience_titles"

// TypesenseConfig configures the search backend connection.
type TypesenseConfig struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// TypesenseSearcher serves both retrieval methods from one candidate
// collection: full-text over profile fields, and nearest-neighbor over
// the stored embedding field.
type TypesenseSearcher struct {
	client     *typesense.Client
	collection string
	retry      RetryConfig
}

// NewTypesenseSearcher builds the backend client.
func NewTypesenseSearcher(cfg TypesenseConfig) *TypesenseSearcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(timeout),
	)
	return &TypesenseSearcher{
		client:     client,
		collection: cfg.Collection,
		retry:      DefaultRetryConfig,
	}
}

func (s *TypesenseSearcher) SearchLexical(ctx context.Context, query model.QueryContext, limit int) ([]Hit, error) {
	params := &api.SearchCollectionParams{
		Q:             pointer.String(query.Text),
		QueryBy:       pointer.String(lexicalQueryBy),
		PerPage:       pointer.Int(limit),
		ExcludeFields: pointer.String("embedding"),
	}
	if filter := buildFilter(query.Filters); filter != "" {
		params.FilterBy = pointer.String(filter)
	}

	result, err := retryDo(ctx, s.retry, func() (*api.SearchResult, error) {
		return s.client.Collection(s.collection).Documents().Search(ctx, params)
	})
	if err != nil {
		return nil, fmt.Errorf("lexical search: %w", err)
	}
	return s.toHits(result, MethodLexical)
}

func (s *TypesenseSearcher) SearchVector(ctx context.Context, vector []float32, filters map[string]string, limit int) ([]Hit, error) {
	params := &api.SearchCollectionParams{
		Q:             pointer.String("*"),
		VectorQuery:   pointer.String(vectorQuery(vector, limit)),
		PerPage:       pointer.Int(limit),
		ExcludeFields: pointer.String("embedding"),
	}
	if filter := buildFilter(filters); filter != "" {
		params.FilterBy = pointer.String(filter)
	}

	result, err := retryDo(ctx, s.retry, func() (*api.SearchResult, error) {
		return s.client.Collection(s.collection).Documents().Search(ctx, params)
	})
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return s.toHits(result, MethodVector)
}

func (s *TypesenseSearcher) toHits(result *api.SearchResult, method string) ([]Hit, error) {
	if result == nil || result.Hits == nil {
		return nil, nil
	}

	hits := make([]Hit, 0, len(*result.Hits))
	for i, raw := range *result.Hits {
		if raw.Document == nil {
			continue
		}
		id, err := documentID(*raw.Document)
		if err != nil {
			return nil, fmt.Errorf("%s hit %d: %w", method, i, err)
		}
		hit := Hit{
			CandidateID: id,
			Rank:        len(hits) + 1,
			Method:      method,
		}
		if method == MethodVector && raw.VectorDistance != nil {
			// Typesense reports cosine distance; similarity is its
			// complement, clamped since distance can slightly exceed 1.
			sim := 1.0 - float64(*raw.VectorDistance)
			if sim < 0 {
				sim = 0
			}
			hit.Similarity = sim
			hit.HasSim = true
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func documentID(doc map[string]any) (int64, error) {
	raw, ok := doc["id"]
	if !ok {
		return 0, fmt.Errorf("document missing id")
	}
	switch v := raw.(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("document id %q is not numeric", v)
		}
		return id, nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("document id has unexpected type %T", raw)
	}
}

// vectorQuery renders the embedding as a typesense vector_query clause.
func vectorQuery(vector []float32, k int) string {
	var b strings.Builder
	b.WriteString("embedding:([")
	for i, v := range vector {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	fmt.Fprintf(&b, "], k:%d)", k)
	return b.String()
}

func buildFilter(filters map[string]string) string {
	if len(filters) == 0 {
		return ""
	}
	clauses := make([]string, 0, len(filters))
	for field, value := range filters {
		clauses = append(clauses, fmt.Sprintf("%s:=%s", field, value))
	}
	// Deterministic ordering keeps query logs and backend caches stable.
	sort.Strings(clauses)
	return strings.Join(clauses, " && ")
}
