package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/delimatsuo/headhunter/common/llm"
)

// Service produces query embeddings with two layers of deduplication: a
// redis read-through cache keyed by model+text hash, and in-flight
// coalescing so concurrent identical queries share one upstream call
// instead of racing to fill the same cache slot.
type Service struct {
	client llm.Client
	redis  *redis.Client // nil disables the cache layer
	ttl    time.Duration
	group  singleflight.Group
}

// NewService builds an embedding service. A nil redis client is valid and
// simply skips caching; ttl only applies when redis is present.
func NewService(client llm.Client, rdb *redis.Client, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{client: client, redis: rdb, ttl: ttl}
}

// Embed returns the vector for a query string. Identical concurrent
// requests are coalesced into one upstream call; completed results are
// cached in redis under a hash of the normalized text.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	normalized := strings.TrimSpace(text)
	if normalized == "" {
		return nil, fmt.Errorf("embed: empty input")
	}
	key := s.cacheKey(normalized)

	if vector, ok := s.cached(ctx, key); ok {
		return vector, nil
	}

	result, err, shared := s.group.Do(key, func() (any, error) {
		// Re-check under the flight: a concurrent caller may have
		// populated the cache while we queued.
		if vector, ok := s.cached(ctx, key); ok {
			return vector, nil
		}

		vector, err := s.client.Embed(ctx, normalized)
		if err != nil {
			return nil, err
		}
		s.store(ctx, key, vector)
		return vector, nil
	})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if shared {
		slog.DebugContext(ctx, "embedding request coalesced", "key", key)
	}
	return result.([]float32), nil
}

func (s *Service) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(s.client.EmbeddingModel() + "\x00" + strings.ToLower(text)))
	return "hh:embed:" + hex.EncodeToString(sum[:])
}

func (s *Service) cached(ctx context.Context, key string) ([]float32, bool) {
	if s.redis == nil {
		return nil, false
	}
	raw, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.WarnContext(ctx, "embedding cache read failed", "error", err)
		}
		return nil, false
	}
	var vector []float32
	if err := json.Unmarshal(raw, &vector); err != nil {
		slog.WarnContext(ctx, "embedding cache entry corrupt, discarding", "key", key)
		s.redis.Del(ctx, key)
		return nil, false
	}
	return vector, true
}

func (s *Service) store(ctx context.Context, key string, vector []float32) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(vector)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "embedding cache write failed", "error", err)
	}
}
