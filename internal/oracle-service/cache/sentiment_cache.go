package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/fear-greed-oracle/internal/sentiment"
)

// kv é o subconjunto do cliente Redis usado pelo cache
type kv interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// SentimentCache guarda a última leitura boa do índice no Redis.
// Implementa sentiment.LastKnownStore.
type SentimentCache struct {
	Client kv
	Key    string
	TTL    time.Duration
}

const defaultKey = "sentiment:last"

func NewSentimentCache(c *redis.Client, ttl time.Duration) *SentimentCache {
	return &SentimentCache{Client: c, Key: defaultKey, TTL: ttl}
}

// SaveLast grava a leitura com TTL
func (c *SentimentCache) SaveLast(ctx context.Context, s sentiment.Sample) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.Key, b, c.TTL).Err()
}

// LoadLast devolve ok=false quando a chave não existe
func (c *SentimentCache) LoadLast(ctx context.Context) (sentiment.Sample, bool, error) {
	raw, err := c.Client.Get(ctx, c.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return sentiment.Sample{}, false, nil
	}
	if err != nil {
		return sentiment.Sample{}, false, err
	}
	var s sentiment.Sample
	if err := json.Unmarshal(raw, &s); err != nil {
		return sentiment.Sample{}, false, err
	}
	return s, true, nil
}
