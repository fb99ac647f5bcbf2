package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quickblog/blog-api/internal/api/metrics"
	"github.com/quickblog/blog-api/internal/core/domain"
)

const cacheTTL = 5 * time.Minute

// PostCache is a cache-aside store for single-post reads backed by Redis.
// Key format: post:<id>. Any backend failure degrades to a miss so the
// request still completes against the primary store.
type PostCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewPostCache creates a PostCache wrapping the given Redis client.
func NewPostCache(client *redis.Client, log zerolog.Logger) *PostCache {
	return &PostCache{client: client, log: log}
}

func (c *PostCache) Get(ctx context.Context, id int64) (*domain.Post, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Int64("post_id", id).Msg("post cache read failed")
		}
		metrics.PostCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var post domain.Post
	if err := json.Unmarshal(raw, &post); err != nil {
		c.log.Warn().Err(err).Int64("post_id", id).Msg("post cache entry corrupt, dropping")
		_ = c.client.Del(ctx, c.key(id)).Err()
		metrics.PostCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.PostCacheTotal.WithLabelValues("hit").Inc()
	return &post, true
}

func (c *PostCache) Set(ctx context.Context, post *domain.Post) {
	raw, err := json.Marshal(post)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(post.ID), raw, cacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Int64("post_id", post.ID).Msg("post cache write failed")
	}
}

func (c *PostCache) Invalidate(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.log.Warn().Err(err).Int64("post_id", id).Msg("post cache invalidation failed")
	}
}

func (c *PostCache) key(id int64) string {
	return fmt.Sprintf("post:%d", id)
}
