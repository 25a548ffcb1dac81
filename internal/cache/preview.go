// preview.go provides a Valkey-backed cache for assembled preview payloads.
// When the storefront renderer requests a theme preview, the assembled
// palette + section list is stored in Valkey so subsequent requests skip
// the DB queries entirely. Cache errors degrade to a miss and are never
// surfaced to the caller.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// previewKeyPrefix is the Valkey key prefix for cached preview payloads.
	previewKeyPrefix = "preview:"

	// DefaultPreviewTTL is how long an assembled preview stays cached.
	DefaultPreviewTTL = 5 * time.Minute
)

// PreviewCache manages assembled preview payload caching in Valkey.
type PreviewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPreviewCache creates a preview cache backed by the given Valkey client.
func NewPreviewCache(client *redis.Client, ttl time.Duration) *PreviewCache {
	if ttl == 0 {
		ttl = DefaultPreviewTTL
	}
	return &PreviewCache{client: client, ttl: ttl}
}

// Get retrieves a cached preview payload for a theme. Returns false on miss.
// A cache constructed without a client always misses.
func (pc *PreviewCache) Get(ctx context.Context, themeID uuid.UUID) ([]byte, bool) {
	if pc.client == nil {
		return nil, false
	}
	val, err := pc.client.Get(ctx, previewKeyPrefix+themeID.String()).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("preview cache get error", "theme_id", themeID, "error", err)
		return nil, false
	}
	slog.Debug("preview cache hit", "theme_id", themeID)
	return val, true
}

// Set stores an assembled preview payload with the configured TTL.
func (pc *PreviewCache) Set(ctx context.Context, themeID uuid.UUID, payload []byte) {
	if pc.client == nil {
		return
	}
	if err := pc.client.Set(ctx, previewKeyPrefix+themeID.String(), payload, pc.ttl).Err(); err != nil {
		slog.Warn("preview cache set error", "theme_id", themeID, "error", err)
	}
}

// Invalidate removes a theme's cached preview. Called after every theme or
// section mutation so the renderer never serves a stale preview past the
// mutation.
func (pc *PreviewCache) Invalidate(ctx context.Context, themeID uuid.UUID) {
	if pc.client == nil {
		return
	}
	if err := pc.client.Del(ctx, previewKeyPrefix+themeID.String()).Err(); err != nil {
		slog.Warn("preview cache invalidate error", "theme_id", themeID, "error", err)
	}
	slog.Debug("preview cache invalidated", "theme_id", themeID)
}
