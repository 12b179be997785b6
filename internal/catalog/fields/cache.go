package fields

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a short-lived, tenant-keyed cache for field library listings.
// It is owned by the Service: only the Service's own mutation paths
// invalidate it, and every create/update/delete does so immediately. A nil
// client degrades to a pass-through (every read misses).
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// DefaultTTL bounds how stale a cached listing can get between mutations.
const DefaultTTL = 5 * time.Minute

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func listKey(tenantID int64) string {
	return fmt.Sprintf("fields:list:%d", tenantID)
}

// Get returns the cached listing for a tenant, reporting whether it was present.
func (c *Cache) Get(ctx context.Context, tenantID int64) ([]FieldDefinition, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, listKey(tenantID)).Bytes()
	if err != nil {
		return nil, false
	}
	var defs []FieldDefinition
	if err := json.Unmarshal(payload, &defs); err != nil {
		return nil, false
	}
	return defs, true
}

// Set stores the listing for a tenant under the configured TTL.
func (c *Cache) Set(ctx context.Context, tenantID int64, defs []FieldDefinition) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(defs)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listKey(tenantID), raw, c.ttl).Err()
}

// Invalidate drops the tenant's cached listing.
func (c *Cache) Invalidate(ctx context.Context, tenantID int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, listKey(tenantID)).Err()
}
