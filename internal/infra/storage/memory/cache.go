package memory

import (
	"context"
	"encoding/json"
	"time"
)

// Cache keeps JSON-encoded values so callers never share decoded state.
type Cache struct {
	items *ttlMap[[]byte]
}

func NewCache() *Cache {
	return &Cache{items: newTTLMap[[]byte](0)}
}

func (c *Cache) Get(ctx context.Context, key string, out any) (bool, error) {
	raw, ok := c.items.get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items.set(key, raw, ttl)
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	c.items.delete(key)
	return nil
}
