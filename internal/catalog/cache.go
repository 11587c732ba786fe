package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/freshflower/storefront/internal/redisx"
)

const notFoundSentinel = "notfound"

// CachedStore membungkus Store dengan cache redis untuk GetByID.
// Redis down bukan alasan gagal, fallback ke store asli.
type CachedStore struct {
	Store
	rdb *redis.Client
	log *logrus.Logger
}

func NewCachedStore(s Store, rdb *redis.Client, log *logrus.Logger) *CachedStore {
	return &CachedStore{Store: s, rdb: rdb, log: log}
}

func (c *CachedStore) GetByID(ctx context.Context, id string) (*Product, error) {
	key := fmt.Sprintf(redisx.KeyProduct, id)

	data, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundSentinel {
			return nil, ErrNotFound
		}
		var p Product
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
		c.log.WithField("key", key).Warn("bad product cache entry, falling back to db")
	case errors.Is(err, redis.Nil):
	default:
		c.log.WithError(err).Warn("redis get failed, falling back to db")
	}

	p, err := c.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = c.rdb.Set(ctx, key, notFoundSentinel, redisx.TTLProductNotFound).Err()
		}
		return nil, err
	}
	if b, err := json.Marshal(p); err == nil {
		_ = c.rdb.Set(ctx, key, b, redisx.TTLProductCache).Err()
	}
	return p, nil
}

func (c *CachedStore) Update(ctx context.Context, id string, in UpdateInput) (*Product, error) {
	p, err := c.Store.Update(ctx, id, in)
	if err == nil {
		c.invalidate(ctx, id)
	}
	return p, err
}

func (c *CachedStore) SoftDelete(ctx context.Context, id string) error {
	err := c.Store.SoftDelete(ctx, id)
	if err == nil {
		c.invalidate(ctx, id)
	}
	return err
}

func (c *CachedStore) invalidate(ctx context.Context, id string) {
	key := fmt.Sprintf(redisx.KeyProduct, id)
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache invalidate failed")
	}
}
