package utils

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// 快取 key 的資源名稱，跟 middlewares.CacheKeyFrom 的命名一致
const (
	CacheOrganizers = "organizers"
	CacheEvents     = "events"
	CacheTickets    = "tickets"
)

type CacheInvalidator struct{ rdb *redis.Client }

func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator { return &CacheInvalidator{rdb} }

// Purge 刪掉指定資源的 list 與 item 快取；nil invalidator 直接略過
func (ci *CacheInvalidator) Purge(ctx context.Context, resources ...string) {
	if ci == nil || ci.rdb == nil {
		return
	}
	for _, res := range resources {
		iter := ci.rdb.Scan(ctx, 0, "cache:"+res+":*", 0).Iterator()
		for iter.Next(ctx) {
			_ = ci.rdb.Del(ctx, iter.Val()).Err()
		}
	}
}
