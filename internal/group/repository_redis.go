package group

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisRepo ttl <= 0 表示不过期
func NewRedisRepo(rdb *redis.Client, ttl time.Duration) Repo {
	return &redisRepo{rdb: rdb, ttl: ttl}
}

// key 约定：
//
//	kv: ss:group:{id} -> JSON(Group)
func groupKey(id string) string {
	return fmt.Sprintf("ss:group:%s", id)
}

func (r *redisRepo) Save(ctx context.Context, g *Group) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode group %s: %w", g.ID, err)
	}
	ttl := r.ttl
	if ttl < 0 {
		ttl = 0
	}
	return r.rdb.Set(ctx, groupKey(g.ID), data, ttl).Err()
}

func (r *redisRepo) Get(ctx context.Context, id string) (*Group, error) {
	data, err := r.rdb.Get(ctx, groupKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, err
	}
	var g Group
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode group %s: %w", id, err)
	}
	return &g, nil
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	n, err := r.rdb.Del(ctx, groupKey(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrGroupNotFound
	}
	return nil
}
