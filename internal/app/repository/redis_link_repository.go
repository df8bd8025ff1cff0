package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/sifan077/linkstore/internal/app/model"
)

const defaultRedisKeyPrefix = "links"

type redisLinkRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisLinkRepository stores links as plain string keys.
//
// Ids come from INCR on "<prefix>:seq", which is atomic across clients.
// An id whose SET fails is burned, never handed out again.
func NewRedisLinkRepository(client *redis.Client, prefix string) LinkRepository {
	if prefix == "" {
		prefix = defaultRedisKeyPrefix
	}
	return &redisLinkRepository{client: client, prefix: prefix}
}

func (r *redisLinkRepository) seqKey() string {
	return r.prefix + ":seq"
}

func (r *redisLinkRepository) linkKey(shortID int64) string {
	return r.prefix + ":" + strconv.FormatInt(shortID, 10)
}

func (r *redisLinkRepository) Create(ctx context.Context, link *model.Link) error {
	id, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return fmt.Errorf("allocate link id: %w", err)
	}

	if err := r.client.Set(ctx, r.linkKey(id), link.FullURL, 0).Err(); err != nil {
		return fmt.Errorf("store link %d: %w", id, err)
	}

	link.ShortID = id
	return nil
}

func (r *redisLinkRepository) GetByID(ctx context.Context, shortID int64) (*model.Link, error) {
	fullURL, err := r.client.Get(ctx, r.linkKey(shortID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("load link %d: %w", shortID, err)
	}
	return &model.Link{ShortID: shortID, FullURL: fullURL}, nil
}
