// Package cache keeps recently read recipe aggregates in Redis. The database
// stays the source of truth: entries are dropped on every mutation and expire
// after a TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipe-share/backend/internal/models"
)

// ErrMiss is returned by Get when no entry exists.
var ErrMiss = errors.New("cache miss")

// RecipeCache stores full recipe aggregates by id.
type RecipeCache interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	Set(ctx context.Context, recipe *models.Recipe) error
	Invalidate(ctx context.Context, ids ...uuid.UUID) error
}

const keyPrefix = "recipe:"

// RedisRecipeCache is a RecipeCache backed by Redis strings holding JSON.
type RedisRecipeCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ RecipeCache = (*RedisRecipeCache)(nil)

func NewRedisRecipeCache(client *redis.Client, ttl time.Duration) *RedisRecipeCache {
	return &RedisRecipeCache{client: client, ttl: ttl}
}

func key(id uuid.UUID) string {
	return keyPrefix + id.String()
}

func (c *RedisRecipeCache) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe %s from cache: %w", id, err)
	}

	var recipe models.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		return nil, fmt.Errorf("failed to decode cached recipe %s: %w", id, err)
	}
	return &recipe, nil
}

func (c *RedisRecipeCache) Set(ctx context.Context, recipe *models.Recipe) error {
	data, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("failed to encode recipe %s: %w", recipe.ID, err)
	}
	if err := c.client.Set(ctx, key(recipe.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache recipe %s: %w", recipe.ID, err)
	}
	return nil
}

func (c *RedisRecipeCache) Invalidate(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, key(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate recipes: %w", err)
	}
	return nil
}
