package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/cache"
	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/storage"
	"github.com/pageza/recipe-share/backend/internal/testhelpers"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// memBlobStore keeps objects in memory and can be told to fail.
type memBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	failPut bool
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: map[string][]byte{}}
}

func (m *memBlobStore) Put(ctx context.Context, key string, upload *storage.Upload) (storage.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return storage.Object{}, errors.New("store offline")
	}
	data, err := io.ReadAll(upload.Body)
	if err != nil {
		return storage.Object{}, err
	}
	m.objects[key] = data
	return storage.Object{URL: "https://blobs.test/" + key, Key: key}, nil
}

func (m *memBlobStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *memBlobStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

func (m *memBlobStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// memRecipeCache is a map-backed RecipeCache.
type memRecipeCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*models.Recipe
	hits    int
}

func newMemRecipeCache() *memRecipeCache {
	return &memRecipeCache{entries: map[uuid.UUID]*models.Recipe{}}
}

func (c *memRecipeCache) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[id]
	if !ok {
		return nil, cache.ErrMiss
	}
	c.hits++
	return r, nil
}

func (c *memRecipeCache) Set(ctx context.Context, recipe *models.Recipe) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[recipe.ID] = recipe
	return nil
}

func (c *memRecipeCache) Invalidate(ctx context.Context, ids ...uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.entries, id)
	}
	return nil
}

func (c *memRecipeCache) cached(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[id]
	return ok
}

func jpegUpload() *storage.Upload {
	return &storage.Upload{Body: strings.NewReader("\xff\xd8\xff\xe0fake"), Size: 8, ContentType: "image/jpeg"}
}

func soupFields() types.RecipeFields {
	return types.RecipeFields{
		Title:        "Soup",
		Ingredients:  []string{"water", "salt"},
		Instructions: "Boil the water.",
		Category:     "Dinner",
		CookingTime:  15,
	}
}

type env struct {
	db        *gorm.DB
	blobs     *memBlobStore
	cache     *memRecipeCache
	auth      *AuthService
	profiles  *ProfileService
	recipes   *RecipeService
	reviews   *ReviewService
	favorites *FavoriteService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	blobs := newMemBlobStore()
	recipeCache := newMemRecipeCache()
	return &env{
		db:        db,
		blobs:     blobs,
		cache:     recipeCache,
		auth:      NewAuthService(db, "test-secret", 0),
		profiles:  NewProfileService(db, blobs),
		recipes:   NewRecipeService(db, blobs, recipeCache),
		reviews:   NewReviewService(db, recipeCache),
		favorites: NewFavoriteService(db),
	}
}
