package category

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"studio-admin/internal/listing"
	"studio-admin/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type DBLayer interface {
	ListAll(ctx context.Context) ([]models.Category, error)
	ListPage(ctx context.Context, params listing.Params) ([]models.Category, int, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, row models.Category) error
	Update(ctx context.Context, row models.Category) error
	Delete(ctx context.Context, id string) error
}

// TreeCache is the cache-aside store for the assembled forest.
type TreeCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

const treeCacheKey = "category:tree"
const treeCacheTTL = 10 * time.Minute

var ErrNameRequired = errors.New("category name is required")

type Service struct {
	DB    DBLayer
	Cache TreeCache
}

func NewService(db DBLayer, cache TreeCache) *Service {
	return &Service{DB: db, Cache: cache}
}

// Tree returns the category forest, serving from the cache when it can.
// A cache miss or a broken cached payload falls through to the database.
func (s *Service) Tree(ctx context.Context) ([]Node, error) {
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, treeCacheKey); err == nil && raw != "" {
			var forest []Node
			if err := json.Unmarshal([]byte(raw), &forest); err == nil {
				return forest, nil
			}
		}
	}

	rows, err := s.DB.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	forest := BuildForest(rows)

	if s.Cache != nil {
		if raw, err := json.Marshal(forest); err == nil {
			_ = s.Cache.Set(ctx, treeCacheKey, string(raw), treeCacheTTL)
		}
	}
	return forest, nil
}

// Options returns the flattened selection list the dropdowns consume.
func (s *Service) Options(ctx context.Context) ([]Option, error) {
	forest, err := s.Tree(ctx)
	if err != nil {
		return nil, err
	}
	return Flatten(forest)
}

func (s *Service) ListAll(ctx context.Context) ([]models.Category, error) {
	return s.DB.ListAll(ctx)
}

func (s *Service) ListPage(ctx context.Context, params listing.Params) ([]models.Category, int, error) {
	return s.DB.ListPage(ctx, params)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Category, error) {
	return s.DB.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if in.ParentID != "" {
		if _, err := s.DB.GetByID(ctx, in.ParentID); err != nil {
			return nil, errors.New("parent category not found")
		}
	}
	row := models.Category{
		ID:        uuid.NewString(),
		Name:      name,
		ParentID:  in.ParentID,
		CreatedAt: time.Now(),
	}
	if err := s.DB.Create(ctx, row); err != nil {
		return nil, err
	}
	s.invalidateTree(ctx)
	return &row, nil
}

func (s *Service) Update(ctx context.Context, id string, in models.CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	row, err := s.DB.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.ParentID == id {
		return nil, errors.New("category cannot be its own parent")
	}
	row.Name = name
	row.ParentID = in.ParentID
	if err := s.DB.Update(ctx, *row); err != nil {
		return nil, err
	}
	s.invalidateTree(ctx)
	return row, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.DB.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateTree(ctx)
	return nil
}

func (s *Service) invalidateTree(ctx context.Context) {
	if s.Cache != nil {
		_ = s.Cache.Del(ctx, treeCacheKey)
	}
}

// RedisTreeCache adapts a redis client to the TreeCache interface.
type RedisTreeCache struct {
	Client *redis.Client
}

func (c *RedisTreeCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (c *RedisTreeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisTreeCache) Del(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}
