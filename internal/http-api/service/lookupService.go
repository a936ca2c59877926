package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"watchlog/internal/http-api/models"
	"watchlog/internal/http-api/repository"

	"github.com/redis/go-redis/v9"
)

// LookupService serves the reference tables reviews point at. The
// lists change rarely, so reads go through an optional redis cache;
// review data itself is never cached.
type LookupService interface {
	GetStatuses(ctx context.Context) ([]models.Status, error)
	CreateStatus(ctx context.Context, s *models.Status) error
	GetTypes(ctx context.Context) ([]models.MediaType, error)
	CreateType(ctx context.Context, t *models.MediaType) error
	GetRatings(ctx context.Context) ([]models.Rating, error)
	CreateRating(ctx context.Context, r *models.Rating) error
}

type lookupService struct {
	repo   *repository.LookupRepo
	cache  *redis.Client // nil when redis is not configured
	ttl    time.Duration
	logger *slog.Logger
}

func NewLookupService(repo *repository.LookupRepo, cache *redis.Client, ttl time.Duration, logger *slog.Logger) LookupService {
	return &lookupService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

const (
	statusCacheKey = "lookup:statuses"
	typeCacheKey   = "lookup:types"
	ratingCacheKey = "lookup:ratings"
)

// readThrough returns the cached value for key, or loads it and fills
// the cache. Cache failures degrade to the store, they never fail the
// request.
func readThrough[T any](ctx context.Context, s *lookupService, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var list []T
			if err := json.Unmarshal([]byte(raw), &list); err == nil {
				return list, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("lookup cache read failed", "key", key, "error", err)
		}
	}

	list, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(list); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil {
				s.logger.Warn("lookup cache write failed", "key", key, "error", err)
			}
		}
	}
	return list, nil
}

func (s *lookupService) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("lookup cache invalidation failed", "key", key, "error", err)
	}
}

func (s *lookupService) GetStatuses(ctx context.Context) ([]models.Status, error) {
	return readThrough(ctx, s, statusCacheKey, s.repo.GetStatuses)
}

func (s *lookupService) CreateStatus(ctx context.Context, st *models.Status) error {
	if strings.TrimSpace(st.Name) == "" {
		return errors.New("status name required")
	}
	st.Name = strings.TrimSpace(st.Name)
	if err := s.repo.CreateStatus(ctx, st); err != nil {
		return err
	}
	s.invalidate(ctx, statusCacheKey)
	return nil
}

func (s *lookupService) GetTypes(ctx context.Context) ([]models.MediaType, error) {
	return readThrough(ctx, s, typeCacheKey, s.repo.GetTypes)
}

func (s *lookupService) CreateType(ctx context.Context, t *models.MediaType) error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("type name required")
	}
	t.Name = strings.TrimSpace(t.Name)
	if err := s.repo.CreateType(ctx, t); err != nil {
		return err
	}
	s.invalidate(ctx, typeCacheKey)
	return nil
}

func (s *lookupService) GetRatings(ctx context.Context) ([]models.Rating, error) {
	return readThrough(ctx, s, ratingCacheKey, s.repo.GetRatings)
}

func (s *lookupService) CreateRating(ctx context.Context, r *models.Rating) error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("rating name required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if err := s.repo.CreateRating(ctx, r); err != nil {
		return err
	}
	s.invalidate(ctx, ratingCacheKey)
	return nil
}
