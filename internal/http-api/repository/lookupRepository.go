package repository

import (
	"context"
	"fmt"

	"watchlog/internal/http-api/models"

	"gorm.io/gorm"
)

// LookupRepo serves the small reference tables (statuses, media types,
// rating tiers) reviews point at.
type LookupRepo struct {
	db *gorm.DB
}

func NewLookupRepo(db *gorm.DB) *LookupRepo {
	return &LookupRepo{db: db}
}

func (r *LookupRepo) GetStatuses(ctx context.Context) ([]models.Status, error) {
	var list []models.Status
	if err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get statuses: %w", err)
	}
	return list, nil
}

func (r *LookupRepo) CreateStatus(ctx context.Context, s *models.Status) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("create status: %w", err)
	}
	return nil
}

func (r *LookupRepo) GetTypes(ctx context.Context) ([]models.MediaType, error) {
	var list []models.MediaType
	if err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get types: %w", err)
	}
	return list, nil
}

func (r *LookupRepo) CreateType(ctx context.Context, t *models.MediaType) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create type: %w", err)
	}
	return nil
}

func (r *LookupRepo) GetRatings(ctx context.Context) ([]models.Rating, error) {
	var list []models.Rating
	if err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get ratings: %w", err)
	}
	return list, nil
}

func (r *LookupRepo) CreateRating(ctx context.Context, rt *models.Rating) error {
	if err := r.db.WithContext(ctx).Create(rt).Error; err != nil {
		return fmt.Errorf("create rating: %w", err)
	}
	return nil
}
