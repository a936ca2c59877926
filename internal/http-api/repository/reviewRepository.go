package repository

import (
	"context"
	"fmt"

	"watchlog/internal/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepo struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func (r *ReviewRepo) GetAll(ctx context.Context) ([]models.Review, error) {
	var list []models.Review
	if err := r.db.WithContext(ctx).
		Preload("Genres").
		Order("title asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get reviews: %w", err)
	}
	return list, nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var rev models.Review
	if err := r.db.WithContext(ctx).Preload("Genres").First(&rev, id).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepo) Create(ctx context.Context, rev *models.Review) error {
	if err := r.db.WithContext(ctx).Create(rev).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	// GORM populates rev.ID
	return nil
}

func (r *ReviewRepo) Update(ctx context.Context, id int64, rev *models.Review) error {
	// ensure ID set for Save; Genres are managed through the join rows
	// only, Save must not touch them
	rev.ID = id
	if err := r.db.WithContext(ctx).Omit("Genres").Save(rev).Error; err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	return nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Review{}, id).Error; err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

// AppendGenre inserts a join row. Duplicate links are permitted: the
// join table has its own primary key, so linking the same genre twice
// produces two rows.
func (r *ReviewRepo) AppendGenre(ctx context.Context, reviewID, genreID int64) error {
	link := models.ReviewGenre{ReviewID: reviewID, GenreID: genreID}
	if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
		return fmt.Errorf("append genre: %w", err)
	}
	return nil
}

// RemoveGenre deletes one matching join row. Returns
// gorm.ErrRecordNotFound when the genre is not linked to the review,
// removal of an absent link is an error, not a no-op.
func (r *ReviewRepo) RemoveGenre(ctx context.Context, reviewID, genreID int64) error {
	tx := r.db.WithContext(ctx).Begin()
	var link models.ReviewGenre
	if err := tx.Where("review_id = ? AND genre_id = ?", reviewID, genreID).
		First(&link).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&link).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("remove genre: %w", err)
	}
	return tx.Commit().Error
}
