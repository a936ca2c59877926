package service

import (
	"context"
	"errors"

	"watchlog/internal/http-api/dto"
	"watchlog/internal/http-api/models"
	"watchlog/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	// ErrReviewNotFound: the review id does not resolve.
	ErrReviewNotFound = errors.New("review not found")
	// ErrGenreNotFound: a link/unlink named a genre id that does not
	// resolve. This is a data error, not a not-found: the handlers map
	// it to a 500-class response.
	ErrGenreNotFound = errors.New("genre does not exist")
	// ErrGenreNotLinked: unlink of an association that is not present.
	// Unlink is not idempotent; this is also a data error.
	ErrGenreNotLinked = errors.New("genre not linked to review")
)

type ReviewService interface {
	GetAll(ctx context.Context) ([]models.Review, error)
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	Create(ctx context.Context, userID int64, in dto.CreateReviewDTO) (*models.Review, error)
	Update(ctx context.Context, id int64, in dto.UpdateReviewDTO) (*models.Review, error)
	Delete(ctx context.Context, id int64) (*models.Review, error)

	// review <-> genres
	LinkGenre(ctx context.Context, reviewID, genreID int64) (*models.Review, error)
	UnlinkGenre(ctx context.Context, reviewID, genreID int64) (*models.Review, error)
}

type reviewService struct {
	repo      *repository.ReviewRepo
	genreRepo *repository.GenreRepo
}

func NewReviewService(r *repository.ReviewRepo, g *repository.GenreRepo) ReviewService {
	return &reviewService{repo: r, genreRepo: g}
}

func (s *reviewService) GetAll(ctx context.Context) ([]models.Review, error) {
	return s.repo.GetAll(ctx)
}

func (s *reviewService) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	rev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return rev, nil
}

// Create builds a review owned by the authenticated caller. No field
// is required and nothing is validated beyond date syntax; missing
// fields are stored as NULL. Any user_id in the body is ignored.
func (s *reviewService) Create(ctx context.Context, userID int64, in dto.CreateReviewDTO) (*models.Review, error) {
	rev, err := in.ToModel(userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &rev); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, rev.ID)
}

// Update merges the supplied fields into the stored review with the
// truthy-gated rule (see dto.UpdateReviewDTO.ApplyTo) and persists the
// result. Ownership is never reassigned.
func (s *reviewService) Update(ctx context.Context, id int64, in dto.UpdateReviewDTO) (*models.Review, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.ApplyTo(existing); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, existing); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes the review and returns the removed record so callers
// can reference its title.
func (s *reviewService) Delete(ctx context.Context, id int64) (*models.Review, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return existing, nil
}

// LinkGenre looks up the review and the genre independently, appends
// the association and returns the refreshed review. A missing review
// is a not-found; a missing genre fails the append with a data error.
func (s *reviewService) LinkGenre(ctx context.Context, reviewID, genreID int64) (*models.Review, error) {
	if _, err := s.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}
	if _, err := s.genreRepo.GetByID(ctx, genreID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}
	if err := s.repo.AppendGenre(ctx, reviewID, genreID); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, reviewID)
}

// UnlinkGenre removes one association row. Removing a link that is not
// present fails with ErrGenreNotLinked.
func (s *reviewService) UnlinkGenre(ctx context.Context, reviewID, genreID int64) (*models.Review, error) {
	if _, err := s.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}
	if _, err := s.genreRepo.GetByID(ctx, genreID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}
	if err := s.repo.RemoveGenre(ctx, reviewID, genreID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotLinked
		}
		return nil, err
	}
	return s.GetByID(ctx, reviewID)
}
