package dto

import (
	"errors"
	"fmt"
	"time"

	"watchlog/internal/http-api/models"
)

// wire format for date fields
const dateLayout = "2006-01-02"

// ErrInvalidDate: a date field was supplied but does not parse.
var ErrInvalidDate = errors.New("invalid date")

// CreateReviewDTO used for POST /reviews.
// Every field is optional: missing fields are stored as NULL, no
// defaults are applied. The owner is never taken from the body.
type CreateReviewDTO struct {
	Title        string  `json:"title"`
	StatusID     *int64  `json:"status_id,omitempty"`
	TypeID       *int64  `json:"type_id,omitempty"`
	RatingID     *int64  `json:"rating_id,omitempty"`
	EpsWatched   *int    `json:"eps_watched,omitempty"`
	EpsTotal     *int    `json:"eps_total,omitempty"`
	DateStarted  *string `json:"date_started,omitempty"`
	DateFinished *string `json:"date_finished,omitempty"`
	Recom        *bool   `json:"recom,omitempty"`
	Fav          *bool   `json:"fav,omitempty"`
	Com          *string `json:"com,omitempty"`
}

// UpdateReviewDTO used for PUT/PATCH /reviews/:id (partial updates allowed)
type UpdateReviewDTO struct {
	Title        *string `json:"title,omitempty"`
	StatusID     *int64  `json:"status_id,omitempty"`
	TypeID       *int64  `json:"type_id,omitempty"`
	RatingID     *int64  `json:"rating_id,omitempty"`
	EpsWatched   *int    `json:"eps_watched,omitempty"`
	EpsTotal     *int    `json:"eps_total,omitempty"`
	DateStarted  *string `json:"date_started,omitempty"`
	DateFinished *string `json:"date_finished,omitempty"`
	Recom        *bool   `json:"recom,omitempty"`
	Fav          *bool   `json:"fav,omitempty"`
	Com          *string `json:"com,omitempty"`
}

// ReviewResponse DTO for responses
type ReviewResponse struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	Title        string          `json:"title"`
	StatusID     *int64          `json:"status_id"`
	TypeID       *int64          `json:"type_id"`
	RatingID     *int64          `json:"rating_id"`
	EpsWatched   *int            `json:"eps_watched"`
	EpsTotal     *int            `json:"eps_total"`
	DateStarted  *string         `json:"date_started"`
	DateFinished *string         `json:"date_finished"`
	Recom        *bool           `json:"recom"`
	Fav          *bool           `json:"fav"`
	Com          *string         `json:"com"`
	Genres       []GenreResponse `json:"genres"`
}

// Converters

func (d CreateReviewDTO) ToModel(userID int64) (models.Review, error) {
	started, err := parseDate(d.DateStarted)
	if err != nil {
		return models.Review{}, err
	}
	finished, err := parseDate(d.DateFinished)
	if err != nil {
		return models.Review{}, err
	}
	return models.Review{
		UserID:       userID,
		Title:        d.Title,
		StatusID:     d.StatusID,
		TypeID:       d.TypeID,
		RatingID:     d.RatingID,
		EpsWatched:   d.EpsWatched,
		EpsTotal:     d.EpsTotal,
		DateStarted:  started,
		DateFinished: finished,
		Recom:        d.Recom,
		Fav:          d.Fav,
		Com:          d.Com,
	}, nil
}

// ApplyTo merges the supplied fields into an existing review.
// The merge is truthy-gated, not presence-gated: a field only
// overwrites the stored value when it is supplied AND non-zero /
// non-empty / true. Sending eps_watched:0, title:"" or recom:false is
// indistinguishable from omitting the field and keeps the old value.
// This matches the documented update contract; callers wanting a
// presence-based merge would drop the truthiness checks below.
func (d UpdateReviewDTO) ApplyTo(r *models.Review) error {
	if d.Title != nil && *d.Title != "" {
		r.Title = *d.Title
	}
	if d.StatusID != nil && *d.StatusID != 0 {
		r.StatusID = d.StatusID
	}
	if d.TypeID != nil && *d.TypeID != 0 {
		r.TypeID = d.TypeID
	}
	if d.RatingID != nil && *d.RatingID != 0 {
		r.RatingID = d.RatingID
	}
	if d.EpsWatched != nil && *d.EpsWatched != 0 {
		r.EpsWatched = d.EpsWatched
	}
	if d.EpsTotal != nil && *d.EpsTotal != 0 {
		r.EpsTotal = d.EpsTotal
	}
	if d.DateStarted != nil && *d.DateStarted != "" {
		t, err := parseDate(d.DateStarted)
		if err != nil {
			return err
		}
		r.DateStarted = t
	}
	if d.DateFinished != nil && *d.DateFinished != "" {
		t, err := parseDate(d.DateFinished)
		if err != nil {
			return err
		}
		r.DateFinished = t
	}
	if d.Recom != nil && *d.Recom {
		r.Recom = d.Recom
	}
	if d.Fav != nil && *d.Fav {
		r.Fav = d.Fav
	}
	if d.Com != nil && *d.Com != "" {
		r.Com = d.Com
	}
	return nil
}

func FromModelToResponse(r models.Review) ReviewResponse {
	genres := make([]GenreResponse, 0, len(r.Genres))
	for _, g := range r.Genres {
		genres = append(genres, GenreFromModel(g))
	}
	return ReviewResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		Title:        r.Title,
		StatusID:     r.StatusID,
		TypeID:       r.TypeID,
		RatingID:     r.RatingID,
		EpsWatched:   r.EpsWatched,
		EpsTotal:     r.EpsTotal,
		DateStarted:  formatDate(r.DateStarted),
		DateFinished: formatDate(r.DateFinished),
		Recom:        r.Recom,
		Fav:          r.Fav,
		Com:          r.Com,
		Genres:       genres,
	}
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("%w %q, expected YYYY-MM-DD", ErrInvalidDate, *s)
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
