package models

import "time"

type Review struct {
	ID           int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       int64      `json:"user_id" gorm:"not null;index"`
	Title        string     `json:"title"`
	StatusID     *int64     `json:"status_id,omitempty"`
	TypeID       *int64     `json:"type_id,omitempty"`
	RatingID     *int64     `json:"rating_id,omitempty"`
	EpsWatched   *int       `json:"eps_watched,omitempty"`
	EpsTotal     *int       `json:"eps_total,omitempty"`
	DateStarted  *time.Time `json:"date_started,omitempty" gorm:"type:date"`
	DateFinished *time.Time `json:"date_finished,omitempty" gorm:"type:date"`
	Recom        *bool      `json:"recom,omitempty"`
	Fav          *bool      `json:"fav,omitempty"`
	Com          *string    `json:"com,omitempty"`

	// association
	Genres []Genre `json:"genres,omitempty" gorm:"many2many:review_genres;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
