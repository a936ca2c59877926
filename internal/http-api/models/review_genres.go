package models

// explicit join model so duplicate links are representable (has its own id)
type ReviewGenre struct {
	ID       int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	ReviewID int64 `json:"review_id" gorm:"index;not null"`
	GenreID  int64 `json:"genre_id" gorm:"index;not null"`
}

func (ReviewGenre) TableName() string {
	return "review_genres"
}
