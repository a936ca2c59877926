package models

// Watch status ("watching", "completed", "dropped", ...).
type Status struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"unique;not null"`
}

func (Status) TableName() string {
	return "statuses"
}

// Media type ("TV", "movie", "OVA", ...).
type MediaType struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"unique;not null"`
}

func (MediaType) TableName() string {
	return "types"
}

// Rating tier ("S", "A", "B", ...).
type Rating struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"unique;not null"`
}

func (Rating) TableName() string {
	return "ratings"
}
