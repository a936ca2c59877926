package dto

// CreateLookupDTO for POST /statuses, /types and /ratings
type CreateLookupDTO struct {
	Name string `json:"name" binding:"required"`
}

type LookupResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
