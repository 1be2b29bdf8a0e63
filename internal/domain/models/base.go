package models

import "time"

// BaseModel is embedded by all persisted models.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaginationQuery carries the common list query parameters.
type PaginationQuery struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

// PaginationResult describes one page of a paginated listing.
type PaginationResult struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// NewPaginationResult builds a pagination block from a total row count.
func NewPaginationResult(total int64, page, pageSize int) PaginationResult {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return PaginationResult{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
