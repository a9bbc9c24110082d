package dto

import "math"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

const (
	DefaultPage    = 1
	DefaultPerPage = 25
	MaxPerPage     = 200
)

// PageQuery is bound from ?page=&per_page= on list endpoints.
type PageQuery struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

// Normalize clamps the query to sane bounds.
func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewPagination(q PageQuery, total int64) Pagination {
	pages := 0
	if q.PerPage > 0 {
		pages = int(math.Ceil(float64(total) / float64(q.PerPage)))
	}
	return Pagination{Page: q.Page, PerPage: q.PerPage, Total: total, TotalPages: pages}
}
