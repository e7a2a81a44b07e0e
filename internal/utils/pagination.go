// internal/utils/pagination.go
package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams is the query string shared by the admin listings.
type PaginationParams struct {
	Page   int
	Limit  int
	Sort   string
	Desc   bool
	Search string
	Status string
}

type PaginationResult struct {
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"total_pages"`
	Data       interface{} `json:"data"`
}

// GetPaginationParams reads page, limit, sort, order, search and status.
// Oversized limits are clamped rather than rejected.
func GetPaginationParams(c *gin.Context) PaginationParams {
	params := PaginationParams{
		Page:   positiveQuery(c, "page", 1),
		Limit:  positiveQuery(c, "limit", DefaultPageSize),
		Sort:   c.Query("sort"),
		Desc:   !strings.EqualFold(c.Query("order"), "asc"),
		Search: strings.TrimSpace(c.Query("search")),
		Status: c.Query("status"),
	}
	if params.Limit > MaxPageSize {
		params.Limit = MaxPageSize
	}
	return params
}

func positiveQuery(c *gin.Context, key string, fallback int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ApplyPagination orders by params.Sort when it is one of sortable, else by
// created_at, and restricts db to the requested page.
func ApplyPagination(db *gorm.DB, params PaginationParams, sortable ...string) *gorm.DB {
	column := "created_at"
	for _, name := range sortable {
		if name == params.Sort {
			column = name
			break
		}
	}

	return db.
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: params.Desc}).
		Offset(params.Offset()).
		Limit(params.Limit)
}

func CreatePaginationResult(data interface{}, total int64, params PaginationParams) PaginationResult {
	var pages int
	if params.Limit > 0 {
		pages = int((total + int64(params.Limit) - 1) / int64(params.Limit))
	}

	return PaginationResult{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: pages,
		Data:       data,
	}
}
