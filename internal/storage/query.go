package storage

import (
	"strings"
	"time"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/config"
)

// ComplaintFilter narrows the admin list query. Zero-valued fields are
// ignored. Department is a case-insensitive partial match; the date range is
// inclusive and applies to the creation time.
type ComplaintFilter struct {
	Status     string
	Department string
	Category   string
	StartDate  *time.Time
	EndDate    *time.Time
}

// ListOptions control sorting and pagination. Page is 1-based.
type ListOptions struct {
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// sortColumns maps accepted sortBy keys to real column names. Anything not
// in the map falls back to creation time, which also keeps user input out of
// the ORDER BY clause.
var sortColumns = map[string]string{
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
	"status":     "status",
	"department": "department",
	"category":   "category",
	"deptNo":     "dept_no",
	"dept_no":    "dept_no",
	"username":   "submitter_name",
}

// Normalize fills in defaults and clamps nonsensical values.
func (o ListOptions) Normalize() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = config.DefaultPageSize
	}
	if _, ok := sortColumns[o.SortBy]; !ok {
		o.SortBy = config.DefaultSortBy
	}
	if o.SortOrder != "asc" {
		o.SortOrder = "desc"
	}
	return o
}

// Offset returns the row offset for the normalized page/limit pair.
func (o ListOptions) Offset() int {
	return (o.Page - 1) * o.Limit
}

// OrderClause renders the ORDER BY expression for the normalized options.
func (o ListOptions) OrderClause() string {
	col, ok := sortColumns[o.SortBy]
	if !ok {
		col = config.DefaultSortBy
	}
	order := strings.ToLower(o.SortOrder)
	if order != "asc" {
		order = "desc"
	}
	return col + " " + order
}

// Pages returns the stable page count for a result set: ceil(total/limit).
func Pages(total int64, limit int) int64 {
	if limit < 1 {
		return 0
	}
	l := int64(limit)
	return (total + l - 1) / l
}
