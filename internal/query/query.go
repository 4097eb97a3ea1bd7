// Package query turns raw list parameters into bounded, whitelisted
// database queries: normalized pagination, OR-composed case-insensitive
// search, structured filters and a sort whitelist per entity.
package query

import (
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
)

// Params are the raw list parameters taken from the request.
type Params struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

// Spec describes how one entity may be listed. SortColumns maps API field
// names to database columns; anything outside the map falls back to
// DefaultSort.
type Spec struct {
	SearchColumns []string
	SortColumns   map[string]string
	DefaultSort   string
	DefaultLimit  int
	MaxLimit      int
}

// Normalize clamps page and limit, whitelists the sort field and normalizes
// the sort order to ASC/DESC. The returned Params are the effective values
// echoed back to the client.
func (s Spec) Normalize(p Params) Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = s.DefaultLimit
	}
	if s.MaxLimit > 0 && p.Limit > s.MaxLimit {
		p.Limit = s.MaxLimit
	}
	if _, ok := s.SortColumns[p.SortBy]; !ok {
		p.SortBy = s.DefaultSort
	}
	if strings.EqualFold(p.SortOrder, "DESC") {
		p.SortOrder = "DESC"
	} else {
		p.SortOrder = "ASC"
	}
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Order returns the ORDER BY clause for normalized params.
func (s Spec) Order(p Params) string {
	return s.SortColumns[p.SortBy] + " " + p.SortOrder
}

// ApplySearch adds a case-insensitive substring match over the spec's search
// columns, OR-composed. LOWER(...) LIKE keeps the behavior identical on
// Postgres and sqlite.
func (s Spec) ApplySearch(db *gorm.DB, term string) *gorm.DB {
	if term == "" || len(s.SearchColumns) == 0 {
		return db
	}
	pattern := "%" + strings.ToLower(term) + "%"
	clauses := make([]string, len(s.SearchColumns))
	args := make([]interface{}, len(s.SearchColumns))
	for i, col := range s.SearchColumns {
		clauses[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}
	return db.Where(strings.Join(clauses, " OR "), args...)
}

// Op is a filter operator.
type Op string

const (
	OpEq       Op = "eq"
	OpGte      Op = "gte"
	OpLte      Op = "lte"
	OpContains Op = "contains"
)

// Filter is one structured predicate, ANDed with the search and the other
// filters.
type Filter struct {
	Column string
	Op     Op
	Value  interface{}
}

// ApplyFilters translates the filters into WHERE clauses.
func ApplyFilters(db *gorm.DB, filters []Filter) *gorm.DB {
	for _, f := range filters {
		switch f.Op {
		case OpEq:
			db = db.Where(f.Column+" = ?", f.Value)
		case OpGte:
			db = db.Where(f.Column+" >= ?", f.Value)
		case OpLte:
			db = db.Where(f.Column+" <= ?", f.Value)
		case OpContains:
			pattern := "%" + strings.ToLower(fmt.Sprint(f.Value)) + "%"
			db = db.Where("LOWER("+f.Column+") LIKE ?", pattern)
		}
	}
	return db
}

// Pagination is the page metadata returned alongside every list.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func Paginate(p Params, total int64) Pagination {
	return Pagination{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(p.Limit))),
	}
}
