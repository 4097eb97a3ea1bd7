package query

import "testing"

var spec = Spec{
	SearchColumns: []string{"name", "description"},
	SortColumns:   map[string]string{"name": "name", "createdAt": "created_at"},
	DefaultSort:   "name",
	DefaultLimit:  10,
	MaxLimit:      100,
}

func TestNormalizeDefaults(t *testing.T) {
	p := spec.Normalize(Params{})
	if p.Page != 1 {
		t.Errorf("page = %d, want 1", p.Page)
	}
	if p.Limit != 10 {
		t.Errorf("limit = %d, want 10", p.Limit)
	}
	if p.SortBy != "name" {
		t.Errorf("sortBy = %q, want name", p.SortBy)
	}
	if p.SortOrder != "ASC" {
		t.Errorf("sortOrder = %q, want ASC", p.SortOrder)
	}
}

func TestNormalizeClampsPageAndLimit(t *testing.T) {
	p := spec.Normalize(Params{Page: -3, Limit: 5000})
	if p.Page != 1 {
		t.Errorf("page = %d, want 1", p.Page)
	}
	if p.Limit != 100 {
		t.Errorf("limit = %d, want 100", p.Limit)
	}
}

func TestNormalizeSortWhitelist(t *testing.T) {
	p := spec.Normalize(Params{SortBy: "password; DROP TABLE users", SortOrder: "desc"})
	if p.SortBy != "name" {
		t.Errorf("sortBy = %q, want fallback to name", p.SortBy)
	}
	if p.SortOrder != "DESC" {
		t.Errorf("sortOrder = %q, want DESC", p.SortOrder)
	}

	p = spec.Normalize(Params{SortBy: "createdAt", SortOrder: "sideways"})
	if p.SortBy != "createdAt" {
		t.Errorf("sortBy = %q, want createdAt", p.SortBy)
	}
	if p.SortOrder != "ASC" {
		t.Errorf("sortOrder = %q, want ASC fallback", p.SortOrder)
	}
}

func TestOrderUsesColumnName(t *testing.T) {
	p := spec.Normalize(Params{SortBy: "createdAt", SortOrder: "DESC"})
	if got := spec.Order(p); got != "created_at DESC" {
		t.Errorf("order = %q, want created_at DESC", got)
	}
}

func TestOffset(t *testing.T) {
	p := spec.Normalize(Params{Page: 3, Limit: 10})
	if got := p.Offset(); got != 20 {
		t.Errorf("offset = %d, want 20", got)
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		pages int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
	}
	for _, tt := range tests {
		p := Paginate(Params{Page: 1, Limit: tt.limit}, tt.total)
		if p.Pages != tt.pages {
			t.Errorf("Paginate(total=%d, limit=%d).Pages = %d, want %d", tt.total, tt.limit, p.Pages, tt.pages)
		}
		if p.Total != tt.total {
			t.Errorf("Paginate total = %d, want %d", p.Total, tt.total)
		}
	}
}
