package pagination

import "testing"

func TestValidateClampsParams(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()
	if p.Page != 1 || p.PerPage != 100 {
		t.Errorf("got %+v", p)
	}

	p = &PaginationParams{}
	p.Validate()
	if p.PerPage != 15 {
		t.Errorf("expected default per page, got %d", p.PerPage)
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		page, perPage, n int
		start, end       int
	}{
		{1, 2, 5, 0, 2},
		{3, 2, 5, 4, 5},
		{4, 2, 5, 5, 5},
		{1, 10, 0, 0, 0},
	}
	for _, tt := range tests {
		p := &PaginationParams{Page: tt.page, PerPage: tt.perPage}
		start, end := p.Bounds(tt.n)
		if start != tt.start || end != tt.end {
			t.Errorf("page %d/%d of %d: got [%d:%d], want [%d:%d]", tt.page, tt.perPage, tt.n, start, end, tt.start, tt.end)
		}
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	if p.TotalPages != 3 || !p.HasNext || !p.HasPrev {
		t.Errorf("got %+v", p)
	}

	last := NewPagination(3, 10, 25)
	if last.HasNext {
		t.Error("last page should not have next")
	}
}
