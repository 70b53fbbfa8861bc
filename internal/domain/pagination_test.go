package domain_test

import (
	"testing"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

func TestPageWindow(t *testing.T) {
	tests := []struct {
		page, size  int
		limit, offs int
	}{
		{page: 1, size: 10, limit: 10, offs: 0},
		{page: 2, size: 5, limit: 10, offs: 5},
		{page: 4, size: 3, limit: 12, offs: 9},
		{page: 1000, size: 3, limit: 3000, offs: 2997},
	}

	for _, tt := range tests {
		limit, offset := domain.Page{Number: tt.page, Size: tt.size}.Window()
		if limit != tt.limit || offset != tt.offs {
			t.Errorf("Window(%d, %d) = (%d, %d), want (%d, %d)", tt.page, tt.size, limit, offset, tt.limit, tt.offs)
		}
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{total: 0, size: 10, want: 1},
		{total: 0, size: 1, want: 1},
		{total: 10, size: 10, want: 1},
		{total: 10, size: 5, want: 2},
		{total: 10, size: 3, want: 4},
		{total: 11, size: 5, want: 3},
	}

	for _, tt := range tests {
		if got := domain.TotalPages(tt.total, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestPageValidate(t *testing.T) {
	if err := (domain.Page{Number: 1, Size: 1}).Validate(); err != nil {
		t.Fatalf("expected valid page, got %v", err)
	}
	for _, p := range []domain.Page{{Number: 0, Size: 10}, {Number: 1, Size: 0}, {Number: -1, Size: -1}} {
		if err := p.Validate(); !domain.IsValidation(err) {
			t.Errorf("expected validation error for %+v, got %v", p, err)
		}
	}
}
