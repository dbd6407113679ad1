package dto

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
		wantOffset          int
	}{
		{"defaults", 0, 0, 1, DefaultLimit, 0},
		{"second page", 2, 10, 2, 10, 10},
		{"limit capped", 1, 500, 1, MaxLimit, 0},
		{"page capped", 1 << 62, MaxLimit, MaxPage, MaxLimit, (MaxPage - 1) * MaxLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit, offset := Normalize(tc.page, tc.limit)
			if page != tc.wantPage || limit != tc.wantLimit || offset != tc.wantOffset {
				t.Errorf("Normalize(%d, %d) = %d, %d, %d", tc.page, tc.limit, page, limit, offset)
			}
			if offset < 0 {
				t.Errorf("Expected non-negative offset, got %d", offset)
			}
		})
	}
}
