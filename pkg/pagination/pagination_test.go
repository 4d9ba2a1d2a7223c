package pagination_test

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/JaimeStill/octo/pkg/pagination"
)

var testConfig = pagination.Config{DefaultPageSize: 10, MinPageSize: 1, MaxPageSize: 100}

func TestPageRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request pagination.PageRequest
		wantErr error
	}{
		{"valid", pagination.PageRequest{Page: 2, PageSize: 25}, nil},
		{"bounds inclusive", pagination.PageRequest{Page: 1, PageSize: 100}, nil},
		{"zero page", pagination.PageRequest{Page: 0, PageSize: 10}, pagination.ErrInvalidPage},
		{"negative page", pagination.PageRequest{Page: -3, PageSize: 10}, pagination.ErrInvalidPage},
		{"zero page size", pagination.PageRequest{Page: 1, PageSize: 0}, pagination.ErrInvalidPageSize},
		{"page size above max", pagination.PageRequest{Page: 1, PageSize: 101}, pagination.ErrInvalidPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate(testConfig)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Validate() error = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPageRequest_WithDefaults(t *testing.T) {
	got := pagination.PageRequest{Page: 3}.WithDefaults(testConfig)
	if got.PageSize != 10 || got.Page != 3 {
		t.Errorf("WithDefaults() = %+v, want page 3 size 10", got)
	}

	kept := pagination.PageRequest{Page: 1, PageSize: 500}.WithDefaults(testConfig)
	if kept.PageSize != 500 {
		t.Errorf("WithDefaults() clamped page size to %d", kept.PageSize)
	}
}

func TestPageRequest_Offset(t *testing.T) {
	tests := []struct {
		page, size, want int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{5, 20, 80},
	}

	for _, tt := range tests {
		req := pagination.PageRequest{Page: tt.page, PageSize: tt.size}
		if got := req.Offset(); got != tt.want {
			t.Errorf("Offset(%d, %d) = %d, want %d", tt.page, tt.size, got, tt.want)
		}
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    pagination.PageRequest
		wantErr bool
	}{
		{"empty", "", pagination.PageRequest{Page: 1}, false},
		{"both", "page=3&page_size=20", pagination.PageRequest{Page: 3, PageSize: 20}, false},
		{"zero page kept for validation", "page=0", pagination.PageRequest{Page: 0}, false},
		{"non numeric page", "page=abc", pagination.PageRequest{}, true},
		{"non numeric size", "page_size=x", pagination.PageRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			got, err := pagination.PageRequestFromQuery(values)
			if tt.wantErr {
				if err == nil {
					t.Fatal("PageRequestFromQuery() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("PageRequestFromQuery() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("PageRequestFromQuery() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		pageSize  int
		wantPages int
	}{
		{"empty has zero pages", 0, 10, 0},
		{"exact fit", 20, 10, 2},
		{"remainder", 21, 10, 3},
		{"single short page", 3, 10, 1},
		{"twenty five by ten", 25, 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := pagination.NewPageResult[string](nil, tt.total, 1, tt.pageSize)
			if r.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", r.TotalPages, tt.wantPages)
			}
			if r.Items == nil {
				t.Error("Items is nil, want empty slice")
			}
		})
	}
}

func TestPageResult_JSON(t *testing.T) {
	r := pagination.NewPageResult([]string{"a"}, 1, 1, 10)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for _, key := range []string{"items", "total", "page", "page_size", "total_pages"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("JSON missing %q: %s", key, data)
		}
	}
}
