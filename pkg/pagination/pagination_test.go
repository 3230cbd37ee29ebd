package pagination_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/aeolab/beacon/pkg/pagination"
	"github.com/aeolab/beacon/pkg/query"
)

func testConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"zero values", 0, 0, 1, 20},
		{"negative page", -5, 10, 1, 10},
		{"oversized page size clamped", 1, 500, 1, 100},
		{"valid values unchanged", 3, 50, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pagination.PageRequest{Page: tt.page, PageSize: tt.pageSize}
			req.Normalize(testConfig())

			if req.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", req.Page, tt.wantPage)
			}
			if req.PageSize != tt.wantPageSize {
				t.Errorf("page size = %d, want %d", req.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, PageSize: 25}
	if got := req.Offset(); got != 50 {
		t.Errorf("Offset() = %d, want 50", got)
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("page", "2")
	values.Set("page_size", "10")
	values.Set("search", "acme")
	values.Set("sort", "-createdAt,name")

	req := pagination.PageRequestFromQuery(values, testConfig())

	if req.Page != 2 {
		t.Errorf("page = %d, want 2", req.Page)
	}
	if req.PageSize != 10 {
		t.Errorf("page size = %d, want 10", req.PageSize)
	}
	if req.Search == nil || *req.Search != "acme" {
		t.Errorf("search = %v, want acme", req.Search)
	}
	if len(req.Sort) != 2 {
		t.Fatalf("sort length = %d, want 2", len(req.Sort))
	}
	if req.Sort[0] != (query.SortField{Field: "createdAt", Descending: true}) {
		t.Errorf("sort[0] = %v", req.Sort[0])
	}
	if req.Sort[1] != (query.SortField{Field: "name"}) {
		t.Errorf("sort[1] = %v", req.Sort[1])
	}
}

func TestPageRequestFromQueryDefaults(t *testing.T) {
	req := pagination.PageRequestFromQuery(url.Values{}, testConfig())

	if req.Page != 1 {
		t.Errorf("page = %d, want 1", req.Page)
	}
	if req.PageSize != 20 {
		t.Errorf("page size = %d, want 20", req.PageSize)
	}
	if req.Search != nil {
		t.Errorf("search = %v, want nil", req.Search)
	}
}

func TestSortFieldsUnmarshalString(t *testing.T) {
	var req pagination.PageRequest
	body := `{"page": 1, "page_size": 10, "sort": "-priority,name"}`

	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if len(req.Sort) != 2 {
		t.Fatalf("sort length = %d, want 2", len(req.Sort))
	}
	if req.Sort[0] != (query.SortField{Field: "priority", Descending: true}) {
		t.Errorf("sort[0] = %v", req.Sort[0])
	}
}

func TestSortFieldsUnmarshalArray(t *testing.T) {
	var req pagination.PageRequest
	body := `{"sort": [{"Field": "name", "Descending": false}, {"Field": "createdAt", "Descending": true}]}`

	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if len(req.Sort) != 2 {
		t.Fatalf("sort length = %d, want 2", len(req.Sort))
	}
	if req.Sort[1] != (query.SortField{Field: "createdAt", Descending: true}) {
		t.Errorf("sort[1] = %v", req.Sort[1])
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		data           []string
		total          int
		page           int
		pageSize       int
		wantTotalPages int
	}{
		{"exact pages", []string{"a", "b"}, 40, 1, 20, 2},
		{"partial last page", []string{"a"}, 41, 1, 20, 3},
		{"empty results", nil, 0, 1, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult(tt.data, tt.total, tt.page, tt.pageSize)

			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("total pages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
			if result.Data == nil {
				t.Error("data should never be nil")
			}
			if result.Total != tt.total {
				t.Errorf("total = %d, want %d", result.Total, tt.total)
			}
		})
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		cfg := pagination.Config{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg.DefaultPageSize != 20 {
			t.Errorf("default page size = %d, want 20", cfg.DefaultPageSize)
		}
		if cfg.MaxPageSize != 100 {
			t.Errorf("max page size = %d, want 100", cfg.MaxPageSize)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_PAGE_DEFAULT", "15")
		t.Setenv("TEST_PAGE_MAX", "60")

		cfg := pagination.Config{}
		env := &pagination.ConfigEnv{
			DefaultPageSize: "TEST_PAGE_DEFAULT",
			MaxPageSize:     "TEST_PAGE_MAX",
		}
		if err := cfg.Finalize(env); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg.DefaultPageSize != 15 {
			t.Errorf("default page size = %d, want 15", cfg.DefaultPageSize)
		}
		if cfg.MaxPageSize != 60 {
			t.Errorf("max page size = %d, want 60", cfg.MaxPageSize)
		}
	})
}
