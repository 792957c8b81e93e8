package pagination_test

import (
	"net/url"
	"testing"

	"github.com/JaimeStill/syllascan/pkg/pagination"
)

func defaultConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := pagination.Config{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize: %v", err)
		}
		if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 100 {
			t.Errorf("defaults = %+v", cfg)
		}
	})

	t.Run("default exceeds max", func(t *testing.T) {
		cfg := pagination.Config{DefaultPageSize: 50, MaxPageSize: 10}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("TEST_PAGE_SIZE", "5")
		cfg := pagination.Config{}
		if err := cfg.Finalize(&pagination.ConfigEnv{DefaultPageSize: "TEST_PAGE_SIZE"}); err != nil {
			t.Fatalf("Finalize: %v", err)
		}
		if cfg.DefaultPageSize != 5 {
			t.Errorf("default page size = %d, want 5", cfg.DefaultPageSize)
		}
	})
}

func TestPageRequestFromQuery(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"empty", "", 1, 20, 0},
		{"explicit", "page=3&page_size=10", 3, 10, 20},
		{"clamped size", "page_size=500", 1, 100, 0},
		{"negative page", "page=-2", 1, 20, 0},
		{"garbage", "page=abc&page_size=xyz", 1, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			req := pagination.PageRequestFromQuery(values, defaultConfig())

			if req.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", req.Page, tt.wantPage)
			}
			if req.PageSize != tt.wantSize {
				t.Errorf("page size = %d, want %d", req.PageSize, tt.wantSize)
			}
			if req.Offset() != tt.wantOffset {
				t.Errorf("offset = %d, want %d", req.Offset(), tt.wantOffset)
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
		{"exact", 40, 20, 2},
		{"remainder", 41, 20, 3},
		{"empty", 0, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult[string](nil, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantPages {
				t.Errorf("total pages = %d, want %d", result.TotalPages, tt.wantPages)
			}
			if result.Data == nil {
				t.Error("nil data should become empty slice")
			}
		})
	}
}
