package dashboard_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/octo/internal/agents"
	"github.com/JaimeStill/octo/internal/dashboard"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		want       int
	}{
		{"within range", 2, 3, 2},
		{"below one", 0, 3, 1},
		{"negative", -4, 3, 1},
		{"past end", 5, 3, 3},
		{"no pages", 2, 0, 1},
		{"no pages at one", 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dashboard.ClampPage(tt.page, tt.totalPages); got != tt.want {
				t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.totalPages, got, tt.want)
			}
		})
	}
}

func TestNewPager(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		totalPages   int
		prevDisabled bool
		nextDisabled bool
		label        string
	}{
		{"first of many", 1, 3, true, false, "Page 1 of 3"},
		{"middle", 2, 3, false, false, "Page 2 of 3"},
		{"last", 3, 3, false, true, "Page 3 of 3"},
		{"single", 1, 1, true, true, "Page 1 of 1"},
		{"empty", 1, 0, true, true, "Page 1 of 0"},
		{"beyond end", 5, 3, false, false, "Page 5 of 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := dashboard.NewPager(tt.page, tt.totalPages)
			if p.PrevDisabled != tt.prevDisabled {
				t.Errorf("PrevDisabled = %v, want %v", p.PrevDisabled, tt.prevDisabled)
			}
			if p.NextDisabled != tt.nextDisabled {
				t.Errorf("NextDisabled = %v, want %v", p.NextDisabled, tt.nextDisabled)
			}
			if p.Label != tt.label {
				t.Errorf("Label = %q, want %q", p.Label, tt.label)
			}
		})
	}
}

func TestPager_Neighbours(t *testing.T) {
	p := dashboard.NewPager(5, 3)
	if p.PrevPage != 3 || p.NextPage != 3 {
		t.Errorf("PrevPage/NextPage = %d/%d, want 3/3", p.PrevPage, p.NextPage)
	}

	p = dashboard.NewPager(2, 3)
	if p.PrevPage != 1 || p.NextPage != 3 {
		t.Errorf("PrevPage/NextPage = %d/%d, want 1/3", p.PrevPage, p.NextPage)
	}
}

func TestRender(t *testing.T) {
	created := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	items := []agents.Agent{
		{ID: uuid.New(), Name: "Math Tutor", Instructions: "teach", CreatedAt: created},
		{ID: uuid.New(), Name: "Code Helper", Instructions: "code", CreatedAt: created},
	}

	view := dashboard.Render(items, 1, 2)

	if view.Empty || view.Loading {
		t.Errorf("Empty/Loading = %v/%v, want false/false", view.Empty, view.Loading)
	}
	if len(view.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(view.Rows))
	}
	if view.Rows[0].ID != items[0].ID || view.Rows[1].Name != "Code Helper" {
		t.Errorf("rows out of order: %+v", view.Rows)
	}
	if !view.Pager.PrevDisabled || view.Pager.NextDisabled {
		t.Errorf("pager = %+v", view.Pager)
	}
}

func TestRender_Empty(t *testing.T) {
	view := dashboard.Render(nil, 1, 0)

	if !view.Empty {
		t.Error("Empty = false, want true")
	}
	if view.Loading {
		t.Error("empty view reported loading")
	}
	if !view.Pager.PrevDisabled || !view.Pager.NextDisabled {
		t.Errorf("pager controls = %v/%v, want both disabled", view.Pager.PrevDisabled, view.Pager.NextDisabled)
	}
}

func TestLoadingView(t *testing.T) {
	view := dashboard.LoadingView()

	if !view.Loading || view.Empty {
		t.Errorf("Loading/Empty = %v/%v, want true/false", view.Loading, view.Empty)
	}
	if view.Skeleton != dashboard.SkeletonRows {
		t.Errorf("Skeleton = %d, want %d", view.Skeleton, dashboard.SkeletonRows)
	}
}

func TestPageIntent(t *testing.T) {
	p := dashboard.PageIntent(9, 4)
	if p.Page == nil || *p.Page != 4 {
		t.Fatalf("PageIntent(9, 4).Page = %v, want 4", p.Page)
	}
	if p.Search != nil {
		t.Error("PageIntent changed search")
	}

	s := dashboard.SearchIntent("math")
	if s.Search == nil || *s.Search != "math" || s.Page != nil {
		t.Errorf("SearchIntent() = %+v", s)
	}
}
