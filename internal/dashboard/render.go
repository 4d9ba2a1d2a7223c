// Package dashboard holds the view logic shared by the web and terminal dashboards:
// list rendering, the list controller, and the agent creation flow.
package dashboard

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/octo/internal/agents"
	"github.com/JaimeStill/octo/pkg/pagination"
)

// Empty state copy.
const (
	EmptyTitle = "No Such Agents"
	EmptyHint  = "Get started by creating your first agent."
)

// SkeletonRows is the number of placeholder rows shown while loading.
const SkeletonRows = 3

// Row is one rendered agent.
type Row struct {
	ID           uuid.UUID
	Name         string
	Instructions string
	CreatedAt    time.Time
}

// Pager describes the pagination controls.
type Pager struct {
	Page         int
	TotalPages   int
	PrevPage     int
	NextPage     int
	PrevDisabled bool
	NextDisabled bool
	Label        string
}

// ListView is the rendered state of an agent list.
type ListView struct {
	Rows     []Row
	Empty    bool
	Loading  bool
	Skeleton int
	Pager    Pager
}

// Render builds the view of one page. It has no side effects.
func Render(items []agents.Agent, page, totalPages int) ListView {
	rows := make([]Row, len(items))
	for i, a := range items {
		rows[i] = Row{
			ID:           a.ID,
			Name:         a.Name,
			Instructions: a.Instructions,
			CreatedAt:    a.CreatedAt,
		}
	}

	return ListView{
		Rows:  rows,
		Empty: len(rows) == 0,
		Pager: NewPager(page, totalPages),
	}
}

// LoadingView is the skeleton shown while a page is being fetched.
func LoadingView() ListView {
	return ListView{Loading: true, Skeleton: SkeletonRows}
}

// NewPager computes the pagination controls for page of totalPages.
func NewPager(page, totalPages int) Pager {
	return Pager{
		Page:         page,
		TotalPages:   totalPages,
		PrevPage:     ClampPage(page-1, totalPages),
		NextPage:     ClampPage(page+1, totalPages),
		PrevDisabled: page == 1,
		NextDisabled: page == totalPages || totalPages == 0,
		Label:        fmt.Sprintf("Page %d of %d", page, totalPages),
	}
}

// ClampPage limits p to [1, max(totalPages, 1)].
func ClampPage(p, totalPages int) int {
	upper := max(totalPages, 1)
	return min(max(p, 1), upper)
}

// PageIntent is the filter change emitted when the user picks page p.
func PageIntent(p, totalPages int) pagination.Patch {
	return pagination.SetPage(ClampPage(p, totalPages))
}

// SearchIntent is the filter change emitted when the user edits the search text.
func SearchIntent(search string) pagination.Patch {
	return pagination.SetSearch(search)
}
