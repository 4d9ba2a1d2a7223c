package dashboard

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/JaimeStill/octo/internal/agents"
	"github.com/JaimeStill/octo/internal/session"
	"github.com/JaimeStill/octo/pkg/cache"
	"github.com/JaimeStill/octo/pkg/pagination"
)

// Fetcher loads one page of the current user's agents.
type Fetcher interface {
	List(ctx context.Context, q agents.ListQuery) (*pagination.PageResult[agents.Agent], error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, q agents.ListQuery) (*pagination.PageResult[agents.Agent], error)

func (f FetcherFunc) List(ctx context.Context, q agents.ListQuery) (*pagination.PageResult[agents.Agent], error) {
	return f(ctx, q)
}

// BindSession returns a Fetcher that lists through sys as s.
func BindSession(sys agents.System, s *session.Session) Fetcher {
	return FetcherFunc(func(ctx context.Context, q agents.ListQuery) (*pagination.PageResult[agents.Agent], error) {
		return sys.List(ctx, s, q)
	})
}

// Ticket identifies one requested fetch. Seq increases with every request.
type Ticket struct {
	Seq   uint64
	Query agents.ListQuery
	Key   cache.Key
}

// Outcome is the result of loading a ticket.
type Outcome struct {
	Ticket Ticket
	Result *pagination.PageResult[agents.Agent]
	Err    error
}

// ViewState is the visible state of a list controller.
type ViewState struct {
	Location string
	State    pagination.State
	Loading  bool
	List     ListView
	Err      error
}

// ListController drives an agent list from its filter state.
// Only the outcome of the most recent request is ever committed to the view;
// outcomes of superseded requests are dropped without cancelling their fetch.
type ListController struct {
	binding  *pagination.Binding
	fetcher  Fetcher
	owner    uuid.UUID
	pageSize int
	cache    *cache.Cache[*pagination.PageResult[agents.Agent]]

	mu     sync.Mutex
	latest Ticket
	view   ViewState
}

// ListOption configures a ListController.
type ListOption func(*ListController)

// WithPageSize requests pages of n items. Zero uses the server default.
func WithPageSize(n int) ListOption {
	return func(c *ListController) { c.pageSize = n }
}

// WithCache replaces the controller's private cache, for sharing between controllers.
func WithCache(cc *cache.Cache[*pagination.PageResult[agents.Agent]]) ListOption {
	return func(c *ListController) { c.cache = cc }
}

// NewListController creates a controller for owner's list bound to binding.
func NewListController(binding *pagination.Binding, fetcher Fetcher, owner uuid.UUID, opts ...ListOption) *ListController {
	c := &ListController{
		binding: binding,
		fetcher: fetcher,
		owner:   owner,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = cache.New[*pagination.PageResult[agents.Agent]](agents.FamilyList)
	}

	state := binding.State()
	c.view = ViewState{
		Location: state.Encode(),
		State:    state,
		Loading:  true,
		List:     LoadingView(),
	}
	return c
}

// Update applies a filter change and requests the resulting page.
func (c *ListController) Update(p pagination.Patch) Ticket {
	c.binding.Update(p)
	return c.Request()
}

// Request issues a ticket for the current filter state and puts the view into loading.
func (c *ListController) Request() Ticket {
	state := c.binding.State()
	q := agents.ListQuery{
		Search:   state.Search,
		Page:     state.Page,
		PageSize: c.pageSize,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	t := Ticket{
		Seq:   c.latest.Seq + 1,
		Query: q,
		Key:   agents.ListKey(c.owner, q),
	}
	c.latest = t
	c.view.Location = state.Encode()
	c.view.State = state
	c.view.Loading = true
	c.view.List = LoadingView()
	c.view.Err = nil
	return t
}

// Load fetches the page for t through the cache. It is safe to call from any goroutine.
func (c *ListController) Load(ctx context.Context, t Ticket) Outcome {
	result, err := c.cache.Fetch(ctx, t.Key, func(ctx context.Context) (*pagination.PageResult[agents.Agent], error) {
		return c.fetcher.List(ctx, t.Query)
	})
	return Outcome{Ticket: t, Result: result, Err: err}
}

// Commit applies o to the view if its ticket is still the latest request.
// It reports whether the outcome was applied.
func (c *ListController) Commit(o Outcome) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if o.Ticket.Seq != c.latest.Seq {
		return false
	}

	c.view.Loading = false
	c.view.Err = o.Err
	if o.Err != nil {
		c.view.List = ListView{}
		return true
	}

	c.view.List = Render(o.Result.Items, o.Ticket.Query.Page, o.Result.TotalPages)
	return true
}

// Refresh requests, loads, and commits the current page synchronously.
func (c *ListController) Refresh(ctx context.Context) ViewState {
	c.Commit(c.Load(ctx, c.Request()))
	return c.View()
}

// View returns a snapshot of the visible state.
func (c *ListController) View() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Invalidate drops every cached page of owner. The id is accepted so the controller
// can serve as a creation flow Invalidator; list pages are dropped as a family.
func (c *ListController) Invalidate(owner, id uuid.UUID) int {
	return c.cache.Invalidate(cache.Family(agents.FamilyList, owner.String()))
}
