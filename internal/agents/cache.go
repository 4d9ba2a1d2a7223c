package agents

import (
	"context"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/octo/internal/session"
	"github.com/JaimeStill/octo/pkg/cache"
	"github.com/JaimeStill/octo/pkg/pagination"
)

// Cache families for agent queries.
const (
	FamilyList = "agents.list"
	FamilyOne  = "agents.one"
)

// ListKey returns the cache key of a normalized list query for owner.
func ListKey(owner uuid.UUID, q ListQuery) cache.Key {
	params := url.Values{}
	params.Set("search", q.Search)
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("page_size", strconv.Itoa(q.PageSize))

	return cache.Key{Family: FamilyList, Owner: owner.String(), Params: params.Encode()}
}

// OneKey returns the cache key of a single agent lookup.
func OneKey(owner, id uuid.UUID) cache.Key {
	return cache.Key{Family: FamilyOne, Owner: owner.String(), Params: id.String()}
}

// Coordinator is a System that caches list pages and single agents per owner.
// Cached values are shared between callers and must not be modified.
type Coordinator struct {
	sys        System
	pagination pagination.Config
	lists      *cache.Cache[*pagination.PageResult[Agent]]
	items      *cache.Cache[*Agent]
}

// NewCoordinator wraps sys with caches configured by opts.
func NewCoordinator(sys System, pag pagination.Config, opts ...cache.Option) *Coordinator {
	return &Coordinator{
		sys:        sys,
		pagination: pag,
		lists:      cache.New[*pagination.PageResult[Agent]](FamilyList, opts...),
		items:      cache.New[*Agent](FamilyOne, opts...),
	}
}

func (c *Coordinator) List(ctx context.Context, s *session.Session, q ListQuery) (*pagination.PageResult[Agent], error) {
	if s == nil {
		return nil, ErrUnauthorized
	}

	q = Normalize(q, c.pagination)
	if err := ValidateListQuery(q, c.pagination); err != nil {
		return nil, err
	}

	return c.lists.Fetch(ctx, ListKey(s.UserID, q), func(ctx context.Context) (*pagination.PageResult[Agent], error) {
		return c.sys.List(ctx, s, q)
	})
}

func (c *Coordinator) Find(ctx context.Context, s *session.Session, id uuid.UUID) (*Agent, error) {
	if s == nil {
		return nil, ErrUnauthorized
	}

	return c.items.Fetch(ctx, OneKey(s.UserID, id), func(ctx context.Context) (*Agent, error) {
		return c.sys.Find(ctx, s, id)
	})
}

// Create delegates to the wrapped System and invalidates the owner's cached
// pages and the new agent's entry on success.
func (c *Coordinator) Create(ctx context.Context, s *session.Session, cmd CreateCommand) (*Agent, error) {
	a, err := c.sys.Create(ctx, s, cmd)
	if err != nil {
		return nil, err
	}
	c.Invalidate(a.OwnerID, a.ID)
	return a, nil
}

// Invalidate drops every cached list page of owner and the cached entry for id.
// It returns the number of keys dropped.
func (c *Coordinator) Invalidate(owner, id uuid.UUID) int {
	n := c.lists.Invalidate(cache.Family(FamilyList, owner.String()))
	if c.items.InvalidateKey(OneKey(owner, id)) {
		n++
	}
	return n
}
