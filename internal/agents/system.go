package agents

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/octo/internal/session"
	"github.com/JaimeStill/octo/pkg/pagination"
)

// System defines the agent operations available to handlers and views.
// The session is passed explicitly; a nil session yields ErrUnauthorized.
type System interface {
	List(ctx context.Context, s *session.Session, q ListQuery) (*pagination.PageResult[Agent], error)
	Find(ctx context.Context, s *session.Session, id uuid.UUID) (*Agent, error)
	Create(ctx context.Context, s *session.Session, cmd CreateCommand) (*Agent, error)
}

// Observer is notified after an agent is created.
type Observer interface {
	AgentCreated(plan string)
}

// Option configures the System returned by New.
type Option func(*system)

// WithClock replaces time.Now for created_at values.
func WithClock(now func() time.Time) Option {
	return func(s *system) { s.now = now }
}

// WithObserver reports created agents to obs.
func WithObserver(obs Observer) Option {
	return func(s *system) { s.observer = obs }
}

type system struct {
	repo       Repository
	logger     *slog.Logger
	pagination pagination.Config
	cfg        Config
	now        func() time.Time
	observer   Observer
}

// New creates the agents System over repo.
func New(repo Repository, logger *slog.Logger, pag pagination.Config, cfg Config, opts ...Option) System {
	s := &system{
		repo:       repo,
		logger:     logger.With("system", "agents"),
		pagination: pag,
		cfg:        cfg,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Normalize applies the default page size to q.
func Normalize(q ListQuery, cfg pagination.Config) ListQuery {
	req := pagination.PageRequest{Page: q.Page, PageSize: q.PageSize}.WithDefaults(cfg)
	q.PageSize = req.PageSize
	return q
}

// ValidateListQuery rejects pages below 1 and page sizes outside the configured range.
func ValidateListQuery(q ListQuery, cfg pagination.Config) error {
	req := pagination.PageRequest{Page: q.Page, PageSize: q.PageSize}
	if err := req.Validate(cfg); err != nil {
		field := "page"
		if errors.Is(err, pagination.ErrInvalidPageSize) {
			field = "page_size"
		}
		return NewValidationError(field, err.Error())
	}
	return nil
}

func (s *system) List(ctx context.Context, sess *session.Session, q ListQuery) (*pagination.PageResult[Agent], error) {
	if sess == nil {
		return nil, ErrUnauthorized
	}

	q = Normalize(q, s.pagination)
	if err := ValidateListQuery(q, s.pagination); err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, sess.UserID, q.Search)
	if err != nil {
		return nil, err
	}

	offset := (q.Page - 1) * q.PageSize
	items := []Agent{}
	if offset < total {
		items, err = s.repo.Select(ctx, sess.UserID, q.Search, q.PageSize, offset)
		if err != nil {
			return nil, err
		}
	}

	result := pagination.NewPageResult(items, total, q.Page, q.PageSize)
	return &result, nil
}

func (s *system) Find(ctx context.Context, sess *session.Session, id uuid.UUID) (*Agent, error) {
	if sess == nil {
		return nil, ErrUnauthorized
	}
	return s.repo.FindByID(ctx, sess.UserID, id)
}

func (s *system) Create(ctx context.Context, sess *session.Session, cmd CreateCommand) (*Agent, error) {
	if sess == nil {
		return nil, ErrUnauthorized
	}

	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	cmd = cmd.Normalize()

	a := Agent{
		ID:           uuid.New(),
		OwnerID:      sess.UserID,
		Name:         cmd.Name,
		Instructions: cmd.Instructions,
		CreatedAt:    s.now().UTC().Truncate(time.Microsecond),
	}

	limit := 0
	if sess.Plan == session.PlanFree {
		limit = s.cfg.Limit()
	}

	if err := s.repo.Insert(ctx, a, limit); err != nil {
		if errors.Is(err, ErrForbidden) {
			s.logger.Info("agent limit reached", "owner", sess.UserID, "limit", limit)
		}
		return nil, err
	}

	s.logger.Info("agent created", "id", a.ID, "owner", a.OwnerID)
	if s.observer != nil {
		s.observer.AgentCreated(string(sess.Plan))
	}
	return &a, nil
}
