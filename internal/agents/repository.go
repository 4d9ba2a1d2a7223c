package agents

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/octo/pkg/query"
	"github.com/JaimeStill/octo/pkg/repository"
)

// Repository is the storage boundary for agents. Every read is owner-scoped.
type Repository interface {
	Select(ctx context.Context, owner uuid.UUID, search string, limit, offset int) ([]Agent, error)
	Count(ctx context.Context, owner uuid.UUID, search string) (int, error)
	FindByID(ctx context.Context, owner, id uuid.UUID) (*Agent, error)
	// Insert stores a. When limit > 0 and the owner already has limit agents,
	// it returns ErrForbidden; the count and insert share a transaction.
	Insert(ctx context.Context, a Agent, limit int) error
}

type sqlRepository struct {
	db      *sql.DB
	dialect query.Dialect
}

// NewRepository creates a Repository over db using dialect for placeholders and matching.
func NewRepository(db *sql.DB, dialect query.Dialect) Repository {
	return &sqlRepository{db: db, dialect: dialect}
}

func (r *sqlRepository) builder(owner uuid.UUID, search string) *query.Builder {
	var s *string
	if search != "" {
		s = &search
	}
	return query.NewBuilder(projection, defaultSort...).
		WithDialect(r.dialect).
		WhereEquals("OwnerID", owner).
		WhereContains("Name", s)
}

func (r *sqlRepository) Select(ctx context.Context, owner uuid.UUID, search string, limit, offset int) ([]Agent, error) {
	q, args := r.builder(owner, search).BuildSlice(limit, offset)

	items, err := repository.QueryMany(ctx, r.db, q, args, scanAgent)
	if err != nil {
		return nil, fmt.Errorf("select agents: %w", err)
	}
	return items, nil
}

func (r *sqlRepository) Count(ctx context.Context, owner uuid.UUID, search string) (int, error) {
	q, args := r.builder(owner, search).BuildCount()

	total, err := repository.QueryCount(ctx, r.db, q, args)
	if err != nil {
		return 0, fmt.Errorf("count agents: %w", err)
	}
	return total, nil
}

func (r *sqlRepository) FindByID(ctx context.Context, owner, id uuid.UUID) (*Agent, error) {
	q, args := query.NewBuilder(projection).
		WithDialect(r.dialect).
		WhereEquals("OwnerID", owner).
		BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAgent)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *sqlRepository) Insert(ctx context.Context, a Agent, limit int) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if limit > 0 {
			q, args := r.builder(a.OwnerID, "").BuildCount()
			n, err := repository.QueryCount(ctx, tx, q, args)
			if err != nil {
				return struct{}{}, fmt.Errorf("count agents: %w", err)
			}
			if n >= limit {
				return struct{}{}, ErrForbidden
			}
		}

		stmt := fmt.Sprintf(
			"INSERT INTO agents (id, owner_id, name, instructions, created_at) VALUES (%s, %s, %s, %s, %s)",
			r.dialect.Placeholder(1),
			r.dialect.Placeholder(2),
			r.dialect.Placeholder(3),
			r.dialect.Placeholder(4),
			r.dialect.Placeholder(5),
		)
		err := repository.ExecExpectOne(ctx, tx, stmt,
			a.ID, a.OwnerID, a.Name, a.Instructions, r.timeValue(a.CreatedAt),
		)
		return struct{}{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
	})
	return err
}

// timeValue converts t to the column representation of the dialect.
// SQLite stores timestamps as unix nanoseconds.
func (r *sqlRepository) timeValue(t time.Time) any {
	if r.dialect == query.SQLite {
		return t.UnixNano()
	}
	return t
}
