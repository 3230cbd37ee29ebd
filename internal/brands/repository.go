package brands

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aeolab/beacon/pkg/pagination"
	"github.com/aeolab/beacon/pkg/query"
	"github.com/aeolab/beacon/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a brand repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "brands"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

const returning = `id, name, domain, description, keywords, competitors, created_at, updated_at`

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Brand], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Domain", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count brands: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanBrand)
	if err != nil {
		return nil, fmt.Errorf("query brands: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Brand, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	b, err := repository.QueryOne(ctx, r.db, q, args, scanBrand)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &b, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Brand, error) {
	keywordsJSON, competitorsJSON, err := marshalLists(cmd.Keywords, cmd.Competitors)
	if err != nil {
		return nil, err
	}

	insertQ := `
		INSERT INTO brands(name, domain, description, keywords, competitors)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + returning

	b, err := repository.QueryOne(ctx, r.db, insertQ,
		[]any{cmd.Name, cmd.Domain, cmd.Description, keywordsJSON, competitorsJSON},
		scanBrand,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("brand created", "id", b.ID, "name", b.Name)
	return &b, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Brand, error) {
	keywordsJSON, competitorsJSON, err := marshalLists(cmd.Keywords, cmd.Competitors)
	if err != nil {
		return nil, err
	}

	updateQ := `
		UPDATE brands
		SET name = $1, domain = $2, description = $3, keywords = $4,
			competitors = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + returning

	b, err := repository.QueryOne(ctx, r.db, updateQ,
		[]any{cmd.Name, cmd.Domain, cmd.Description, keywordsJSON, competitorsJSON, id},
		scanBrand,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("brand updated", "id", b.ID, "name", b.Name)
	return &b, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM brands WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("brand deleted", "id", id)
	return nil
}

func marshalLists(keywords, competitors []string) ([]byte, []byte, error) {
	if keywords == nil {
		keywords = []string{}
	}
	if competitors == nil {
		competitors = []string{}
	}

	keywordsJSON, err := json.Marshal(keywords)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal keywords: %w", err)
	}

	competitorsJSON, err := json.Marshal(competitors)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal competitors: %w", err)
	}

	return keywordsJSON, competitorsJSON, nil
}
