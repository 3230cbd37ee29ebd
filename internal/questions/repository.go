package questions

import (
	"context"
	"database/sql"
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

// New creates a question repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "questions"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

const returning = `id, brand_id, source_keyword, question_text, category, intent,
		priority, is_active, notes, created_at, updated_at`

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Question], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "QuestionText", "SourceKeyword")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanQuestion)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Question, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	question, err := repository.QueryOne(ctx, r.db, q, args, scanQuestion)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &question, nil
}

func (r *repo) ActiveForBrand(ctx context.Context, brandID uuid.UUID) ([]Question, error) {
	activeQ := `
		SELECT ` + returning + `
		FROM questions
		WHERE brand_id = $1 AND is_active = TRUE
		ORDER BY priority DESC, created_at`

	items, err := repository.QueryMany(ctx, r.db, activeQ, []any{brandID}, scanQuestion)
	if err != nil {
		return nil, fmt.Errorf("query active questions: %w", err)
	}
	return items, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Question, error) {
	priority := cmd.Priority
	if priority == 0 {
		priority = 5
	}

	insertQ := `
		INSERT INTO questions(brand_id, source_keyword, question_text, category,
			intent, priority, is_active, notes)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7)
		RETURNING ` + returning

	q, err := repository.QueryOne(ctx, r.db, insertQ,
		[]any{cmd.BrandID, cmd.SourceKeyword, cmd.QuestionText, cmd.Category,
			cmd.Intent, priority, cmd.Notes},
		scanQuestion,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("question created",
		"id", q.ID,
		"brand_id", q.BrandID,
		"source_keyword", q.SourceKeyword,
	)
	return &q, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Question, error) {
	updateQ := `
		UPDATE questions
		SET source_keyword = $1, question_text = $2, category = $3, intent = $4,
			priority = $5, is_active = $6, notes = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING ` + returning

	q, err := repository.QueryOne(ctx, r.db, updateQ,
		[]any{cmd.SourceKeyword, cmd.QuestionText, cmd.Category, cmd.Intent,
			cmd.Priority, cmd.IsActive, cmd.Notes, id},
		scanQuestion,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("question updated", "id", q.ID)
	return &q, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM questions WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("question deleted", "id", id)
	return nil
}
