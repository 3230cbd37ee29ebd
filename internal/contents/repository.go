package contents

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

// New creates a content repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "contents"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

const returning = `id, brand_id, title, content_type, url, platform, description,
		target_keywords, target_question_ids, published_at, is_published,
		created_at, updated_at`

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Content], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Description", "URL")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count contents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanContent)
	if err != nil {
		return nil, fmt.Errorf("query contents: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Content, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanContent)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Content, error) {
	keywordsJSON, questionsJSON, err := marshalTargets(cmd.TargetKeywords, cmd.TargetQuestionIDs)
	if err != nil {
		return nil, err
	}

	insertQ := `
		INSERT INTO contents(brand_id, title, content_type, url, platform,
			description, target_keywords, target_question_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + returning

	c, err := repository.QueryOne(ctx, r.db, insertQ,
		[]any{cmd.BrandID, cmd.Title, cmd.ContentType, cmd.URL, cmd.Platform,
			cmd.Description, keywordsJSON, questionsJSON},
		scanContent,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("content created", "id", c.ID, "brand_id", c.BrandID, "title", c.Title)
	return &c, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Content, error) {
	keywordsJSON, questionsJSON, err := marshalTargets(cmd.TargetKeywords, cmd.TargetQuestionIDs)
	if err != nil {
		return nil, err
	}

	// published_at is stamped once, on the transition into published.
	updateQ := `
		UPDATE contents
		SET title = $1, content_type = $2, url = $3, platform = $4,
			description = $5, target_keywords = $6, target_question_ids = $7,
			is_published = $8,
			published_at = CASE
				WHEN $8 AND published_at IS NULL THEN NOW()
				WHEN NOT $8 THEN NULL
				ELSE published_at
			END,
			updated_at = NOW()
		WHERE id = $9
		RETURNING ` + returning

	c, err := repository.QueryOne(ctx, r.db, updateQ,
		[]any{cmd.Title, cmd.ContentType, cmd.URL, cmd.Platform, cmd.Description,
			keywordsJSON, questionsJSON, cmd.IsPublished, id},
		scanContent,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("content updated", "id", c.ID, "is_published", c.IsPublished)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM contents WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("content deleted", "id", id)
	return nil
}

func marshalTargets(keywords []string, questionIDs []uuid.UUID) ([]byte, []byte, error) {
	if keywords == nil {
		keywords = []string{}
	}
	if questionIDs == nil {
		questionIDs = []uuid.UUID{}
	}

	keywordsJSON, err := json.Marshal(keywords)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal target_keywords: %w", err)
	}

	questionsJSON, err := json.Marshal(questionIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal target_question_ids: %w", err)
	}

	return keywordsJSON, questionsJSON, nil
}
