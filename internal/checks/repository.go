package checks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aeolab/beacon/internal/brands"
	"github.com/aeolab/beacon/internal/llm"
	"github.com/aeolab/beacon/internal/questions"
	"github.com/aeolab/beacon/internal/visibility"
	"github.com/aeolab/beacon/pkg/pagination"
	"github.com/aeolab/beacon/pkg/query"
	"github.com/aeolab/beacon/pkg/repository"
)

type repo struct {
	db         *sql.DB
	runner     *runner
	brands     brands.System
	questions  questions.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a check repository implementing the System interface. It
// internally constructs the batch runner from the provided dependencies.
func New(
	db *sql.DB,
	cfg Config,
	classifier *visibility.Classifier,
	llmSys llm.System,
	brandSys brands.System,
	questionSys questions.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	log := logger.With("system", "checks")

	return &repo{
		db: db,
		runner: &runner{
			llm:         llmSys,
			classifier:  classifier,
			parallelism: cfg.Parallelism,
			logger:      log.With("runner", "batch"),
		},
		brands:     brandSys,
		questions:  questionSys,
		logger:     log,
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

const returning = `id, question_id, experiment_id, provider, model, response_text,
		status, score, position, total_items, competitor_count, cited_sources,
		competitors_found, context, checked_at`

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Check], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "ResponseText", "Context")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count checks: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCheck)
	if err != nil {
		return nil, fmt.Errorf("query checks: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Check, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCheck)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

// Record persists one classifier result. History is append-only; there is no
// update path for check rows.
func (r *repo) Record(ctx context.Context, cmd RecordCommand) (*Check, error) {
	res := cmd.Result

	sourcesJSON, err := json.Marshal(res.CitedSources)
	if err != nil {
		return nil, fmt.Errorf("marshal cited_sources: %w", err)
	}
	competitorsJSON, err := json.Marshal(res.CompetitorsFound)
	if err != nil {
		return nil, fmt.Errorf("marshal competitors_found: %w", err)
	}

	insertQ := `
		INSERT INTO visibility_checks(question_id, experiment_id, provider, model,
			response_text, status, score, position, total_items, competitor_count,
			cited_sources, competitors_found, context)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + returning

	c, err := repository.QueryOne(ctx, r.db, insertQ,
		[]any{cmd.QuestionID, cmd.ExperimentID, res.Provider, res.Model,
			res.ResponseText, res.Status, res.Score, res.Position, res.TotalItems,
			len(res.CompetitorsFound), sourcesJSON, competitorsJSON, res.Context},
		scanCheck,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("check recorded",
		"id", c.ID,
		"question_id", c.QuestionID,
		"provider", c.Provider,
		"status", c.Status,
		"score", c.Score,
	)
	return &c, nil
}

func (r *repo) Run(ctx context.Context, cmd RunCommand) (*RunReport, error) {
	brand, err := r.brands.Find(ctx, cmd.BrandID)
	if err != nil {
		if errors.Is(err, brands.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBrandNotFound, cmd.BrandID)
		}
		return nil, fmt.Errorf("load brand: %w", err)
	}

	qs, err := r.questions.ActiveForBrand(ctx, cmd.BrandID)
	if err != nil {
		return nil, err
	}
	qs = filterQuestions(qs, cmd.QuestionIDs)
	if len(qs) == 0 {
		return nil, ErrNoQuestions
	}

	providers := cmd.Providers
	if len(providers) == 0 {
		for _, p := range r.runner.llm.Providers() {
			providers = append(providers, p.Key)
		}
	}
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}

	report, err := r.runner.run(ctx, brand, qs, providers, cmd.ExperimentID, r.Record)
	if err != nil {
		return nil, err
	}

	r.logger.Info("check batch finished",
		"brand_id", cmd.BrandID,
		"questions", report.Questions,
		"providers", len(report.Providers),
		"recorded", report.Recorded,
		"failed", report.Failed,
	)
	return report, nil
}

func (r *repo) Summarize(ctx context.Context, brandID uuid.UUID, days int) (*Summary, error) {
	if days <= 0 {
		days = 30
	}

	if _, err := r.brands.Find(ctx, brandID); err != nil {
		if errors.Is(err, brands.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBrandNotFound, brandID)
		}
		return nil, fmt.Errorf("load brand: %w", err)
	}

	summaryQ := `
		SELECT vc.provider, vc.status, vc.score
		FROM visibility_checks vc
		JOIN questions q ON q.id = vc.question_id
		WHERE q.brand_id = $1
		  AND vc.checked_at >= NOW() - make_interval(days => $2)`

	rows, err := repository.QueryMany(ctx, r.db, summaryQ, []any{brandID, days}, scanSummaryRow)
	if err != nil {
		return nil, fmt.Errorf("query check summary: %w", err)
	}

	return summarize(brandID, days, rows), nil
}

type summaryRow struct {
	Provider string
	Status   visibility.Status
	Score    int
}

func scanSummaryRow(s repository.Scanner) (summaryRow, error) {
	var row summaryRow
	err := s.Scan(&row.Provider, &row.Status, &row.Score)
	return row, err
}

func summarize(brandID uuid.UUID, days int, rows []summaryRow) *Summary {
	summary := &Summary{
		BrandID:    brandID,
		Days:       days,
		ByProvider: make(map[string]ProviderSummary),
	}

	var total int
	providerTotals := make(map[string]int)

	for _, row := range rows {
		summary.TotalChecks++
		total += row.Score

		ps, ok := summary.ByProvider[row.Provider]
		if !ok {
			ps = ProviderSummary{Statuses: make(map[visibility.Status]int)}
		}
		ps.Checks++
		ps.Statuses[row.Status]++
		summary.ByProvider[row.Provider] = ps
		providerTotals[row.Provider] += row.Score
	}

	if summary.TotalChecks > 0 {
		summary.AvgScore = float64(total) / float64(summary.TotalChecks)
	}

	for provider, ps := range summary.ByProvider {
		ps.AvgScore = float64(providerTotals[provider]) / float64(ps.Checks)
		summary.ByProvider[provider] = ps
	}

	return summary
}

func filterQuestions(qs []questions.Question, ids []uuid.UUID) []questions.Question {
	if len(ids) == 0 {
		return qs
	}

	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	filtered := qs[:0]
	for _, q := range qs {
		if wanted[q.ID] {
			filtered = append(filtered, q)
		}
	}
	return filtered
}
