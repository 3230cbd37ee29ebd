package experiments

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aeolab/beacon/pkg/pagination"
	"github.com/aeolab/beacon/pkg/query"
	"github.com/aeolab/beacon/pkg/repository"
)

type repo struct {
	db         *sql.DB
	cfg        Config
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an experiment repository implementing the System interface.
func New(
	db *sql.DB,
	cfg Config,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		cfg:        cfg,
		logger:     logger.With("system", "experiments"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

const returning = `id, brand_id, name, description, hypothesis, target_question_ids,
		content_intervention, content_ids, control_start, control_end,
		test_start, test_end, status, control_avg_score, test_avg_score,
		score_change, is_significant, p_value, conclusion, learnings,
		created_at, updated_at`

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Experiment], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Hypothesis")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count experiments: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanExperiment)
	if err != nil {
		return nil, fmt.Errorf("query experiments: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Experiment, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanExperiment)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Experiment, error) {
	questionsJSON, err := json.Marshal(normalizeIDs(cmd.TargetQuestionIDs))
	if err != nil {
		return nil, fmt.Errorf("marshal target_question_ids: %w", err)
	}

	insertQ := `
		INSERT INTO experiments(brand_id, name, description, hypothesis, target_question_ids)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + returning

	e, err := repository.QueryOne(ctx, r.db, insertQ,
		[]any{cmd.BrandID, cmd.Name, cmd.Description, cmd.Hypothesis, questionsJSON},
		scanExperiment,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("experiment created",
		"id", e.ID,
		"brand_id", e.BrandID,
		"name", e.Name,
	)
	return &e, nil
}

func (r *repo) StartControl(ctx context.Context, id uuid.UUID) (*Experiment, error) {
	startQ := `
		UPDATE experiments
		SET status = $1,
			control_start = NOW(),
			control_end = NOW() + make_interval(days => $2),
			updated_at = NOW()
		WHERE id = $3
		RETURNING ` + returning

	e, err := r.transition(ctx, id, StatusControlPeriod, startQ,
		StatusControlPeriod, r.cfg.ControlPeriodDays, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("control period started",
		"id", e.ID,
		"control_end", e.ControlEnd,
	)
	return e, nil
}

func (r *repo) StartTest(ctx context.Context, id uuid.UUID, cmd StartTestCommand) (*Experiment, error) {
	if cmd.ContentIntervention == "" {
		return nil, ErrInterventionRequired
	}

	contentsJSON, err := json.Marshal(normalizeIDs(cmd.ContentIDs))
	if err != nil {
		return nil, fmt.Errorf("marshal content_ids: %w", err)
	}

	startQ := `
		UPDATE experiments
		SET status = $1,
			content_intervention = $2,
			content_ids = $3,
			test_start = NOW(),
			test_end = NOW() + make_interval(days => $4),
			updated_at = NOW()
		WHERE id = $5
		RETURNING ` + returning

	e, err := r.transition(ctx, id, StatusTestPeriod, startQ,
		StatusTestPeriod, cmd.ContentIntervention, contentsJSON, r.cfg.TestPeriodDays, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("test period started",
		"id", e.ID,
		"test_end", e.TestEnd,
	)
	return e, nil
}

func (r *repo) Complete(ctx context.Context, id uuid.UUID, cmd ConcludeCommand) (*Experiment, error) {
	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	observations, err := r.observations(ctx, id)
	if err != nil {
		return nil, err
	}
	results := analyze(current, observations, r.cfg.MinSamples)

	completeQ := `
		UPDATE experiments
		SET status = $1,
			conclusion = $2,
			learnings = $3,
			control_avg_score = $4,
			test_avg_score = $5,
			score_change = $6,
			is_significant = $7,
			p_value = $8,
			updated_at = NOW()
		WHERE id = $9
		RETURNING ` + returning

	e, err := r.transition(ctx, id, StatusCompleted, completeQ,
		StatusCompleted, cmd.Conclusion, cmd.Learnings,
		results.ControlAvgScore, results.TestAvgScore, results.ScoreChange,
		results.IsSignificant, results.PValue, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("experiment completed",
		"id", e.ID,
		"score_change", results.ScoreChange,
		"is_significant", results.IsSignificant,
	)
	return e, nil
}

func (r *repo) Cancel(ctx context.Context, id uuid.UUID) (*Experiment, error) {
	cancelQ := `
		UPDATE experiments
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + returning

	e, err := r.transition(ctx, id, StatusCancelled, cancelQ, StatusCancelled, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("experiment cancelled", "id", e.ID)
	return e, nil
}

func (r *repo) Analyze(ctx context.Context, id uuid.UUID) (*Results, error) {
	e, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	observations, err := r.observations(ctx, id)
	if err != nil {
		return nil, err
	}

	results := analyze(e, observations, r.cfg.MinSamples)

	rollupQ := `
		UPDATE experiments
		SET control_avg_score = $1,
			test_avg_score = $2,
			score_change = $3,
			is_significant = $4,
			p_value = $5,
			updated_at = NOW()
		WHERE id = $6`

	if _, err := r.db.ExecContext(ctx, rollupQ,
		results.ControlAvgScore, results.TestAvgScore, results.ScoreChange,
		results.IsSignificant, results.PValue, id,
	); err != nil {
		return nil, fmt.Errorf("write experiment rollups: %w", err)
	}

	r.logger.Info("experiment analyzed",
		"id", id,
		"control_checks", results.ControlChecks,
		"test_checks", results.TestChecks,
		"score_change", results.ScoreChange,
	)
	return &results, nil
}

func (r *repo) Progress(ctx context.Context, id uuid.UUID) (*Progress, error) {
	e, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	p := e.ProgressAt(time.Now().UTC())
	return &p, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM experiments WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("experiment deleted", "id", id)
	return nil
}

// transition applies a guarded status change: the current row is locked, the
// lifecycle rule checked, and the provided UPDATE executed, all in one
// transaction.
func (r *repo) transition(
	ctx context.Context,
	id uuid.UUID,
	to Status,
	updateQ string,
	args ...any,
) (*Experiment, error) {
	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Experiment, error) {
		var current Status
		row := tx.QueryRowContext(ctx,
			"SELECT status FROM experiments WHERE id = $1 FOR UPDATE", id)
		if err := row.Scan(&current); err != nil {
			return Experiment{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		if !current.CanTransition(to) {
			return Experiment{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, to)
		}

		return repository.QueryOne(ctx, tx, updateQ, args, scanExperiment)
	})

	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repo) observations(ctx context.Context, id uuid.UUID) ([]Observation, error) {
	obsQ := `
		SELECT provider, status, score, checked_at
		FROM visibility_checks
		WHERE experiment_id = $1
		ORDER BY checked_at`

	observations, err := repository.QueryMany(ctx, r.db, obsQ, []any{id}, scanObservation)
	if err != nil {
		return nil, fmt.Errorf("query experiment checks: %w", err)
	}
	return observations, nil
}

func normalizeIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
