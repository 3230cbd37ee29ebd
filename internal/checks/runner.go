package checks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aeolab/beacon/internal/brands"
	"github.com/aeolab/beacon/internal/llm"
	"github.com/aeolab/beacon/internal/questions"
	"github.com/aeolab/beacon/internal/visibility"
)

// recordFunc persists one classified result.
type recordFunc func(context.Context, RecordCommand) (*Check, error)

// runner fans a check batch out over (question, provider) pairs. Provider
// failures are logged and skipped so one flaky provider cannot sink a batch;
// persistence failures abort the run.
type runner struct {
	llm         llm.System
	classifier  *visibility.Classifier
	parallelism int
	logger      *slog.Logger
}

func (r *runner) run(
	ctx context.Context,
	brand *brands.Brand,
	qs []questions.Question,
	providers []string,
	experimentID *uuid.UUID,
	record recordFunc,
) (*RunReport, error) {
	report := &RunReport{
		BrandID:   brand.ID,
		Questions: len(qs),
		Providers: providers,
		Checks:    []Check{},
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)

	for _, q := range qs {
		for _, provider := range providers {
			g.Go(func() error {
				resp, err := r.llm.Query(ctx, provider, q.QuestionText)
				if err != nil {
					r.logger.Warn("provider call failed, skipping",
						"provider", provider,
						"question_id", q.ID,
						"error", err,
					)
					mu.Lock()
					report.Failed++
					mu.Unlock()
					return nil
				}

				result := r.classifier.Classify(visibility.Input{
					ResponseText:    resp.Text,
					BrandName:       brand.Name,
					BrandKeywords:   brand.Keywords,
					CompetitorNames: brand.Competitors,
					Provider:        resp.Provider,
					Model:           resp.Model,
					Question:        resp.Question,
				})

				check, err := record(ctx, RecordCommand{
					QuestionID:   q.ID,
					ExperimentID: experimentID,
					Result:       result,
				})
				if err != nil {
					return fmt.Errorf("record check for question %s: %w", q.ID, err)
				}

				mu.Lock()
				report.Recorded++
				report.Checks = append(report.Checks, *check)
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return report, nil
}
