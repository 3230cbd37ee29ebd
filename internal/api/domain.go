package api

import (
	"fmt"

	"github.com/aeolab/beacon/internal/brands"
	"github.com/aeolab/beacon/internal/checks"
	"github.com/aeolab/beacon/internal/contents"
	"github.com/aeolab/beacon/internal/experiments"
	"github.com/aeolab/beacon/internal/questions"
	"github.com/aeolab/beacon/internal/visibility"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Brands      brands.System
	Questions   questions.System
	Contents    contents.System
	Experiments experiments.System
	Checks      checks.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) (*Domain, error) {
	classifier, err := visibility.New(runtime.Config.Scoring.Visibility())
	if err != nil {
		return nil, fmt.Errorf("classifier init failed: %w", err)
	}

	db := runtime.Database.Connection()

	brandsSystem := brands.New(db, runtime.Logger, runtime.Pagination)
	questionsSystem := questions.New(db, runtime.Logger, runtime.Pagination)
	contentsSystem := contents.New(db, runtime.Logger, runtime.Pagination)

	experimentsSystem := experiments.New(
		db,
		runtime.Config.Experiments.Experiments(),
		runtime.Logger,
		runtime.Pagination,
	)

	checksSystem := checks.New(
		db,
		checks.Config{Parallelism: runtime.Config.LLM.Parallelism},
		classifier,
		runtime.LLM,
		brandsSystem,
		questionsSystem,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Brands:      brandsSystem,
		Questions:   questionsSystem,
		Contents:    contentsSystem,
		Experiments: experimentsSystem,
		Checks:      checksSystem,
	}, nil
}
