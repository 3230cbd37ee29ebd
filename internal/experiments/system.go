package experiments

import (
	"context"

	"github.com/google/uuid"

	"github.com/aeolab/beacon/pkg/pagination"
)

// Config controls experiment window stamping and analysis thresholds.
type Config struct {
	ControlPeriodDays int
	TestPeriodDays    int
	MinSamples        int
}

// System defines the public contract for experiment domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Experiment], error)

	Find(ctx context.Context, id uuid.UUID) (*Experiment, error)
	Create(ctx context.Context, cmd CreateCommand) (*Experiment, error)
	StartControl(ctx context.Context, id uuid.UUID) (*Experiment, error)
	StartTest(ctx context.Context, id uuid.UUID, cmd StartTestCommand) (*Experiment, error)
	Complete(ctx context.Context, id uuid.UUID, cmd ConcludeCommand) (*Experiment, error)
	Cancel(ctx context.Context, id uuid.UUID) (*Experiment, error)
	Analyze(ctx context.Context, id uuid.UUID) (*Results, error)
	Progress(ctx context.Context, id uuid.UUID) (*Progress, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
