package checks

import (
	"context"

	"github.com/google/uuid"

	"github.com/aeolab/beacon/pkg/pagination"
)

// Config controls check batch execution.
type Config struct {
	Parallelism int
}

// System defines the public contract for check domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Check], error)

	Find(ctx context.Context, id uuid.UUID) (*Check, error)
	Record(ctx context.Context, cmd RecordCommand) (*Check, error)
	Run(ctx context.Context, cmd RunCommand) (*RunReport, error)
	Summarize(ctx context.Context, brandID uuid.UUID, days int) (*Summary, error)
}
