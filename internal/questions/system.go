package questions

import (
	"context"

	"github.com/google/uuid"

	"github.com/aeolab/beacon/pkg/pagination"
)

// System defines the public contract for question domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Question], error)

	Find(ctx context.Context, id uuid.UUID) (*Question, error)

	// ActiveForBrand returns the brand's active questions ordered by priority,
	// the set the check runner fans out over.
	ActiveForBrand(ctx context.Context, brandID uuid.UUID) ([]Question, error)

	Create(ctx context.Context, cmd CreateCommand) (*Question, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Question, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
