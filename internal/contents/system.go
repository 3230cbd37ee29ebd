package contents

import (
	"context"

	"github.com/google/uuid"

	"github.com/aeolab/beacon/pkg/pagination"
)

// System defines the public contract for content domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Content], error)

	Find(ctx context.Context, id uuid.UUID) (*Content, error)
	Create(ctx context.Context, cmd CreateCommand) (*Content, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Content, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
