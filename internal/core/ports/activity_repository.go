package ports

import (
	"context"

	"hawkerflow/internal/core/domain/model/activity"
)

// ActivityRepository stores completed-dish records. Re-adding an entry for the
// same (order, stall, dish) is ignored.
type ActivityRepository interface {
	AddAll(ctx context.Context, entries []*activity.Entry) (int64, error)
}
