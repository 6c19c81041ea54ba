package ports

import (
	"context"

	"ReviewBoard/internal/domain"
)

// ReviewRepository reads the append-only review log. Implementations must
// observe ctx cancellation on every query and must never mutate records.
type ReviewRepository interface {
	// LatestPerPhase returns the newest active record for every
	// (assetPath, relation, phase) group matching the filter, ordered by
	// (assetPath, relation, phase). When filter.Limit > 0 at most Limit
	// rows are returned.
	LatestPerPhase(ctx context.Context, filter domain.RecordFilter) ([]domain.ReviewRecord, error)
}
