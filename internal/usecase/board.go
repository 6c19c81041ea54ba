package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"ReviewBoard/internal/domain"
	"ReviewBoard/internal/ports"
)

// BoardDeps wires the driven adapters and tunables into the pivot engine.
type BoardDeps struct {
	Repository ports.ReviewRepository
	Logger     *slog.Logger

	// DefaultPerPage and MaxPerPage bound page sizing; MaxRows caps how
	// many latest-per-phase records one query may materialize.
	DefaultPerPage int
	MaxPerPage     int
	MaxRows        int
}

// Board is the read-side pivot engine: fetch, resolve, assemble, filter,
// order, paginate. It is stateless and request-scoped; every invocation is
// independent.
type Board struct {
	repository     ports.ReviewRepository
	logger         *slog.Logger
	defaultPerPage int
	maxPerPage     int
	maxRows        int
}

// PivotPage is the flat view of one page of pivoted rows.
type PivotPage struct {
	Data      []domain.AssetPivot
	Total     int
	Page      int
	PerPage   int
	Truncated bool
}

// GroupedPage is the grouped view: a page sliced out of the flattened
// bucket-ordered sequence.
type GroupedPage struct {
	Groups    []domain.GroupedAssetBucket
	Total     int
	Page      int
	PerPage   int
	Truncated bool
}

// NewBoard constructs the engine. Missing tunables fall back to safe
// defaults.
func NewBoard(deps BoardDeps) *Board {
	board := &Board{
		repository:     deps.Repository,
		logger:         deps.Logger,
		defaultPerPage: deps.DefaultPerPage,
		maxPerPage:     deps.MaxPerPage,
		maxRows:        deps.MaxRows,
	}
	if board.defaultPerPage <= 0 {
		board.defaultPerPage = 30
	}
	if board.maxRows <= 0 {
		board.maxRows = 20000
	}
	return board
}

// Pivots runs the flat view: every assembled row filtered and ordered, one
// page sliced out.
func (b *Board) Pivots(ctx context.Context, q Query) (*PivotPage, error) {
	pivots, truncated, err := b.load(ctx, &q)
	if err != nil {
		return nil, err
	}

	sortPivots(pivots, &q)

	page := slicePage(pivots, q.Offset(), q.PerPage)
	return &PivotPage{
		Data:      page,
		Total:     len(pivots),
		Page:      q.Page,
		PerPage:   q.PerPage,
		Truncated: truncated,
	}, nil
}

// GroupedPivots runs the grouped view. The entire matching set is ordered by
// name/relation before bucketing, because page boundaries may fall in the
// middle of a bucket and per-bucket pagination would violate global order.
func (b *Board) GroupedPivots(ctx context.Context, q Query) (*GroupedPage, error) {
	pivots, truncated, err := b.load(ctx, &q)
	if err != nil {
		return nil, err
	}

	rowOrder := q
	rowOrder.OrderKey = DefaultSortKey
	rowOrder.PreferredPhase = ""
	sortPivots(pivots, &rowOrder)

	return &GroupedPage{
		Groups:    groupPage(pivots, &q),
		Total:     len(pivots),
		Page:      q.Page,
		PerPage:   q.PerPage,
		Truncated: truncated,
	}, nil
}

// load performs the shared fetch/resolve/assemble/filter pipeline.
func (b *Board) load(ctx context.Context, q *Query) ([]domain.AssetPivot, bool, error) {
	if b.repository == nil {
		return nil, false, fmt.Errorf("review repository is not configured")
	}

	q.Normalize(b.defaultPerPage, b.maxPerPage)
	if err := q.Validate(); err != nil {
		return nil, false, err
	}

	records, err := b.repository.LatestPerPhase(ctx, domain.RecordFilter{
		Project: q.Project,
		Root:    q.Root,
		NameKey: q.NameKey,
		Limit:   b.maxRows,
	})
	if err != nil {
		return nil, false, fmt.Errorf("fetch latest records: %w", err)
	}

	truncated := b.maxRows > 0 && len(records) >= b.maxRows
	if truncated {
		b.debug("row cap reached, result truncated", "project", q.Project, "cap", b.maxRows)
	}

	records = resolveLatest(records)
	pivots := assemblePivots(records)
	pivots = applyFilters(pivots, q)

	b.debug("pivot set loaded",
		"project", q.Project,
		"root", q.Root,
		"records", len(records),
		"rows", len(pivots),
	)
	return pivots, truncated, nil
}

func (b *Board) debug(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Debug(msg, args...)
	}
}
