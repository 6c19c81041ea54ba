package usecase

import (
	"fmt"
	"strings"

	"ReviewBoard/internal/domain"
)

// SortField enumerates the columns a query may order by.
type SortField int

const (
	SortByName SortField = iota
	SortByRelation
	SortByWorkStatus
	SortByApprovalStatus
	SortBySubmittedAt
	SortByTake
)

// SortKey pairs a field with the phase it reads when the field is
// phase-qualified. Phase is empty for the fixed fields.
type SortKey struct {
	Field SortField
	Phase domain.Phase
}

// Direction of a sort request.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// DefaultSortKey orders by primary name; the fallback for unrecognized keys.
var DefaultSortKey = SortKey{Field: SortByName}

var phaseFieldSuffixes = map[string]SortField{
	"work":      SortByWorkStatus,
	"approval":  SortByApprovalStatus,
	"submitted": SortBySubmittedAt,
	"take":      SortByTake,
}

// ParseSortKey resolves an order key string such as "name", "relation" or
// "rig_take". Unrecognized keys fall back to name ascending rather than
// erroring so older and newer clients keep working.
func ParseSortKey(raw string) SortKey {
	key := strings.ToLower(strings.TrimSpace(raw))
	switch key {
	case "", "name":
		return SortKey{Field: SortByName}
	case "relation":
		return SortKey{Field: SortByRelation}
	}

	code, suffix, found := strings.Cut(key, "_")
	if !found {
		return DefaultSortKey
	}
	phase, ok := domain.ParsePhase(code)
	if !ok {
		return DefaultSortKey
	}
	field, ok := phaseFieldSuffixes[suffix]
	if !ok {
		return DefaultSortKey
	}
	return SortKey{Field: field, Phase: phase}
}

// ParseDirection resolves "asc"/"desc"; anything else defaults to ascending.
func ParseDirection(raw string) Direction {
	if strings.EqualFold(strings.TrimSpace(raw), "desc") {
		return Descending
	}
	return Ascending
}

// Query carries every parameter of one pivot read. Zero values select the
// documented defaults; Normalize applies them.
type Query struct {
	Project string
	Root    string

	Page    int
	PerPage int

	OrderKey  SortKey
	Direction Direction

	// PreferredPhase biases matching rows to the front and switches the
	// status filter to phase-locked mode. Empty means none.
	PreferredPhase domain.Phase

	NameKey          string
	ApprovalStatuses []string
	WorkStatuses     []string
}

// ValidationError rejects a query before any store access and names the
// offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Normalize applies defaults and clamps paging bounds.
func (q *Query) Normalize(defaultPerPage, maxPerPage int) {
	if q.Root == "" {
		q.Root = domain.RootAsset
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PerPage == 0 {
		q.PerPage = defaultPerPage
	}
	if maxPerPage > 0 && q.PerPage > maxPerPage {
		q.PerPage = maxPerPage
	}
	q.NameKey = strings.TrimSpace(q.NameKey)
}

// Validate rejects structurally invalid queries. Unknown sort keys and
// phases never reach here; parsing already folded them to defaults.
func (q *Query) Validate() error {
	if strings.TrimSpace(q.Project) == "" {
		return &ValidationError{Field: "project", Reason: "must not be empty"}
	}
	if q.Page < 1 {
		return &ValidationError{Field: "page", Reason: "must be a positive integer"}
	}
	if q.PerPage < 1 {
		return &ValidationError{Field: "perPage", Reason: "must be a positive integer"}
	}
	if q.PreferredPhase != "" && !q.PreferredPhase.Valid() {
		return &ValidationError{Field: "preferredPhase", Reason: "unknown phase code"}
	}
	return nil
}

// Offset converts the 1-based page to a row offset.
func (q *Query) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// phaseLocked reports whether status filters read a single phase.
func (q *Query) phaseLocked() bool {
	return q.PreferredPhase != ""
}
