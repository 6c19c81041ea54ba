package usecase

import (
	"strings"

	"ReviewBoard/internal/domain"
)

// applyFilters returns the pivots passing the query's name and status axes.
// No filters means everything passes.
func applyFilters(pivots []domain.AssetPivot, q *Query) []domain.AssetPivot {
	nameKey := strings.ToLower(q.NameKey)
	approvals := toStatusSet(q.ApprovalStatuses)
	works := toStatusSet(q.WorkStatuses)

	if nameKey == "" && approvals == nil && works == nil {
		return pivots
	}

	filtered := make([]domain.AssetPivot, 0, len(pivots))
	for _, pivot := range pivots {
		if nameKey != "" && !strings.Contains(strings.ToLower(pivot.Name), nameKey) {
			continue
		}
		if !statusMatch(pivot, approvals, approvalOf, q) {
			continue
		}
		if !statusMatch(pivot, works, workOf, q) {
			continue
		}
		filtered = append(filtered, pivot)
	}
	return filtered
}

// statusMatch applies one status axis. Phase-locked mode reads only the
// preferred phase's slot; any-phase mode passes when any of the five phases
// satisfies the set (logical OR).
func statusMatch(pivot domain.AssetPivot, allowed map[string]struct{}, value func(domain.PhaseSlot) string, q *Query) bool {
	if allowed == nil {
		return true
	}
	if q.phaseLocked() {
		return inSet(allowed, value(pivot.Slot(q.PreferredPhase)))
	}
	for _, phase := range domain.Phases {
		if inSet(allowed, value(pivot.Slot(phase))) {
			return true
		}
	}
	return false
}

func approvalOf(slot domain.PhaseSlot) string { return slot.ApprovalStatus }

func workOf(slot domain.PhaseSlot) string { return slot.WorkStatus }

func inSet(set map[string]struct{}, status string) bool {
	_, ok := set[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

// toStatusSet lowercases and deduplicates the allowed values; nil when the
// axis is unfiltered.
func toStatusSet(values []string) map[string]struct{} {
	var set map[string]struct{}
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if set == nil {
			set = make(map[string]struct{}, len(values))
		}
		set[v] = struct{}{}
	}
	return set
}
