package usecase

import (
	"ReviewBoard/internal/domain"
)

// phaseKey identifies one (asset, phase) resolution group.
type phaseKey struct {
	project   string
	root      string
	assetPath string
	relation  string
	phase     domain.Phase
}

// resolveLatest keeps exactly one record per (asset, phase) group: the one
// with the maximum ModifiedAt, ties broken by maximum SubmittedAt (nil
// loses), then by highest ID. Inactive records are dropped. The store's
// partition query applies the same rules, so running this over its output is
// a no-op; it exists so the engine never depends on the store having
// deduplicated. Input order is preserved for the surviving records.
func resolveLatest(records []domain.ReviewRecord) []domain.ReviewRecord {
	if len(records) == 0 {
		return nil
	}

	winners := make(map[phaseKey]int, len(records))
	order := make([]phaseKey, 0, len(records))

	for i, rec := range records {
		if !rec.Active() {
			continue
		}
		key := phaseKey{
			project:   rec.Project,
			root:      rec.Root,
			assetPath: rec.AssetPath,
			relation:  rec.Relation,
			phase:     rec.Phase,
		}
		prev, ok := winners[key]
		if !ok {
			winners[key] = i
			order = append(order, key)
			continue
		}
		if newerRecord(rec, records[prev]) {
			winners[key] = i
		}
	}

	resolved := make([]domain.ReviewRecord, 0, len(order))
	for _, key := range order {
		resolved = append(resolved, records[winners[key]])
	}
	return resolved
}

// newerRecord reports whether a supersedes b under the resolution tie-break.
func newerRecord(a, b domain.ReviewRecord) bool {
	if !a.ModifiedAt.Equal(b.ModifiedAt) {
		return a.ModifiedAt.After(b.ModifiedAt)
	}
	switch {
	case a.SubmittedAt == nil && b.SubmittedAt == nil:
	case a.SubmittedAt == nil:
		return false
	case b.SubmittedAt == nil:
		return true
	case !a.SubmittedAt.Equal(*b.SubmittedAt):
		return a.SubmittedAt.After(*b.SubmittedAt)
	}
	return a.ID > b.ID
}
