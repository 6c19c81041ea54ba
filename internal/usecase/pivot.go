package usecase

import (
	"sort"
	"strings"

	"ReviewBoard/internal/domain"
)

// pivotKey identifies one synthesized row.
type pivotKey struct {
	project   string
	root      string
	assetPath string
	relation  string
}

// assemblePivots folds resolved latest-per-phase records into one AssetPivot
// per asset, each phase written into its fixed slot. Assets with no records
// simply do not appear. Output order is deterministic: name ascending,
// relation ascending, so downstream stages start from a stable base.
func assemblePivots(records []domain.ReviewRecord) []domain.AssetPivot {
	if len(records) == 0 {
		return nil
	}

	index := make(map[pivotKey]int, len(records))
	pivots := make([]domain.AssetPivot, 0, len(records))

	for _, rec := range records {
		key := pivotKey{
			project:   rec.Project,
			root:      rec.Root,
			assetPath: rec.AssetPath,
			relation:  rec.Relation,
		}
		at, ok := index[key]
		if !ok {
			pivot := domain.AssetPivot{
				Project:   rec.Project,
				Root:      rec.Root,
				AssetPath: rec.AssetPath,
				Relation:  rec.Relation,
				Slots:     make(map[domain.Phase]domain.PhaseSlot, len(domain.Phases)),
			}
			pivot.DeriveGrouping()
			pivots = append(pivots, pivot)
			at = len(pivots) - 1
			index[key] = at
		}
		pivots[at].Slots[rec.Phase] = domain.PhaseSlot{
			WorkStatus:     rec.WorkStatus,
			ApprovalStatus: rec.ApprovalStatus,
			Take:           rec.Take,
			SubmittedAt:    rec.SubmittedAt,
			Present:        true,
		}
	}

	sort.SliceStable(pivots, func(i, j int) bool {
		return lessByIdentity(pivots[i], pivots[j])
	})
	return pivots
}

// lessByIdentity is the stable (name asc, relation asc) fallback order used
// everywhere a primary comparison ties.
func lessByIdentity(a, b domain.AssetPivot) bool {
	an := strings.ToLower(a.Name)
	bn := strings.ToLower(b.Name)
	if an != bn {
		return an < bn
	}
	ar := strings.ToLower(a.Relation)
	br := strings.ToLower(b.Relation)
	if ar != br {
		return ar < br
	}
	// Distinct group paths can share a leaf name; keep the full order total.
	return strings.ToLower(a.AssetPath) < strings.ToLower(b.AssetPath)
}
