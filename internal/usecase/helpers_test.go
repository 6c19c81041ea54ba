package usecase

import (
	"ReviewBoard/internal/domain"
)

// pivotRow builds a test pivot from a bare leaf name or a grouped path.
func pivotRow(path, relation string, slots map[domain.Phase]domain.PhaseSlot) domain.AssetPivot {
	pivot := domain.AssetPivot{
		Project:   "demo",
		Root:      domain.RootAsset,
		AssetPath: path,
		Relation:  relation,
		Slots:     slots,
	}
	pivot.DeriveGrouping()
	return pivot
}

func slot(work, approval, take string) domain.PhaseSlot {
	return domain.PhaseSlot{
		WorkStatus:     work,
		ApprovalStatus: approval,
		Take:           take,
		Present:        true,
	}
}

func rowNames(pivots []domain.AssetPivot) []string {
	names := make([]string, 0, len(pivots))
	for _, pivot := range pivots {
		names = append(names, pivot.Name)
	}
	return names
}
