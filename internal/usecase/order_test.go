package usecase

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"ReviewBoard/internal/domain"
)

func TestSortEmptyValuesLastBothDirections(t *testing.T) {
	t.Parallel()

	build := func() []domain.AssetPivot {
		return []domain.AssetPivot{
			pivotRow("a", "", map[domain.Phase]domain.PhaseSlot{domain.PhaseModel: slot("wip", "", "")}),
			pivotRow("b", "", map[domain.Phase]domain.PhaseSlot{domain.PhaseModel: slot("", "", "")}),
			pivotRow("c", "", map[domain.Phase]domain.PhaseSlot{domain.PhaseModel: slot("done", "", "")}),
			pivotRow("d", "", map[domain.Phase]domain.PhaseSlot{domain.PhaseModel: slot("-", "", "")}),
			pivotRow("e", "", nil),
		}
	}

	q := Query{OrderKey: ParseSortKey("model_work"), Direction: Ascending}
	asc := build()
	sortPivots(asc, &q)
	if diff := cmp.Diff([]string{"c", "a", "b", "d", "e"}, rowNames(asc)); diff != "" {
		t.Fatalf("ascending order wrong (-want +got):\n%s", diff)
	}

	q.Direction = Descending
	desc := build()
	sortPivots(desc, &q)
	// Non-empty values flip; empties stay behind them and keep name order.
	if diff := cmp.Diff([]string{"a", "c", "b", "d", "e"}, rowNames(desc)); diff != "" {
		t.Fatalf("descending order wrong (-want +got):\n%s", diff)
	}
}

func TestSortTakeNumericCoercion(t *testing.T) {
	t.Parallel()

	pivots := []domain.AssetPivot{
		pivotRow("w", "", map[domain.Phase]domain.PhaseSlot{domain.PhaseRig: slot("", "", "10")}),
		pivotRow("x", "", map[domain.Phase]domain.PhaseSlot{domain.PhaseRig: slot("", "", "007")}),
		pivotRow("y", "", map[domain.Phase]domain.PhaseSlot{domain.PhaseRig: slot("", "", "-")}),
		pivotRow("z", "", map[domain.Phase]domain.PhaseSlot{domain.PhaseRig: slot("", "", "abc")}),
	}

	q := Query{OrderKey: ParseSortKey("rig_take"), Direction: Ascending}
	sortPivots(pivots, &q)

	// "007" parses as 7, "abc" is invalid-but-present, "-" is empty-last.
	takes := make([]string, 0, len(pivots))
	for _, p := range pivots {
		takes = append(takes, p.Slot(domain.PhaseRig).Take)
	}
	if diff := cmp.Diff([]string{"007", "10", "abc", "-"}, takes); diff != "" {
		t.Fatalf("take order wrong (-want +got):\n%s", diff)
	}
}

func TestSortTakePrefixedValues(t *testing.T) {
	t.Parallel()

	pivots := []domain.AssetPivot{
		pivotRow("a", "", map[domain.Phase]domain.PhaseSlot{domain.PhaseRig: slot("", "", "t12")}),
		pivotRow("b", "", map[domain.Phase]domain.PhaseSlot{domain.PhaseRig: slot("", "", "t3")}),
	}

	q := Query{OrderKey: ParseSortKey("rig_take"), Direction: Ascending}
	sortPivots(pivots, &q)
	if diff := cmp.Diff([]string{"b", "a"}, rowNames(pivots)); diff != "" {
		t.Fatalf("prefixed takes must compare numerically (-want +got):\n%s", diff)
	}
}

func TestSortSubmittedAt(t *testing.T) {
	t.Parallel()

	early := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC)

	pivots := []domain.AssetPivot{
		pivotRow("a", "", map[domain.Phase]domain.PhaseSlot{
			domain.PhaseModel: {SubmittedAt: &late, Present: true},
		}),
		pivotRow("b", "", map[domain.Phase]domain.PhaseSlot{
			domain.PhaseModel: {Present: true},
		}),
		pivotRow("c", "", map[domain.Phase]domain.PhaseSlot{
			domain.PhaseModel: {SubmittedAt: &early, Present: true},
		}),
	}

	q := Query{OrderKey: ParseSortKey("model_submitted"), Direction: Descending}
	sortPivots(pivots, &q)
	// Null timestamps order last even when descending.
	if diff := cmp.Diff([]string{"a", "c", "b"}, rowNames(pivots)); diff != "" {
		t.Fatalf("submitted order wrong (-want +got):\n%s", diff)
	}
}

func TestPreferredPhaseBiasBlocks(t *testing.T) {
	t.Parallel()

	charA := pivotRow("charA", "", map[domain.Phase]domain.PhaseSlot{
		domain.PhaseModel: slot("", "approved", ""),
	})
	charB := pivotRow("charB", "", map[domain.Phase]domain.PhaseSlot{
		domain.PhaseRig: slot("", "approved", ""),
	})

	q := Query{OrderKey: DefaultSortKey, Direction: Ascending}
	unbiased := []domain.AssetPivot{charB, charA}
	sortPivots(unbiased, &q)
	if diff := cmp.Diff([]string{"charA", "charB"}, rowNames(unbiased)); diff != "" {
		t.Fatalf("name order wrong (-want +got):\n%s", diff)
	}

	q.PreferredPhase = domain.PhaseRig
	biased := []domain.AssetPivot{charA, charB}
	sortPivots(biased, &q)
	if diff := cmp.Diff([]string{"charB", "charA"}, rowNames(biased)); diff != "" {
		t.Fatalf("preferred-phase block wrong (-want +got):\n%s", diff)
	}
}

func TestSortStableTiebreak(t *testing.T) {
	t.Parallel()

	pivots := []domain.AssetPivot{
		pivotRow("same", "relB", map[domain.Phase]domain.PhaseSlot{domain.PhaseModel: slot("wip", "", "")}),
		pivotRow("same", "relA", map[domain.Phase]domain.PhaseSlot{domain.PhaseModel: slot("wip", "", "")}),
	}

	q := Query{OrderKey: ParseSortKey("model_work"), Direction: Descending}
	sortPivots(pivots, &q)
	if pivots[0].Relation != "relA" || pivots[1].Relation != "relB" {
		t.Fatalf("tiebreak must be relation ascending, got %s then %s", pivots[0].Relation, pivots[1].Relation)
	}
}
