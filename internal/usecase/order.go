package usecase

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"ReviewBoard/internal/domain"
)

// emptyPlaceholder is the single-dash value some clients write instead of an
// empty status; it orders with the empties.
const emptyPlaceholder = "-"

// valueClass partitions sort values into blocks whose relative position is
// fixed regardless of direction: real values first, then non-numeric take
// values, then empties. Direction only reorders within a block.
type valueClass int

const (
	classValue valueClass = iota
	classInvalid
	classEmpty
)

// sortValue is one pivot's value under a sort key, reduced to a comparable
// form.
type sortValue struct {
	class valueClass
	num   int64
	text  string
	at    time.Time
}

// sortPivots orders rows in place under the query's sort key, direction and
// preferred-phase bias. The order is total and reproducible: every tie falls
// back to (name asc, relation asc), which pagination depends on.
func sortPivots(pivots []domain.AssetPivot, q *Query) {
	key := q.OrderKey
	sort.SliceStable(pivots, func(i, j int) bool {
		a, b := pivots[i], pivots[j]

		if q.phaseLocked() {
			ap := a.Slot(q.PreferredPhase).Present
			bp := b.Slot(q.PreferredPhase).Present
			if ap != bp {
				return ap
			}
		}

		av := extractValue(a, key)
		bv := extractValue(b, key)
		if av.class != bv.class {
			return av.class < bv.class
		}
		if cmp := compareValues(av, bv, key.Field); cmp != 0 {
			if q.Direction == Descending {
				return cmp > 0
			}
			return cmp < 0
		}

		return lessByIdentity(a, b)
	})
}

// extractValue reads the sort key's column off one pivot.
func extractValue(pivot domain.AssetPivot, key SortKey) sortValue {
	switch key.Field {
	case SortByName:
		return textValue(pivot.Name)
	case SortByRelation:
		return textValue(pivot.Relation)
	}

	slot := pivot.Slot(key.Phase)
	switch key.Field {
	case SortByWorkStatus:
		return textValue(slot.WorkStatus)
	case SortByApprovalStatus:
		return textValue(slot.ApprovalStatus)
	case SortByTake:
		return takeValue(slot.Take)
	case SortBySubmittedAt:
		if slot.SubmittedAt == nil {
			return sortValue{class: classEmpty}
		}
		return sortValue{class: classValue, at: *slot.SubmittedAt}
	}
	return sortValue{class: classEmpty}
}

func textValue(s string) sortValue {
	s = strings.TrimSpace(s)
	if s == "" || s == emptyPlaceholder {
		return sortValue{class: classEmpty}
	}
	return sortValue{class: classValue, text: strings.ToLower(s)}
}

// takeValue coerces a take string by stripping non-digit characters and
// parsing the remainder as an integer. Non-numeric values are kept as an
// invalid-but-present block between the numbers and the empties.
func takeValue(s string) sortValue {
	s = strings.TrimSpace(s)
	if s == "" || s == emptyPlaceholder {
		return sortValue{class: classEmpty}
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return sortValue{class: classInvalid, text: strings.ToLower(s)}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return sortValue{class: classInvalid, text: strings.ToLower(s)}
	}
	return sortValue{class: classValue, num: n}
}

// compareValues compares two values of the same class; zero means fall back
// to the identity tiebreak.
func compareValues(a, b sortValue, field SortField) int {
	if a.class == classEmpty {
		return 0
	}
	switch field {
	case SortBySubmittedAt:
		switch {
		case a.at.Before(b.at):
			return -1
		case a.at.After(b.at):
			return 1
		}
		return 0
	case SortByTake:
		if a.class == classValue {
			switch {
			case a.num < b.num:
				return -1
			case a.num > b.num:
				return 1
			}
			return 0
		}
		return strings.Compare(a.text, b.text)
	default:
		return strings.Compare(a.text, b.text)
	}
}
