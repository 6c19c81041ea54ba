package usecase

import (
	"sort"
	"strings"

	"ReviewBoard/internal/domain"
)

// slicePage returns rows [offset, offset+limit) of the ordered set. An
// offset at or past the end is an empty page, never an error.
func slicePage(pivots []domain.AssetPivot, offset, limit int) []domain.AssetPivot {
	if offset < 0 || offset >= len(pivots) {
		return []domain.AssetPivot{}
	}
	end := offset + limit
	if end > len(pivots) {
		end = len(pivots)
	}
	return pivots[offset:end]
}

// groupPage buckets the fully-ordered row set by top group node, orders the
// buckets, and slices a page out of the flattened sequence. The slice runs
// over the flattened whole — page boundaries may fall mid-bucket — and the
// page's buckets still report their true pre-slice totals.
func groupPage(pivots []domain.AssetPivot, q *Query) []domain.GroupedAssetBucket {
	buckets := bucketByTopNode(pivots)
	sortBuckets(buckets, q.Direction)

	flattened := make([]domain.AssetPivot, 0, len(pivots))
	totals := make(map[string]int, len(buckets))
	for _, bucket := range buckets {
		flattened = append(flattened, bucket.Items...)
		totals[bucket.Name] = bucket.Total
	}

	page := slicePage(flattened, q.Offset(), q.PerPage)

	var grouped []domain.GroupedAssetBucket
	for _, pivot := range page {
		name := bucketName(pivot)
		if n := len(grouped); n == 0 || grouped[n-1].Name != name {
			grouped = append(grouped, domain.GroupedAssetBucket{
				Name:  name,
				Total: totals[name],
			})
		}
		last := &grouped[len(grouped)-1]
		last.Items = append(last.Items, pivot)
		last.Count = len(last.Items)
	}
	if grouped == nil {
		grouped = []domain.GroupedAssetBucket{}
	}
	return grouped
}

// bucketByTopNode partitions rows by their derived top group node while
// preserving row order inside every bucket. Bucket totals are the true
// unsliced item counts.
func bucketByTopNode(pivots []domain.AssetPivot) []domain.GroupedAssetBucket {
	index := make(map[string]int)
	var buckets []domain.GroupedAssetBucket
	for _, pivot := range pivots {
		name := bucketName(pivot)
		at, ok := index[name]
		if !ok {
			buckets = append(buckets, domain.GroupedAssetBucket{Name: name})
			at = len(buckets) - 1
			index[name] = at
		}
		buckets[at].Items = append(buckets[at].Items, pivot)
	}
	for i := range buckets {
		buckets[i].Count = len(buckets[i].Items)
		buckets[i].Total = len(buckets[i].Items)
	}
	return buckets
}

// sortBuckets orders buckets alphabetically (case-insensitive) honoring the
// requested direction, with the unassigned bucket pinned last either way.
func sortBuckets(buckets []domain.GroupedAssetBucket, dir Direction) {
	sort.SliceStable(buckets, func(i, j int) bool {
		a, b := buckets[i].Name, buckets[j].Name
		if a == domain.UnassignedGroup || b == domain.UnassignedGroup {
			return b == domain.UnassignedGroup && a != domain.UnassignedGroup
		}
		al, bl := strings.ToLower(a), strings.ToLower(b)
		if dir == Descending {
			return al > bl
		}
		return al < bl
	})
}

func bucketName(pivot domain.AssetPivot) string {
	name := strings.TrimSpace(pivot.TopGroupNode)
	if name == "" {
		return domain.UnassignedGroup
	}
	return name
}
