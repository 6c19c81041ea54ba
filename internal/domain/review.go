package domain

import (
	"strings"
	"time"
)

// Phase identifies one stage of the production pipeline tracked per asset.
type Phase string

const (
	PhaseModel  Phase = "model"
	PhaseRig    Phase = "rig"
	PhaseBuild  Phase = "build"
	PhaseDesign Phase = "design"
	PhaseLight  Phase = "light"
)

// Phases lists every pipeline phase in display order. The slice is
// package-level static configuration; callers must not modify it.
var Phases = []Phase{PhaseModel, PhaseRig, PhaseBuild, PhaseDesign, PhaseLight}

// phaseDisplayNames maps phase codes to the labels shown in table headers.
var phaseDisplayNames = map[Phase]string{
	PhaseModel:  "Modeling",
	PhaseRig:    "Rigging",
	PhaseBuild:  "Building",
	PhaseDesign: "Design Review",
	PhaseLight:  "Lighting/Dev",
}

// DisplayName resolves the human-readable label for a phase.
func (p Phase) DisplayName() string {
	if name, ok := phaseDisplayNames[p]; ok {
		return name
	}
	return string(p)
}

// Valid reports whether p is one of the five known phase codes.
func (p Phase) Valid() bool {
	_, ok := phaseDisplayNames[p]
	return ok
}

// ParsePhase resolves a phase code; ok is false for unknown or empty input.
func ParsePhase(code string) (Phase, bool) {
	p := Phase(strings.ToLower(strings.TrimSpace(code)))
	if p.Valid() {
		return p, true
	}
	return "", false
}

// RootAsset is the default namespace for review records.
const RootAsset = "asset"

// RootShot is the alternative namespace used for shot-based work.
const RootShot = "shot"

// ReviewRecord is one submission event for one asset phase. Records are
// append-only: the write path never mutates them and the read engine never
// persists anything.
type ReviewRecord struct {
	ID             int64
	Project        string
	Root           string
	AssetPath      string
	Relation       string
	Phase          Phase
	WorkStatus     string
	ApprovalStatus string
	Take           string
	SubmittedAt    *time.Time
	ModifiedAt     time.Time
	Deleted        int
}

// Active reports whether the record participates in resolution.
func (r ReviewRecord) Active() bool {
	return r.Deleted == 0
}

// Name returns the leaf segment of the asset path, the primary identifier
// shown in the table.
func (r ReviewRecord) Name() string {
	return pathLeaf(r.AssetPath)
}

// PhaseSlot holds the latest resolved status columns for one phase of one
// asset. A phase with no record leaves the slot zero-valued with Present
// false.
type PhaseSlot struct {
	WorkStatus     string
	ApprovalStatus string
	Take           string
	SubmittedAt    *time.Time
	Present        bool
}

// AssetPivot is one synthesized row per (project, root, assetPath, relation).
// It is constructed fresh per query and discarded with the response.
type AssetPivot struct {
	Project   string
	Root      string
	AssetPath string
	Name      string
	Relation  string

	Slots map[Phase]PhaseSlot

	LeafGroupName     string
	GroupCategoryPath string
	TopGroupNode      string
}

// Slot returns the resolved slot for a phase; the zero slot when absent.
func (p AssetPivot) Slot(phase Phase) PhaseSlot {
	if p.Slots == nil {
		return PhaseSlot{}
	}
	return p.Slots[phase]
}

// GroupedAssetBucket is a named bucket of pivoted rows sharing a top-level
// group node. Total is computed from the unsliced set so a partial page can
// still report "showing N of M" for the bucket.
type GroupedAssetBucket struct {
	Name  string
	Items []AssetPivot
	Count int
	Total int
}

// UnassignedGroup labels the bucket for assets without a top-level group.
const UnassignedGroup = "unassigned"

// RecordFilter narrows a record store read. NameKey matches the asset path
// case-insensitively as a substring; Limit caps the rows considered (zero
// means no cap).
type RecordFilter struct {
	Project string
	Root    string
	NameKey string
	Limit   int
}

// DeriveGrouping fills the pivot's group metadata from its asset path.
// The top node is the first path segment when the path has at least two
// segments; single-segment assets are unassigned.
func (p *AssetPivot) DeriveGrouping() {
	segments := splitPath(p.AssetPath)
	p.Name = ""
	p.LeafGroupName = ""
	p.GroupCategoryPath = ""
	p.TopGroupNode = ""
	if len(segments) == 0 {
		return
	}
	p.Name = segments[len(segments)-1]
	if len(segments) == 1 {
		return
	}
	p.TopGroupNode = segments[0]
	p.LeafGroupName = segments[len(segments)-2]
	p.GroupCategoryPath = strings.Join(segments[:len(segments)-1], "/")
}

func splitPath(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

func pathLeaf(path string) string {
	segments := splitPath(path)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}
