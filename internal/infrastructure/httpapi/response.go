package httpapi

import (
	"time"

	"ReviewBoard/internal/domain"
)

type flatResponse struct {
	Data      []pivotDTO `json:"data"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	PerPage   int        `json:"perPage"`
	Truncated bool       `json:"truncated"`
}

type groupedResponse struct {
	Groups    []bucketDTO `json:"groups"`
	Total     int         `json:"total"`
	Page      int         `json:"page"`
	PerPage   int         `json:"perPage"`
	Truncated bool        `json:"truncated"`
}

type bucketDTO struct {
	Name  string     `json:"name"`
	Count int        `json:"count"`
	Total int        `json:"total"`
	Items []pivotDTO `json:"items"`
}

// pivotDTO serializes one row with every phase's columns as top-level
// phase-prefixed nullable fields, matching the table the clients render.
type pivotDTO struct {
	Name      string `json:"name"`
	AssetPath string `json:"assetPath"`
	Relation  string `json:"relation"`
	Root      string `json:"root"`

	LeafGroupName     string `json:"leafGroupName,omitempty"`
	GroupCategoryPath string `json:"groupCategoryPath,omitempty"`
	TopGroupNode      string `json:"topGroupNode,omitempty"`

	ModelWorkStatus     *string    `json:"model_work_status"`
	ModelApprovalStatus *string    `json:"model_approval_status"`
	ModelTake           *string    `json:"model_take"`
	ModelSubmittedAt    *time.Time `json:"model_submitted_at"`

	RigWorkStatus     *string    `json:"rig_work_status"`
	RigApprovalStatus *string    `json:"rig_approval_status"`
	RigTake           *string    `json:"rig_take"`
	RigSubmittedAt    *time.Time `json:"rig_submitted_at"`

	BuildWorkStatus     *string    `json:"build_work_status"`
	BuildApprovalStatus *string    `json:"build_approval_status"`
	BuildTake           *string    `json:"build_take"`
	BuildSubmittedAt    *time.Time `json:"build_submitted_at"`

	DesignWorkStatus     *string    `json:"design_work_status"`
	DesignApprovalStatus *string    `json:"design_approval_status"`
	DesignTake           *string    `json:"design_take"`
	DesignSubmittedAt    *time.Time `json:"design_submitted_at"`

	LightWorkStatus     *string    `json:"light_work_status"`
	LightApprovalStatus *string    `json:"light_approval_status"`
	LightTake           *string    `json:"light_take"`
	LightSubmittedAt    *time.Time `json:"light_submitted_at"`
}

func toPivotDTOs(pivots []domain.AssetPivot) []pivotDTO {
	dtos := make([]pivotDTO, 0, len(pivots))
	for _, pivot := range pivots {
		dtos = append(dtos, toPivotDTO(pivot))
	}
	return dtos
}

func toBucketDTOs(buckets []domain.GroupedAssetBucket) []bucketDTO {
	dtos := make([]bucketDTO, 0, len(buckets))
	for _, bucket := range buckets {
		dtos = append(dtos, bucketDTO{
			Name:  bucket.Name,
			Count: bucket.Count,
			Total: bucket.Total,
			Items: toPivotDTOs(bucket.Items),
		})
	}
	return dtos
}

func toPivotDTO(pivot domain.AssetPivot) pivotDTO {
	dto := pivotDTO{
		Name:              pivot.Name,
		AssetPath:         pivot.AssetPath,
		Relation:          pivot.Relation,
		Root:              pivot.Root,
		LeafGroupName:     pivot.LeafGroupName,
		GroupCategoryPath: pivot.GroupCategoryPath,
		TopGroupNode:      pivot.TopGroupNode,
	}

	assign := func(slot domain.PhaseSlot, work, approval, take **string, submitted **time.Time) {
		if !slot.Present {
			return
		}
		*work = ptr(slot.WorkStatus)
		*approval = ptr(slot.ApprovalStatus)
		*take = ptr(slot.Take)
		*submitted = slot.SubmittedAt
	}

	assign(pivot.Slot(domain.PhaseModel), &dto.ModelWorkStatus, &dto.ModelApprovalStatus, &dto.ModelTake, &dto.ModelSubmittedAt)
	assign(pivot.Slot(domain.PhaseRig), &dto.RigWorkStatus, &dto.RigApprovalStatus, &dto.RigTake, &dto.RigSubmittedAt)
	assign(pivot.Slot(domain.PhaseBuild), &dto.BuildWorkStatus, &dto.BuildApprovalStatus, &dto.BuildTake, &dto.BuildSubmittedAt)
	assign(pivot.Slot(domain.PhaseDesign), &dto.DesignWorkStatus, &dto.DesignApprovalStatus, &dto.DesignTake, &dto.DesignSubmittedAt)
	assign(pivot.Slot(domain.PhaseLight), &dto.LightWorkStatus, &dto.LightApprovalStatus, &dto.LightTake, &dto.LightSubmittedAt)

	return dto
}

func ptr(s string) *string {
	return &s
}
