package request

import (
	"github.com/google/uuid"

	"cargo-backoffice/internal/domain/manifest"
	"cargo-backoffice/internal/usecase/commands"
)

type CreateManifestRequest struct {
	Type        string         `json:"type" binding:"required,oneof=AIR TRUCK"`
	FromHubID   uuid.UUID      `json:"from_hub_id" binding:"required"`
	ToHubID     uuid.UUID      `json:"to_hub_id" binding:"required"`
	Status      *string        `json:"status,omitempty"`
	VehicleMeta map[string]any `json:"vehicle_meta,omitempty"`
	Notes       string         `json:"notes,omitempty"`
}

func (r CreateManifestRequest) ToParams(staffID *uuid.UUID) commands.CreateManifestParams {
	params := commands.CreateManifestParams{
		Type:             manifest.TransportType(r.Type),
		FromHubID:        r.FromHubID,
		ToHubID:          r.ToHubID,
		VehicleMeta:      r.VehicleMeta,
		Notes:            r.Notes,
		CreatedByStaffID: staffID,
	}
	if r.Status != nil {
		params.Status = manifest.Status(*r.Status)
	}
	return params
}

type UpdateManifestStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
