package request

import (
	"github.com/google/uuid"
)

type ScanRequest struct {
	Token  string `json:"token" binding:"required"`
	Source string `json:"source,omitempty"`

	// Per-scan rule overrides; the manifest defaults apply when omitted.
	OnlyReady        *bool `json:"only_ready,omitempty"`
	MatchDestination *bool `json:"match_destination,omitempty"`
	ExcludeCOD       *bool `json:"exclude_cod,omitempty"`
}

type QueueScanRequest struct {
	Type   string     `json:"type" binding:"required,oneof=shipment manifest package"`
	Code   string     `json:"code" binding:"required"`
	Source string     `json:"source,omitempty"`
	HubID  *uuid.UUID `json:"hub_id,omitempty"`
}

type SetOnlineRequest struct {
	Online *bool `json:"online" binding:"required"`
}
