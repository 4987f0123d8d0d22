package response

import (
	"time"

	"cargo-backoffice/internal/usecase/commands"
	"cargo-backoffice/internal/usecase/scanqueue"

	"github.com/google/uuid"
)

type ScanResultResponse struct {
	Success       bool      `json:"success"`
	Duplicate     bool      `json:"duplicate"`
	ItemID        uuid.UUID `json:"itemId,omitempty"`
	ShipmentID    uuid.UUID `json:"shipmentId,omitempty"`
	AWB           string    `json:"awb,omitempty"`
	ConsigneeName string    `json:"consigneeName,omitempty"`
	ErrorCode     string    `json:"errorCode,omitempty"`
	Message       string    `json:"message"`
}

func FromAttachResult(r *commands.AttachResult) *ScanResultResponse {
	return &ScanResultResponse{
		Success:       r.Success,
		Duplicate:     r.Duplicate,
		ItemID:        r.ItemID,
		ShipmentID:    r.ShipmentID,
		AWB:           r.AWB,
		ConsigneeName: r.ConsigneeName,
		ErrorCode:     r.ErrorCode,
		Message:       r.Message,
	}
}

type QueuedScanResponse struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Code      string     `json:"code"`
	Source    string     `json:"source"`
	HubID     *uuid.UUID `json:"hubId,omitempty"`
	StaffID   *uuid.UUID `json:"staffId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	Synced    bool       `json:"synced"`
	SyncedAt  *time.Time `json:"syncedAt,omitempty"`
	Error     string     `json:"error,omitempty"`
}

type QueueStateResponse struct {
	Online  bool                 `json:"online"`
	Pending []QueuedScanResponse `json:"pending"`
	Failed  []QueuedScanResponse `json:"failed"`
	Synced  []QueuedScanResponse `json:"synced"`
}

type SyncReportResponse struct {
	Synced      int       `json:"synced"`
	Failed      int       `json:"failed"`
	AttemptedAt time.Time `json:"attemptedAt"`
}

func FromQueuedScan(ev scanqueue.Event) QueuedScanResponse {
	return QueuedScanResponse{
		ID:        ev.ID,
		Type:      string(ev.Type),
		Code:      ev.Code,
		Source:    string(ev.Source),
		HubID:     ev.HubID,
		StaffID:   ev.StaffID,
		CreatedAt: ev.CreatedAt,
		Synced:    ev.Synced,
		SyncedAt:  ev.SyncedAt,
		Error:     ev.Error,
	}
}

func FromQueuedScans(events []scanqueue.Event) []QueuedScanResponse {
	out := make([]QueuedScanResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, FromQueuedScan(ev))
	}
	return out
}

func FromSyncReport(r scanqueue.Report) *SyncReportResponse {
	return &SyncReportResponse{
		Synced:      r.Synced,
		Failed:      r.Failed,
		AttemptedAt: r.AttemptedAt,
	}
}
