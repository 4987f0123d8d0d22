package commands

import (
	"context"
	"fmt"

	"cargo-backoffice/internal/domain/scan"
	"cargo-backoffice/internal/infra"
	"cargo-backoffice/internal/pkg/errs"
	"cargo-backoffice/internal/usecase/scanqueue"
)

// Tracking event codes emitted when queued scans are replayed.
const (
	eventCodeManifestScan = "MANIFEST_SCAN"
	eventCodePackageScan  = "PACKAGE_SCAN"
)

type scanEventSyncer struct {
	shipments ShipmentRepository
}

// NewScanEventSyncer builds the scanqueue.Syncer that replays a queued
// scan: the scanned code is resolved to a shipment and a tracking event
// is recorded against it, timestamped at scan time, not replay time.
func NewScanEventSyncer(shipments ShipmentRepository) scanqueue.Syncer {
	return &scanEventSyncer{shipments: shipments}
}

func (s *scanEventSyncer) Sync(ctx context.Context, ev scanqueue.Event) error {
	code := ev.Code
	if token, err := scan.Parse(ev.Code); err == nil && token.Type == scan.TypeShipment {
		code = token.AWB
	} else {
		code = scan.NormalizeScanToken(ev.Code)
	}

	sh, err := s.shipments.FindByAWB(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(fmt.Errorf("no shipment found matching: %s", code), errs.ErrShipmentNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	eventCode := eventCodePackageScan
	if ev.Type == scan.TypeManifest {
		eventCode = eventCodeManifestScan
	}

	event := TrackingEvent{
		ShipmentID: sh.ID,
		AWB:        sh.AWB,
		EventCode:  eventCode,
		HubID:      ev.HubID,
		StaffID:    ev.StaffID,
		OccurredAt: ev.CreatedAt,
		Meta: map[string]any{
			"scan_id":   ev.ID.String(),
			"scan_type": string(ev.Type),
			"source":    string(ev.Source),
		},
	}
	if err := s.shipments.RecordEvent(ctx, event); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
