package commands

import (
	"context"
	"time"

	"cargo-backoffice/internal/domain/manifest"
	"cargo-backoffice/internal/domain/scan"
	"cargo-backoffice/internal/domain/shipment"
	"cargo-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
)

// CreateManifestParams collects the route/transport settings of a new
// manifest. VehicleMeta is mode-specific (airline/flight or
// vehicle/driver) and passed through opaquely.
type CreateManifestParams struct {
	Type             manifest.TransportType
	FromHubID        uuid.UUID
	ToHubID          uuid.UUID
	Status           manifest.Status
	VehicleMeta      map[string]any
	Notes            string
	CreatedByStaffID *uuid.UUID
}

// ItemDelta is one shipment's contribution to a manifest's aggregates.
type ItemDelta struct {
	Shipments int32
	Packages  int32
	Weight    float64
	COD       float64
}

func deltaFor(s *shipment.Snapshot) ItemDelta {
	d := ItemDelta{
		Shipments: 1,
		Packages:  s.PackageCount,
		Weight:    s.TotalWeight,
	}
	if s.CODAmount != nil {
		d.COD = *s.CODAmount
	}
	return d
}

// ScanLogEntry is one audited attach attempt, success or not.
type ScanLogEntry struct {
	ManifestID      uuid.UUID
	ShipmentID      *uuid.UUID
	RawToken        string
	NormalizedToken string
	Result          string
	Source          scan.Source
	StaffID         *uuid.UUID
	ErrorMessage    string
}

// ManifestRepository is the persistence collaborator coordinating
// concurrent attach calls for the same manifest. AddItem and RemoveItem
// apply the item write and the aggregate delta atomically; two operators
// attaching different shipments to one manifest must not lose each
// other's increments.
type ManifestRepository interface {
	Create(ctx context.Context, params CreateManifestParams) (*manifest.Snapshot, error)
	FindByID(ctx context.Context, id uuid.UUID) (*manifest.Snapshot, error)
	FindByNo(ctx context.Context, manifestNo string) (*manifest.Snapshot, error)
	// FindItem returns a KindNotFound repository error when the pair is
	// not attached.
	FindItem(ctx context.Context, manifestID, shipmentID uuid.UUID) (*manifest.Item, error)
	// AddItem inserts the item and increments the manifest aggregates in
	// one atomic write. duplicate reports a pre-existing pair (unique
	// index hit); no delta is applied in that case.
	AddItem(ctx context.Context, manifestID, shipmentID uuid.UUID, staffID *uuid.UUID, delta ItemDelta) (item *manifest.Item, duplicate bool, err error)
	// RemoveItem deletes the item if present and decrements aggregates.
	// removed=false when nothing was attached; that is not an error.
	RemoveItem(ctx context.Context, manifestID, shipmentID uuid.UUID, delta ItemDelta) (removed bool, err error)
	UpdateStatus(ctx context.Context, id uuid.UUID, newStatus manifest.Status, staffID *uuid.UUID) error
	SetTotals(ctx context.Context, manifestID uuid.UUID, totals ItemDelta) error
	ListItems(ctx context.Context, manifestID uuid.UUID) ([]queries.ManifestItemView, error)
	RecordScanLog(ctx context.Context, entry ScanLogEntry) error
}

// TrackingEvent is appended to a shipment's history.
type TrackingEvent struct {
	ShipmentID uuid.UUID
	AWB        string
	EventCode  string
	HubID      *uuid.UUID
	StaffID    *uuid.UUID
	OccurredAt time.Time
	Meta       map[string]any
}

// ShipmentRepository is the shipment collaborator. The core never writes
// shipment rows directly; UpdateStatus is the only mutation and emits a
// tracking event as a side effect.
type ShipmentRepository interface {
	FindByAWB(ctx context.Context, awb string) (*shipment.Snapshot, error)
	FindByID(ctx context.Context, id uuid.UUID) (*shipment.Snapshot, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status shipment.Status, description string, hubID *uuid.UUID, staffID *uuid.UUID) error
	RecordEvent(ctx context.Context, event TrackingEvent) error
}
