package manifest

import (
	"time"

	"github.com/google/uuid"
)

// TransportType distinguishes air and truck consignments.
type TransportType string

const (
	TransportAir   TransportType = "AIR"
	TransportTruck TransportType = "TRUCK"
)

// Snapshot is the read copy of a manifest held for the duration of one
// validation or attach call. The repository owns the canonical row.
type Snapshot struct {
	ID               uuid.UUID
	ManifestNo       string
	Type             TransportType
	FromHubID        uuid.UUID
	ToHubID          uuid.UUID
	Status           Status
	TotalShipments   int32
	TotalPackages    int32
	TotalWeight      float64
	TotalCOD         float64
	CreatedByStaffID *uuid.UUID
	ClosedByStaffID  *uuid.UUID
	CreatedAt        time.Time
	ClosedAt         *time.Time
	// VehicleMeta is mode-specific metadata (airline/flight or
	// vehicle/driver), opaque to the core.
	VehicleMeta map[string]any
}

// Item links one shipment to one manifest. At most one Item exists per
// (ManifestID, ShipmentID) pair; the attacher relies on this.
type Item struct {
	ID               uuid.UUID
	ManifestID       uuid.UUID
	ShipmentID       uuid.UUID
	ScannedByStaffID *uuid.UUID
	ScannedAt        time.Time
}

// Rules is the rule configuration carried alongside a build session.
type Rules struct {
	OnlyReady        bool
	MatchDestination bool
	ExcludeCOD       bool
}

// DefaultRules mirrors the dispatcher-facing defaults: status and
// destination checks on, COD shipments allowed.
func DefaultRules() Rules {
	return Rules{OnlyReady: true, MatchDestination: true, ExcludeCOD: false}
}
