package shipment

import (
	"github.com/google/uuid"
)

// Status is the shipment lifecycle status owned by the shipment collaborator.
type Status string

const (
	StatusCreated               Status = "CREATED"
	StatusPickedUp              Status = "PICKED_UP"
	StatusReceived              Status = "RECEIVED"
	StatusReceivedAtOriginHub   Status = "RECEIVED_AT_ORIGIN_HUB"
	StatusLoadedForLinehaul     Status = "LOADED_FOR_LINEHAUL"
	StatusInTransitToDest       Status = "IN_TRANSIT_TO_DESTINATION"
	StatusReceivedAtDestHub     Status = "RECEIVED_AT_DEST_HUB"
	StatusOutForDelivery        Status = "OUT_FOR_DELIVERY"
	StatusDelivered             Status = "DELIVERED"
	StatusExceptionRaised       Status = "EXCEPTION_RAISED"
	StatusExceptionResolved     Status = "EXCEPTION_RESOLVED"
	StatusCancelled             Status = "CANCELLED"
)

// readyForManifest is the set of statuses eligible for manifesting when
// the onlyReady rule is active.
var readyForManifest = map[Status]struct{}{
	StatusReceived:            {},
	StatusCreated:             {},
	StatusPickedUp:            {},
	StatusReceivedAtOriginHub: {},
}

// ReadyForManifest reports whether a shipment in status s may be attached
// to a manifest under the onlyReady rule.
func ReadyForManifest(s Status) bool {
	_, ok := readyForManifest[s]
	return ok
}

// Snapshot is the read-only view of a shipment the manifest core needs.
// The core never mutates it; status changes go through the shipment
// repository's explicit UpdateStatus.
type Snapshot struct {
	ID               uuid.UUID
	AWB              string
	Status           Status
	OriginHubID      uuid.UUID
	DestinationHubID uuid.UUID
	PackageCount     int32
	TotalWeight      float64
	CODAmount        *float64
	ConsigneeName    string
}

// CarriesCOD reports whether the shipment has a nonzero cash-on-delivery
// amount attached.
func (s *Snapshot) CarriesCOD() bool {
	return s.CODAmount != nil && *s.CODAmount > 0
}
