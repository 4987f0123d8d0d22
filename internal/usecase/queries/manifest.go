package queries

import (
	"context"
	"time"

	"cargo-backoffice/internal/domain/manifest"
	"cargo-backoffice/internal/domain/shipment"

	"github.com/google/uuid"
)

// ManifestView is the read model served to display layers.
type ManifestView struct {
	ID               uuid.UUID      `json:"id"`
	ManifestNo       string         `json:"manifest_no"`
	Type             string         `json:"type"`
	FromHubID        uuid.UUID      `json:"from_hub_id"`
	ToHubID          uuid.UUID      `json:"to_hub_id"`
	Status           string         `json:"status"`
	TotalShipments   int32          `json:"total_shipments"`
	TotalPackages    int32          `json:"total_packages"`
	TotalWeight      float64        `json:"total_weight"`
	TotalCOD         float64        `json:"total_cod"`
	CreatedByStaffID *uuid.UUID     `json:"created_by_staff_id,omitempty"`
	ClosedByStaffID  *uuid.UUID     `json:"closed_by_staff_id,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	ClosedAt         *time.Time     `json:"closed_at,omitempty"`
	VehicleMeta      map[string]any `json:"vehicle_meta,omitempty"`
}

// ManifestItemView joins an item with the shipment fields operators see
// in the build table.
type ManifestItemView struct {
	ItemID           uuid.UUID       `json:"item_id"`
	ManifestID       uuid.UUID       `json:"manifest_id"`
	ShipmentID       uuid.UUID       `json:"shipment_id"`
	AWB              string          `json:"awb"`
	ConsigneeName    string          `json:"consignee_name"`
	ShipmentStatus   shipment.Status `json:"shipment_status"`
	PackageCount     int32           `json:"package_count"`
	TotalWeight      float64         `json:"total_weight"`
	CODAmount        *float64        `json:"cod_amount,omitempty"`
	ScannedByStaffID *uuid.UUID      `json:"scanned_by_staff_id,omitempty"`
	ScannedAt        time.Time       `json:"scanned_at"`
}

// ScanLogView is one audited attach attempt.
type ScanLogView struct {
	ID              uuid.UUID  `json:"id"`
	ManifestID      uuid.UUID  `json:"manifest_id"`
	ShipmentID      *uuid.UUID `json:"shipment_id,omitempty"`
	RawToken        string     `json:"raw_token"`
	NormalizedToken string     `json:"normalized_token"`
	Result          string     `json:"result"`
	Source          string     `json:"source"`
	StaffID         *uuid.UUID `json:"staff_id,omitempty"`
	ErrorMessage    *string    `json:"error_message,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ManifestReadStore is the read-side port implemented by infra.
type ManifestReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ManifestView, error)
	ListItems(ctx context.Context, manifestID uuid.UUID) ([]ManifestItemView, error)
	ListScanLog(ctx context.Context, manifestID uuid.UUID) ([]ScanLogView, error)
}

// ManifestQueries is the read-side usecase consumed by handlers.
type ManifestQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ManifestView, error)
	ListItems(ctx context.Context, manifestID uuid.UUID) ([]ManifestItemView, error)
	ListScanLog(ctx context.Context, manifestID uuid.UUID) ([]ScanLogView, error)
}

type manifestQueriesImpl struct {
	store ManifestReadStore
}

func NewManifestQueries(store ManifestReadStore) ManifestQueries {
	return &manifestQueriesImpl{store: store}
}

func (q *manifestQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ManifestView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *manifestQueriesImpl) ListItems(ctx context.Context, manifestID uuid.UUID) ([]ManifestItemView, error) {
	return q.store.ListItems(ctx, manifestID)
}

func (q *manifestQueriesImpl) ListScanLog(ctx context.Context, manifestID uuid.UUID) ([]ScanLogView, error) {
	return q.store.ListScanLog(ctx, manifestID)
}

// ViewFromSnapshot converts a domain snapshot for responses produced on
// the write path (read-after-write).
func ViewFromSnapshot(m *manifest.Snapshot) *ManifestView {
	return &ManifestView{
		ID:               m.ID,
		ManifestNo:       m.ManifestNo,
		Type:             string(m.Type),
		FromHubID:        m.FromHubID,
		ToHubID:          m.ToHubID,
		Status:           string(m.Status),
		TotalShipments:   m.TotalShipments,
		TotalPackages:    m.TotalPackages,
		TotalWeight:      m.TotalWeight,
		TotalCOD:         m.TotalCOD,
		CreatedByStaffID: m.CreatedByStaffID,
		ClosedByStaffID:  m.ClosedByStaffID,
		CreatedAt:        m.CreatedAt,
		ClosedAt:         m.ClosedAt,
		VehicleMeta:      m.VehicleMeta,
	}
}
