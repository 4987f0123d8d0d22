//go:build unit || e2e

package builder

import (
	"time"

	"cargo-backoffice/internal/domain/manifest"
	"cargo-backoffice/internal/domain/shipment"
	reqdto "cargo-backoffice/internal/handler/dto/request"
	"cargo-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
)

type ManifestBuilder struct {
	ID         uuid.UUID
	ManifestNo string
	Type       manifest.TransportType
	FromHubID  uuid.UUID
	ToHubID    uuid.UUID
	Status     manifest.Status
	Shipments  int32
	Packages   int32
	Weight     float64
	COD        float64
	CreatedAt  time.Time
}

func NewManifestBuilder() *ManifestBuilder {
	return &ManifestBuilder{
		ID:         uuid.New(),
		ManifestNo: "MNF-2026-000042",
		Type:       manifest.TransportTruck,
		FromHubID:  uuid.New(),
		ToHubID:    uuid.New(),
		Status:     manifest.StatusOpen,
		Shipments:  3,
		Packages:   7,
		Weight:     42.5,
		COD:        1200,
		CreatedAt:  time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC),
	}
}

func (b *ManifestBuilder) WithStatus(status manifest.Status) *ManifestBuilder {
	b.Status = status
	return b
}

func (b *ManifestBuilder) WithID(id uuid.UUID) *ManifestBuilder {
	b.ID = id
	return b
}

func (b *ManifestBuilder) BuildSnapshot() *manifest.Snapshot {
	return &manifest.Snapshot{
		ID:             b.ID,
		ManifestNo:     b.ManifestNo,
		Type:           b.Type,
		FromHubID:      b.FromHubID,
		ToHubID:        b.ToHubID,
		Status:         b.Status,
		TotalShipments: b.Shipments,
		TotalPackages:  b.Packages,
		TotalWeight:    b.Weight,
		TotalCOD:       b.COD,
		CreatedAt:      b.CreatedAt,
	}
}

func (b *ManifestBuilder) BuildView() *queries.ManifestView {
	return queries.ViewFromSnapshot(b.BuildSnapshot())
}

func (b *ManifestBuilder) BuildCreateRequestDTO() reqdto.CreateManifestRequest {
	return reqdto.CreateManifestRequest{
		Type:      string(b.Type),
		FromHubID: b.FromHubID,
		ToHubID:   b.ToHubID,
	}
}

func (b *ManifestBuilder) BuildItemView(awb string) queries.ManifestItemView {
	return queries.ManifestItemView{
		ItemID:         uuid.New(),
		ManifestID:     b.ID,
		ShipmentID:     uuid.New(),
		AWB:            awb,
		ConsigneeName:  "Asha Traders",
		ShipmentStatus: shipment.StatusLoadedForLinehaul,
		PackageCount:   2,
		TotalWeight:    10.5,
		ScannedAt:      b.CreatedAt.Add(time.Hour),
	}
}

func (b *ManifestBuilder) BuildScanLogView(result string) queries.ScanLogView {
	return queries.ScanLogView{
		ID:              uuid.New(),
		ManifestID:      b.ID,
		RawToken:        "tac12345678",
		NormalizedToken: "TAC12345678",
		Result:          result,
		Source:          "BARCODE_SCANNER",
		CreatedAt:       b.CreatedAt.Add(time.Hour),
	}
}
