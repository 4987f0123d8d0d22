package response

import (
	"time"

	"cargo-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
)

type ManifestResponse struct {
	ID               uuid.UUID      `json:"id"`
	ManifestNo       string         `json:"manifestNo"`
	Type             string         `json:"type"`
	FromHubID        uuid.UUID      `json:"fromHubId"`
	ToHubID          uuid.UUID      `json:"toHubId"`
	Status           string         `json:"status"`
	TotalShipments   int32          `json:"totalShipments"`
	TotalPackages    int32          `json:"totalPackages"`
	TotalWeight      float64        `json:"totalWeight"`
	TotalCOD         float64        `json:"totalCod"`
	CreatedByStaffID *uuid.UUID     `json:"createdByStaffId,omitempty"`
	ClosedByStaffID  *uuid.UUID     `json:"closedByStaffId,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	ClosedAt         *time.Time     `json:"closedAt,omitempty"`
	VehicleMeta      map[string]any `json:"vehicleMeta,omitempty"`
}

type ManifestItemResponse struct {
	ItemID           uuid.UUID  `json:"itemId"`
	ShipmentID       uuid.UUID  `json:"shipmentId"`
	AWB              string     `json:"awb"`
	ConsigneeName    string     `json:"consigneeName"`
	ShipmentStatus   string     `json:"shipmentStatus"`
	PackageCount     int32      `json:"packageCount"`
	TotalWeight      float64    `json:"totalWeight"`
	CODAmount        *float64   `json:"codAmount,omitempty"`
	ScannedByStaffID *uuid.UUID `json:"scannedByStaffId,omitempty"`
	ScannedAt        time.Time  `json:"scannedAt"`
}

type ScanLogResponse struct {
	ID              uuid.UUID  `json:"id"`
	ShipmentID      *uuid.UUID `json:"shipmentId,omitempty"`
	RawToken        string     `json:"rawToken"`
	NormalizedToken string     `json:"normalizedToken"`
	Result          string     `json:"result"`
	Source          string     `json:"source"`
	StaffID         *uuid.UUID `json:"staffId,omitempty"`
	ErrorMessage    *string    `json:"errorMessage,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func FromManifestView(v *queries.ManifestView) *ManifestResponse {
	return &ManifestResponse{
		ID:               v.ID,
		ManifestNo:       v.ManifestNo,
		Type:             v.Type,
		FromHubID:        v.FromHubID,
		ToHubID:          v.ToHubID,
		Status:           v.Status,
		TotalShipments:   v.TotalShipments,
		TotalPackages:    v.TotalPackages,
		TotalWeight:      v.TotalWeight,
		TotalCOD:         v.TotalCOD,
		CreatedByStaffID: v.CreatedByStaffID,
		ClosedByStaffID:  v.ClosedByStaffID,
		CreatedAt:        v.CreatedAt,
		ClosedAt:         v.ClosedAt,
		VehicleMeta:      v.VehicleMeta,
	}
}

func FromManifestItems(items []queries.ManifestItemView) []ManifestItemResponse {
	out := make([]ManifestItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ManifestItemResponse{
			ItemID:           item.ItemID,
			ShipmentID:       item.ShipmentID,
			AWB:              item.AWB,
			ConsigneeName:    item.ConsigneeName,
			ShipmentStatus:   string(item.ShipmentStatus),
			PackageCount:     item.PackageCount,
			TotalWeight:      item.TotalWeight,
			CODAmount:        item.CODAmount,
			ScannedByStaffID: item.ScannedByStaffID,
			ScannedAt:        item.ScannedAt,
		})
	}
	return out
}

func FromScanLog(entries []queries.ScanLogView) []ScanLogResponse {
	out := make([]ScanLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ScanLogResponse{
			ID:              e.ID,
			ShipmentID:      e.ShipmentID,
			RawToken:        e.RawToken,
			NormalizedToken: e.NormalizedToken,
			Result:          e.Result,
			Source:          e.Source,
			StaffID:         e.StaffID,
			ErrorMessage:    e.ErrorMessage,
			CreatedAt:       e.CreatedAt,
		})
	}
	return out
}
