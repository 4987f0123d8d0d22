package readstore

import (
	"context"
	"encoding/json"
	"errors"

	"cargo-backoffice/internal/infra"
	"cargo-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ManifestReadStore serves the manifest read models straight off the
// pool; no caching, the build screen polls cheaply.
type ManifestReadStore struct {
	pool *pgxpool.Pool
}

func NewManifestReadStore(pool *pgxpool.Pool) *ManifestReadStore {
	return &ManifestReadStore{pool: pool}
}

func (s *ManifestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ManifestView, error) {
	var v queries.ManifestView
	var meta []byte
	err := s.pool.QueryRow(ctx, `
		SELECT
			id, manifest_no, type, from_hub_id, to_hub_id, status,
			total_shipments, total_packages, total_weight, total_cod,
			created_by_staff_id, closed_by_staff_id, created_at, closed_at, vehicle_meta
		FROM manifests WHERE id = $1`, id,
	).Scan(
		&v.ID, &v.ManifestNo, &v.Type, &v.FromHubID, &v.ToHubID, &v.Status,
		&v.TotalShipments, &v.TotalPackages, &v.TotalWeight, &v.TotalCOD,
		&v.CreatedByStaffID, &v.ClosedByStaffID, &v.CreatedAt, &v.ClosedAt, &meta,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("manifest not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find manifest", err)
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &v.VehicleMeta); err != nil {
			return nil, infra.WrapRepoErr("failed to decode vehicle meta", err)
		}
	}
	return &v, nil
}

func (s *ManifestReadStore) ListItems(ctx context.Context, manifestID uuid.UUID) ([]queries.ManifestItemView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT
			i.id, i.manifest_id, i.shipment_id,
			sh.awb, sh.consignee_name, sh.status, sh.package_count, sh.total_weight, sh.cod_amount,
			i.scanned_by_staff_id, i.scanned_at
		FROM manifest_items i
		JOIN shipments sh ON sh.id = i.shipment_id
		WHERE i.manifest_id = $1
		ORDER BY i.scanned_at DESC`,
		manifestID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list manifest items", err)
	}
	defer rows.Close()

	var items []queries.ManifestItemView
	for rows.Next() {
		var v queries.ManifestItemView
		if err := rows.Scan(
			&v.ItemID, &v.ManifestID, &v.ShipmentID,
			&v.AWB, &v.ConsigneeName, &v.ShipmentStatus, &v.PackageCount, &v.TotalWeight, &v.CODAmount,
			&v.ScannedByStaffID, &v.ScannedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan manifest item", err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list manifest items", err)
	}
	return items, nil
}

func (s *ManifestReadStore) ListScanLog(ctx context.Context, manifestID uuid.UUID) ([]queries.ScanLogView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT
			id, manifest_id, shipment_id, raw_token, normalized_token,
			result, source, staff_id, error_message, created_at
		FROM manifest_scan_logs
		WHERE manifest_id = $1
		ORDER BY created_at DESC`,
		manifestID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list scan log", err)
	}
	defer rows.Close()

	var entries []queries.ScanLogView
	for rows.Next() {
		var v queries.ScanLogView
		if err := rows.Scan(
			&v.ID, &v.ManifestID, &v.ShipmentID, &v.RawToken, &v.NormalizedToken,
			&v.Result, &v.Source, &v.StaffID, &v.ErrorMessage, &v.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan log entry", err)
		}
		entries = append(entries, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list scan log", err)
	}
	return entries, nil
}
