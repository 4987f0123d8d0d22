package repository

import (
	"context"
	"encoding/json"
	"errors"

	"cargo-backoffice/internal/domain/manifest"
	"cargo-backoffice/internal/infra"
	"cargo-backoffice/internal/pkg/clock"
	"cargo-backoffice/internal/usecase/commands"
	"cargo-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const manifestColumns = `
	id, manifest_no, type, from_hub_id, to_hub_id, status,
	total_shipments, total_packages, total_weight, total_cod,
	created_by_staff_id, closed_by_staff_id, created_at, closed_at, vehicle_meta`

// ManifestRepository is the pgx implementation of the manifest write
// port. AddItem and RemoveItem run the item write and the aggregate
// delta in one transaction; the unique index on (manifest_id,
// shipment_id) is the idempotency backstop under concurrent scans.
type ManifestRepository struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func NewManifestRepository(pool *pgxpool.Pool, clk clock.Clock) *ManifestRepository {
	return &ManifestRepository{pool: pool, clock: clk}
}

func (r *ManifestRepository) Create(ctx context.Context, params commands.CreateManifestParams) (*manifest.Snapshot, error) {
	meta, err := json.Marshal(params.VehicleMeta)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to encode vehicle meta", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO manifests (
			id, manifest_no, type, from_hub_id, to_hub_id, status,
			created_by_staff_id, notes, vehicle_meta, created_at
		) VALUES (
			$1,
			'MNF-' || to_char($7::timestamptz, 'YYYY') || '-' || lpad(nextval('manifest_no_seq')::text, 6, '0'),
			$2, $3, $4, $5, $6, $8, $9, $7
		)
		RETURNING `+manifestColumns,
		uuid.New(), params.Type, params.FromHubID, params.ToHubID, params.Status,
		params.CreatedByStaffID, r.clock.Now(), params.Notes, meta,
	)
	m, err := scanManifest(row)
	if err != nil {
		return nil, wrapQueryErr("failed to create manifest", err)
	}
	return m, nil
}

func (r *ManifestRepository) FindByID(ctx context.Context, id uuid.UUID) (*manifest.Snapshot, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+manifestColumns+` FROM manifests WHERE id = $1`, id)
	m, err := scanManifest(row)
	if err != nil {
		return nil, wrapQueryErr("failed to find manifest", err)
	}
	return m, nil
}

func (r *ManifestRepository) FindByNo(ctx context.Context, manifestNo string) (*manifest.Snapshot, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+manifestColumns+` FROM manifests WHERE manifest_no = $1`, manifestNo)
	m, err := scanManifest(row)
	if err != nil {
		return nil, wrapQueryErr("failed to find manifest by number", err)
	}
	return m, nil
}

func (r *ManifestRepository) FindItem(ctx context.Context, manifestID, shipmentID uuid.UUID) (*manifest.Item, error) {
	var item manifest.Item
	err := r.pool.QueryRow(ctx, `
		SELECT id, manifest_id, shipment_id, scanned_by_staff_id, scanned_at
		FROM manifest_items
		WHERE manifest_id = $1 AND shipment_id = $2`,
		manifestID, shipmentID,
	).Scan(&item.ID, &item.ManifestID, &item.ShipmentID, &item.ScannedByStaffID, &item.ScannedAt)
	if err != nil {
		return nil, wrapQueryErr("failed to find manifest item", err)
	}
	return &item, nil
}

// AddItem inserts the item and applies the aggregate delta atomically.
// ON CONFLICT DO NOTHING turns a concurrent double-scan into a duplicate
// report instead of a constraint error; the delta is skipped so totals
// count each shipment once.
func (r *ManifestRepository) AddItem(ctx context.Context, manifestID, shipmentID uuid.UUID, staffID *uuid.UUID, delta commands.ItemDelta) (*manifest.Item, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, false, infra.WrapRepoErr("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	item := manifest.Item{
		ID:               uuid.New(),
		ManifestID:       manifestID,
		ShipmentID:       shipmentID,
		ScannedByStaffID: staffID,
		ScannedAt:        r.clock.Now(),
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO manifest_items (id, manifest_id, shipment_id, scanned_by_staff_id, scanned_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (manifest_id, shipment_id) DO NOTHING
		RETURNING id, scanned_at`,
		item.ID, manifestID, shipmentID, staffID, item.ScannedAt,
	).Scan(&item.ID, &item.ScannedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Pair already attached; surface the existing item untouched.
		existing, findErr := r.FindItem(ctx, manifestID, shipmentID)
		if findErr != nil {
			return nil, false, findErr
		}
		return existing, true, nil
	}
	if err != nil {
		return nil, false, wrapQueryErr("failed to insert manifest item", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE manifests SET
			total_shipments = total_shipments + $2,
			total_packages  = total_packages + $3,
			total_weight    = total_weight + $4,
			total_cod       = total_cod + $5
		WHERE id = $1`,
		manifestID, delta.Shipments, delta.Packages, delta.Weight, delta.COD,
	); err != nil {
		return nil, false, wrapQueryErr("failed to apply manifest totals", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, infra.WrapRepoErr("failed to commit manifest item", err)
	}
	return &item, false, nil
}

func (r *ManifestRepository) RemoveItem(ctx context.Context, manifestID, shipmentID uuid.UUID, delta commands.ItemDelta) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, infra.WrapRepoErr("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	tag, err := tx.Exec(ctx, `
		DELETE FROM manifest_items WHERE manifest_id = $1 AND shipment_id = $2`,
		manifestID, shipmentID,
	)
	if err != nil {
		return false, wrapQueryErr("failed to delete manifest item", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, `
		UPDATE manifests SET
			total_shipments = greatest(total_shipments - $2, 0),
			total_packages  = greatest(total_packages - $3, 0),
			total_weight    = greatest(total_weight - $4, 0),
			total_cod       = greatest(total_cod - $5, 0)
		WHERE id = $1`,
		manifestID, delta.Shipments, delta.Packages, delta.Weight, delta.COD,
	); err != nil {
		return false, wrapQueryErr("failed to apply manifest totals", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, infra.WrapRepoErr("failed to commit manifest item removal", err)
	}
	return true, nil
}

func (r *ManifestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus manifest.Status, staffID *uuid.UUID) error {
	now := r.clock.Now()

	var tag pgconn.CommandTag
	var err error
	switch newStatus {
	case manifest.StatusClosed:
		tag, err = r.pool.Exec(ctx, `
			UPDATE manifests SET status = $2, closed_at = $3, closed_by_staff_id = $4 WHERE id = $1`,
			id, newStatus, now, staffID)
	case manifest.StatusDeparted:
		tag, err = r.pool.Exec(ctx, `
			UPDATE manifests SET status = $2, departed_at = $3 WHERE id = $1`,
			id, newStatus, now)
	case manifest.StatusArrived:
		tag, err = r.pool.Exec(ctx, `
			UPDATE manifests SET status = $2, arrived_at = $3 WHERE id = $1`,
			id, newStatus, now)
	case manifest.StatusReconciled:
		tag, err = r.pool.Exec(ctx, `
			UPDATE manifests SET status = $2, reconciled_at = $3 WHERE id = $1`,
			id, newStatus, now)
	default:
		tag, err = r.pool.Exec(ctx, `
			UPDATE manifests SET status = $2 WHERE id = $1`,
			id, newStatus)
	}
	if err != nil {
		return wrapQueryErr("failed to update manifest status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("manifest not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ManifestRepository) SetTotals(ctx context.Context, manifestID uuid.UUID, totals commands.ItemDelta) error {
	if _, err := r.pool.Exec(ctx, `
		UPDATE manifests SET
			total_shipments = $2,
			total_packages  = $3,
			total_weight    = $4,
			total_cod       = $5
		WHERE id = $1`,
		manifestID, totals.Shipments, totals.Packages, totals.Weight, totals.COD,
	); err != nil {
		return wrapQueryErr("failed to set manifest totals", err)
	}
	return nil
}

func (r *ManifestRepository) ListItems(ctx context.Context, manifestID uuid.UUID) ([]queries.ManifestItemView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			i.id, i.manifest_id, i.shipment_id,
			s.awb, s.consignee_name, s.status, s.package_count, s.total_weight, s.cod_amount,
			i.scanned_by_staff_id, i.scanned_at
		FROM manifest_items i
		JOIN shipments s ON s.id = i.shipment_id
		WHERE i.manifest_id = $1
		ORDER BY i.scanned_at`,
		manifestID,
	)
	if err != nil {
		return nil, wrapQueryErr("failed to list manifest items", err)
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
			return nil, wrapQueryErr("failed to scan manifest item", err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("failed to list manifest items", err)
	}
	return items, nil
}

func (r *ManifestRepository) RecordScanLog(ctx context.Context, entry commands.ScanLogEntry) error {
	var errMsg *string
	if entry.ErrorMessage != "" {
		errMsg = &entry.ErrorMessage
	}
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO manifest_scan_logs (
			id, manifest_id, shipment_id, raw_token, normalized_token,
			result, source, staff_id, error_message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		uuid.New(), entry.ManifestID, entry.ShipmentID, entry.RawToken, entry.NormalizedToken,
		entry.Result, entry.Source, entry.StaffID, errMsg, r.clock.Now(),
	); err != nil {
		return wrapQueryErr("failed to record scan log", err)
	}
	return nil
}

func scanManifest(row pgx.Row) (*manifest.Snapshot, error) {
	var m manifest.Snapshot
	var meta []byte
	if err := row.Scan(
		&m.ID, &m.ManifestNo, &m.Type, &m.FromHubID, &m.ToHubID, &m.Status,
		&m.TotalShipments, &m.TotalPackages, &m.TotalWeight, &m.TotalCOD,
		&m.CreatedByStaffID, &m.ClosedByStaffID, &m.CreatedAt, &m.ClosedAt, &meta,
	); err != nil {
		return nil, err
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &m.VehicleMeta); err != nil {
			return nil, err
		}
	}
	return &m, nil
}
