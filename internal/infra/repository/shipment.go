package repository

import (
	"context"
	"encoding/json"

	"cargo-backoffice/internal/domain/shipment"
	"cargo-backoffice/internal/infra"
	"cargo-backoffice/internal/pkg/clock"
	"cargo-backoffice/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shipmentColumns = `
	id, awb, status, origin_hub_id, destination_hub_id,
	package_count, total_weight, cod_amount, consignee_name`

// ShipmentRepository is the pgx implementation of the shipment port.
// UpdateStatus writes the row and its tracking event in one transaction
// so the history never misses a transition.
type ShipmentRepository struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func NewShipmentRepository(pool *pgxpool.Pool, clk clock.Clock) *ShipmentRepository {
	return &ShipmentRepository{pool: pool, clock: clk}
}

func (r *ShipmentRepository) FindByAWB(ctx context.Context, awb string) (*shipment.Snapshot, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+shipmentColumns+` FROM shipments WHERE awb = $1`, awb)
	s, err := scanShipment(row)
	if err != nil {
		return nil, wrapQueryErr("failed to find shipment by awb", err)
	}
	return s, nil
}

func (r *ShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.Snapshot, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+shipmentColumns+` FROM shipments WHERE id = $1`, id)
	s, err := scanShipment(row)
	if err != nil {
		return nil, wrapQueryErr("failed to find shipment", err)
	}
	return s, nil
}

func (r *ShipmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status shipment.Status, description string, hubID *uuid.UUID, staffID *uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	now := r.clock.Now()
	tag, err := tx.Exec(ctx, `
		UPDATE shipments SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, now,
	)
	if err != nil {
		return wrapQueryErr("failed to update shipment status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("shipment not found", nil, infra.KindNotFound)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO shipment_tracking_events (
			id, shipment_id, event_code, description, hub_id, staff_id, occurred_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.New(), id, string(status), description, hubID, staffID, now,
	); err != nil {
		return wrapQueryErr("failed to record tracking event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit shipment status", err)
	}
	return nil
}

func (r *ShipmentRepository) RecordEvent(ctx context.Context, event commands.TrackingEvent) error {
	meta, err := json.Marshal(event.Meta)
	if err != nil {
		return infra.WrapRepoErr("failed to encode event meta", err)
	}
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO shipment_tracking_events (
			id, shipment_id, event_code, hub_id, staff_id, occurred_at, meta
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.New(), event.ShipmentID, event.EventCode, event.HubID, event.StaffID, event.OccurredAt, meta,
	); err != nil {
		return wrapQueryErr("failed to record tracking event", err)
	}
	return nil
}

func scanShipment(row pgx.Row) (*shipment.Snapshot, error) {
	var s shipment.Snapshot
	if err := row.Scan(
		&s.ID, &s.AWB, &s.Status, &s.OriginHubID, &s.DestinationHubID,
		&s.PackageCount, &s.TotalWeight, &s.CODAmount, &s.ConsigneeName,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
