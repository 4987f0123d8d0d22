package commands

import (
	"context"
	"fmt"

	"cargo-backoffice/internal/domain/manifest"
	"cargo-backoffice/internal/domain/shipment"
	"cargo-backoffice/internal/infra"
	"cargo-backoffice/internal/pkg/clock"
	"cargo-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
)

// ManifestCommands drives the manifest lifecycle. Every status change
// goes through the transition table; an illegal transition is an error,
// never forced.
type ManifestCommands interface {
	CreateManifest(ctx context.Context, params CreateManifestParams) (*manifest.Snapshot, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, newStatus manifest.Status, staffID *uuid.UUID) (*manifest.Snapshot, error)
	Close(ctx context.Context, id uuid.UUID, staffID *uuid.UUID) (*manifest.Snapshot, error)
	Depart(ctx context.Context, id uuid.UUID, staffID *uuid.UUID) (*manifest.Snapshot, error)
	Arrive(ctx context.Context, id uuid.UUID, staffID *uuid.UUID) (*manifest.Snapshot, error)
	RecalculateTotals(ctx context.Context, id uuid.UUID) error
}

type manifestUseCaseImpl struct {
	manifests ManifestRepository
	shipments ShipmentRepository
	clock     clock.Clock
}

func NewManifestCommands(manifests ManifestRepository, shipments ShipmentRepository, clk clock.Clock) ManifestCommands {
	return &manifestUseCaseImpl{manifests: manifests, shipments: shipments, clock: clk}
}

func (u *manifestUseCaseImpl) CreateManifest(ctx context.Context, params CreateManifestParams) (*manifest.Snapshot, error) {
	if params.Status == "" {
		params.Status = manifest.StatusDraft
	}
	if !params.Status.Editable() {
		return nil, errs.Mark(fmt.Errorf("new manifest cannot start at %s", params.Status), errs.ErrIllegalTransition)
	}

	m, err := u.manifests.Create(ctx, params)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return m, nil
}

func (u *manifestUseCaseImpl) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus manifest.Status, staffID *uuid.UUID) (*manifest.Snapshot, error) {
	m, err := u.findManifest(ctx, id)
	if err != nil {
		return nil, err
	}

	if !manifest.IsValidTransition(m.Status, newStatus) {
		return nil, errs.Mark(
			fmt.Errorf("invalid status transition: %s -> %s", m.Status, newStatus),
			errs.ErrIllegalTransition,
		)
	}

	if err := u.manifests.UpdateStatus(ctx, id, newStatus, staffID); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return u.findManifest(ctx, id)
}

// Close transitions the manifest to CLOSED for dispatch. A manifest with
// zero items attached cannot be closed.
func (u *manifestUseCaseImpl) Close(ctx context.Context, id uuid.UUID, staffID *uuid.UUID) (*manifest.Snapshot, error) {
	m, err := u.findManifest(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.TotalShipments == 0 {
		return nil, errs.ErrManifestEmpty
	}
	return u.UpdateStatus(ctx, id, manifest.StatusClosed, staffID)
}

// Depart marks the manifest DEPARTED and fans the status change out to
// every attached shipment, recording a tracking event per shipment.
func (u *manifestUseCaseImpl) Depart(ctx context.Context, id uuid.UUID, staffID *uuid.UUID) (*manifest.Snapshot, error) {
	m, err := u.UpdateStatus(ctx, id, manifest.StatusDeparted, staffID)
	if err != nil {
		return nil, err
	}

	items, err := u.manifests.ListItems(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	description := fmt.Sprintf("Departed on manifest %s", m.ManifestNo)
	for _, item := range items {
		if err := u.shipments.UpdateStatus(ctx, item.ShipmentID, shipment.StatusInTransitToDest, description, &m.FromHubID, staffID); err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	return m, nil
}

// Arrive marks the manifest ARRIVED at the destination hub and fans the
// status change out to every attached shipment.
func (u *manifestUseCaseImpl) Arrive(ctx context.Context, id uuid.UUID, staffID *uuid.UUID) (*manifest.Snapshot, error) {
	m, err := u.UpdateStatus(ctx, id, manifest.StatusArrived, staffID)
	if err != nil {
		return nil, err
	}

	items, err := u.manifests.ListItems(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	description := fmt.Sprintf("Arrived on manifest %s", m.ManifestNo)
	for _, item := range items {
		if err := u.shipments.UpdateStatus(ctx, item.ShipmentID, shipment.StatusReceivedAtDestHub, description, &m.ToHubID, staffID); err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	return m, nil
}

// RecalculateTotals rebuilds the aggregates from the attached items, a
// repair path for totals that drifted.
func (u *manifestUseCaseImpl) RecalculateTotals(ctx context.Context, id uuid.UUID) error {
	items, err := u.manifests.ListItems(ctx, id)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	var totals ItemDelta
	for _, item := range items {
		totals.Shipments++
		totals.Packages += item.PackageCount
		totals.Weight += item.TotalWeight
		if item.CODAmount != nil {
			totals.COD += *item.CODAmount
		}
	}

	if err := u.manifests.SetTotals(ctx, id, totals); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (u *manifestUseCaseImpl) findManifest(ctx context.Context, id uuid.UUID) (*manifest.Snapshot, error) {
	m, err := u.manifests.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrManifestNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return m, nil
}
