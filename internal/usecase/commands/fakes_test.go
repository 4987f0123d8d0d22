//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"cargo-backoffice/internal/domain/manifest"
	"cargo-backoffice/internal/domain/shipment"
	"cargo-backoffice/internal/infra"
	"cargo-backoffice/internal/usecase/commands"
	"cargo-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
)

var errNotFound = errors.New("no rows")

func notFound() error {
	return infra.WrapRepoErr("not found", errNotFound, infra.KindNotFound)
}

// fakeManifestRepo is an in-memory commands.ManifestRepository that
// mirrors the store contract: AddItem is atomic per pair and skips the
// delta on a duplicate.
type fakeManifestRepo struct {
	mu        sync.Mutex
	manifests map[uuid.UUID]*manifest.Snapshot
	items     map[uuid.UUID]map[uuid.UUID]*manifest.Item
	scanLogs  []commands.ScanLogEntry
	shipments *fakeShipmentRepo

	failAddItem      error
	duplicateOnAdd   bool // simulate losing the insert race
	failRecordScan   error
	statusUpdates    []manifest.Status
	manifestNoSerial int
}

func newFakeManifestRepo(shipments *fakeShipmentRepo) *fakeManifestRepo {
	return &fakeManifestRepo{
		manifests: map[uuid.UUID]*manifest.Snapshot{},
		items:     map[uuid.UUID]map[uuid.UUID]*manifest.Item{},
		shipments: shipments,
	}
}

func (f *fakeManifestRepo) put(m *manifest.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.manifests[m.ID] = m
	if f.items[m.ID] == nil {
		f.items[m.ID] = map[uuid.UUID]*manifest.Item{}
	}
}

func (f *fakeManifestRepo) Create(_ context.Context, params commands.CreateManifestParams) (*manifest.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.manifestNoSerial++
	m := &manifest.Snapshot{
		ID:               uuid.New(),
		ManifestNo:       "MNF-2026-00000" + string(rune('0'+f.manifestNoSerial)),
		Type:             params.Type,
		FromHubID:        params.FromHubID,
		ToHubID:          params.ToHubID,
		Status:           params.Status,
		CreatedByStaffID: params.CreatedByStaffID,
		CreatedAt:        time.Now(),
		VehicleMeta:      params.VehicleMeta,
	}
	f.manifests[m.ID] = m
	f.items[m.ID] = map[uuid.UUID]*manifest.Item{}
	return m, nil
}

func (f *fakeManifestRepo) FindByID(_ context.Context, id uuid.UUID) (*manifest.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.manifests[id]
	if !ok {
		return nil, notFound()
	}
	cp := *m
	return &cp, nil
}

func (f *fakeManifestRepo) FindByNo(_ context.Context, manifestNo string) (*manifest.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.manifests {
		if m.ManifestNo == manifestNo {
			cp := *m
			return &cp, nil
		}
	}
	return nil, notFound()
}

func (f *fakeManifestRepo) FindItem(_ context.Context, manifestID, shipmentID uuid.UUID) (*manifest.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item, ok := f.items[manifestID][shipmentID]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, notFound()
}

func (f *fakeManifestRepo) AddItem(_ context.Context, manifestID, shipmentID uuid.UUID, staffID *uuid.UUID, delta commands.ItemDelta) (*manifest.Item, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAddItem != nil {
		return nil, false, f.failAddItem
	}
	if existing, ok := f.items[manifestID][shipmentID]; ok || f.duplicateOnAdd {
		if existing == nil {
			existing = &manifest.Item{ID: uuid.New(), ManifestID: manifestID, ShipmentID: shipmentID}
		}
		cp := *existing
		return &cp, true, nil
	}
	item := &manifest.Item{
		ID:               uuid.New(),
		ManifestID:       manifestID,
		ShipmentID:       shipmentID,
		ScannedByStaffID: staffID,
		ScannedAt:        time.Now(),
	}
	f.items[manifestID][shipmentID] = item
	m := f.manifests[manifestID]
	m.TotalShipments += delta.Shipments
	m.TotalPackages += delta.Packages
	m.TotalWeight += delta.Weight
	m.TotalCOD += delta.COD
	cp := *item
	return &cp, false, nil
}

func (f *fakeManifestRepo) RemoveItem(_ context.Context, manifestID, shipmentID uuid.UUID, delta commands.ItemDelta) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[manifestID][shipmentID]; !ok {
		return false, nil
	}
	delete(f.items[manifestID], shipmentID)
	m := f.manifests[manifestID]
	m.TotalShipments -= delta.Shipments
	m.TotalPackages -= delta.Packages
	m.TotalWeight -= delta.Weight
	m.TotalCOD -= delta.COD
	return true, nil
}

func (f *fakeManifestRepo) UpdateStatus(_ context.Context, id uuid.UUID, newStatus manifest.Status, _ *uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.manifests[id]
	if !ok {
		return notFound()
	}
	m.Status = newStatus
	f.statusUpdates = append(f.statusUpdates, newStatus)
	return nil
}

func (f *fakeManifestRepo) SetTotals(_ context.Context, manifestID uuid.UUID, totals commands.ItemDelta) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.manifests[manifestID]
	if !ok {
		return notFound()
	}
	m.TotalShipments = totals.Shipments
	m.TotalPackages = totals.Packages
	m.TotalWeight = totals.Weight
	m.TotalCOD = totals.COD
	return nil
}

func (f *fakeManifestRepo) ListItems(_ context.Context, manifestID uuid.UUID) ([]queries.ManifestItemView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var views []queries.ManifestItemView
	for shipmentID, item := range f.items[manifestID] {
		v := queries.ManifestItemView{
			ItemID:     item.ID,
			ManifestID: manifestID,
			ShipmentID: shipmentID,
			ScannedAt:  item.ScannedAt,
		}
		if s := f.shipments.get(shipmentID); s != nil {
			v.AWB = s.AWB
			v.ConsigneeName = s.ConsigneeName
			v.ShipmentStatus = s.Status
			v.PackageCount = s.PackageCount
			v.TotalWeight = s.TotalWeight
			v.CODAmount = s.CODAmount
		}
		views = append(views, v)
	}
	return views, nil
}

func (f *fakeManifestRepo) RecordScanLog(_ context.Context, entry commands.ScanLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRecordScan != nil {
		return f.failRecordScan
	}
	f.scanLogs = append(f.scanLogs, entry)
	return nil
}

type statusChange struct {
	ShipmentID uuid.UUID
	Status     shipment.Status
}

// fakeShipmentRepo is an in-memory commands.ShipmentRepository.
type fakeShipmentRepo struct {
	mu            sync.Mutex
	byID          map[uuid.UUID]*shipment.Snapshot
	statusChanges []statusChange
	events        []commands.TrackingEvent
	failUpdate    error
	failRecord    error
}

func newFakeShipmentRepo() *fakeShipmentRepo {
	return &fakeShipmentRepo{byID: map[uuid.UUID]*shipment.Snapshot{}}
}

func (f *fakeShipmentRepo) put(s *shipment.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[s.ID] = s
}

func (f *fakeShipmentRepo) get(id uuid.UUID) *shipment.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id]
}

func (f *fakeShipmentRepo) FindByAWB(_ context.Context, awb string) (*shipment.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.byID {
		if s.AWB == awb {
			cp := *s
			return &cp, nil
		}
	}
	return nil, notFound()
}

func (f *fakeShipmentRepo) FindByID(_ context.Context, id uuid.UUID) (*shipment.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok {
		return nil, notFound()
	}
	cp := *s
	return &cp, nil
}

func (f *fakeShipmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status shipment.Status, _ string, _ *uuid.UUID, _ *uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate != nil {
		return f.failUpdate
	}
	s, ok := f.byID[id]
	if !ok {
		return notFound()
	}
	s.Status = status
	f.statusChanges = append(f.statusChanges, statusChange{ShipmentID: id, Status: status})
	return nil
}

func (f *fakeShipmentRepo) RecordEvent(_ context.Context, event commands.TrackingEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRecord != nil {
		return f.failRecord
	}
	f.events = append(f.events, event)
	return nil
}
