package commands

import (
	"context"
	"fmt"
	"log/slog"

	"cargo-backoffice/internal/domain/manifest"
	"cargo-backoffice/internal/domain/scan"
	"cargo-backoffice/internal/domain/shipment"
	"cargo-backoffice/internal/infra"
	"cargo-backoffice/internal/pkg/clock"
	"cargo-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
)

// Rejection codes the attacher adds on top of the rule violations.
const (
	CodeShipmentNotFound = "SHIPMENT_NOT_FOUND"
	CodeManifestNotFound = "MANIFEST_NOT_FOUND"
)

// Scan log result labels.
const (
	scanResultSuccess   = "SUCCESS"
	scanResultDuplicate = "DUPLICATE"
)

// AttachResult reports one attach attempt. A duplicate is a successful
// outcome, not an error: barcode scanners emit repeated reads within
// milliseconds and re-scans must stay safe.
type AttachResult struct {
	Success       bool
	Duplicate     bool
	ItemID        uuid.UUID
	ShipmentID    uuid.UUID
	AWB           string
	ConsigneeName string
	ErrorCode     string
	Message       string
}

// AttachOptions carries the actor and the rule configuration of the
// build session issuing the scan.
type AttachOptions struct {
	StaffID *uuid.UUID
	Source  scan.Source
	Rules   manifest.Rules
}

// ScanAttacher attaches shipments to manifests exactly once per
// (manifest, shipment) pair. Business rejections come back inside the
// result; only transport/store failures surface as errors.
type ScanAttacher interface {
	AttachByScan(ctx context.Context, manifestID uuid.UUID, rawToken string, opts AttachOptions) (*AttachResult, error)
	Attach(ctx context.Context, manifestID, shipmentID uuid.UUID, opts AttachOptions) (*AttachResult, error)
	Detach(ctx context.Context, manifestID, shipmentID uuid.UUID, staffID *uuid.UUID) error
}

type attacherImpl struct {
	manifests ManifestRepository
	shipments ShipmentRepository
	clock     clock.Clock
}

func NewAttacher(manifests ManifestRepository, shipments ShipmentRepository, clk clock.Clock) ScanAttacher {
	return &attacherImpl{manifests: manifests, shipments: shipments, clock: clk}
}

// AttachByScan resolves a raw scanner token to a shipment and attaches
// it. Tokens in the carrier grammar resolve directly; anything else goes
// through IATA normalization before the AWB lookup.
func (a *attacherImpl) AttachByScan(ctx context.Context, manifestID uuid.UUID, rawToken string, opts AttachOptions) (*AttachResult, error) {
	code := rawToken
	if token, err := scan.Parse(rawToken); err == nil && token.Type == scan.TypeShipment {
		code = token.AWB
	} else {
		code = scan.NormalizeScanToken(rawToken)
	}

	s, err := a.shipments.FindByAWB(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			result := &AttachResult{
				Success:   false,
				ErrorCode: CodeShipmentNotFound,
				Message:   fmt.Sprintf("no shipment found matching: %s", code),
			}
			a.logScan(ctx, manifestID, nil, rawToken, code, opts, result)
			return result, nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return a.attachResolved(ctx, manifestID, s, rawToken, code, opts)
}

// Attach covers callers that already hold a shipment id and skip token
// resolution.
func (a *attacherImpl) Attach(ctx context.Context, manifestID, shipmentID uuid.UUID, opts AttachOptions) (*AttachResult, error) {
	s, err := a.shipments.FindByID(ctx, shipmentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrShipmentNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return a.attachResolved(ctx, manifestID, s, s.AWB, s.AWB, opts)
}

func (a *attacherImpl) attachResolved(ctx context.Context, manifestID uuid.UUID, s *shipment.Snapshot, rawToken, normalized string, opts AttachOptions) (*AttachResult, error) {
	// Duplicate lookup comes first: a repeated scan of an attached
	// shipment is a safe no-op regardless of the current rule set.
	existing, err := a.manifests.FindItem(ctx, manifestID, s.ID)
	if err == nil {
		result := duplicateResult(existing.ID, s)
		a.logScan(ctx, manifestID, &s.ID, rawToken, normalized, opts, result)
		return result, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	m, err := a.manifests.FindByID(ctx, manifestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			result := &AttachResult{
				Success:   false,
				ErrorCode: CodeManifestNotFound,
				Message:   "manifest not found",
			}
			return result, nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if v := manifest.ValidateAttach(s, m, manifest.OptionsFromRules(opts.Rules)); v != nil {
		result := rejectionResult(s, v.Code, v.Message)
		a.logScan(ctx, manifestID, &s.ID, rawToken, normalized, opts, result)
		return result, nil
	}

	if opts.Rules.ExcludeCOD && s.CarriesCOD() {
		result := rejectionResult(s, manifest.CodeCODExcluded, "COD shipments are excluded by the manifest rules")
		a.logScan(ctx, manifestID, &s.ID, rawToken, normalized, opts, result)
		return result, nil
	}

	item, duplicate, err := a.manifests.AddItem(ctx, manifestID, s.ID, opts.StaffID, deltaFor(s))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if duplicate {
		// Lost the insert race against a concurrent scan of the same
		// shipment; the outcome is the same safe no-op.
		result := duplicateResult(item.ID, s)
		a.logScan(ctx, manifestID, &s.ID, rawToken, normalized, opts, result)
		return result, nil
	}

	description := fmt.Sprintf("Loaded for linehaul on manifest %s", m.ManifestNo)
	if err := a.shipments.UpdateStatus(ctx, s.ID, shipment.StatusLoadedForLinehaul, description, &m.FromHubID, opts.StaffID); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	result := &AttachResult{
		Success:       true,
		Duplicate:     false,
		ItemID:        item.ID,
		ShipmentID:    s.ID,
		AWB:           s.AWB,
		ConsigneeName: s.ConsigneeName,
		Message:       "shipment added to manifest",
	}
	a.logScan(ctx, manifestID, &s.ID, rawToken, normalized, opts, result)
	return result, nil
}

// Detach is the mirror of Attach: absence of the item is not an error,
// and the shipment status reverts once the item is gone. Only permitted
// while the manifest is editable.
func (a *attacherImpl) Detach(ctx context.Context, manifestID, shipmentID uuid.UUID, staffID *uuid.UUID) error {
	m, err := a.manifests.FindByID(ctx, manifestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrManifestNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !m.Status.Editable() {
		return errs.ErrManifestClosed
	}

	s, err := a.shipments.FindByID(ctx, shipmentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrShipmentNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	removed, err := a.manifests.RemoveItem(ctx, manifestID, shipmentID, deltaFor(s))
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !removed {
		return nil
	}

	description := fmt.Sprintf("Removed from manifest %s", m.ManifestNo)
	if err := a.shipments.UpdateStatus(ctx, shipmentID, shipment.StatusReceived, description, &m.FromHubID, staffID); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func duplicateResult(itemID uuid.UUID, s *shipment.Snapshot) *AttachResult {
	return &AttachResult{
		Success:       true,
		Duplicate:     true,
		ItemID:        itemID,
		ShipmentID:    s.ID,
		AWB:           s.AWB,
		ConsigneeName: s.ConsigneeName,
		Message:       "shipment already in manifest",
	}
}

func rejectionResult(s *shipment.Snapshot, code, message string) *AttachResult {
	return &AttachResult{
		Success:    false,
		ShipmentID: s.ID,
		AWB:        s.AWB,
		ErrorCode:  code,
		Message:    message,
	}
}

// logScan records the attempt for the manifest's scan audit trail. Audit
// failures never mask the scan outcome.
func (a *attacherImpl) logScan(ctx context.Context, manifestID uuid.UUID, shipmentID *uuid.UUID, rawToken, normalized string, opts AttachOptions, result *AttachResult) {
	entry := ScanLogEntry{
		ManifestID:      manifestID,
		ShipmentID:      shipmentID,
		RawToken:        rawToken,
		NormalizedToken: normalized,
		Source:          opts.Source,
		StaffID:         opts.StaffID,
	}
	switch {
	case result.Duplicate:
		entry.Result = scanResultDuplicate
	case result.Success:
		entry.Result = scanResultSuccess
	default:
		entry.Result = result.ErrorCode
		entry.ErrorMessage = result.Message
	}

	if err := a.manifests.RecordScanLog(ctx, entry); err != nil {
		slog.Warn("failed to record scan log", "manifest_id", manifestID, "error", err)
	}
}
