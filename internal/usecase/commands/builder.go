package commands

import (
	"context"
	"sync"

	"cargo-backoffice/internal/domain/manifest"
	"cargo-backoffice/internal/domain/scan"
	"cargo-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
)

// BuildPhase is the position of one build session in the
// settings -> scanning -> review -> closed walk.
type BuildPhase string

const (
	PhaseSettings BuildPhase = "settings"
	PhaseScanning BuildPhase = "scanning"
	PhaseReview   BuildPhase = "review"
	PhaseClosed   BuildPhase = "closed"
)

var (
	ErrNotInScanPhase  = errs.New("session is not in the scanning phase")
	ErrSessionFinished = errs.New("build session already finished")
)

// BuilderSession drives one dispatcher's manifest build from settings to
// close. It guarantees at most one manifest creation per session:
// re-submitting settings while a manifest exists routes to the scanning
// phase instead of creating a duplicate.
type BuilderSession struct {
	mu       sync.Mutex
	phase    BuildPhase
	rules    manifest.Rules
	current  *manifest.Snapshot
	cmds     ManifestCommands
	attacher ScanAttacher
}

func NewBuilderSession(cmds ManifestCommands, attacher ScanAttacher) *BuilderSession {
	return &BuilderSession{
		phase:    PhaseSettings,
		rules:    manifest.DefaultRules(),
		cmds:     cmds,
		attacher: attacher,
	}
}

// ResumeBuilderSession opens a session over an existing manifest,
// starting directly in the scanning phase.
func ResumeBuilderSession(cmds ManifestCommands, attacher ScanAttacher, m *manifest.Snapshot, rules manifest.Rules) *BuilderSession {
	return &BuilderSession{
		phase:    PhaseScanning,
		rules:    rules,
		current:  m,
		cmds:     cmds,
		attacher: attacher,
	}
}

func (b *BuilderSession) Phase() BuildPhase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

func (b *BuilderSession) Rules() manifest.Rules {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rules
}

// SetRules reconfigures the active rule set; the next scan picks it up.
func (b *BuilderSession) SetRules(rules manifest.Rules) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rules = rules
}

// Manifest returns the session's manifest snapshot, nil before creation.
func (b *BuilderSession) Manifest() *manifest.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// SubmitSettings creates the manifest and advances to scanning. Called
// again with a manifest already created it only advances the phase.
func (b *BuilderSession) SubmitSettings(ctx context.Context, params CreateManifestParams, rules manifest.Rules) (*manifest.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.phase == PhaseClosed {
		return nil, ErrSessionFinished
	}
	if b.current != nil {
		b.phase = PhaseScanning
		return b.current, nil
	}

	m, err := b.cmds.CreateManifest(ctx, params)
	if err != nil {
		return nil, err
	}
	b.current = m
	b.rules = rules
	b.phase = PhaseScanning
	return m, nil
}

// Scan attaches one shipment under the session's rule set.
func (b *BuilderSession) Scan(ctx context.Context, rawToken string, staffID *uuid.UUID, source scan.Source) (*AttachResult, error) {
	b.mu.Lock()
	if b.phase != PhaseScanning {
		b.mu.Unlock()
		return nil, ErrNotInScanPhase
	}
	manifestID := b.current.ID
	opts := AttachOptions{StaffID: staffID, Source: source, Rules: b.rules}
	b.mu.Unlock()

	result, err := b.attacher.AttachByScan(ctx, manifestID, rawToken, opts)
	if err != nil {
		return nil, err
	}

	if result.Success && !result.Duplicate {
		b.mu.Lock()
		if b.current != nil {
			b.current.TotalShipments++
		}
		b.mu.Unlock()
	}
	return result, nil
}

// RemoveShipment detaches a shipment while the manifest is editable.
func (b *BuilderSession) RemoveShipment(ctx context.Context, shipmentID uuid.UUID, staffID *uuid.UUID) error {
	b.mu.Lock()
	if b.current == nil {
		b.mu.Unlock()
		return ErrNotInScanPhase
	}
	manifestID := b.current.ID
	b.mu.Unlock()

	if err := b.attacher.Detach(ctx, manifestID, shipmentID, staffID); err != nil {
		return err
	}

	b.mu.Lock()
	if b.current.TotalShipments > 0 {
		b.current.TotalShipments--
	}
	b.mu.Unlock()
	return nil
}

// Review moves the session into the final review phase.
func (b *BuilderSession) Review() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase != PhaseScanning {
		return ErrNotInScanPhase
	}
	b.phase = PhaseReview
	return nil
}

// Reopen returns a reviewing session to scanning.
func (b *BuilderSession) Reopen() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase != PhaseReview {
		return ErrNotInScanPhase
	}
	b.phase = PhaseScanning
	return nil
}

// Close transitions the manifest to CLOSED and finishes the session.
// Forbidden with zero items attached.
func (b *BuilderSession) Close(ctx context.Context, staffID *uuid.UUID) (*manifest.Snapshot, error) {
	b.mu.Lock()
	if b.current == nil || b.phase == PhaseClosed {
		b.mu.Unlock()
		return nil, ErrSessionFinished
	}
	manifestID := b.current.ID
	b.mu.Unlock()

	m, err := b.cmds.Close(ctx, manifestID, staffID)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.current = m
	b.phase = PhaseClosed
	b.mu.Unlock()
	return m, nil
}

// SaveAsOpen leaves the manifest at OPEN and finishes the session.
// Permitted with zero items.
func (b *BuilderSession) SaveAsOpen(ctx context.Context, staffID *uuid.UUID) (*manifest.Snapshot, error) {
	b.mu.Lock()
	if b.current == nil || b.phase == PhaseClosed {
		b.mu.Unlock()
		return nil, ErrSessionFinished
	}
	manifestID := b.current.ID
	currentStatus := b.current.Status
	b.mu.Unlock()

	if currentStatus == manifest.StatusOpen {
		b.mu.Lock()
		b.phase = PhaseClosed
		m := b.current
		b.mu.Unlock()
		return m, nil
	}

	m, err := b.cmds.UpdateStatus(ctx, manifestID, manifest.StatusOpen, staffID)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.current = m
	b.phase = PhaseClosed
	b.mu.Unlock()
	return m, nil
}
