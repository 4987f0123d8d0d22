package scansession

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"cargo-backoffice/internal/domain/manifest"
	"cargo-backoffice/internal/domain/scan"
	"cargo-backoffice/internal/pkg/clock"
	"cargo-backoffice/internal/pkg/errs"
	"cargo-backoffice/internal/usecase/commands"

	"github.com/google/uuid"
)

// Error codes the controller adds on top of the attacher's rejections.
const (
	CodeInvalidScan      = "INVALID_SCAN"
	CodeInvalidScanType  = "INVALID_SCAN_TYPE"
	CodeRequestCancelled = "REQUEST_CANCELLED"
	CodeSystemError      = "SYSTEM_ERROR"
)

const historyCap = 50

// Outcome classifies a result for operator feedback.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeError     Outcome = "error"
)

// Feedback plays an audible or visual cue for the operator. Play must
// not block; the controller invokes it fire-and-forget.
type Feedback interface {
	Play(outcome Outcome)
}

// FocusSink keeps the scan input focused so a keyboard-wedge scanner
// always lands its keystrokes in the right field.
type FocusSink interface {
	Focus()
}

type noopFeedback struct{}

func (noopFeedback) Play(Outcome) {}

type noopFocus struct{}

func (noopFocus) Focus() {}

// Result is one scan attempt as seen by the operator.
type Result struct {
	Success       bool
	Duplicate     bool
	AWB           string
	ConsigneeName string
	ErrorCode     string
	Message       string
	Source        scan.Source
	At            time.Time
}

// Stats are the session counters. A duplicate counts as a success with
// its own counter, never as an error.
type Stats struct {
	SuccessCount   int
	DuplicateCount int
	ErrorCount     int
}

// Options configures a scan session against one manifest.
type Options struct {
	ManifestID uuid.UUID
	StaffID    *uuid.UUID
	Rules      manifest.Rules
	Feedback   Feedback
	Focus      FocusSink
	Clock      clock.Clock

	// Per-result hooks, invoked after the result is recorded.
	OnSuccess   func(Result)
	OnDuplicate func(Result)
	OnError     func(Result)
}

// Controller owns the scan input for one manifest build session: it
// buffers keystrokes, enforces a single in-flight attach, keeps the
// session counters and a bounded history, and drives operator feedback.
type Controller struct {
	mu            sync.Mutex
	opts          Options
	attacher      commands.ScanAttacher
	input         string
	lastSubmitted string
	scanning      bool
	lastResult    *Result
	stats         Stats
	history       []Result // most recent first
	soundEnabled  bool
	wedgeActive   bool
}

func NewController(attacher commands.ScanAttacher, opts Options) *Controller {
	if opts.Feedback == nil {
		opts.Feedback = noopFeedback{}
	}
	if opts.Focus == nil {
		opts.Focus = noopFocus{}
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewRealClock()
	}
	return &Controller{
		opts:         opts,
		attacher:     attacher,
		soundEnabled: true,
	}
}

func (c *Controller) SetInput(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = s
}

func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

func (c *Controller) IsScanning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scanning
}

// LastResult returns a copy of the most recent result, nil before the
// first submit.
func (c *Controller) LastResult() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastResult == nil {
		return nil
	}
	r := *c.lastResult
	return &r
}

func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// History returns the recorded results, most recent first, capped at 50.
func (c *Controller) History() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Result, len(c.history))
	copy(out, c.history)
	return out
}

func (c *Controller) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = Stats{}
	c.history = nil
	c.lastResult = nil
}

// SetRules swaps the active rule set; the next submit uses it.
func (c *Controller) SetRules(rules manifest.Rules) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts.Rules = rules
}

func (c *Controller) SetSoundEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.soundEnabled = enabled
}

// Submit sends the buffered input through the attacher. Empty input is
// ignored; a submit while another is in flight returns ErrScanInFlight
// without touching the session. A token the parser rejects produces a
// local error result with no network round trip.
func (c *Controller) Submit(ctx context.Context, source scan.Source) (*Result, error) {
	c.mu.Lock()
	trimmed := strings.TrimSpace(c.input)
	if trimmed == "" {
		c.mu.Unlock()
		return nil, nil
	}
	if c.scanning {
		c.mu.Unlock()
		return nil, errs.ErrScanInFlight
	}

	token, err := scan.Parse(trimmed)
	if err != nil {
		res := Result{
			ErrorCode: CodeInvalidScan,
			Message:   err.Error(),
			Source:    source,
			At:        c.opts.Clock.Now(),
		}
		c.recordLocked(res)
		c.mu.Unlock()
		c.notify(res)
		return &res, nil
	}
	if token.Type != scan.TypeShipment {
		res := Result{
			ErrorCode: CodeInvalidScanType,
			Message:   "expected a shipment scan, got " + string(token.Type),
			Source:    source,
			At:        c.opts.Clock.Now(),
		}
		c.recordLocked(res)
		c.mu.Unlock()
		c.notify(res)
		return &res, nil
	}

	c.scanning = true
	c.lastSubmitted = trimmed
	manifestID := c.opts.ManifestID
	opts := commands.AttachOptions{
		StaffID: c.opts.StaffID,
		Source:  source,
		Rules:   c.opts.Rules,
	}
	c.mu.Unlock()

	attach, attachErr := c.attacher.AttachByScan(ctx, manifestID, trimmed, opts)

	c.mu.Lock()
	c.scanning = false
	c.input = ""

	var res Result
	switch {
	case attachErr != nil && errors.Is(attachErr, context.Canceled):
		res = Result{
			AWB:       token.AWB,
			ErrorCode: CodeRequestCancelled,
			Message:   "scan request cancelled",
			Source:    source,
			At:        c.opts.Clock.Now(),
		}
	case attachErr != nil:
		res = Result{
			AWB:       token.AWB,
			ErrorCode: CodeSystemError,
			Message:   attachErr.Error(),
			Source:    source,
			At:        c.opts.Clock.Now(),
		}
	default:
		res = Result{
			Success:       attach.Success,
			Duplicate:     attach.Duplicate,
			AWB:           attach.AWB,
			ConsigneeName: attach.ConsigneeName,
			ErrorCode:     attach.ErrorCode,
			Message:       attach.Message,
			Source:        source,
			At:            c.opts.Clock.Now(),
		}
	}
	c.recordLocked(res)
	c.mu.Unlock()

	c.notify(res)
	return &res, nil
}

// RetryLast re-submits the last submitted token, the recovery path for
// a cancelled or failed request.
func (c *Controller) RetryLast(ctx context.Context, source scan.Source) (*Result, error) {
	c.mu.Lock()
	last := c.lastSubmitted
	c.mu.Unlock()

	if last == "" {
		return nil, nil
	}
	c.SetInput(last)
	return c.Submit(ctx, source)
}

// HandleKey feeds one keystroke from a keyboard-wedge scanner. A
// newline or carriage return submits the buffer; printable runes append
// to it. Inactive unless the wedge is enabled.
func (c *Controller) HandleKey(ctx context.Context, key rune) (*Result, error) {
	c.mu.Lock()
	if !c.wedgeActive {
		c.mu.Unlock()
		return nil, nil
	}
	if key == '\n' || key == '\r' {
		c.mu.Unlock()
		return c.Submit(ctx, scan.SourceScanner)
	}
	if key >= ' ' {
		c.input += string(key)
	}
	c.mu.Unlock()
	return nil, nil
}

// EnableKeyboardWedge routes global keystrokes into the scan buffer and
// focuses the input. The returned teardown detaches the wedge.
func (c *Controller) EnableKeyboardWedge() func() {
	c.mu.Lock()
	c.wedgeActive = true
	c.mu.Unlock()

	c.opts.Focus.Focus()
	return func() {
		c.mu.Lock()
		c.wedgeActive = false
		c.mu.Unlock()
	}
}

func (c *Controller) WedgeActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wedgeActive
}

// HandleBlur re-focuses the scan input while the wedge is active, so a
// stray click cannot steal the scanner's keystrokes.
func (c *Controller) HandleBlur() {
	c.mu.Lock()
	active := c.wedgeActive
	c.mu.Unlock()

	if active {
		c.opts.Focus.Focus()
	}
}

func (c *Controller) recordLocked(res Result) {
	switch {
	case res.Duplicate:
		c.stats.DuplicateCount++
	case res.Success:
		c.stats.SuccessCount++
	default:
		c.stats.ErrorCount++
	}

	c.history = append([]Result{res}, c.history...)
	if len(c.history) > historyCap {
		c.history = c.history[:historyCap]
	}
	r := res
	c.lastResult = &r
}

// notify plays feedback and fires hooks outside the lock. Feedback is
// fire-and-forget: a slow sound device never delays the next scan.
func (c *Controller) notify(res Result) {
	c.mu.Lock()
	sound := c.soundEnabled
	feedback := c.opts.Feedback
	focus := c.opts.Focus
	onSuccess, onDuplicate, onError := c.opts.OnSuccess, c.opts.OnDuplicate, c.opts.OnError
	c.mu.Unlock()

	if sound {
		go feedback.Play(outcomeOf(res))
	}
	focus.Focus()

	switch {
	case res.Duplicate:
		if onDuplicate != nil {
			onDuplicate(res)
		}
	case res.Success:
		if onSuccess != nil {
			onSuccess(res)
		}
	default:
		if onError != nil {
			onError(res)
		}
	}
}

func outcomeOf(res Result) Outcome {
	switch {
	case res.Duplicate:
		return OutcomeDuplicate
	case res.Success:
		return OutcomeSuccess
	default:
		return OutcomeError
	}
}
